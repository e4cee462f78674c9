package crypto

import (
	"bytes"
	"testing"
)

func TestGenerateRSA_SameSeedSameKey(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)

	gen := func() []byte {
		t.Helper()
		ks, err := newKeystream(seed)
		if err != nil {
			t.Fatalf("newKeystream: %v", err)
		}
		key, err := generateRSA(ks, 1024)
		if err != nil {
			t.Fatalf("generateRSA: %v", err)
		}
		if key.N.BitLen() != 1024 || key.E != publicExponent {
			t.Fatalf("unexpected key shape: %d bits, e=%d", key.N.BitLen(), key.E)
		}
		return key.N.Bytes()
	}

	if !bytes.Equal(gen(), gen()) {
		t.Fatal("same seed produced different moduli")
	}
}

func TestKeystream_Deterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{1}, 32)
	a, _ := newKeystream(seed)
	b, _ := newKeystream(seed)

	x := make([]byte, 64)
	y := make([]byte, 64)
	_, _ = a.Read(x)
	_, _ = b.Read(y[:10])
	_, _ = b.Read(y[10:])
	if !bytes.Equal(x, y) {
		t.Fatal("keystream depends on read sizes")
	}
	if bytes.Equal(x, make([]byte, 64)) {
		t.Fatal("keystream is all zeros")
	}
}

func TestGenerateRSA_RejectsOddSizes(t *testing.T) {
	ks, _ := newKeystream(make([]byte, 32))
	if _, err := generateRSA(ks, 1000); err == nil {
		t.Fatal("expected error for unsupported size")
	}
}
