package crypto

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/chacha20"
)

const (
	publicExponent = 65537

	// Upper bounds on rejection sampling. A 1024-bit odd candidate is prime
	// with probability about 1/355, so these are never reached in practice.
	maxPrimeCandidates = 1 << 16
	maxKeyAttempts     = 8

	millerRabinRounds = 20
)

var (
	errPrimeSearch = errors.New("prime search exhausted")
	bigOne         = big.NewInt(1)
	bigE           = big.NewInt(publicExponent)
)

// keystream is an endless deterministic byte source: the ChaCha20 keystream
// under a 32-byte seed and the all-zero nonce.
type keystream struct {
	c *chacha20.Cipher
}

func newKeystream(seed []byte) (*keystream, error) {
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(seed, nonce)
	if err != nil {
		return nil, err
	}
	return &keystream{c: c}, nil
}

func (k *keystream) Read(p []byte) (int, error) {
	clear(p)
	k.c.XORKeyStream(p, p)
	return len(p), nil
}

// generateRSA builds an RSA key whose every bit comes from random.
//
// rsa.GenerateKey deliberately perturbs its use of the reader, so it cannot
// reproduce a key from a seed.
func generateRSA(random io.Reader, bits int) (*rsa.PrivateKey, error) {
	if bits%16 != 0 || bits < 1024 {
		return nil, fmt.Errorf("unsupported modulus size %d", bits)
	}
	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		p, err := randomPrime(random, bits/2)
		if err != nil {
			return nil, err
		}
		q, err := randomPrime(random, bits/2)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}

		n := new(big.Int).Mul(p, q)
		if n.BitLen() != bits {
			continue
		}
		phi := new(big.Int).Mul(
			new(big.Int).Sub(p, bigOne),
			new(big.Int).Sub(q, bigOne),
		)
		d := new(big.Int).ModInverse(bigE, phi)
		if d == nil {
			continue
		}

		key := &rsa.PrivateKey{
			PublicKey: rsa.PublicKey{N: n, E: publicExponent},
			D:         d,
			Primes:    []*big.Int{p, q},
		}
		if err := key.Validate(); err != nil {
			return nil, err
		}
		key.Precompute()
		return key, nil
	}
	return nil, errPrimeSearch
}

// randomPrime draws candidates with the top two bits and the low bit set
// until one is prime and coprime to the public exponent.
func randomPrime(random io.Reader, bits int) (*big.Int, error) {
	buf := make([]byte, bits/8)
	p := new(big.Int)
	r := new(big.Int)
	for i := 0; i < maxPrimeCandidates; i++ {
		if _, err := io.ReadFull(random, buf); err != nil {
			return nil, err
		}
		buf[0] |= 0xC0
		buf[len(buf)-1] |= 1
		p.SetBytes(buf)

		// e is prime, so gcd(e, p-1) == 1 unless p == 1 mod e.
		if r.Mod(p, bigE).Cmp(bigOne) == 0 {
			continue
		}
		if p.ProbablyPrime(millerRabinRounds) {
			return new(big.Int).Set(p), nil
		}
	}
	return nil, errPrimeSearch
}
