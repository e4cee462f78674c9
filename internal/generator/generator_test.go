package generator

import (
	"errors"
	"strings"
	"testing"

	"passphrasex/internal/domain"
)

func TestGenerate(t *testing.T) {
	for _, n := range []int{0, 1, 12, 64} {
		pw, err := Generate(n)
		if err != nil {
			t.Fatalf("Generate(%d): %v", n, err)
		}
		want := n
		if n == 0 {
			want = DefaultLength
		}
		if len(pw) != want {
			t.Fatalf("Generate(%d) length = %d, want %d", n, len(pw), want)
		}
		for _, r := range pw {
			if !strings.ContainsRune(Alphabet, r) {
				t.Fatalf("Generate(%d) produced %q outside the alphabet", n, r)
			}
		}
	}

	a, _ := Generate(32)
	b, _ := Generate(32)
	if a == b {
		t.Fatal("two generated passwords are equal")
	}
}

func TestGenerate_BadLength(t *testing.T) {
	for _, n := range []int{-1, MaxLength + 1} {
		if _, err := Generate(n); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Generate(%d) err = %v, want ErrInvalidInput", n, err)
		}
	}
}
