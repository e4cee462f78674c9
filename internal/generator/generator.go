// Package generator produces random passwords for new credentials.
package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"passphrasex/internal/domain"
)

// Alphabet is the set of characters generated passwords are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789@-"

// DefaultLength is used when no length is requested.
const DefaultLength = 20

// MaxLength bounds a single request.
const MaxLength = 256

// Generate returns a password of length characters chosen uniformly from
// Alphabet. A zero length selects DefaultLength.
func Generate(length int) (string, error) {
	if length == 0 {
		length = DefaultLength
	}
	if length < 0 || length > MaxLength {
		return "", fmt.Errorf("%w: password length must be between 1 and %d", domain.ErrInvalidInput, MaxLength)
	}
	n := big.NewInt(int64(len(Alphabet)))
	out := make([]byte, length)
	for i := range out {
		j, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		out[i] = Alphabet[j.Int64()]
	}
	return string(out), nil
}
