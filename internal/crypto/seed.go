package crypto

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"passphrasex/internal/domain"
)

// seedEntropyBits gives a 24-word phrase.
const seedEntropyBits = 256

// SeedPhrase is a BIP-39 mnemonic, the sole root of trust for an account.
// It is never persisted.
type SeedPhrase string

// String returns the phrase.
func (s SeedPhrase) String() string { return string(s) }

// Words returns the individual words of the phrase.
func (s SeedPhrase) Words() []string { return strings.Fields(string(s)) }

// NewSeedPhrase generates a fresh 24-word English mnemonic.
func NewSeedPhrase() (SeedPhrase, error) {
	entropy, err := bip39.NewEntropy(seedEntropyBits)
	if err != nil {
		return "", fmt.Errorf("seed entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("seed mnemonic: %w", err)
	}
	return SeedPhrase(mnemonic), nil
}

// ParseSeedPhrase normalises whitespace and case in s and checks the word
// list and checksum.
func ParseSeedPhrase(s string) (SeedPhrase, error) {
	phrase := SeedPhrase(strings.Join(strings.Fields(strings.ToLower(s)), " "))
	if !bip39.IsMnemonicValid(string(phrase)) {
		return "", domain.ErrInvalidMnemonic
	}
	return phrase, nil
}
