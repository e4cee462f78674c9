package crypto

import (
	"crypto/rsa"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"

	"passphrasex/internal/domain"
	"passphrasex/internal/util/memzero"
)

// Hardened child indices under the BIP-32 master node. Each role gets its
// own path so the two RSA pairs are independent.
const (
	EncryptionIndex uint32 = 0
	SigningIndex    uint32 = 1
)

// RSABits is the modulus size of both derived pairs.
const RSABits = 2048

// Derive re-creates the key pair owned by seed. It is pure: the same phrase
// always yields byte-identical keys.
func Derive(seed SeedPhrase) (*KeyPair, error) {
	phrase, err := ParseSeedPhrase(string(seed))
	if err != nil {
		return nil, err
	}
	root, err := bip39.NewSeedWithErrorChecking(string(phrase), "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidMnemonic, err)
	}
	defer memzero.Zero(root)

	master, err := hdkeychain.NewMaster(root, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("%w: master node: %w", domain.ErrKeyGenerationFailed, err)
	}

	enc, err := roleKey(master, EncryptionIndex)
	if err != nil {
		return nil, err
	}
	sig, err := roleKey(master, SigningIndex)
	if err != nil {
		return nil, err
	}
	return newKeyPair(enc, sig), nil
}

// roleKey derives the hardened child at index and grows an RSA key from its
// chain code.
func roleKey(master *hdkeychain.ExtendedKey, index uint32) (*rsa.PrivateKey, error) {
	child, err := master.Derive(hdkeychain.HardenedKeyStart + index)
	if err != nil {
		return nil, fmt.Errorf("%w: child %d: %w", domain.ErrKeyGenerationFailed, index, err)
	}
	chainCode := child.ChainCode()
	defer memzero.Zero(chainCode)

	stream, err := newKeystream(chainCode)
	if err != nil {
		return nil, fmt.Errorf("%w: child %d: %w", domain.ErrKeyGenerationFailed, index, err)
	}
	key, err := generateRSA(stream, RSABits)
	if err != nil {
		return nil, fmt.Errorf("%w: child %d: %w", domain.ErrKeyGenerationFailed, index, err)
	}
	return key, nil
}
