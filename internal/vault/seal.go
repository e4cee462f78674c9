package vault

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"passphrasex/internal/crypto"
	"passphrasex/internal/domain"
	"passphrasex/internal/util/memzero"
)

// Roles bind each sealed key to its slot; swapping the two ciphertexts in a
// record fails authentication.
const (
	RoleEncryption = "encryption"
	RoleSigning    = "signing"
)

// Seal encrypts key under h with XChaCha20-Poly1305 and returns
// base64url(nonce || ciphertext).
func Seal(key []byte, h PasswordHash, role string) (string, error) {
	k := h.sealKey()
	defer memzero.Zero(k)

	aead, err := chacha20poly1305.NewX(k)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX, chacha20poly1305.NonceSizeX+len(key)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return crypto.B64(aead.Seal(nonce, nonce, key, []byte(role))), nil
}

// Unseal reverses Seal. Any damage to the ciphertext, or a hash that does not
// match, fails with domain.ErrVaultCorrupted.
func Unseal(sealed string, h PasswordHash, role string) ([]byte, error) {
	blob, err := crypto.UnB64(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s key: %w", domain.ErrVaultCorrupted, role, err)
	}
	if len(blob) < chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%w: %s key too short", domain.ErrVaultCorrupted, role)
	}
	k := h.sealKey()
	defer memzero.Zero(k)

	aead, err := chacha20poly1305.NewX(k)
	if err != nil {
		return nil, err
	}
	nonce, ct := blob[:chacha20poly1305.NonceSizeX], blob[chacha20poly1305.NonceSizeX:]
	key, err := aead.Open(nil, nonce, ct, []byte(role))
	if err != nil {
		return nil, fmt.Errorf("%w: %s key: %w", domain.ErrVaultCorrupted, role, err)
	}
	return key, nil
}
