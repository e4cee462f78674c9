package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"

	"passphrasex/internal/crypto"
	"passphrasex/internal/domain"
	"passphrasex/internal/util/memzero"
)

const (
	// SaltSize is the length of a vault salt before encoding.
	SaltSize = 16

	hashSize = 32

	sealInfo     = "passphrasex vault seal"
	verifierInfo = "passphrasex vault verifier"
)

// DefaultParams are the Argon2id costs used for new vaults.
var DefaultParams = domain.KDFParams{Time: 1, MemoryKiB: 64 * 1024, Threads: 4}

// PasswordHash is the Argon2id output for a device password. It never
// leaves memory; sealKey and Verifier expand it into what is stored.
type PasswordHash []byte

// Wipe zeroes the hash.
func (h PasswordHash) Wipe() { memzero.Zero(h) }

// sealKey is the XChaCha20-Poly1305 key for the private keys.
func (h PasswordHash) sealKey() []byte { return h.expand(sealInfo) }

// Verifier is the value stored to check future unlock attempts.
func (h PasswordHash) Verifier() string { return crypto.B64(h.expand(verifierInfo)) }

func (h PasswordHash) expand(info string) []byte {
	out := make([]byte, hashSize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, h, nil, []byte(info)), out); err != nil {
		panic(err)
	}
	return out
}

// GenerateSalt returns SaltSize random bytes, base64url encoded.
func GenerateSalt() (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return crypto.B64(salt), nil
}

// HashPassword stretches password with Argon2id under salt and p.
func HashPassword(password, salt string, p domain.KDFParams) (PasswordHash, error) {
	raw, err := crypto.UnB64(salt)
	if err != nil || len(raw) != SaltSize {
		return nil, fmt.Errorf("%w: bad salt", domain.ErrVaultCorrupted)
	}
	if p.Time == 0 || p.MemoryKiB == 0 || p.Threads == 0 {
		return nil, fmt.Errorf("%w: bad kdf parameters", domain.ErrVaultCorrupted)
	}
	return argon2.IDKey([]byte(password), raw, p.Time, p.MemoryKiB, p.Threads, hashSize), nil
}

// VerifyPassword recomputes the hash of password and compares its verifier
// with stored in constant time.
func VerifyPassword(password, stored, salt string, p domain.KDFParams) (PasswordHash, error) {
	h, err := HashPassword(password, salt, p)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(h.Verifier()), []byte(stored)) != 1 {
		h.Wipe()
		return nil, domain.ErrInvalidCredentials
	}
	return h, nil
}
