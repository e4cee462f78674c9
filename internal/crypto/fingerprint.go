package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"passphrasex/internal/domain"
)

// Fingerprint returns a short hex fingerprint of an identity.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(id domain.Identity) domain.Fingerprint {
	sum := sha256.Sum256([]byte(id))
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}
