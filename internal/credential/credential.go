package credential

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"

	"passphrasex/internal/domain"
)

// Cipher encrypts and decrypts individual field values.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Owner is everything needed to create credentials for one identity.
type Owner interface {
	Cipher
	VerifyingKey() domain.Identity
	IDKey() []byte
}

// DeriveID computes the id of the (site, username) pair under idKey. Each
// part is length-prefixed so ("ab", "c") and ("a", "bc") differ.
func DeriveID(idKey []byte, site, username string) domain.CredentialID {
	mac := hmac.New(sha256.New, idKey)
	writeField(mac, site)
	writeField(mac, username)
	return domain.CredentialID(base64.RawURLEncoding.EncodeToString(mac.Sum(nil)))
}

func writeField(w io.Writer, s string) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(s)))
	_, _ = w.Write(n[:])
	_, _ = w.Write([]byte(s))
}

// ID computes the id owner would give (site, username).
func ID(owner Owner, site, username string) domain.CredentialID {
	return DeriveID(owner.IDKey(), site, username)
}

// New returns a plaintext credential for owner. Site and username must be
// non-empty.
func New(owner Owner, site, username, password string) (domain.Credential, error) {
	if site == "" || username == "" {
		return domain.Credential{}, fmt.Errorf("%w: site and username are required", domain.ErrInvalidInput)
	}
	return domain.Credential{
		ID:       ID(owner, site, username),
		OwnerID:  owner.VerifyingKey(),
		Site:     site,
		Username: username,
		Password: password,
	}, nil
}

// EncryptFields replaces the username and password with ciphertext. The id,
// owner and site stay in the clear.
func EncryptFields(c domain.Credential, cipher Cipher) (domain.Credential, error) {
	user, err := cipher.Encrypt(c.Username)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("encrypt username: %w", err)
	}
	pass, err := cipher.Encrypt(c.Password)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("encrypt password: %w", err)
	}
	c.Username, c.Password = user, pass
	return c, nil
}

// DecryptFields is the inverse of EncryptFields. Failure means the record
// was sealed for another key pair or is damaged; both surface as
// domain.ErrDecryptionFailed.
func DecryptFields(c domain.Credential, cipher Cipher) (domain.Credential, error) {
	user, err := cipher.Decrypt(c.Username)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("credential %s username: %w", c.ID, err)
	}
	pass, err := cipher.Decrypt(c.Password)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("credential %s password: %w", c.ID, err)
	}
	c.Username, c.Password = user, pass
	return c, nil
}
