package crypto

import (
	stdcrypto "crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"passphrasex/internal/domain"
)

// idKeyInfo labels the HKDF expansion that yields the credential id key.
const idKeyInfo = "passphrasex credential id"

// KeyPair holds the two RSA pairs derived from one seed phrase.
//
//   - encryption: encrypts and decrypts credential fields.
//   - signing: signs bearer tokens; its public half is the account identity.
type KeyPair struct {
	encryption *rsa.PrivateKey
	signing    *rsa.PrivateKey
}

func newKeyPair(enc, sig *rsa.PrivateKey) *KeyPair {
	return &KeyPair{encryption: enc, signing: sig}
}

// KeyPairFromPrivateKeys rebuilds a KeyPair from the PKCS#1 DER private keys
// produced by MarshalPrivateKeys.
func KeyPairFromPrivateKeys(encDER, sigDER []byte) (*KeyPair, error) {
	enc, err := parsePrivate(encDER)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	sig, err := parsePrivate(sigDER)
	if err != nil {
		return nil, fmt.Errorf("signing key: %w", err)
	}
	return newKeyPair(enc, sig), nil
}

func parsePrivate(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, err
	}
	if key.N.BitLen() != RSABits {
		return nil, fmt.Errorf("unexpected modulus size %d", key.N.BitLen())
	}
	return key, nil
}

// MarshalPrivateKeys returns both private keys in PKCS#1 DER form. Callers
// own the returned buffers and should wipe them after use.
func (k *KeyPair) MarshalPrivateKeys() (enc, sig []byte) {
	return x509.MarshalPKCS1PrivateKey(k.encryption), x509.MarshalPKCS1PrivateKey(k.signing)
}

// EncryptionPublic returns the base64url PKCS#1 DER of the encryption key.
func (k *KeyPair) EncryptionPublic() string {
	return B64(x509.MarshalPKCS1PublicKey(&k.encryption.PublicKey))
}

// VerifyingKey returns the account identity: the base64url PKCS#1 DER of the
// signing pair's public key.
func (k *KeyPair) VerifyingKey() domain.Identity {
	return domain.Identity(B64(x509.MarshalPKCS1PublicKey(&k.signing.PublicKey)))
}

// Fingerprint returns a short display form of the identity.
func (k *KeyPair) Fingerprint() domain.Fingerprint { return Fingerprint(k.VerifyingKey()) }

// Sign returns the RSASSA-PKCS1-v1_5 signature of SHA-256(msg). The scheme
// is deterministic.
func (k *KeyPair) Sign(msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	return rsa.SignPKCS1v15(rand.Reader, k.signing, stdcrypto.SHA256, digest[:])
}

// Encrypt seals plaintext to the encryption key with RSA-OAEP/SHA-256 and
// returns base64url ciphertext.
func (k *KeyPair) Encrypt(plaintext string) (string, error) {
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, &k.encryption.PublicKey, []byte(plaintext), nil)
	if errors.Is(err, rsa.ErrMessageTooLong) {
		return "", fmt.Errorf("%w: value too long to encrypt", domain.ErrInvalidInput)
	}
	if err != nil {
		return "", err
	}
	return B64(ct), nil
}

// Decrypt reverses Encrypt. A malformed ciphertext and a ciphertext for
// another key both fail with ErrDecryptionFailed.
func (k *KeyPair) Decrypt(ciphertext string) (string, error) {
	ct, err := UnB64(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDecryptionFailed, err)
	}
	pt, err := rsa.DecryptOAEP(sha256.New(), nil, k.encryption, ct, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDecryptionFailed, err)
	}
	return string(pt), nil
}

// IDKey returns the 32-byte key used to compute credential ids. It is
// derived from the signing private key, so it is scoped to one owner.
func (k *KeyPair) IDKey() []byte {
	out := make([]byte, 32)
	r := hkdf.New(sha256.New, k.signing.D.Bytes(), nil, []byte(idKeyInfo))
	if _, err := io.ReadFull(r, out); err != nil {
		// hkdf only fails past 255 blocks of output.
		panic(err)
	}
	return out
}

// Equal reports whether k and other hold the same private keys.
func (k *KeyPair) Equal(other *KeyPair) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.encryption.Equal(other.encryption) && k.signing.Equal(other.signing)
}

// ParseVerifyingKey decodes an identity back into an RSA public key.
func ParseVerifyingKey(id domain.Identity) (*rsa.PublicKey, error) {
	der, err := UnB64(string(id))
	if err != nil {
		return nil, err
	}
	return x509.ParsePKCS1PublicKey(der)
}

// Verify checks a signature produced by KeyPair.Sign.
func Verify(pub *rsa.PublicKey, msg, sig []byte) error {
	digest := sha256.Sum256(msg)
	return rsa.VerifyPKCS1v15(pub, stdcrypto.SHA256, digest[:], sig)
}

var _ domain.Signer = (*KeyPair)(nil)
