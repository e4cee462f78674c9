package domain

import "errors"

// Key material.
var (
	ErrInvalidMnemonic     = errors.New("invalid mnemonic")
	ErrKeyGenerationFailed = errors.New("key generation failed")
	ErrDecryptionFailed    = errors.New("decryption failed")
)

// Vault.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrVaultCorrupted     = errors.New("vault corrupted")
	ErrNoVault            = errors.New("no vault on this device")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrAlreadyUnlocked    = errors.New("already unlocked")
)

// Bearer tokens.
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Credentials and users.
var (
	ErrCredentialAlreadyExists = errors.New("credential already exists")
	ErrCredentialNotFound      = errors.New("credential not found")
	ErrNoCredentialsFound      = errors.New("no credentials found")
	ErrUserAlreadyExists       = errors.New("user already exists")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidInput            = errors.New("invalid input")
)

// Collaborators. Callers wrap the underlying cause alongside these, e.g.
// fmt.Errorf("%w: %w", ErrTransport, err).
var (
	ErrTransport   = errors.New("transport failure")
	ErrPersistence = errors.New("persistence failure")
)
