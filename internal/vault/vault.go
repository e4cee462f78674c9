package vault

import (
	"errors"
	"fmt"
	"sync"

	"passphrasex/internal/crypto"
	"passphrasex/internal/domain"
	"passphrasex/internal/util/memzero"
)

// RecordVersion is the current on-disk vault format.
const RecordVersion = 1

// Vault is the Locked/Unlocked state machine around a persisted
// VaultRecord. Key material is resident only while unlocked.
type Vault struct {
	store  domain.VaultStore
	params domain.KDFParams

	mu   sync.Mutex
	keys *crypto.KeyPair
}

// Option configures a Vault.
type Option func(*Vault)

// WithParams overrides the Argon2id costs used when creating a vault.
// Existing vaults always unlock with the parameters they were sealed with.
func WithParams(p domain.KDFParams) Option {
	return func(v *Vault) { v.params = p }
}

// New returns a locked vault backed by store.
func New(store domain.VaultStore, opts ...Option) *Vault {
	v := &Vault{store: store, params: DefaultParams}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Exists reports whether a vault record has been written.
func (v *Vault) Exists() (bool, error) {
	_, err := v.store.ReadVault()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNoVault):
		return false, nil
	default:
		return false, err
	}
}

// Identity returns the identity recorded in the vault without unlocking it.
func (v *Vault) Identity() (domain.Identity, error) {
	rec, err := v.store.ReadVault()
	if err != nil {
		return "", err
	}
	return rec.Identity, nil
}

// Create seals kp under password, replacing any existing record, and leaves
// the vault unlocked with kp.
func (v *Vault) Create(kp *crypto.KeyPair, password string) error {
	if password == "" {
		return fmt.Errorf("%w: device password is required", domain.ErrInvalidInput)
	}
	rec, err := v.seal(kp, password)
	if err != nil {
		return err
	}
	if err := v.store.WriteVault(rec); err != nil {
		return err
	}

	v.mu.Lock()
	v.keys = kp
	v.mu.Unlock()
	return nil
}

func (v *Vault) seal(kp *crypto.KeyPair, password string) (domain.VaultRecord, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return domain.VaultRecord{}, err
	}
	h, err := HashPassword(password, salt, v.params)
	if err != nil {
		return domain.VaultRecord{}, err
	}
	defer h.Wipe()

	encDER, sigDER := kp.MarshalPrivateKeys()
	defer memzero.All(encDER, sigDER)

	encSealed, err := Seal(encDER, h, RoleEncryption)
	if err != nil {
		return domain.VaultRecord{}, err
	}
	sigSealed, err := Seal(sigDER, h, RoleSigning)
	if err != nil {
		return domain.VaultRecord{}, err
	}
	return domain.VaultRecord{
		Version:       RecordVersion,
		Identity:      kp.VerifyingKey(),
		Salt:          salt,
		KDF:           v.params,
		Verifier:      h.Verifier(),
		EncryptionKey: encSealed,
		SigningKey:    sigSealed,
	}, nil
}

// Unlock checks password against the stored verifier and unseals both
// private keys. On any failure the vault stays locked and the error matches
// domain.ErrInvalidCredentials.
func (v *Vault) Unlock(password string) (*crypto.KeyPair, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	rec, err := v.store.ReadVault()
	if err != nil {
		return nil, err
	}
	kp, err := open(rec, password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	}
	v.keys = kp
	return kp, nil
}

func open(rec domain.VaultRecord, password string) (*crypto.KeyPair, error) {
	if rec.Version > RecordVersion {
		return nil, fmt.Errorf("%w: unsupported vault version %d", domain.ErrVaultCorrupted, rec.Version)
	}
	h, err := VerifyPassword(password, rec.Verifier, rec.Salt, rec.KDF)
	if err != nil {
		return nil, err
	}
	defer h.Wipe()

	encDER, err := Unseal(rec.EncryptionKey, h, RoleEncryption)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(encDER)
	sigDER, err := Unseal(rec.SigningKey, h, RoleSigning)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(sigDER)

	kp, err := crypto.KeyPairFromPrivateKeys(encDER, sigDER)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVaultCorrupted, err)
	}
	if kp.VerifyingKey() != rec.Identity {
		return nil, fmt.Errorf("%w: identity mismatch", domain.ErrVaultCorrupted)
	}
	return kp, nil
}

// Lock drops the resident key pair.
func (v *Vault) Lock() {
	v.mu.Lock()
	v.keys = nil
	v.mu.Unlock()
}

// Locked reports whether no key pair is resident.
func (v *Vault) Locked() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.keys == nil
}

// KeyPair returns the resident key pair, or domain.ErrNotAuthenticated when
// locked.
func (v *Vault) KeyPair() (*crypto.KeyPair, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.keys == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return v.keys, nil
}
