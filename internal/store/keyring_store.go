package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"passphrasex/internal/domain"
)

const (
	keyringService = "passphrasex"
	vaultItemKey   = "vault"
)

// KeyringVaultStore keeps the sealed vault record in the OS keyring.
type KeyringVaultStore struct {
	ring keyring.Keyring
}

// OpenKeyringVaultStore opens the platform keyring for passphrasex.
func OpenKeyringVaultStore() (*KeyringVaultStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: keyringService,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open keyring: %w", domain.ErrPersistence, err)
	}
	return NewKeyringVaultStore(ring), nil
}

// NewKeyringVaultStore wraps an already opened keyring.
func NewKeyringVaultStore(ring keyring.Keyring) *KeyringVaultStore {
	return &KeyringVaultStore{ring: ring}
}

// WriteVault stores rec under the vault item.
func (k *KeyringVaultStore) WriteVault(rec domain.VaultRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode vault: %w", domain.ErrPersistence, err)
	}
	err = k.ring.Set(keyring.Item{
		Key:         vaultItemKey,
		Data:        b,
		Label:       "passphrasex vault",
		Description: "sealed passphrasex key pair",
	})
	if err != nil {
		return fmt.Errorf("%w: failed to store vault in keyring: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ReadVault loads the vault item, or returns domain.ErrNoVault.
func (k *KeyringVaultStore) ReadVault() (domain.VaultRecord, error) {
	item, err := k.ring.Get(vaultItemKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return domain.VaultRecord{}, domain.ErrNoVault
	}
	if err != nil {
		return domain.VaultRecord{}, fmt.Errorf("%w: failed to get vault from keyring: %w", domain.ErrPersistence, err)
	}
	return decodeVault(item.Data)
}

// Compile-time assertion that KeyringVaultStore implements domain.VaultStore.
var _ domain.VaultStore = (*KeyringVaultStore)(nil)
