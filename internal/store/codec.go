package store

import (
	"encoding/json"
	"fmt"

	"passphrasex/internal/domain"
)

// decodeVault parses a stored record. Unreadable or empty records are
// reported as corruption, not as a missing vault.
func decodeVault(b []byte) (domain.VaultRecord, error) {
	var rec domain.VaultRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.VaultRecord{}, fmt.Errorf("%w: %w", domain.ErrVaultCorrupted, err)
	}
	if rec.Identity == "" || rec.Salt == "" || rec.EncryptionKey == "" || rec.SigningKey == "" {
		return domain.VaultRecord{}, fmt.Errorf("%w: incomplete record", domain.ErrVaultCorrupted)
	}
	return rec, nil
}

func decodeCache(b []byte) (domain.CredentialsCache, error) {
	cache := domain.CredentialsCache{}
	if err := json.Unmarshal(b, &cache); err != nil {
		return nil, fmt.Errorf("%w: decode cache: %w", domain.ErrPersistence, err)
	}
	if cache == nil {
		cache = domain.CredentialsCache{}
	}
	return cache, nil
}
