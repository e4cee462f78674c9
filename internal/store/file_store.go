package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"passphrasex/internal/domain"
)

const (
	cacheFilename = "credentials.json"
	vaultFilename = "vault.json"

	fileMode = 0o600
)

// CacheFileStore persists the credential cache as JSON under dir.
type CacheFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewCacheFileStore returns a CacheFileStore rooted at dir.
func NewCacheFileStore(dir string) *CacheFileStore {
	return &CacheFileStore{dir: dir}
}

// WriteCache replaces the cache file.
func (s *CacheFileStore) WriteCache(cache domain.CredentialsCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSON(filepath.Join(s.dir, cacheFilename), cache, fileMode); err != nil {
		return fmt.Errorf("%w: write cache: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ReadCache loads the cache file; a missing file yields an empty cache.
func (s *CacheFileStore) ReadCache() (domain.CredentialsCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, cacheFilename))
	if err != nil {
		return nil, fmt.Errorf("%w: read cache: %w", domain.ErrPersistence, err)
	}
	if b == nil {
		return domain.CredentialsCache{}, nil
	}
	return decodeCache(b)
}

// VaultFileStore persists the sealed vault record as JSON under dir.
type VaultFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewVaultFileStore returns a VaultFileStore rooted at dir.
func NewVaultFileStore(dir string) *VaultFileStore {
	return &VaultFileStore{dir: dir}
}

// WriteVault replaces the vault file.
func (s *VaultFileStore) WriteVault(rec domain.VaultRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSON(filepath.Join(s.dir, vaultFilename), rec, fileMode); err != nil {
		return fmt.Errorf("%w: write vault: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ReadVault loads the vault file, or returns domain.ErrNoVault.
func (s *VaultFileStore) ReadVault() (domain.VaultRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, vaultFilename))
	if err != nil {
		return domain.VaultRecord{}, fmt.Errorf("%w: read vault: %w", domain.ErrPersistence, err)
	}
	if b == nil {
		return domain.VaultRecord{}, domain.ErrNoVault
	}
	return decodeVault(b)
}

// Compile-time assertions that the file stores implement the domain interfaces.
var (
	_ domain.CacheStore = (*CacheFileStore)(nil)
	_ domain.VaultStore = (*VaultFileStore)(nil)
)
