// Package store provides local persistence for passphrasex.
//
// It contains concrete implementations of the domain storage interfaces:
//   - File stores (CacheFileStore, VaultFileStore) serialise JSON under the
//     configured home directory with atomic temp-file writes and 0600 modes.
//   - BoltStore keeps both the vault and the cache in one BoltDB file.
//   - KeyringVaultStore keeps the sealed vault in the OS keyring.
//
// All stores are safe for concurrent use. Missing vaults are reported as
// domain.ErrNoVault; I/O failures wrap domain.ErrPersistence.
package store
