package interfaces

import (
	"context"

	domaintypes "passphrasex/internal/domain/types"
)

// VaultStore persists the sealed key pair. ReadVault returns ErrNoVault
// when nothing has been written yet.
type VaultStore interface {
	WriteVault(rec domaintypes.VaultRecord) error
	ReadVault() (domaintypes.VaultRecord, error)
}

// CacheStore persists the local credential cache. A missing cache reads as
// empty.
type CacheStore interface {
	WriteCache(cache domaintypes.CredentialsCache) error
	ReadCache() (domaintypes.CredentialsCache, error)
}

// Persistence is a single backend that holds both the vault and the cache.
type Persistence interface {
	VaultStore
	CacheStore
}

// RemoteStore is the server-side document store behind the HTTP surface.
type RemoteStore interface {
	CreateUser(ctx context.Context, id domaintypes.Identity) error
	CreateCredential(ctx context.Context, cred domaintypes.Credential) error
	ListCredentials(ctx context.Context, owner domaintypes.Identity) ([]domaintypes.Credential, error)
	UpdateCredential(
		ctx context.Context,
		owner domaintypes.Identity,
		id domaintypes.CredentialID,
		password string,
	) error
	DeleteCredential(ctx context.Context, owner domaintypes.Identity, id domaintypes.CredentialID) error
}
