package interfaces

import (
	"context"

	domaintypes "passphrasex/internal/domain/types"
)

// CredentialService adds, looks up, edits and deletes credentials for an
// unlocked session.
type CredentialService interface {
	Sync(ctx context.Context) (domaintypes.SyncResult, error)
	Add(ctx context.Context, site, username, password string) (domaintypes.Credential, error)
	Get(site, username string) ([]domaintypes.Credential, error)
	List() ([]domaintypes.Credential, error)
	Edit(ctx context.Context, site, username, password string) error
	Delete(ctx context.Context, site, username string) error
}

// AccountService manages the lifecycle of the local identity.
type AccountService interface {
	Register(ctx context.Context, password string) (string, domaintypes.Identity, error)
	Login(ctx context.Context, seedPhrase, password string) (domaintypes.Identity, error)
	Unlock(password string) (domaintypes.Identity, error)
	Lock()
	Status() (domaintypes.Status, error)
}
