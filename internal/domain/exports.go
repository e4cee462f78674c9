package domain

import (
	interfaces "passphrasex/internal/domain/interfaces"
	types "passphrasex/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Identity         = types.Identity
	Fingerprint      = types.Fingerprint
	CredentialID     = types.CredentialID
	Credential       = types.Credential
	CredentialsCache = types.CredentialsCache
	KDFParams        = types.KDFParams
	VaultRecord      = types.VaultRecord
	SyncResult       = types.SyncResult
	Status           = types.Status
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Transport         = interfaces.Transport
	TransportFactory  = interfaces.TransportFactory
	Signer            = interfaces.Signer
	VaultStore        = interfaces.VaultStore
	CacheStore        = interfaces.CacheStore
	Persistence       = interfaces.Persistence
	RemoteStore       = interfaces.RemoteStore
	CredentialService = interfaces.CredentialService
	AccountService    = interfaces.AccountService
)

// NewCredentialsCache groups creds by site.
func NewCredentialsCache(creds []Credential) CredentialsCache {
	return types.NewCredentialsCache(creds)
}
