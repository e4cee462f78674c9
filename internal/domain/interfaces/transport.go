package interfaces

import (
	"context"

	domaintypes "passphrasex/internal/domain/types"
)

// Transport is how the client talks to the remote credential store. Every
// call except CreateUser carries a token minted from the caller's Signer.
type Transport interface {
	CreateUser(ctx context.Context, id domaintypes.Identity) error
	CreateCredential(ctx context.Context, owner domaintypes.Identity, cred domaintypes.Credential) error
	ListCredentials(ctx context.Context, owner domaintypes.Identity) ([]domaintypes.Credential, error)
	UpdateCredential(
		ctx context.Context,
		owner domaintypes.Identity,
		id domaintypes.CredentialID,
		password string,
	) error
	DeleteCredential(ctx context.Context, owner domaintypes.Identity, id domaintypes.CredentialID) error
}

// Signer is the narrow signing capability lent to a Transport.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
	VerifyingKey() domaintypes.Identity
}

// TransportFactory builds a Transport bound to a signing capability.
type TransportFactory func(Signer) Transport
