package types

// Identity is a user's public account identifier: the base64url encoded
// PKCS#1 DER form of the signing pair's verifying key.
type Identity string

// String returns the string form of the identity.
func (id Identity) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// CredentialID is the content-derived identifier of a credential.
type CredentialID string

// String returns the string form of the identifier.
func (id CredentialID) String() string { return string(id) }
