// Package vault protects a key pair at rest under a device password.
//
// The password is stretched with Argon2id. HKDF splits the result into a
// sealing key and a verifier; the verifier is stored so a wrong password is
// rejected before any decryption is attempted. Each private key is sealed
// separately with XChaCha20-Poly1305, so tampering is detected and reported
// as ErrVaultCorrupted rather than surfacing as a garbled key.
//
// Vault wraps these primitives in a Locked/Unlocked state machine.
package vault
