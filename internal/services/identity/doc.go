// Package identity manages the lifecycle of the local account.
//
// Register creates a fresh seed phrase and publishes its identity; Login
// recovers an existing identity from its seed phrase on a new device. Both
// seal the derived key pair in the vault under a device password and unlock
// the credential engine. Unlock and Lock move the vault and the engine
// between their Locked and Unlocked states together.
package identity
