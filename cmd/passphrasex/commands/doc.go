// Package commands defines the passphrasex CLI and wires dependencies for subcommands.
//
// Commands
//
//   - register   Create a new identity and print its seed phrase
//   - login      Recover an identity on this device from its seed phrase
//   - add        Store a credential
//   - get        Show the credentials for a site
//   - edit       Change a stored password
//   - delete     Remove a credential
//   - list       Show every stored credential
//   - sync       Refresh the local cache from the remote store
//   - generate   Print a random password
//   - whoami     Show the local identity and vault state
//
// # Implementation
//
// The root command loads the configuration and builds the dependency graph
// (stores, vault, remote store client, services) before any subcommand runs.
// Credential commands unlock the vault with the device password, sync, run
// their operation and lock again; when the remote store is unreachable they
// fall back to the local cache and print a warning.
package commands
