// Package app wires application dependencies for the CLI.
//
// LoadConfig layers <home>/config.yaml and the PASSPHRASEX_* environment over
// the defaults. NewWire then builds the selected stores, the vault, the
// remote store client and the account and credential services, exposing them
// through App for commands to use.
package app
