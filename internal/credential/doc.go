// Package credential builds credential records, gives them content-derived
// ids and encrypts or decrypts their secret fields.
//
// The id of a credential is HMAC-SHA256 over the site and username, keyed by
// a secret derived from the owner's signing key. Any device holding the same
// seed phrase computes the same id for the same (site, username) pair.
package credential
