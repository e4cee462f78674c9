// Package crypto turns a seed phrase into the two RSA key pairs a user owns
// and exposes the operations the rest of passphrasex needs from them.
//
// Contents
//
//   - Seed phrase generation and validation (NewSeedPhrase, ParseSeedPhrase)
//   - Deterministic derivation of the encryption and signing pairs from a
//     seed phrase through BIP-32 hardened children (Derive)
//   - Field encryption (RSA-OAEP/SHA-256), signing (RSASSA-PKCS1-v1_5/SHA-256)
//     and verification (KeyPair, ParseVerifyingKey, Verify)
//   - Base64url helpers and short fingerprints for display (B64, Fingerprint)
//
// # Notes
//
// Derivation never falls back to system randomness: the same seed phrase
// yields byte-identical keys on every device, and the verifying key doubles
// as the account identifier. Callers should drop KeyPair references as soon
// as a session is locked.
package crypto
