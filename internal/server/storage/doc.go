// Package storage holds the document stores behind passd: an in-memory store
// for development and tests, and a MongoDB store for deployments.
//
// Both implement domain.RemoteStore with the same contract: duplicate users
// or credential ids fail with the matching AlreadyExists error, unknown
// users with ErrUserNotFound, and updates or deletes that match nothing with
// ErrCredentialNotFound.
package storage
