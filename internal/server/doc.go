// Package server implements the passd HTTP surface over a domain.RemoteStore.
//
// Routes
//
//	POST   /users                          register an identity (unauthenticated)
//	POST   /users/{id}/credentials         store an encrypted credential
//	GET    /users/{id}/credentials         list the identity's credentials
//	PUT    /users/{id}/credentials/{cid}   replace a credential's password
//	DELETE /users/{id}/credentials/{cid}   delete a credential
//	GET    /health                         liveness check
//
// Every /users/{id}/... route requires "Authorization: Bearer <token>" where
// the token verifies against {id} (see package authtoken). Any failure is
// answered with a uniform 401 "invalid credentials"; the precise cause is
// only logged.
//
// Requests pass through request-id, access-log and per-client rate-limit
// middleware before routing.
package server
