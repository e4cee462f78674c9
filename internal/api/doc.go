// Package api provides the HTTP implementation of domain.Transport used by
// passphrasex to reach the remote credential store.
//
// Every request except user creation carries an "Authorization: Bearer"
// token freshly minted from the signing capability the client was built
// with. Supported operations:
//   - Registering a new identity (POST /users).
//   - Creating, listing, updating and deleting the caller's credentials
//     under /users/{id}/credentials.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Status codes are mapped onto the domain error taxonomy; network
// failures, timeouts and unexpected statuses wrap domain.ErrTransport along
// with the HTTP method, path and status text to aid diagnostics.
package api
