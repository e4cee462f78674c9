// Package main runs passd, the remote credential store behind passphrasex.
// It holds only ciphertext: site names and credential ids are visible to it,
// usernames and passwords are not.
//
// HTTP API
//
//	GET /health
//	    Liveness check.
//
//	POST /users { "id": "<identity>" }
//	    Register an identity. 201, or 409 if it already exists.
//
//	POST /users/{id}/credentials
//	    Store a sealed credential owned by {id}. 201, 409 on a duplicate id,
//	    404 if {id} is unknown.
//
//	GET /users/{id}/credentials
//	    Return every sealed credential owned by {id}.
//
//	PUT /users/{id}/credentials/{cid} { "password": "<ciphertext>" }
//	    Replace the password of credential {cid}. 204 or 404.
//
//	DELETE /users/{id}/credentials/{cid}
//	    Remove credential {cid}. 204 or 404.
//
// Authentication
//
// Every /users/{id}/credentials route requires
//
//	Authorization: Bearer <unix-seconds>;<base64url signature>
//
// where the signature is made over the decimal timestamp with the key named
// by {id}. Timestamps outside --token-tolerance of the server clock are
// rejected. All authentication failures answer 401 "invalid credentials".
//
// Behaviour
//
//   - With --mongo-uri, users and credentials are kept in MongoDB; otherwise
//     all state is held in memory and lost on process exit.
//   - Responses are JSON. Non-2xx statuses carry {"error": "..."}.
//   - Each client address gets a token bucket (--rate, --burst); excess
//     requests get 429 with Retry-After. The address is the TCP peer unless
//     the peer is listed with --trusted-proxy, in which case the rightmost
//     untrusted X-Forwarded-For hop is used.
//   - A structured access log records request id, method, path, remote,
//     status, bytes and duration for each request.
//   - The default listen address is :3000.
package main
