// Package authtoken mints and verifies the self-signed bearer tokens that
// authenticate requests to the remote store.
//
// A token is "{unix seconds};{base64url signature over the decimal seconds}".
// The server needs no session table or shared secret: it rebuilds the
// verifying key from the identity in the request path and checks the
// signature, rejecting tokens whose timestamp is more than the tolerance
// away from its own clock in either direction.
package authtoken
