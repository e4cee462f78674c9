// Package memzero wipes key material and password hashes once they are no
// longer needed.
package memzero

import "crypto/subtle"

// Zero overwrites b with zeros through a constant-time copy.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}

// All zeroes every buffer in bufs.
func All(bufs ...[]byte) {
	for _, b := range bufs {
		Zero(b)
	}
}
