package crypto

import "encoding/base64"

// B64 returns the URL-safe base64 encoding of b.
func B64(b []byte) string { return base64.URLEncoding.EncodeToString(b) }

// UnB64 decodes a string produced by B64.
func UnB64(s string) ([]byte, error) { return base64.URLEncoding.DecodeString(s) }
