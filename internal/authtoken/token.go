package authtoken

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"passphrasex/internal/crypto"
	"passphrasex/internal/domain"
)

// DefaultTolerance bounds clock skew and replay in both directions.
const DefaultTolerance = 30 * time.Second

const bearerPrefix = "Bearer "

// Mint signs now with s.
func Mint(s domain.Signer, now time.Time) (string, error) {
	ts := strconv.FormatInt(now.Unix(), 10)
	sig, err := s.Sign([]byte(ts))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return ts + ";" + crypto.B64(sig), nil
}

// Verify checks that token was minted by the owner of identity within
// tolerance of now.
func Verify(identity domain.Identity, token string, now time.Time, tolerance time.Duration) error {
	tsPart, sigPart, ok := strings.Cut(token, ";")
	if !ok || tsPart == "" || sigPart == "" {
		return domain.ErrInvalidToken
	}
	ts, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: timestamp: %w", domain.ErrInvalidToken, err)
	}

	// ts is untrusted; now-ts overflows for extreme values.
	unix, tol := now.Unix(), int64(tolerance/time.Second)
	if ts < unix-tol || ts > unix+tol {
		return domain.ErrTokenExpired
	}

	sig, err := crypto.UnB64(sigPart)
	if err != nil {
		return fmt.Errorf("%w: signature: %w", domain.ErrInvalidToken, err)
	}
	pub, err := crypto.ParseVerifyingKey(identity)
	if err != nil {
		return fmt.Errorf("%w: identity: %w", domain.ErrInvalidSignature, err)
	}
	if err := crypto.Verify(pub, []byte(tsPart), sig); err != nil {
		return domain.ErrInvalidSignature
	}
	return nil
}

// Verifier checks tokens against a clock. The zero value uses
// DefaultTolerance and time.Now.
type Verifier struct {
	Tolerance time.Duration
	Now       func() time.Time
}

// Verify checks token for identity.
func (v Verifier) Verify(identity domain.Identity, token string) error {
	tol := v.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	return Verify(identity, token, now(), tol)
}

// Header formats token for an Authorization header.
func Header(token string) string { return bearerPrefix + token }

// FromHeader extracts the token from an Authorization header value.
func FromHeader(h string) (string, error) {
	token, ok := strings.CutPrefix(h, bearerPrefix)
	if !ok || token == "" {
		return "", fmt.Errorf("%w: missing bearer token", domain.ErrInvalidToken)
	}
	return token, nil
}
