package authtoken_test

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"passphrasex/internal/authtoken"
	"passphrasex/internal/crypto"
	"passphrasex/internal/domain"
)

var (
	once       sync.Once
	alice, bob *crypto.KeyPair
	deriveErr  error
)

func keyPairs(t *testing.T) (*crypto.KeyPair, *crypto.KeyPair) {
	t.Helper()
	once.Do(func() {
		alice, deriveErr = crypto.Derive("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
		if deriveErr == nil {
			bob, deriveErr = crypto.Derive("zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong")
		}
	})
	require.NoError(t, deriveErr)
	return alice, bob
}

func TestMintVerify_Fresh(t *testing.T) {
	a, _ := keyPairs(t)
	minted := time.Unix(1_700_000_000, 0)

	token, err := authtoken.Mint(a, minted)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, "1700000000;"))

	tol := authtoken.DefaultTolerance
	require.NoError(t, authtoken.Verify(a.VerifyingKey(), token, minted, tol))
	require.NoError(t, authtoken.Verify(a.VerifyingKey(), token, minted.Add(tol-time.Second), tol))
	require.ErrorIs(t, authtoken.Verify(a.VerifyingKey(), token, minted.Add(tol+time.Second), tol), domain.ErrTokenExpired)
}

func TestVerify_FutureSkew(t *testing.T) {
	a, _ := keyPairs(t)
	minted := time.Unix(1_700_000_000, 0)
	token, err := authtoken.Mint(a, minted)
	require.NoError(t, err)

	tol := authtoken.DefaultTolerance
	require.NoError(t, authtoken.Verify(a.VerifyingKey(), token, minted.Add(-(tol - time.Second)), tol))
	require.ErrorIs(t, authtoken.Verify(a.VerifyingKey(), token, minted.Add(-(tol + time.Second)), tol), domain.ErrTokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	a, _ := keyPairs(t)
	now := time.Unix(1_700_000_000, 0)

	for _, token := range []string{
		"",
		"1700000000",
		";abc",
		"1700000000;",
		"yesterday;abc",
		"1700000000;%%%",
	} {
		err := authtoken.Verify(a.VerifyingKey(), token, now, authtoken.DefaultTolerance)
		require.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", token)
	}
}

func TestVerify_WrongIdentity(t *testing.T) {
	a, b := keyPairs(t)
	now := time.Unix(1_700_000_000, 0)
	token, err := authtoken.Mint(a, now)
	require.NoError(t, err)

	require.ErrorIs(t, authtoken.Verify(b.VerifyingKey(), token, now, authtoken.DefaultTolerance), domain.ErrInvalidSignature)
	require.ErrorIs(t, authtoken.Verify("not-a-key", token, now, authtoken.DefaultTolerance), domain.ErrInvalidSignature)
}

func TestVerify_TimestampTampered(t *testing.T) {
	a, _ := keyPairs(t)
	now := time.Unix(1_700_000_000, 0)
	token, err := authtoken.Mint(a, now)
	require.NoError(t, err)

	_, sig, _ := strings.Cut(token, ";")
	forged := "1700000005;" + sig
	require.ErrorIs(t, authtoken.Verify(a.VerifyingKey(), forged, now, authtoken.DefaultTolerance), domain.ErrInvalidSignature)
}

func TestVerify_ExtremeTimestamps(t *testing.T) {
	a, _ := keyPairs(t)
	now := time.Unix(1_700_000_000, 0)

	// now-ts wraps to math.MinInt64 for the first value, whose negation
	// is itself, so a signed token must still be rejected as stale.
	for _, ts := range []int64{now.Unix() + math.MinInt64, math.MinInt64, math.MaxInt64} {
		tsPart := strconv.FormatInt(ts, 10)
		sig, err := a.Sign([]byte(tsPart))
		require.NoError(t, err)

		token := tsPart + ";" + crypto.B64(sig)
		require.ErrorIs(t, authtoken.Verify(a.VerifyingKey(), token, now, authtoken.DefaultTolerance), domain.ErrTokenExpired, "ts %d", ts)
	}
}

func TestVerifier_Clock(t *testing.T) {
	a, _ := keyPairs(t)
	minted := time.Unix(1_700_000_000, 0)
	token, err := authtoken.Mint(a, minted)
	require.NoError(t, err)

	v := authtoken.Verifier{Tolerance: 5 * time.Second, Now: func() time.Time { return minted.Add(6 * time.Second) }}
	require.ErrorIs(t, v.Verify(a.VerifyingKey(), token), domain.ErrTokenExpired)

	v.Now = func() time.Time { return minted.Add(4 * time.Second) }
	require.NoError(t, v.Verify(a.VerifyingKey(), token))
}

func TestHeader(t *testing.T) {
	got, err := authtoken.FromHeader(authtoken.Header("1;abc"))
	require.NoError(t, err)
	require.Equal(t, "1;abc", got)

	_, err = authtoken.FromHeader("Basic dXNlcg==")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
