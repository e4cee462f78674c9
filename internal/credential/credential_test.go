package credential_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"passphrasex/internal/credential"
	"passphrasex/internal/domain"
)

// fakeOwner tags ciphertext with its name so another owner cannot open it.
type fakeOwner struct {
	name  string
	idKey []byte
}

func newOwner(name string) *fakeOwner {
	return &fakeOwner{name: name, idKey: []byte("id-key-for-" + name)}
}

func (o *fakeOwner) Encrypt(pt string) (string, error) {
	return o.name + ":" + reverse(pt), nil
}

func (o *fakeOwner) Decrypt(ct string) (string, error) {
	body, ok := strings.CutPrefix(ct, o.name+":")
	if !ok {
		return "", fmt.Errorf("%w: not sealed for %s", domain.ErrDecryptionFailed, o.name)
	}
	return reverse(body), nil
}

func (o *fakeOwner) VerifyingKey() domain.Identity { return domain.Identity("vk-" + o.name) }
func (o *fakeOwner) IDKey() []byte                 { return o.idKey }

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func TestDeriveID_Stable(t *testing.T) {
	alice := newOwner("alice")

	first := credential.ID(alice, "example.com", "alice")
	for range 5 {
		require.Equal(t, first, credential.ID(alice, "example.com", "alice"))
	}
	require.NotEmpty(t, first)
	require.NotContains(t, string(first), "/")
}

func TestDeriveID_Separates(t *testing.T) {
	alice, bob := newOwner("alice"), newOwner("bob")

	id := credential.ID(alice, "example.com", "alice")
	require.NotEqual(t, id, credential.ID(bob, "example.com", "alice"), "owners must not collide")
	require.NotEqual(t, id, credential.ID(alice, "example.org", "alice"))
	require.NotEqual(t, id, credential.ID(alice, "example.com", "alicf"))
	require.NotEqual(t,
		credential.DeriveID(alice.idKey, "ab", "c"),
		credential.DeriveID(alice.idKey, "a", "bc"),
		"field boundaries must be unambiguous")
}

func TestNew(t *testing.T) {
	alice := newOwner("alice")

	c, err := credential.New(alice, "example.com", "alice", "p@ss")
	require.NoError(t, err)
	require.Equal(t, credential.ID(alice, "example.com", "alice"), c.ID)
	require.Equal(t, alice.VerifyingKey(), c.OwnerID)
	require.Equal(t, "p@ss", c.Password)

	_, err = credential.New(alice, "", "alice", "x")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = credential.New(alice, "example.com", "", "x")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFields_RoundTrip(t *testing.T) {
	alice := newOwner("alice")
	c, err := credential.New(alice, "example.com", "alice", "p@ss")
	require.NoError(t, err)

	sealed, err := credential.EncryptFields(c, alice)
	require.NoError(t, err)
	require.Equal(t, c.ID, sealed.ID)
	require.Equal(t, c.Site, sealed.Site)
	require.Equal(t, c.OwnerID, sealed.OwnerID)
	require.NotEqual(t, c.Username, sealed.Username)
	require.NotEqual(t, c.Password, sealed.Password)

	opened, err := credential.DecryptFields(sealed, alice)
	require.NoError(t, err)
	require.Equal(t, c, opened)
}

func TestDecryptFields_WrongOwner(t *testing.T) {
	alice, bob := newOwner("alice"), newOwner("bob")
	c, err := credential.New(alice, "example.com", "alice", "p@ss")
	require.NoError(t, err)
	sealed, err := credential.EncryptFields(c, alice)
	require.NoError(t, err)

	_, err = credential.DecryptFields(sealed, bob)
	require.True(t, errors.Is(err, domain.ErrDecryptionFailed), "got %v", err)
}
