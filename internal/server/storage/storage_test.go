package storage_test

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"passphrasex/internal/domain"
	"passphrasex/internal/server/storage"
)

// exerciseStore runs the RemoteStore contract against s.
func exerciseStore(t *testing.T, s domain.RemoteStore) {
	t.Helper()
	ctx := context.Background()
	alice := domain.Identity(fmt.Sprintf("alice-%d", time.Now().UnixNano()))
	bob := domain.Identity(fmt.Sprintf("bob-%d", time.Now().UnixNano()))

	cred := domain.Credential{ID: domain.CredentialID("c1-" + alice), OwnerID: alice, Site: "example.com", Username: "u", Password: "p"}
	require.ErrorIs(t, s.CreateCredential(ctx, cred), domain.ErrUserNotFound)

	require.NoError(t, s.CreateUser(ctx, alice))
	require.ErrorIs(t, s.CreateUser(ctx, alice), domain.ErrUserAlreadyExists)
	require.NoError(t, s.CreateUser(ctx, bob))

	list, err := s.ListCredentials(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, s.CreateCredential(ctx, cred))
	require.ErrorIs(t, s.CreateCredential(ctx, cred), domain.ErrCredentialAlreadyExists)

	list, err = s.ListCredentials(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, []domain.Credential{cred}, list)

	list, err = s.ListCredentials(ctx, bob)
	require.NoError(t, err)
	require.Empty(t, list, "credentials are scoped to their owner")

	require.ErrorIs(t, s.UpdateCredential(ctx, bob, cred.ID, "x"), domain.ErrCredentialNotFound)
	require.NoError(t, s.UpdateCredential(ctx, alice, cred.ID, "p2"))
	list, err = s.ListCredentials(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, "p2", list[0].Password)

	require.ErrorIs(t, s.DeleteCredential(ctx, bob, cred.ID), domain.ErrCredentialNotFound)
	require.NoError(t, s.DeleteCredential(ctx, alice, cred.ID))
	require.ErrorIs(t, s.DeleteCredential(ctx, alice, cred.ID), domain.ErrCredentialNotFound)
	require.ErrorIs(t, s.UpdateCredential(ctx, alice, cred.ID, "p3"), domain.ErrCredentialNotFound)

	_, err = s.ListCredentials(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, storage.NewMemory())
}

func TestMongo(t *testing.T) {
	uri := os.Getenv("PASSPHRASEX_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PASSPHRASEX_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := storage.NewMongo(ctx, uri, "passphrasex_test")
	require.NoError(t, err)
	defer s.Close(context.Background())

	exerciseStore(t, s)
}

// Both stores are used through domain.RemoteStore from other packages, so
// their exported methods carry the error contract in their docs.
func TestExportedMethodsDocumented(t *testing.T) {
	for _, file := range []string{"memory.go", "mongo.go"} {
		f, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ParseComments)
		require.NoError(t, err)
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || !fn.Name.IsExported() {
				continue
			}
			require.NotNil(t, fn.Doc, "%s: %s has no doc comment", file, fn.Name.Name)
		}
	}
}
