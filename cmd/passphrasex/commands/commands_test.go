package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"passphrasex/internal/domain"
	"passphrasex/internal/generator"
	"passphrasex/internal/server"
	"passphrasex/internal/server/storage"
)

const testPassword = "Correct-Horse-9"

type cli struct {
	t    *testing.T
	home string
	api  string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(server.New(storage.NewMemory(), server.Config{Logger: quiet, Burst: 1000}).Handler())
	t.Cleanup(ts.Close)

	home := t.TempDir()
	cfg := "argon2:\n  time: 1\n  memory_kib: 1024\n  threads: 1\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return &cli{t: t, home: home, api: ts.URL}
}

func (c *cli) run(args ...string) (string, string, error) {
	c.t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--home", c.home, "--api", c.api, "-p", testPassword}, args...))
	err := run(context.Background(), root)
	return stdout.String(), stderr.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, stderr, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("%v: %v\n%s", args, err, stderr)
	}
	return out
}

func TestCLI_CredentialLifecycle(t *testing.T) {
	c := newCLI(t)

	if out := c.mustRun("whoami"); !strings.Contains(out, "No identity") {
		t.Fatalf("whoami before register: %q", out)
	}

	out := c.mustRun("register")
	if !strings.Contains(out, "Seed phrase") || !strings.Contains(out, "Fingerprint:") {
		t.Fatalf("register output: %q", out)
	}

	c.mustRun("add", "github.com", "alice", "hunter2")
	c.mustRun("add", "github.com", "bob", "--generate", "--length", "12")
	c.mustRun("add", "example.com", "carol", "s3cret")

	if _, _, err := c.run("add", "github.com", "alice", "again"); !errors.Is(err, domain.ErrCredentialAlreadyExists) {
		t.Fatalf("duplicate add err = %v", err)
	}

	out = c.mustRun("get", "github.com", "alice")
	if !strings.Contains(out, "hunter2") || strings.Contains(out, "bob") {
		t.Fatalf("get alice: %q", out)
	}
	out = c.mustRun("get", "github.com")
	if !strings.Contains(out, "alice") || !strings.Contains(out, "bob") {
		t.Fatalf("get site: %q", out)
	}

	c.mustRun("edit", "github.com", "alice", "hunter3")
	if out := c.mustRun("get", "github.com", "alice"); !strings.Contains(out, "hunter3") {
		t.Fatalf("get after edit: %q", out)
	}

	c.mustRun("delete", "example.com", "carol")
	out = c.mustRun("list")
	if strings.Contains(out, "example.com") || !strings.Contains(out, "github.com") {
		t.Fatalf("list after delete: %q", out)
	}

	if out := c.mustRun("sync"); !strings.Contains(out, "Synced 2 credentials") {
		t.Fatalf("sync: %q", out)
	}

	if _, _, err := c.run("get", "example.com"); !errors.Is(err, domain.ErrNoCredentialsFound) {
		t.Fatalf("get deleted site err = %v", err)
	}
}

func TestCLI_OfflineFallsBackToCache(t *testing.T) {
	c := newCLI(t)
	c.mustRun("register")
	c.mustRun("add", "github.com", "alice", "hunter2")

	c.api = "http://127.0.0.1:1"
	out, stderr, err := c.run("get", "github.com", "alice")
	if err != nil {
		t.Fatalf("offline get: %v", err)
	}
	if !strings.Contains(out, "hunter2") || !strings.Contains(stderr, "using local cache") {
		t.Fatalf("offline get: stdout %q stderr %q", out, stderr)
	}
}

func TestCLI_WrongPassword(t *testing.T) {
	c := newCLI(t)
	c.mustRun("register")

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--home", c.home, "--api", c.api, "-p", "Wrong-Horse-99", "list"})
	if err := run(context.Background(), root); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestCLI_Generate(t *testing.T) {
	c := newCLI(t)
	out := strings.TrimSpace(c.mustRun("generate", "-l", "16"))
	if len(out) != 16 {
		t.Fatalf("generate: %q", out)
	}
	for _, r := range out {
		if !strings.ContainsRune(generator.Alphabet, r) {
			t.Fatalf("generate produced %q", r)
		}
	}
}

func TestSecretArg(t *testing.T) {
	if _, err := secretArg([]string{"s", "u"}, 2, false, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing password err = %v", err)
	}
	if _, err := secretArg([]string{"s", "u", "p"}, 2, true, 10); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("both err = %v", err)
	}
	if got, _ := secretArg([]string{"s", "u", "p"}, 2, false, 0); got != "p" {
		t.Fatalf("explicit = %q", got)
	}
}
