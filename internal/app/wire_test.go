package app_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"passphrasex/internal/app"
	"passphrasex/internal/server"
	"passphrasex/internal/server/storage"
)

func TestWire_PersistsAcrossRuns(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(server.New(storage.NewMemory(), server.Config{Logger: quiet, Burst: 1000}).Handler())
	defer ts.Close()

	for _, backend := range []string{app.BackendFile, app.BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := app.DefaultConfig(t.TempDir())
			cfg.APIURL = ts.URL
			cfg.Store = backend
			cfg.VaultBackend = backend
			cfg.Argon2 = app.Argon2Config{Time: 1, MemoryKiB: 1024, Threads: 1}

			w, err := app.NewWire(cfg, quiet)
			if err != nil {
				t.Fatalf("NewWire: %v", err)
			}
			if _, _, err := w.Accounts.Register(ctx, "Correct-Horse-9"); err != nil {
				t.Fatalf("Register: %v", err)
			}
			if _, err := w.Credentials.Add(ctx, "github.com", "alice", "hunter2"); err != nil {
				t.Fatalf("Add: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			w, err = app.NewWire(cfg, quiet)
			if err != nil {
				t.Fatalf("NewWire: %v", err)
			}
			defer w.Close()

			st, err := w.Accounts.Status()
			if err != nil || !st.HasVault || st.Unlocked {
				t.Fatalf("Status = %+v, %v", st, err)
			}
			if _, err := w.Accounts.Unlock("Correct-Horse-9"); err != nil {
				t.Fatalf("Unlock: %v", err)
			}
			got, err := w.Credentials.Get("github.com", "alice")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if len(got) != 1 || got[0].Password != "hunter2" {
				t.Fatalf("Get = %+v", got)
			}
		})
	}
}
