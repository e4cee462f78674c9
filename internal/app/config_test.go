package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"passphrasex/internal/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	home := t.TempDir()

	cfg, err := LoadConfig(home, "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig(home) {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	home := t.TempDir()
	body := []byte(`api_url: https://vault.example.com
request_timeout: 3s
store: bolt
vault_backend: bolt
argon2:
  time: 2
  memory_kib: 2048
  threads: 1
`)
	if err := os.WriteFile(filepath.Join(home, ConfigFilename), body, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAPIURL, "")
	cfg, err := LoadConfig(home, "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "https://vault.example.com" || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.Store != BackendBolt || cfg.VaultBackend != BackendBolt {
		t.Fatalf("unexpected backends %+v", cfg)
	}
	if want := (domain.KDFParams{Time: 2, MemoryKiB: 2048, Threads: 1}); cfg.Argon2.KDFParams() != want {
		t.Fatalf("argon2 = %+v, want %+v", cfg.Argon2.KDFParams(), want)
	}

	t.Setenv(EnvAPIURL, "http://127.0.0.1:9999")
	cfg, err = LoadConfig(home, "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:9999" {
		t.Fatalf("env override ignored: %q", cfg.APIURL)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	cases := map[string]string{
		"store":   "store: sqlite\n",
		"vault":   "vault_backend: cloud\n",
		"timeout": "request_timeout: -1s\n",
		"argon2":  "argon2:\n  threads: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(t.TempDir(), path); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}

	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("store: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(t.TempDir(), path); err == nil {
		t.Fatal("malformed yaml accepted")
	}
}

func TestDefaultHome(t *testing.T) {
	t.Setenv(EnvHome, "/tmp/pp-home")
	h, err := DefaultHome()
	if err != nil || h != "/tmp/pp-home" {
		t.Fatalf("DefaultHome = %q, %v", h, err)
	}
}
