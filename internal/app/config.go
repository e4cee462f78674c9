package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"passphrasex/internal/domain"
	"passphrasex/internal/vault"
)

const (
	// ConfigFilename is read from the home directory.
	ConfigFilename = "config.yaml"

	// EnvHome and EnvAPIURL override the home directory and the remote
	// store URL.
	EnvHome   = "PASSPHRASEX_HOME"
	EnvAPIURL = "PASSPHRASEX_API_URL"

	DefaultAPIURL         = "http://localhost:3000"
	DefaultRequestTimeout = 10 * time.Second
)

// Storage backends.
const (
	BackendFile    = "file"
	BackendBolt    = "bolt"
	BackendKeyring = "keyring"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home           string        `yaml:"-"`              // data directory, e.g. $HOME/.passphrasex
	APIURL         string        `yaml:"api_url"`        // remote store base URL
	RequestTimeout time.Duration `yaml:"request_timeout"` // per-request HTTP timeout
	Store          string        `yaml:"store"`          // credential cache backend: file or bolt
	VaultBackend   string        `yaml:"vault_backend"`  // file, keyring or bolt
	Argon2         Argon2Config  `yaml:"argon2"`

	HTTP *http.Client `yaml:"-"` // optional; built from RequestTimeout when nil
}

// Argon2Config is the password hashing cost used for new vaults.
type Argon2Config struct {
	Time      uint32 `yaml:"time"`
	MemoryKiB uint32 `yaml:"memory_kib"`
	Threads   uint8  `yaml:"threads"`
}

// KDFParams converts c to the vault representation.
func (c Argon2Config) KDFParams() domain.KDFParams {
	return domain.KDFParams{Time: c.Time, MemoryKiB: c.MemoryKiB, Threads: c.Threads}
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig(home string) Config {
	p := vault.DefaultParams
	return Config{
		Home:           home,
		APIURL:         DefaultAPIURL,
		RequestTimeout: DefaultRequestTimeout,
		Store:          BackendFile,
		VaultBackend:   BackendFile,
		Argon2:         Argon2Config{Time: p.Time, MemoryKiB: p.MemoryKiB, Threads: p.Threads},
	}
}

// DefaultHome returns $PASSPHRASEX_HOME, or ~/.passphrasex.
func DefaultHome() (string, error) {
	if h := os.Getenv(EnvHome); h != "" {
		return h, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".passphrasex"), nil
}

// LoadConfig reads path, or <home>/config.yaml when path is empty, over the
// defaults and applies environment overrides. A missing file is not an error.
func LoadConfig(home, path string) (Config, error) {
	cfg := DefaultConfig(home)
	if path == "" {
		path = filepath.Join(home, ConfigFilename)
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if u := os.Getenv(EnvAPIURL); u != "" {
		cfg.APIURL = u
	}
	return cfg, cfg.Validate()
}

// Validate checks backend names and numeric bounds.
func (c Config) Validate() error {
	switch c.Store {
	case BackendFile, BackendBolt:
	default:
		return fmt.Errorf("%w: unknown store %q", domain.ErrInvalidInput, c.Store)
	}
	switch c.VaultBackend {
	case BackendFile, BackendBolt, BackendKeyring:
	default:
		return fmt.Errorf("%w: unknown vault_backend %q", domain.ErrInvalidInput, c.VaultBackend)
	}
	if c.APIURL == "" {
		return fmt.Errorf("%w: api_url is required", domain.ErrInvalidInput)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", domain.ErrInvalidInput)
	}
	if c.Argon2.Time == 0 || c.Argon2.MemoryKiB == 0 || c.Argon2.Threads == 0 {
		return fmt.Errorf("%w: argon2 parameters must be non-zero", domain.ErrInvalidInput)
	}
	return nil
}
