package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"passphrasex/internal/api"
	"passphrasex/internal/domain"
	"passphrasex/internal/services/identity"
	"passphrasex/internal/services/reconcile"
	"passphrasex/internal/store"
	"passphrasex/internal/vault"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	*App

	Vault  domain.VaultStore
	Cache  domain.CacheStore
	HTTP   *http.Client
	closer io.Closer
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, log *slog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create home: %w", domain.ErrPersistence, err)
	}

	w := &Wire{}

	// Bolt is opened once and shared when both stores use it.
	var bolt *store.BoltStore
	if cfg.Store == BackendBolt || cfg.VaultBackend == BackendBolt {
		var err error
		if bolt, err = store.OpenBoltStore(store.BoltPath(cfg.Home)); err != nil {
			return nil, err
		}
		w.closer = bolt
	}

	switch cfg.Store {
	case BackendBolt:
		w.Cache = bolt
	default:
		w.Cache = store.NewCacheFileStore(cfg.Home)
	}

	switch cfg.VaultBackend {
	case BackendBolt:
		w.Vault = bolt
	case BackendKeyring:
		ks, err := store.OpenKeyringVaultStore()
		if err != nil {
			return nil, errors.Join(err, w.Close())
		}
		w.Vault = ks
	default:
		w.Vault = store.NewVaultFileStore(cfg.Home)
	}

	w.HTTP = cfg.HTTP
	if w.HTTP == nil {
		w.HTTP = &http.Client{Timeout: cfg.RequestTimeout}
	}

	factory := api.Factory(cfg.APIURL, w.HTTP)
	v := vault.New(w.Vault, vault.WithParams(cfg.Argon2.KDFParams()))
	engine := reconcile.New(factory, w.Cache, reconcile.WithLogger(log))
	accounts := identity.New(v, engine, factory, identity.WithLogger(log))

	w.App = New(accounts, engine)
	return w, nil
}

// Close locks the session and releases any open database.
func (w *Wire) Close() error {
	if w.App != nil {
		w.Accounts.Lock()
	}
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
