package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode"

	"passphrasex/internal/crypto"
	"passphrasex/internal/domain"
	"passphrasex/internal/services/reconcile"
	"passphrasex/internal/vault"
)

const (
	// minPasswordLength defines the minimum number of characters required for a device password.
	minPasswordLength = 12
)

var (
	// ErrWeakPassword is returned when the device password fails the strength policy.
	ErrWeakPassword = fmt.Errorf(
		"%w: device password is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		domain.ErrInvalidInput,
		minPasswordLength,
	)
)

// Service ties the vault, the credential engine and the remote store
// together for account-level operations.
type Service struct {
	vault        *vault.Vault
	engine       *reconcile.Engine
	newTransport domain.TransportFactory
	log          *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New returns an identity service.
func New(v *vault.Vault, e *reconcile.Engine, newTransport domain.TransportFactory, opts ...Option) *Service {
	s := &Service{vault: v, engine: e, newTransport: newTransport, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register generates a new seed phrase, registers its identity with the
// remote store and seals the keys under password. The seed phrase is
// returned once and never stored.
func (s *Service) Register(ctx context.Context, password string) (string, domain.Identity, error) {
	if !isSecurePassword(password) {
		return "", "", ErrWeakPassword
	}
	seed, err := crypto.NewSeedPhrase()
	if err != nil {
		return "", "", err
	}
	kp, err := crypto.Derive(seed)
	if err != nil {
		return "", "", err
	}

	id := kp.VerifyingKey()
	if err := s.newTransport(kp).CreateUser(ctx, id); err != nil {
		return "", "", fmt.Errorf("register identity: %w", err)
	}
	if err := s.activate(kp, password); err != nil {
		return "", "", err
	}
	s.log.Info("registered", "identity", kp.Fingerprint())
	return seed.String(), id, nil
}

// Login re-derives the identity owned by seedPhrase, seals it on this device
// under password and pulls the remote credentials. An unreachable remote
// store is not an error: the session starts from the local cache.
func (s *Service) Login(ctx context.Context, seedPhrase, password string) (domain.Identity, error) {
	if !isSecurePassword(password) {
		return "", ErrWeakPassword
	}
	seed, err := crypto.ParseSeedPhrase(seedPhrase)
	if err != nil {
		return "", err
	}
	kp, err := crypto.Derive(seed)
	if err != nil {
		return "", err
	}
	if err := s.activate(kp, password); err != nil {
		return "", err
	}
	res, err := s.engine.Sync(ctx)
	if err != nil {
		return "", err
	}
	s.log.Info("logged in", "identity", kp.Fingerprint(), "credentials", res.Count, "offline", res.Offline)
	return kp.VerifyingKey(), nil
}

func (s *Service) activate(kp *crypto.KeyPair, password string) error {
	if err := s.vault.Create(kp, password); err != nil {
		return err
	}
	s.engine.Lock()
	return s.engine.Unlock(kp)
}

// Unlock opens the vault with password and unlocks the engine.
func (s *Service) Unlock(password string) (domain.Identity, error) {
	kp, err := s.vault.Unlock(password)
	if err != nil {
		return "", err
	}
	if err := s.engine.Unlock(kp); err != nil && !errors.Is(err, domain.ErrAlreadyUnlocked) {
		s.vault.Lock()
		return "", err
	}
	return kp.VerifyingKey(), nil
}

// Lock drops all key material from memory.
func (s *Service) Lock() {
	s.engine.Lock()
	s.vault.Lock()
}

// Status reports whether this device holds a vault and whether it is
// unlocked.
func (s *Service) Status() (domain.Status, error) {
	exists, err := s.vault.Exists()
	if err != nil {
		return domain.Status{}, err
	}
	st := domain.Status{HasVault: exists, Unlocked: !s.vault.Locked() && !s.engine.Locked()}
	if exists {
		if st.Identity, err = s.vault.Identity(); err != nil {
			return domain.Status{}, err
		}
	}
	return st, nil
}

// isSecurePassword enforces a basic strength policy.
func isSecurePassword(password string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(password) < minPasswordLength {
		return false
	}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.AccountService.
var _ domain.AccountService = (*Service)(nil)
