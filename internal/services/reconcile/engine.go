package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"passphrasex/internal/credential"
	"passphrasex/internal/crypto"
	"passphrasex/internal/domain"
)

// Engine is the client-side state machine over the credential cache.
type Engine struct {
	newTransport domain.TransportFactory
	cache        domain.CacheStore
	log          *slog.Logger

	mu      sync.Mutex
	session *session // nil while locked
}

// session is the Unlocked state.
type session struct {
	keys      *crypto.KeyPair
	owner     domain.Identity
	transport domain.Transport
	creds     domain.CredentialsCache
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for sync warnings and debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New returns a locked Engine. newTransport is called on every Unlock with
// the unlocked key pair as the signing capability.
func New(newTransport domain.TransportFactory, cache domain.CacheStore, opts ...Option) *Engine {
	e := &Engine{
		newTransport: newTransport,
		cache:        cache,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Unlock loads the persisted cache and enters the Unlocked state with kp.
func (e *Engine) Unlock(kp *crypto.KeyPair) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return domain.ErrAlreadyUnlocked
	}
	cached, err := e.cache.ReadCache()
	if err != nil {
		return err
	}
	owner := kp.VerifyingKey()
	creds := ownedBy(cached, owner)
	if dropped := cached.Len() - creds.Len(); dropped > 0 {
		e.log.Info("ignoring cached credentials of another identity", "dropped", dropped)
	}
	e.session = &session{
		keys:      kp,
		owner:     owner,
		transport: e.newTransport(kp),
		creds:     creds,
	}
	e.log.Debug("engine unlocked", "identity", kp.Fingerprint(), "cached", creds.Len())
	return nil
}

// ownedBy returns the entries of c that belong to owner. A device that
// switched identities may still hold the previous owner's cache.
func ownedBy(c domain.CredentialsCache, owner domain.Identity) domain.CredentialsCache {
	out := domain.NewCredentialsCache(nil)
	for _, bySite := range c {
		for _, cred := range bySite {
			if cred.OwnerID == owner {
				out.Put(cred)
			}
		}
	}
	return out
}

// Lock drops the key pair, transport and in-memory cache.
func (e *Engine) Lock() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = nil
}

// Locked reports whether the engine is in the Locked state.
func (e *Engine) Locked() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session == nil
}

// Identity returns the owner of the unlocked session.
func (e *Engine) Identity() (domain.Identity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return "", domain.ErrNotAuthenticated
	}
	return e.session.owner, nil
}

// unlocked returns the session or ErrNotAuthenticated. Callers hold e.mu.
func (e *Engine) unlocked() (*session, error) {
	if e.session == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return e.session, nil
}

// Sync replaces the cache with the remote set. If the remote store cannot be
// reached the cache is kept, the result is marked Offline and the cause is
// returned as its Warning; only persistence failures are errors.
func (e *Engine) Sync(ctx context.Context) (domain.SyncResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.unlocked()
	if err != nil {
		return domain.SyncResult{}, err
	}

	remote, err := s.transport.ListCredentials(ctx, s.owner)
	if err != nil {
		e.log.Warn("sync failed, using local cache", "error", err, "cached", s.creds.Len())
		return domain.SyncResult{Count: s.creds.Len(), Offline: true, Warning: err}, nil
	}

	s.creds = domain.NewCredentialsCache(remote)
	if err := e.cache.WriteCache(s.creds); err != nil {
		return domain.SyncResult{}, err
	}
	e.log.Debug("synced", "count", s.creds.Len())
	return domain.SyncResult{Count: s.creds.Len()}, nil
}

// Add stores a new credential remotely and then in the cache. The returned
// credential is in plaintext.
func (e *Engine) Add(ctx context.Context, site, username, password string) (domain.Credential, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.unlocked()
	if err != nil {
		return domain.Credential{}, err
	}

	plain, err := credential.New(s.keys, site, username, password)
	if err != nil {
		return domain.Credential{}, err
	}
	if _, exists := s.creds.Lookup(site, plain.ID); exists {
		return domain.Credential{}, domain.ErrCredentialAlreadyExists
	}
	sealed, err := credential.EncryptFields(plain, s.keys)
	if err != nil {
		return domain.Credential{}, err
	}

	if err := s.transport.CreateCredential(context.WithoutCancel(ctx), s.owner, sealed); err != nil {
		return domain.Credential{}, err
	}

	s.creds.Put(sealed)
	if err := e.cache.WriteCache(s.creds); err != nil {
		return domain.Credential{}, err
	}
	e.log.Debug("credential added", "site", site, "id", sealed.ID)
	return plain, nil
}

// Get returns the decrypted credential for (site, username), or every
// credential for site when username is empty. It never contacts the remote
// store.
func (e *Engine) Get(site, username string) ([]domain.Credential, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.unlocked()
	if err != nil {
		return nil, err
	}

	if username != "" {
		c, ok := s.creds.Lookup(site, credential.ID(s.keys, site, username))
		if !ok {
			return nil, domain.ErrCredentialNotFound
		}
		plain, err := credential.DecryptFields(c, s.keys)
		if err != nil {
			return nil, err
		}
		return []domain.Credential{plain}, nil
	}

	bySite, ok := s.creds[site]
	if !ok || len(bySite) == 0 {
		return nil, domain.ErrNoCredentialsFound
	}
	return decryptAll(bySite, s.keys)
}

// List returns every cached credential, decrypted, ordered by site and
// username.
func (e *Engine) List() ([]domain.Credential, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.unlocked()
	if err != nil {
		return nil, err
	}
	var out []domain.Credential
	for _, site := range s.creds.Sites() {
		plain, err := decryptAll(s.creds[site], s.keys)
		if err != nil {
			return nil, err
		}
		out = append(out, plain...)
	}
	return out, nil
}

func decryptAll(bySite map[domain.CredentialID]domain.Credential, keys credential.Cipher) ([]domain.Credential, error) {
	out := make([]domain.Credential, 0, len(bySite))
	for _, c := range bySite {
		plain, err := credential.DecryptFields(c, keys)
		if err != nil {
			return nil, err
		}
		out = append(out, plain)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Edit replaces the password of an existing credential, remotely first.
func (e *Engine) Edit(ctx context.Context, site, username, password string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.unlocked()
	if err != nil {
		return err
	}
	c, ok := s.creds.Lookup(site, credential.ID(s.keys, site, username))
	if !ok {
		return domain.ErrCredentialNotFound
	}
	sealedPassword, err := s.keys.Encrypt(password)
	if err != nil {
		return fmt.Errorf("encrypt password: %w", err)
	}

	if err := s.transport.UpdateCredential(context.WithoutCancel(ctx), s.owner, c.ID, sealedPassword); err != nil {
		return err
	}

	c.Password = sealedPassword
	s.creds.Put(c)
	if err := e.cache.WriteCache(s.creds); err != nil {
		return err
	}
	e.log.Debug("credential edited", "site", site, "id", c.ID)
	return nil
}

// Delete removes an existing credential, remotely first.
func (e *Engine) Delete(ctx context.Context, site, username string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.unlocked()
	if err != nil {
		return err
	}
	c, ok := s.creds.Lookup(site, credential.ID(s.keys, site, username))
	if !ok {
		return domain.ErrCredentialNotFound
	}

	if err := s.transport.DeleteCredential(context.WithoutCancel(ctx), s.owner, c.ID); err != nil {
		return err
	}

	s.creds.Remove(site, c.ID)
	if err := e.cache.WriteCache(s.creds); err != nil {
		return err
	}
	e.log.Debug("credential deleted", "site", site, "id", c.ID)
	return nil
}

// Compile-time assertion that Engine implements domain.CredentialService.
var _ domain.CredentialService = (*Engine)(nil)
