package storage

import (
	"context"
	"sort"
	"sync"

	"passphrasex/internal/domain"
)

// Memory keeps users and credentials in process memory.
type Memory struct {
	mu    sync.RWMutex
	users map[domain.Identity]map[domain.CredentialID]domain.Credential
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{users: make(map[domain.Identity]map[domain.CredentialID]domain.Credential)}
}

// CreateUser registers id with no credentials. It fails with
// domain.ErrUserAlreadyExists if id is known.
func (m *Memory) CreateUser(_ context.Context, id domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; ok {
		return domain.ErrUserAlreadyExists
	}
	m.users[id] = make(map[domain.CredentialID]domain.Credential)
	return nil
}

// CreateCredential stores c under its owner. It fails with
// domain.ErrUserNotFound for an unknown owner and
// domain.ErrCredentialAlreadyExists for a duplicate id.
func (m *Memory) CreateCredential(_ context.Context, c domain.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	creds, ok := m.users[c.OwnerID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if _, exists := creds[c.ID]; exists {
		return domain.ErrCredentialAlreadyExists
	}
	creds[c.ID] = c
	return nil
}

// ListCredentials returns owner's credentials ordered by id.
func (m *Memory) ListCredentials(_ context.Context, owner domain.Identity) ([]domain.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	creds, ok := m.users[owner]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := make([]domain.Credential, 0, len(creds))
	for _, c := range creds {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateCredential replaces the password of owner's credential id, or
// fails with domain.ErrCredentialNotFound.
func (m *Memory) UpdateCredential(_ context.Context, owner domain.Identity, id domain.CredentialID, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.users[owner][id]
	if !ok {
		return domain.ErrCredentialNotFound
	}
	c.Password = password
	m.users[owner][id] = c
	return nil
}

// DeleteCredential removes owner's credential id, or fails with
// domain.ErrCredentialNotFound.
func (m *Memory) DeleteCredential(_ context.Context, owner domain.Identity, id domain.CredentialID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[owner][id]; !ok {
		return domain.ErrCredentialNotFound
	}
	delete(m.users[owner], id)
	return nil
}

var _ domain.RemoteStore = (*Memory)(nil)
