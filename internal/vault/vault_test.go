package vault_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"passphrasex/internal/crypto"
	"passphrasex/internal/domain"
	"passphrasex/internal/vault"
)

var testParams = domain.KDFParams{Time: 1, MemoryKiB: 1024, Threads: 1}

type memVaultStore struct {
	rec *domain.VaultRecord
}

func (m *memVaultStore) WriteVault(rec domain.VaultRecord) error { m.rec = &rec; return nil }

func (m *memVaultStore) ReadVault() (domain.VaultRecord, error) {
	if m.rec == nil {
		return domain.VaultRecord{}, domain.ErrNoVault
	}
	return *m.rec, nil
}

var (
	kpOnce sync.Once
	kp     *crypto.KeyPair
	kpErr  error
)

func keyPair(t *testing.T) *crypto.KeyPair {
	t.Helper()
	kpOnce.Do(func() {
		kp, kpErr = crypto.Derive("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
	})
	if kpErr != nil {
		t.Fatalf("Derive: %v", kpErr)
	}
	return kp
}

func TestGenerateSalt(t *testing.T) {
	a, err := vault.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	b, _ := vault.GenerateSalt()
	if a == b {
		t.Fatal("salts repeat")
	}
	raw, err := crypto.UnB64(a)
	if err != nil || len(raw) != vault.SaltSize {
		t.Fatalf("salt decodes to %d bytes (err %v)", len(raw), err)
	}
}

func TestVerifyPassword(t *testing.T) {
	salt, _ := vault.GenerateSalt()
	h, err := vault.HashPassword("correct horse", salt, testParams)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	stored := h.Verifier()

	if _, err := vault.VerifyPassword("correct horse", stored, salt, testParams); err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if _, err := vault.VerifyPassword("battery staple", stored, salt, testParams); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v", err)
	}
	other, _ := vault.GenerateSalt()
	if _, err := vault.VerifyPassword("correct horse", stored, other, testParams); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong salt: err = %v", err)
	}
}

func TestSealUnseal(t *testing.T) {
	salt, _ := vault.GenerateSalt()
	h, _ := vault.HashPassword("pw", salt, testParams)
	key := []byte("private key bytes")

	sealed, err := vault.Seal(key, h, vault.RoleSigning)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	got, err := vault.Unseal(sealed, h, vault.RoleSigning)
	if err != nil {
		t.Fatalf("Unseal: %v", err)
	}
	if !bytes.Equal(got, key) {
		t.Fatal("round trip mismatch")
	}

	if _, err := vault.Unseal(sealed, h, vault.RoleEncryption); !errors.Is(err, domain.ErrVaultCorrupted) {
		t.Fatalf("wrong role: err = %v", err)
	}

	raw, _ := crypto.UnB64(sealed)
	raw[len(raw)-1] ^= 1
	if _, err := vault.Unseal(crypto.B64(raw), h, vault.RoleSigning); !errors.Is(err, domain.ErrVaultCorrupted) {
		t.Fatalf("tampered: err = %v", err)
	}

	other, _ := vault.HashPassword("other", salt, testParams)
	if _, err := vault.Unseal(sealed, other, vault.RoleSigning); !errors.Is(err, domain.ErrVaultCorrupted) {
		t.Fatalf("wrong hash: err = %v", err)
	}
}

func TestVault_StateMachine(t *testing.T) {
	store := &memVaultStore{}
	v := vault.New(store, vault.WithParams(testParams))

	if !v.Locked() {
		t.Fatal("new vault should be locked")
	}
	if _, err := v.KeyPair(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("KeyPair while locked: err = %v", err)
	}
	if _, err := v.Unlock("pw"); !errors.Is(err, domain.ErrNoVault) {
		t.Fatalf("Unlock without record: err = %v", err)
	}

	if err := v.Create(keyPair(t), "device-pw"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.Locked() {
		t.Fatal("vault should be unlocked after Create")
	}
	if store.rec.Identity != keyPair(t).VerifyingKey() {
		t.Fatal("record identity mismatch")
	}

	v.Lock()
	if !v.Locked() {
		t.Fatal("Lock did not lock")
	}

	if _, err := v.Unlock("nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v", err)
	}
	if !v.Locked() {
		t.Fatal("failed unlock must stay locked")
	}

	got, err := v.Unlock("device-pw")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if !got.Equal(keyPair(t)) {
		t.Fatal("unlocked key pair differs")
	}
	resident, err := v.KeyPair()
	if err != nil || resident != got {
		t.Fatalf("KeyPair after unlock: %v", err)
	}
}

func TestVault_TamperedRecord(t *testing.T) {
	store := &memVaultStore{}
	v := vault.New(store, vault.WithParams(testParams))
	if err := v.Create(keyPair(t), "device-pw"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	v.Lock()

	store.rec.EncryptionKey, store.rec.SigningKey = store.rec.SigningKey, store.rec.EncryptionKey
	_, err := v.Unlock("device-pw")
	if !errors.Is(err, domain.ErrInvalidCredentials) || !errors.Is(err, domain.ErrVaultCorrupted) {
		t.Fatalf("swapped keys: err = %v", err)
	}
	if !v.Locked() {
		t.Fatal("vault unlocked from a tampered record")
	}
}

func TestVault_CreateRequiresPassword(t *testing.T) {
	v := vault.New(&memVaultStore{}, vault.WithParams(testParams))
	if err := v.Create(keyPair(t), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
}
