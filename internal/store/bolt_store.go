package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"passphrasex/internal/domain"
)

const (
	boltFilename = "passphrasex.db"
	boltTimeout  = time.Second
)

var (
	vaultBucket = []byte("vault")
	cacheBucket = []byte("credentials")

	recordKey = []byte("record")
)

// BoltStore keeps both the vault and the credential cache in a single
// BoltDB file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (or creates) the database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: boltTimeout})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrPersistence, path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(vaultBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(cacheBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: init buckets: %w", domain.ErrPersistence, err)
	}
	return &BoltStore{db: db}, nil
}

// BoltPath is the database location inside a home directory.
func BoltPath(home string) string { return filepath.Join(home, boltFilename) }

// Close releases the database file lock.
func (s *BoltStore) Close() error { return s.db.Close() }

// WriteVault stores rec, replacing any previous record.
func (s *BoltStore) WriteVault(rec domain.VaultRecord) error {
	return s.put(vaultBucket, rec)
}

// ReadVault returns the stored record or domain.ErrNoVault.
func (s *BoltStore) ReadVault() (domain.VaultRecord, error) {
	b, err := s.get(vaultBucket)
	if err != nil {
		return domain.VaultRecord{}, err
	}
	if b == nil {
		return domain.VaultRecord{}, domain.ErrNoVault
	}
	return decodeVault(b)
}

// WriteCache stores cache, replacing the previous one.
func (s *BoltStore) WriteCache(cache domain.CredentialsCache) error {
	return s.put(cacheBucket, cache)
}

// ReadCache returns the stored cache; nothing stored reads as empty.
func (s *BoltStore) ReadCache() (domain.CredentialsCache, error) {
	b, err := s.get(cacheBucket)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return domain.CredentialsCache{}, nil
	}
	return decodeCache(b)
}

func (s *BoltStore) put(bucket []byte, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrPersistence, bucket, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(recordKey, b)
	})
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrPersistence, bucket, err)
	}
	return nil
}

// get copies the value out; bolt memory is only valid inside the transaction.
func (s *BoltStore) get(bucket []byte) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get(recordKey); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrPersistence, bucket, err)
	}
	return out, nil
}

// Compile-time assertion that BoltStore implements domain.Persistence.
var _ domain.Persistence = (*BoltStore)(nil)
