package wallet

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketIdentities = []byte("identities")

// IdentityStore keeps sealed identities in a bbolt database, keyed by name.
// It never sees plaintext keys.
type IdentityStore struct {
	db *bbolt.DB
}

// OpenIdentityStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenIdentityStore(dbPath string) (*IdentityStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("wallet: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("wallet: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketIdentities)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("wallet: create bucket: %w", err)
	}

	return &IdentityStore{db: db}, nil
}

// Close closes the underlying database.
func (s *IdentityStore) Close() error { return s.db.Close() }

// Put stores a sealed identity under name. Existing names are not overwritten.
func (s *IdentityStore) Put(name string, sealed []byte) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdentity)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketIdentities)
		if b.Get([]byte(name)) != nil {
			return fmt.Errorf("%w: %s", ErrIdentityExists, name)
		}
		return b.Put([]byte(name), sealed)
	})
}

// Get returns the sealed identity stored under name.
func (s *IdentityStore) Get(name string) ([]byte, error) {
	var sealed []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketIdentities).Get([]byte(name))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrIdentityNotFound, name)
		}
		// bbolt values are only valid for the life of the transaction.
		sealed = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sealed, nil
}

// Delete removes name from the store.
func (s *IdentityStore) Delete(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketIdentities)
		if b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s", ErrIdentityNotFound, name)
		}
		return b.Delete([]byte(name))
	})
}

// List returns every stored name in key order.
func (s *IdentityStore) List() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketIdentities).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Save seals s with password and stores it under name.
func (s *IdentityStore) Save(name string, id Sender, password string) error {
	sealed, err := SealIdentity(id, password)
	if err != nil {
		return err
	}
	return s.Put(name, sealed)
}

// Load fetches and opens the identity stored under name.
func (s *IdentityStore) Load(name, password string) (Sender, error) {
	sealed, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return OpenIdentity(sealed, password)
}
