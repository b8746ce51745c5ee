package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resqall/internal/core/session"

	"go.etcd.io/bbolt"
)

var (
	bucketSessions = []byte("sessions")
	bucketTouched  = []byte("touched")
)

// BoltStore keeps one session slot per client in a bbolt file
type BoltStore struct {
	db  *bbolt.DB
	now func() time.Time
}

// Open opens (or creates) the slot database at path
func Open(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketSessions, bucketTouched} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session buckets: %w", err)
	}

	return &BoltStore{db: db, now: time.Now}, nil
}

// Close closes the underlying database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Slot returns the slot for a client id
func (s *BoltStore) Slot(clientID string) session.Slot {
	return &boltSlot{store: s, key: []byte(clientID)}
}

// Len counts persisted slots
func (s *BoltStore) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})
	return n, err
}

// Sweep deletes slots last written before cutoff and returns their client ids
func (s *BoltStore) Sweep(cutoff time.Time) ([]string, error) {
	var removed []string

	err := s.db.Update(func(tx *bbolt.Tx) error {
		sessions := tx.Bucket(bucketSessions)
		touched := tx.Bucket(bucketTouched)

		var stale [][]byte
		err := touched.ForEach(func(k, v []byte) error {
			at, err := time.Parse(time.RFC3339Nano, string(v))
			if err != nil || at.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := sessions.Delete(k); err != nil {
				return err
			}
			if err := touched.Delete(k); err != nil {
				return err
			}
			removed = append(removed, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sweep sessions: %w", err)
	}

	return removed, nil
}

// boltSlot implements session.Slot for one client id
type boltSlot struct {
	store *BoltStore
	key   []byte
}

func (b *boltSlot) Load() ([]byte, error) {
	var data []byte
	err := b.store.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketSessions).Get(b.key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	return data, err
}

func (b *boltSlot) Save(data []byte) error {
	stamp := []byte(b.store.now().UTC().Format(time.RFC3339Nano))
	return b.store.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSessions).Put(b.key, data); err != nil {
			return err
		}
		return tx.Bucket(bucketTouched).Put(b.key, stamp)
	})
}

func (b *boltSlot) Clear() error {
	return b.store.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSessions).Delete(b.key); err != nil {
			return err
		}
		return tx.Bucket(bucketTouched).Delete(b.key)
	})
}
