package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSeen = []byte("seen")

// SeenStore implements domain.SeenStore using BoltDB. All ids are mirrored
// in memory so Contains never touches disk; writes go through to the db.
type SeenStore struct {
	db *bolt.DB
	mu sync.RWMutex

	ids map[string]struct{}
}

// NewSeenStore opens (or creates) the seen-set database under baseDir.
// An empty baseDir gives a memory-only store with no persistence, which is
// what tests and one-off sessions use.
func NewSeenStore(baseDir string) (*SeenStore, error) {
	if baseDir == "" {
		return &SeenStore{ids: make(map[string]struct{})}, nil
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(baseDir, "pindrop.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	s := &SeenStore{db: db, ids: make(map[string]struct{})}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketSeen)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, _ []byte) error {
			s.ids[string(k)] = struct{}{}
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Add records asset ids as hidden. The value is the unix time the id was
// hidden, kept for debugging only.
func (s *SeenStore) Add(ids ...string) error {
	s.mu.Lock()
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	ts, err := json.Marshal(time.Now().Unix())
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSeen)
		for _, id := range ids {
			if err := b.Put([]byte(id), ts); err != nil {
				return err
			}
		}
		return nil
	})
}

// Remove deletes asset ids from the hidden set
func (s *SeenStore) Remove(ids ...string) error {
	s.mu.Lock()
	for _, id := range ids {
		delete(s.ids, id)
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSeen)
		for _, id := range ids {
			if err := b.Delete([]byte(id)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Contains reports whether an asset id is hidden
func (s *SeenStore) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of hidden ids
func (s *SeenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func (s *SeenStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
