// Package cache keeps the last successfully fetched catalog payloads on disk
// so the catalog can still be loaded when its remote source is unreachable.
// Writes are transactional; a crash mid-write keeps the previous payload.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrCacheMiss is returned when no payload is stored under a key.
var ErrCacheMiss = errors.New("cache miss")

// Bucket keys
var (
	bucketPayloads = []byte("payloads")
	bucketFetched  = []byte("fetched_at")
)

// Entry is a cached payload and the time it was fetched.
type Entry struct {
	FetchedAt time.Time
	Body      []byte
}

// Store is a bbolt-backed payload cache.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) a cache database at the given path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketPayloads); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketFetched)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores body under key, replacing any previous payload.
func (s *Store) Put(key string, body []byte) error {
	stamp := make([]byte, 8)
	binary.BigEndian.PutUint64(stamp, uint64(time.Now().UnixNano()))

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketPayloads).Put([]byte(key), body); err != nil {
			return err
		}
		return tx.Bucket(bucketFetched).Put([]byte(key), stamp)
	})
}

// Get returns the payload stored under key, or ErrCacheMiss.
func (s *Store) Get(key string) (Entry, error) {
	var entry Entry
	found := false

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketPayloads).Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		entry.Body = make([]byte, len(v))
		copy(entry.Body, v)

		if stamp := tx.Bucket(bucketFetched).Get([]byte(key)); len(stamp) == 8 {
			entry.FetchedAt = time.Unix(0, int64(binary.BigEndian.Uint64(stamp)))
		}
		return nil
	})
	if err != nil {
		return Entry{}, fmt.Errorf("bbolt view: %w", err)
	}
	if !found {
		return Entry{}, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	return entry, nil
}

// Delete removes the payload stored under key.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketPayloads).Delete([]byte(key)); err != nil {
			return err
		}
		return tx.Bucket(bucketFetched).Delete([]byte(key))
	})
}
