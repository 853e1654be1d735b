package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/metrics"
	"go.etcd.io/bbolt"
)

// BoltBucket holds every match clock key in the bolt file.
const BoltBucket = "fieldclock"

// BoltStore implements KeyValueStore on a single-file BoltDB database.
type BoltStore struct {
	db      *bbolt.DB
	metrics metrics.Metrics
}

var _ KeyValueStore = (*BoltStore)(nil)

// NewBolt opens (or creates) the bolt file at path.
func NewBolt(path string, metrics metrics.Metrics) (*BoltStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB at %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BoltBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	log.Info("BoltDB storage initialized", "path", path)
	return &BoltStore{db: db, metrics: metrics}, nil
}

func (s *BoltStore) Get(key Key) (string, bool) {
	var value string
	var found bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(BoltBucket))
		if bucket == nil {
			return nil
		}
		data := bucket.Get([]byte(key.Namespaced()))
		if data == nil {
			return nil
		}
		found = true
		value = string(data)
		return nil
	})
	if err != nil {
		log.Error("Failed to read key", "error", err, "key", key.Namespaced())
		s.metrics.IncStorageFailures("get")
		return "", false
	}
	return value, found
}

func (s *BoltStore) Set(key Key, value string) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(BoltBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", BoltBucket)
		}
		return bucket.Put([]byte(key.Namespaced()), []byte(value))
	})
	if err != nil {
		log.Error("Failed to write key", "error", err, "key", key.Namespaced())
		s.metrics.IncStorageFailures("set")
	}
}

func (s *BoltStore) Remove(key Key) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(BoltBucket))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key.Namespaced()))
	})
	if err != nil {
		log.Error("Failed to remove key", "error", err, "key", key.Namespaced())
		s.metrics.IncStorageFailures("remove")
	}
}

// Close closes the bolt file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
