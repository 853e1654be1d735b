package storage

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/database"
	"github.com/mauv0809/field-clock/internal/metrics"
)

// sqlStore keeps the key/value pairs in the kv_store table.
type sqlStore struct {
	db      *sql.DB
	dialect database.Dialect
	metrics metrics.Metrics
	mu      sync.RWMutex
}

// NewSQL creates a KeyValueStore backed by the kv_store table created by the migrations.
func NewSQL(db *sql.DB, dialect database.Dialect, metrics metrics.Metrics) KeyValueStore {
	return &sqlStore{
		db:      db,
		dialect: dialect,
		metrics: metrics,
	}
}

func (s *sqlStore) Get(key Key) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow(database.Rebind(s.dialect, "SELECT value FROM kv_store WHERE key = ?"), key.Namespaced()).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("Failed to read key", "error", err, "key", key.Namespaced())
			s.metrics.IncStorageFailures("get")
		}
		return "", false
	}
	return value, true
}

func (s *sqlStore) Set(key Key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(database.Rebind(s.dialect, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;
	`), key.Namespaced(), value, time.Now().Unix())
	if err != nil {
		log.Error("Failed to write key", "error", err, "key", key.Namespaced())
		s.metrics.IncStorageFailures("set")
		return
	}
	log.Debug("Persisted key", "key", key.Namespaced())
}

func (s *sqlStore) Remove(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(database.Rebind(s.dialect, "DELETE FROM kv_store WHERE key = ?"), key.Namespaced())
	if err != nil {
		log.Error("Failed to remove key", "error", err, "key", key.Namespaced())
		s.metrics.IncStorageFailures("remove")
	}
}
