package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const redisTimeout = 2 * time.Second

// RedisStore implements KeyValueStore on a Redis server.
type RedisStore struct {
	client  *redis.Client
	metrics metrics.Metrics
}

var _ KeyValueStore = (*RedisStore)(nil)

// NewRedis connects to addr and verifies the connection with a PING.
func NewRedis(ctx context.Context, addr, password string, db int, metrics metrics.Metrics) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	log.Info("Redis storage initialized", "addr", addr, "db", db)
	return &RedisStore{client: client, metrics: metrics}, nil
}

func (s *RedisStore) Get(key Key) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, key.Namespaced()).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Error("Failed to read key", "error", err, "key", key.Namespaced())
			s.metrics.IncStorageFailures("get")
		}
		return "", false
	}
	return value, true
}

func (s *RedisStore) Set(key Key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key.Namespaced(), value, 0).Err(); err != nil {
		log.Error("Failed to write key", "error", err, "key", key.Namespaced())
		s.metrics.IncStorageFailures("set")
	}
}

func (s *RedisStore) Remove(key Key) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.Del(ctx, key.Namespaced()).Err(); err != nil {
		log.Error("Failed to remove key", "error", err, "key", key.Namespaced())
		s.metrics.IncStorageFailures("remove")
	}
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
