// Package warnings records which dismissible warnings a user has
// acknowledged so the next submission of the same record goes through.
package warnings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	ackOnce   = "once"
	ackAlways = "always"
	keyPrefix = "warnings:"
)

// Store persists warning acknowledgements per user.
type Store interface {
	// Acknowledge records that userID dismissed key. always keeps the
	// acknowledgement for every later check; otherwise it is used up by the
	// next Consume.
	Acknowledge(ctx context.Context, userID uuid.UUID, key string, always bool) error
	// Consume reports whether userID acknowledged key.
	Consume(ctx context.Context, userID uuid.UUID, key string) (bool, error)
}

func storageKey(userID uuid.UUID, key string) string {
	return keyPrefix + userID.String() + ":" + key
}

// RedisStore keeps acknowledgements in Redis. One-shot acknowledgements
// expire after ttl when they are never used.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore creates a Redis backed store.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Acknowledge(ctx context.Context, userID uuid.UUID, key string, always bool) error {
	value, ttl := ackOnce, s.ttl
	if always {
		value, ttl = ackAlways, 0
	}
	if err := s.client.Set(ctx, storageKey(userID, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("acknowledge warning: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, userID uuid.UUID, key string) (bool, error) {
	k := storageKey(userID, key)
	value, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read warning acknowledgement: %w", err)
	}
	if value == ackAlways {
		return true, nil
	}

	// Only the caller that deletes the key gets to use a one-shot ack.
	deleted, err := s.client.Del(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("consume warning acknowledgement: %w", err)
	}
	return deleted == 1, nil
}

// MemoryStore keeps acknowledgements in process memory. It is used when no
// Redis is configured and loses its state on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	always  bool
	expires time.Time
}

// NewMemoryStore creates an in-process store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Acknowledge(_ context.Context, userID uuid.UUID, key string, always bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{always: always}
	if !always && s.ttl > 0 {
		entry.expires = s.now().Add(s.ttl)
	}
	s.entries[storageKey(userID, key)] = entry
	return nil
}

func (s *MemoryStore) Consume(_ context.Context, userID uuid.UUID, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := storageKey(userID, key)
	entry, ok := s.entries[k]
	if !ok {
		return false, nil
	}
	if entry.always {
		return true, nil
	}
	delete(s.entries, k)
	if !entry.expires.IsZero() && s.now().After(entry.expires) {
		return false, nil
	}
	return true, nil
}

// Compile-time checks.
var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
