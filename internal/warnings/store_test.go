package warnings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testKey = "warn_fixed_line_phone.3f1c2a8e-0000-4000-8000-000000000001"

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour), srv
}

func storesUnderTest(t *testing.T) map[string]Store {
	redisStore, _ := newRedisStore(t)
	return map[string]Store{
		"redis":  redisStore,
		"memory": NewMemoryStore(time.Hour),
	}
}

func TestConsumeWithoutAcknowledgement(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := store.Consume(context.Background(), uuid.New(), testKey)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestOneShotAcknowledgementIsUsedUp(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user := uuid.New()
			require.NoError(t, store.Acknowledge(ctx, user, testKey, false))

			ok, err := store.Consume(ctx, user, testKey)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = store.Consume(ctx, user, testKey)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestPermanentAcknowledgementStays(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user := uuid.New()
			require.NoError(t, store.Acknowledge(ctx, user, testKey, true))

			for i := 0; i < 3; i++ {
				ok, err := store.Consume(ctx, user, testKey)
				require.NoError(t, err)
				require.True(t, ok)
			}
		})
	}
}

func TestAcknowledgementsArePerUser(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Acknowledge(ctx, uuid.New(), testKey, true))

			ok, err := store.Consume(ctx, uuid.New(), testKey)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestRedisOneShotExpires(t *testing.T) {
	store, srv := newRedisStore(t)
	ctx := context.Background()
	user := uuid.New()
	require.NoError(t, store.Acknowledge(ctx, user, testKey, false))

	srv.FastForward(2 * time.Hour)

	ok, err := store.Consume(ctx, user, testKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryOneShotExpires(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }
	user := uuid.New()
	require.NoError(t, store.Acknowledge(context.Background(), user, testKey, false))

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	ok, err := store.Consume(context.Background(), user, testKey)
	require.NoError(t, err)
	require.False(t, ok)
}
