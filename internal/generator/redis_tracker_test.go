package generator

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClientForTest(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisTrackerLifecycle(t *testing.T) {
	client := redisClientForTest(t)
	tracker := NewRedisTracker(client, time.Minute, time.Minute)
	ctx := context.Background()
	key := Key(uuid.NewString(), FieldSummary)

	state, err := tracker.State(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, state)

	require.NoError(t, tracker.Begin(ctx, key))
	assert.True(t, errors.Is(tracker.Begin(ctx, key), ErrAlreadyPending))

	state, _ = tracker.State(ctx, key)
	assert.Equal(t, StatePending, state)

	require.NoError(t, tracker.Finish(ctx, key, false))
	state, _ = tracker.State(ctx, key)
	assert.Equal(t, StateFailed, state)

	require.NoError(t, tracker.Begin(ctx, key))
	require.NoError(t, tracker.Finish(ctx, key, true))
	state, _ = tracker.State(ctx, key)
	assert.Equal(t, StateSucceeded, state)
}
