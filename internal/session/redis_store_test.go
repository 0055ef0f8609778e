package session

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeBuilder/internal/editor"
	"resumeBuilder/internal/resume"
)

func newRedisStoreForTest(t *testing.T) *RedisStore {
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
	return NewRedisStore(client, time.Minute)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newRedisStoreForTest(t)
	ctx := context.Background()
	id := uuid.NewString()

	require.NoError(t, store.Create(ctx, id, editor.NewSession()))

	_, err := store.Update(ctx, id, func(s editor.Session) (editor.Session, error) {
		return s.WithPersonalInfo(resume.PersonalInfo{FullName: "Jane Doe"}), nil
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Record.PersonalInfo.FullName)
	assert.NotNil(t, got.Record.Skills)

	_, err = store.Get(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, editor.ErrSessionNotFound))
}

func TestRedisStoreConcurrentUpdates(t *testing.T) {
	store := newRedisStoreForTest(t)
	ctx := context.Background()
	id := uuid.NewString()
	require.NoError(t, store.Create(ctx, id, editor.NewSession()))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, id, func(s editor.Session) (editor.Session, error) {
				c := editor.NewComposer(resume.UUIDGenerator{}, s)
				c.Skills().Add(c.Current().Record.Skills)
				return c.Current(), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Record.Skills, 5)
}
