package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTracker shares generation state between API replicas. The pending
// marker is a SETNX key with a TTL, so a crashed request frees its field.
type RedisTracker struct {
	client     *redis.Client
	pendingTTL time.Duration
	resultTTL  time.Duration
}

func NewRedisTracker(client *redis.Client, pendingTTL, resultTTL time.Duration) *RedisTracker {
	return &RedisTracker{client: client, pendingTTL: pendingTTL, resultTTL: resultTTL}
}

func pendingKey(key string) string { return "generation:pending:" + key }
func stateKey(key string) string   { return "generation:state:" + key }

func (t *RedisTracker) Begin(ctx context.Context, key string) error {
	ok, err := t.client.SetNX(ctx, pendingKey(key), 1, t.pendingTTL).Result()
	if err != nil {
		return fmt.Errorf("mark generation pending: %w", err)
	}
	if !ok {
		return ErrAlreadyPending
	}
	return nil
}

func (t *RedisTracker) Finish(ctx context.Context, key string, ok bool) error {
	state := StateFailed
	if ok {
		state = StateSucceeded
	}
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, stateKey(key), string(state), t.resultTTL)
		pipe.Del(ctx, pendingKey(key))
		return nil
	})
	if err != nil {
		return fmt.Errorf("finish generation: %w", err)
	}
	return nil
}

func (t *RedisTracker) State(ctx context.Context, key string) (State, error) {
	n, err := t.client.Exists(ctx, pendingKey(key)).Result()
	if err != nil {
		return "", fmt.Errorf("read generation state: %w", err)
	}
	if n > 0 {
		return StatePending, nil
	}
	s, err := t.client.Get(ctx, stateKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return StateIdle, nil
	}
	if err != nil {
		return "", fmt.Errorf("read generation state: %w", err)
	}
	return State(s), nil
}
