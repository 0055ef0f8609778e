package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resumeBuilder/internal/editor"
)

const maxTxRetries = 10

// RedisStore 以 JSON 形式把会话存入 Redis，更新使用 WATCH/MULTI 乐观事务。
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string { return "resume_session:" + id }

func (s *RedisStore) Create(ctx context.Context, id string, sess editor.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := s.client.SetNX(ctx, sessionKey(id), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %q already exists", id)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (editor.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return editor.Session{}, editor.ErrSessionNotFound
	}
	if err != nil {
		return editor.Session{}, fmt.Errorf("load session: %w", err)
	}
	return decodeSession(raw)
}

func (s *RedisStore) Update(ctx context.Context, id string, fn func(editor.Session) (editor.Session, error)) (editor.Session, error) {
	key := sessionKey(id)
	var result editor.Session

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return editor.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		cur, err := decodeSession(raw)
		if err != nil {
			return err
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = next
		return nil
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return editor.Session{}, err
		}
		return result, nil
	}
	return editor.Session{}, fmt.Errorf("update session %q: too much contention", id)
}

func decodeSession(raw []byte) (editor.Session, error) {
	var sess editor.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return editor.Session{}, fmt.Errorf("decode session: %w", err)
	}
	sess.Record = sess.Record.Normalize()
	return sess, nil
}
