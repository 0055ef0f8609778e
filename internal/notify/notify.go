// Package notify delivers user-facing notifications for a session.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

type Kind string

const (
	KindSuccess            Kind = "success"
	KindMissingInformation Kind = "missing_information"
	KindFailure            Kind = "failure"
	KindExportCompleted    Kind = "export_completed"
	KindExportFailed       Kind = "export_failed"
)

// Notification 通过 Redis Pub/Sub 转发给 WebSocket 客户端，字段名与前端约定一致。
type Notification struct {
	Kind          Kind     `json:"kind"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Field         string   `json:"field,omitempty"`
	Code          int      `json:"code"`
	Missing       []string `json:"missing,omitempty"`
	ExportID      string   `json:"export_id,omitempty"`
	CorrelationID string   `json:"correlation_id,omitempty"`
}

// Publisher sends n to everyone watching sessionID.
type Publisher interface {
	Publish(ctx context.Context, sessionID string, n Notification) error
}

// Channel is the pub/sub channel for a session.
func Channel(sessionID string) string {
	return "session_notify:" + sessionID
}

// RedisPublisher publishes JSON notifications on Channel(sessionID).
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, sessionID string, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := Channel(sessionID)
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

// Recorder keeps notifications in memory. Used by single-process setups and tests.
type Recorder struct {
	mu   sync.Mutex
	sent map[string][]Notification
}

func NewRecorder() *Recorder {
	return &Recorder{sent: make(map[string][]Notification)}
}

func (r *Recorder) Publish(_ context.Context, sessionID string, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[sessionID] = append(r.sent[sessionID], n)
	return nil
}

// Sent returns a copy of what was published for sessionID.
func (r *Recorder) Sent(sessionID string) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent[sessionID]...)
}
