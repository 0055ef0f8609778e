package generator

import (
	"context"
	"sync"
	"time"
)

// State 是单个字段的生成状态。
type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// DefaultResultTTL 是 Succeeded/Failed 结果在内存中保留的时间，过期后视为 Idle。
const DefaultResultTTL = 15 * time.Minute

// Tracker holds one State per key. Begin moves a key to Pending and fails with
// ErrAlreadyPending if it is already there; Finish moves it to Succeeded or Failed.
type Tracker interface {
	Begin(ctx context.Context, key string) error
	Finish(ctx context.Context, key string, ok bool) error
	State(ctx context.Context, key string) (State, error)
}

type trackedState struct {
	state     State
	expiresAt time.Time // 仅终态有效
}

// MemoryTracker is a process-local Tracker. Terminal states expire after
// resultTTL; Sweep drops them from the map.
type MemoryTracker struct {
	mu        sync.Mutex
	states    map[string]trackedState
	resultTTL time.Duration
	now       func() time.Time
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{
		states:    make(map[string]trackedState),
		resultTTL: DefaultResultTTL,
		now:       time.Now,
	}
}

func (t *MemoryTracker) Begin(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.states[key].state == StatePending {
		return ErrAlreadyPending
	}
	t.states[key] = trackedState{state: StatePending}
	return nil
}

func (t *MemoryTracker) Finish(_ context.Context, key string, ok bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := trackedState{state: StateFailed, expiresAt: t.now().Add(t.resultTTL)}
	if ok {
		s.state = StateSucceeded
	}
	t.states[key] = s
	return nil
}

func (t *MemoryTracker) State(_ context.Context, key string) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.states[key]
	if !ok || t.expired(s) {
		return StateIdle, nil
	}
	return s.state, nil
}

// Sweep removes expired terminal states and returns how many were removed.
func (t *MemoryTracker) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for key, s := range t.states {
		if t.expired(s) {
			delete(t.states, key)
			n++
		}
	}
	return n
}

func (t *MemoryTracker) expired(s trackedState) bool {
	return s.state != StatePending && !t.now().Before(s.expiresAt)
}
