// Package session stores editor sessions in memory or in redis.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resumeBuilder/internal/editor"
	"resumeBuilder/internal/resume"
)

type memoryEntry struct {
	session   editor.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. One mutex serializes all updates.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Create(_ context.Context, id string, sess editor.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live(id); ok {
		return fmt.Errorf("session %q already exists", id)
	}
	s.sessions[id] = memoryEntry{session: clone(sess), expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (editor.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(id)
	if !ok {
		return editor.Session{}, editor.ErrSessionNotFound
	}
	return clone(e.session), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(editor.Session) (editor.Session, error)) (editor.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(id)
	if !ok {
		return editor.Session{}, editor.ErrSessionNotFound
	}
	next, err := fn(clone(e.session))
	if err != nil {
		return editor.Session{}, err
	}
	s.sessions[id] = memoryEntry{session: clone(next), expiresAt: s.now().Add(s.ttl)}
	return clone(next), nil
}

// Sweep drops expired sessions.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.sessions {
		if !s.now().Before(e.expiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *MemoryStore) live(id string) (memoryEntry, bool) {
	e, ok := s.sessions[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.sessions, id)
		return memoryEntry{}, false
	}
	return e, true
}

// clone copies the lists so callers never share backing arrays with the store.
func clone(sess editor.Session) editor.Session {
	r := sess.Record
	r.Experience = append([]resume.ExperienceEntry{}, r.Experience...)
	r.Education = append([]resume.EducationEntry{}, r.Education...)
	r.Skills = append([]resume.SkillEntry{}, r.Skills...)
	sess.Record = r
	return sess
}
