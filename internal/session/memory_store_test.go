package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeBuilder/internal/editor"
	"resumeBuilder/internal/resume"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	require.NoError(t, store.Create(ctx, "s1", editor.NewSession()))
	assert.Error(t, store.Create(ctx, "s1", editor.NewSession()))

	updated, err := store.Update(ctx, "s1", func(s editor.Session) (editor.Session, error) {
		s.ActiveTab = editor.TabSkills
		return s, nil
	})
	require.NoError(t, err)
	assert.Equal(t, editor.TabSkills, updated.ActiveTab)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, editor.TabSkills, got.ActiveTab)

	_, err = store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, editor.ErrSessionNotFound))
}

func TestMemoryStoreUpdateErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	require.NoError(t, store.Create(ctx, "s1", editor.NewSession()))

	boom := errors.New("boom")
	_, err := store.Update(ctx, "s1", func(s editor.Session) (editor.Session, error) {
		s.Profession = "changed"
		return s, boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := store.Get(ctx, "s1")
	assert.Empty(t, got.Profession)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	sess := editor.NewSession()
	sess.Record.Skills = []resume.SkillEntry{{ID: "s", Name: "Go", Level: resume.LevelExpert}}
	require.NoError(t, store.Create(ctx, "s1", sess))

	got, _ := store.Get(ctx, "s1")
	got.Record.Skills[0].Name = "mutated"

	again, _ := store.Get(ctx, "s1")
	assert.Equal(t, "Go", again.Record.Skills[0].Name)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	require.NoError(t, store.Create(ctx, "s1", editor.NewSession()))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(ctx, "s1")
	assert.True(t, errors.Is(err, editor.ErrSessionNotFound))
	assert.Zero(t, store.Sweep())
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	require.NoError(t, store.Create(ctx, "s1", editor.NewSession()))
	ids := resume.NewSequenceGenerator("exp")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "s1", func(s editor.Session) (editor.Session, error) {
				c := editor.NewComposer(ids, s)
				c.Experience().Add(c.Current().Record.Experience)
				return c.Current(), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _ := store.Get(ctx, "s1")
	assert.Len(t, got.Record.Experience, 50)
}
