package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTrackerTransitions(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()

	s, _ := tr.State(ctx, "s1:summary")
	assert.Equal(t, StateIdle, s)

	require.NoError(t, tr.Begin(ctx, "s1:summary"))
	assert.True(t, errors.Is(tr.Begin(ctx, "s1:summary"), ErrAlreadyPending))
	require.NoError(t, tr.Begin(ctx, "s1:skills"))

	require.NoError(t, tr.Finish(ctx, "s1:summary", false))
	s, _ = tr.State(ctx, "s1:summary")
	assert.Equal(t, StateFailed, s)
	require.NoError(t, tr.Begin(ctx, "s1:summary"), "retry after failure")
}

func TestMemoryTrackerExpiresResults(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }

	require.NoError(t, tr.Begin(ctx, "done"))
	require.NoError(t, tr.Finish(ctx, "done", true))
	require.NoError(t, tr.Begin(ctx, "running"))

	now = now.Add(DefaultResultTTL + time.Second)

	s, _ := tr.State(ctx, "done")
	assert.Equal(t, StateIdle, s)
	assert.Equal(t, 1, tr.Sweep())
	s, _ = tr.State(ctx, "running")
	assert.Equal(t, StatePending, s, "pending keys are never swept")
	assert.Len(t, tr.states, 1)
}
