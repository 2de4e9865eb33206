package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_NewerRequestSupersedes(t *testing.T) {
	tracker := NewTracker()

	firstCtx, first := tracker.Begin(context.Background(), "1:1:1", "2024-03-04")
	assert.True(t, first.IsCurrent())

	secondCtx, second := tracker.Begin(context.Background(), "1:1:1", "2024-03-05")
	assert.False(t, first.IsCurrent())
	assert.True(t, second.IsCurrent())

	require.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.NoError(t, secondCtx.Err())

	// устаревший запрос не должен сбросить текущий
	first.Done()
	assert.True(t, second.IsCurrent())
	assert.NoError(t, secondCtx.Err())

	second.Done()
	assert.ErrorIs(t, secondCtx.Err(), context.Canceled)
	assert.Empty(t, tracker.live)
}

func TestTracker_SameTagDoesNotSupersede(t *testing.T) {
	tracker := NewTracker()

	firstCtx, first := tracker.Begin(context.Background(), "1:1:1", "2024-03-04")
	secondCtx, second := tracker.Begin(context.Background(), "1:1:1", "2024-03-04")

	assert.True(t, first.IsCurrent())
	assert.True(t, second.IsCurrent())
	assert.NoError(t, firstCtx.Err())
	assert.NoError(t, secondCtx.Err())

	first.Done()
	assert.True(t, second.IsCurrent())
	assert.NoError(t, secondCtx.Err())

	// другая дата вытесняет оставшийся запрос
	_, third := tracker.Begin(context.Background(), "1:1:1", "2024-03-05")
	assert.False(t, second.IsCurrent())
	assert.ErrorIs(t, secondCtx.Err(), context.Canceled)

	second.Done()
	third.Done()
	assert.Empty(t, tracker.live)
}

func TestTracker_SupersededStaysStale(t *testing.T) {
	tracker := NewTracker()

	_, first := tracker.Begin(context.Background(), "k", "a")
	_, second := tracker.Begin(context.Background(), "k", "b")
	_, third := tracker.Begin(context.Background(), "k", "a")
	defer second.Done()
	defer third.Done()

	assert.False(t, first.IsCurrent())
	assert.False(t, second.IsCurrent())
	assert.True(t, third.IsCurrent())
	first.Done()
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tracker := NewTracker()

	_, a := tracker.Begin(context.Background(), "1:1:1", "2024-03-04")
	bCtx, b := tracker.Begin(context.Background(), "2:1:1", "2024-03-05")

	assert.True(t, a.IsCurrent())
	assert.True(t, b.IsCurrent())
	assert.NoError(t, bCtx.Err())

	a.Done()
	b.Done()
	assert.Empty(t, tracker.live)
}

func TestTracker_ParentCancellation(t *testing.T) {
	tracker := NewTracker()
	parent, cancel := context.WithCancel(context.Background())

	ctx, ticket := tracker.Begin(parent, "k", "t")
	defer ticket.Done()

	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, ticket.IsCurrent())
}
