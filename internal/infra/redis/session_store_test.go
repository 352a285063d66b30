package redis

import (
	"context"
	"testing"
	"time"

	"daily-quiz-service/internal/app"
	"daily-quiz-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewSessionStore(newClient(mr), time.Minute)
	ctx := context.Background()

	machine := app.NewMachine(app.NoShuffle)
	state := machine.Start(sampleBank()[domain.TierEasy])
	state = machine.Reduce(state, app.Submit{Option: "Good morning"})
	session := app.Session{
		ID:        "s1",
		PlayerID:  "p1",
		BankID:    "default",
		State:     state,
		StartedAt: time.Unix(1_700_000_000, 0).UTC(),
	}

	require.NoError(t, store.Save(ctx, session))
	require.True(t, mr.Exists("quiz:session:s1"))
	assert.Equal(t, time.Minute, mr.TTL("quiz:session:s1"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.PlayerID)
	assert.True(t, got.StartedAt.Equal(session.StartedAt))
	assert.Equal(t, app.PhaseAnswered, got.State.Phase)
	assert.Equal(t, 1, got.State.Score)
	assert.Equal(t, "Good morning", got.State.Selected)
	assert.Len(t, got.State.Options, 2)
	assert.Equal(t, 1, got.State.Total())

	require.NoError(t, store.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("quiz:session:s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStoreExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewSessionStore(newClient(mr), time.Minute)

	require.NoError(t, store.Save(context.Background(), app.Session{ID: "s1"}))
	mr.FastForward(2 * time.Minute)
	_, err := store.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
