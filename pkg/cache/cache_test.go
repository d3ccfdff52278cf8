package cache

import (
	"context"
	"testing"
	"time"

	"github.com/backsoul/mathquiz/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SaveGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewCache()

	snap := &models.SessionSnapshot{ID: "abc", Score: 2, Operand1: 7, Operand2: 3, Operator: "+"}
	require.NoError(t, c.SaveSession(ctx, snap, time.Hour))

	snap.Score = 99
	got, err := c.GetSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Score)
	assert.Equal(t, "+", got.Operator)

	require.NoError(t, c.DeleteSession(ctx, "abc"))
	_, err = c.GetSession(ctx, "abc")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	assert.ErrorIs(t, c.DeleteSession(ctx, "abc"), models.ErrSessionNotFound)
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 7, 31, 12, 0, 0, 0, time.UTC)

	c := NewCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.SaveSession(ctx, &models.SessionSnapshot{ID: "short"}, time.Minute))
	require.NoError(t, c.SaveSession(ctx, &models.SessionSnapshot{ID: "long"}, time.Hour))
	require.NoError(t, c.SaveSession(ctx, &models.SessionSnapshot{ID: "forever"}, 0))

	now = now.Add(2 * time.Minute)

	_, err := c.GetSession(ctx, "short")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	_, err = c.GetSession(ctx, "long")
	assert.NoError(t, err)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())

	_, err = c.GetSession(ctx, "forever")
	assert.NoError(t, err)
}
