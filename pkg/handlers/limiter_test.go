package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionLimiter(t *testing.T) {
	t.Parallel()

	l := NewSessionLimiter(0.001, 2)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	// cada sesión tiene su propio cupo
	assert.True(t, l.Allow("b"))
}

func TestSessionLimiter_Sweep(t *testing.T) {
	t.Parallel()

	l := NewSessionLimiter(1, 1)
	l.Allow("old")
	l.visitors["old"].lastSeen = time.Now().Add(-time.Hour)
	l.Allow("new")

	l.sweep(time.Minute)

	assert.NotContains(t, l.visitors, "old")
	assert.Contains(t, l.visitors, "new")
}
