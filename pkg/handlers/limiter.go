package handlers

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SessionLimiter limita las acciones por sesión
type SessionLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func NewSessionLimiter(rps float64, burst int) *SessionLimiter {
	return &SessionLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (l *SessionLimiter) Allow(sessionID string) bool {
	l.mu.Lock()
	v, ok := l.visitors[sessionID]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[sessionID] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()

	return v.limiter.Allow()
}

// Cleanup quita los limitadores sin uso en el último idle, hasta que se cancela ctx
func (l *SessionLimiter) Cleanup(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep(idle)
		}
	}
}

func (l *SessionLimiter) sweep(idle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, v := range l.visitors {
		if time.Since(v.lastSeen) > idle {
			delete(l.visitors, id)
		}
	}
}
