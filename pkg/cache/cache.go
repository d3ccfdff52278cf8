package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/backsoul/mathquiz/pkg/models"
)

type entry struct {
	session   models.SessionSnapshot
	expiresAt time.Time
}

// Cache guarda las sesiones en memoria cuando no hay Redis
type Cache struct {
	mu       sync.Mutex
	sessions map[string]entry
	now      func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

func (c *Cache) SaveSession(_ context.Context, session *models.SessionSnapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{session: *session}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.sessions[session.ID] = e
	return nil
}

func (c *Cache) GetSession(_ context.Context, id string) (*models.SessionSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.sessions[id]
	if !ok || c.expired(e) {
		delete(c.sessions, id)
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}

	session := e.session
	return &session, nil
}

func (c *Cache) DeleteSession(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.sessions[id]
	delete(c.sessions, id)
	if !ok || c.expired(e) {
		return fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	return nil
}

func (c *Cache) HealthCheck(context.Context) error {
	return nil
}

// Sweep elimina las sesiones caducadas y devuelve cuántas quitó
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, e := range c.sessions {
		if c.expired(e) {
			delete(c.sessions, id)
			removed++
		}
	}
	return removed
}

// Len número de sesiones guardadas, caducadas incluidas
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

func (c *Cache) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}
