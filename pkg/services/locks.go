package services

import "sync"

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks un mutex por sesión, liberado cuando nadie lo usa
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*lockEntry)}
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &lockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
