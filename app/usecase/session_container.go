package usecase

import (
	"sync"

	"account-service/app/domain"
)

// SessionContainer is the process-wide observable holding the current
// session snapshot. The engine is the single writer; the UI layer reads and
// subscribes. Every write replaces the whole snapshot atomically, so readers
// never observe a partially updated session.
type SessionContainer struct {
	mu          sync.RWMutex
	current     domain.Session
	generation  uint64
	nextSubID   int
	subscribers map[int]func(domain.Session)
}

// NewSessionContainer creates a container in the anonymous state.
func NewSessionContainer() *SessionContainer {
	return &SessionContainer{
		current:     domain.AnonymousSession(),
		subscribers: make(map[int]func(domain.Session)),
	}
}

// Session returns the current snapshot.
func (c *SessionContainer) Session() domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Generation identifies the session lineage. It increases every time the
// session is torn down to anonymous; in-flight operations compare it to
// discard results that arrive after a teardown.
func (c *SessionContainer) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Publish replaces the snapshot and notifies subscribers. The version
// counter is maintained here, not by callers.
func (c *SessionContainer) Publish(session domain.Session) {
	c.mu.Lock()
	session.Version = c.current.Version + 1
	c.current = session
	subscribers := make([]func(domain.Session), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subscribers = append(subscribers, fn)
	}
	c.mu.Unlock()

	// Callbacks run outside the lock so subscribers may read the container.
	for _, fn := range subscribers {
		fn(session)
	}
}

// ResetToAnonymous tears the session down and starts a new generation.
func (c *SessionContainer) ResetToAnonymous() {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()

	c.Publish(domain.AnonymousSession())
}

// Subscribe registers a callback invoked on every snapshot change. The
// returned function cancels the subscription.
func (c *SessionContainer) Subscribe(fn func(domain.Session)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}
