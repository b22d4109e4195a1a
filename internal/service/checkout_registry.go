package service

import (
	"sync"

	"github.com/detailpos/detailpos/internal/domain/checkout"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
)

// sessionEntry pairs a session with the lock that serializes access to it
type sessionEntry struct {
	mu      sync.Mutex
	session *checkout.Session
}

// SessionRegistry holds live checkout sessions keyed by an opaque handle.
// Sessions live in memory only; persisted quotes and tickets are the durable
// record, so a restart dropping in-progress sessions is acceptable.
//
// A session is a single-register mutable state machine, not a concurrent
// structure, so the registry serializes all work on one session: every read
// and mutation goes through WithSession, which holds that session's lock
// across the whole dispatch-and-render critical section.
type SessionRegistry struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

// NewSessionRegistry creates an empty session registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		entries: make(map[string]*sessionEntry),
	}
}

// Put registers a session and returns its handle
func (r *SessionRegistry) Put(session *checkout.Session) string {
	id := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SESSION)
	r.mu.Lock()
	r.entries[id] = &sessionEntry{session: session}
	r.mu.Unlock()
	return id
}

// WithSession runs fn with exclusive access to the session registered under
// the given handle. Two concurrent requests on the same handle execute their
// critical sections one after the other.
func (r *SessionRegistry) WithSession(id string, fn func(session *checkout.Session) error) error {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return r.notFound(id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// the session may have been finalized while we waited for its lock
	r.mu.RLock()
	_, ok = r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return r.notFound(id)
	}

	return fn(entry.session)
}

// Delete removes a session; deleting an unknown handle is a no-op
func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

func (r *SessionRegistry) notFound(id string) error {
	return ierr.NewError("checkout session not found").
		WithHintf("Session %s was not found or has expired", id).
		Mark(ierr.ErrNotFound)
}
