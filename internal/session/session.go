// Package session holds ephemeral per-user conversation state. Sessions are
// kept in memory only: conversations are short-lived and losing them on
// restart is an accepted trade-off. The Store interface keeps the
// conversation logic independent of the backing so a durable keyed store
// with TTL could replace the map without touching the flows.
package session

import (
	"sync"
	"time"
)

// Flow identifies which conversation engine owns a session.
type Flow string

const (
	FlowProject Flow = "project"
	FlowRaid    Flow = "raid"
)

// Session tracks a user's progress through a multi-step guided form. Step
// values are defined by the owning conversation flow. Fields accumulates the
// collected values keyed by field name; a skipped optional field is stored
// as an explicit empty value.
type Session struct {
	UserID    int64
	Flow      Flow
	Step      int
	Fields    map[string]string
	ProjectID int64
	UpdatedAt time.Time
}

// Store is the per-user session registry. At most one session exists per
// user; Put replaces any prior session for that user, implicitly discarding
// an incomplete conversation when a new one starts.
type Store interface {
	// Get returns the user's active session, or false when none exists.
	Get(userID int64) (*Session, bool)

	// Put stores the session, replacing any existing one for the same user.
	Put(sess *Session)

	// Delete removes the user's session. Removing a missing session is a no-op.
	Delete(userID int64)
}

// memoryStore is the in-memory Store implementation. Access is guarded by a
// single RWMutex; same-user read-modify-write races resolve last-write-wins,
// which is acceptable at the expected contention level.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[int64]*Session),
	}
}

func (m *memoryStore) Get(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[userID]
	if !ok {
		return nil, false
	}
	return sess.clone(), true
}

func (m *memoryStore) Put(sess *Session) {
	if sess == nil {
		return
	}

	stored := sess.clone()
	stored.UpdatedAt = time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.UserID] = stored
}

func (m *memoryStore) Delete(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// clone copies the session so callers never share the stored Fields map.
func (s *Session) clone() *Session {
	copied := *s
	copied.Fields = make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		copied.Fields[k] = v
	}
	return &copied
}

// NewSession starts a fresh session for the given user and flow.
func NewSession(userID int64, flow Flow, step int) *Session {
	return &Session{
		UserID: userID,
		Flow:   flow,
		Step:   step,
		Fields: make(map[string]string),
	}
}
