package services

import (
	"errors"
	"sync"

	"github.com/electromart/electromart-backend/internal/models"
)

// ErrNoSession is returned by Advance when the user has no active workflow.
var ErrNoSession = errors.New("no active session")

// SessionStore maps a user id to at most one in-progress workflow
// session. All operations for the same user are serialized on a
// per-user lock; unrelated users never contend with each other. The
// store is process-lifetime state, nothing is persisted.
type SessionStore struct {
	mu    sync.Mutex
	slots map[string]*sessionSlot
}

// sessionSlot carries the per-user lock. A slot with a nil session
// means the user is idle.
type sessionSlot struct {
	mu      sync.Mutex
	session *models.Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		slots: make(map[string]*sessionSlot),
	}
}

func (s *SessionStore) slot(user string) *sessionSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[user]
	if !ok {
		sl = &sessionSlot{}
		s.slots[user] = sl
	}
	return sl
}

// Get returns a copy of the user's active session, or nil when idle.
func (s *SessionStore) Get(user string) *models.Session {
	sl := s.slot(user)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.session == nil {
		return nil
	}
	return sl.session.Clone()
}

// Start installs a fresh session for kind, replacing any session the
// user already had. A start intent is an explicit reset.
func (s *SessionStore) Start(user string, kind models.WorkflowKind) *models.Session {
	sl := s.slot(user)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.session = models.NewSession(user, kind)
	return sl.session.Clone()
}

// Advance applies fn to the active session while holding the user's
// lock. fn reports whether the workflow reached a terminal step, in
// which case the session is removed before the lock is released.
// Returns a copy of the session as fn left it.
//
// fn must not block on I/O; resolve and send outside the store.
func (s *SessionStore) Advance(user string, fn func(*models.Session) bool) (*models.Session, error) {
	sl := s.slot(user)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.session == nil {
		return nil, ErrNoSession
	}

	done := fn(sl.session)
	out := sl.session.Clone()
	if done {
		sl.session = nil
	}
	return out, nil
}

// End discards the user's session, if any.
func (s *SessionStore) End(user string) {
	sl := s.slot(user)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.session = nil
}

// ActiveCount reports how many users currently have a session.
func (s *SessionStore) ActiveCount() int {
	s.mu.Lock()
	slots := make([]*sessionSlot, 0, len(s.slots))
	for _, sl := range s.slots {
		slots = append(slots, sl)
	}
	s.mu.Unlock()

	count := 0
	for _, sl := range slots {
		sl.mu.Lock()
		if sl.session != nil {
			count++
		}
		sl.mu.Unlock()
	}
	return count
}
