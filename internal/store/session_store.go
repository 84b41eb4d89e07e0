package store

import (
	"sync"

	"github.com/certprep/exam-service/internal/models"
)

// SessionStore owns every in-memory exam session for the process lifetime.
// Sessions are never evicted; a time-based reaper is a known follow-up for
// long-running deployments.
//
// One coarse lock guards both the map and session mutation. Contention is low
// (operations are short and CPU-only), and serializing mutations per store
// keeps the answer remove-then-append step atomic with respect to other
// writers on the same session.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
	}
}

// Put stores a session under its id.
func (s *SessionStore) Put(session *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = session
}

// Update runs fn against the session under the store lock. It returns false
// without calling fn when the session does not exist.
func (s *SessionStore) Update(id string, fn func(*models.Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return false
	}
	fn(session)
	return true
}

// View runs fn against the session under the read lock. Readers use it so
// field reads never race with a concurrent Update. fn must not mutate the
// session or retain it past the call.
func (s *SessionStore) View(id string, fn func(*models.Session)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return false
	}
	fn(session)
	return true
}

// Snapshot returns a copy of the session whose answer list is detached from
// the live one, for reading and marshaling without holding the lock.
// Questions are shared; they are immutable after session creation. The live
// session never leaves the lock: every read path goes through View or
// Snapshot, every write through Update.
func (s *SessionStore) Snapshot(id string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	copied := *session
	copied.UserAnswers = make([]models.UserAnswer, len(session.UserAnswers))
	copy(copied.UserAnswers, session.UserAnswers)
	return &copied, true
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
