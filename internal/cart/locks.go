package cart

import "sync"

// sessionLocks hands out one mutex per sessionId so that cart mutations for
// the same session serialize in-process. Without this, two concurrent adds
// against the last unit of stock could both pass the stock check.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for a session, creating it on first use. Mutexes are
// kept for the life of the process; the session space is small enough that
// eviction is not worth the bookkeeping.
func (s *sessionLocks) get(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}
