package session

import "sync"

type slugLock struct {
	mu   sync.Mutex
	refs int
}

// lock serialises work on one slug. Entries are dropped once nobody holds
// or waits for them.
func (s *Service) lock(slug string) (unlock func()) {
	s.locksMu.Lock()
	l, ok := s.locks[slug]
	if !ok {
		l = &slugLock{}
		s.locks[slug] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, slug)
		}
		s.locksMu.Unlock()
	}
}
