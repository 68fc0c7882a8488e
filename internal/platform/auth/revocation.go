package auth

import (
	"sync"
	"time"
)

// RevocationStore keeps the ids of logged-out tokens until they would have
// expired anyway.
type RevocationStore struct {
	mu      sync.RWMutex
	expires map[string]time.Time // jti -> token expiry
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// NewRevocationStore starts a goroutine that drops expired entries every
// interval. Call Close to stop it.
func NewRevocationStore(interval time.Duration) *RevocationStore {
	s := &RevocationStore{
		expires: make(map[string]time.Time),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if interval > 0 {
		go s.cleanupLoop(interval)
	}
	return s
}

func (s *RevocationStore) Revoke(jti string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires[jti] = expiresAt
}

func (s *RevocationStore) IsRevoked(jti string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.expires[jti]
	return ok
}

func (s *RevocationStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.expires)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *RevocationStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *RevocationStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *RevocationStore) cleanup() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for jti, exp := range s.expires {
		if now.After(exp) {
			delete(s.expires, jti)
		}
	}
}
