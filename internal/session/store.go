// Package session holds the client's belief about who is logged in and the
// one-time hydration sequence that establishes it.
package session

import (
	"sync"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

// Store is the single source of truth for the current session. It starts
// anonymous and is written only by the Hydrator and the login/logout flows;
// guards and widgets are read-only consumers. A nil user means anonymous.
type Store struct {
	mu   sync.RWMutex
	user *domain.User
	subs map[int]func(*domain.User)
	next int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(*domain.User))}
}

// Set unconditionally replaces the session. No validation is performed; the
// value is whatever the backend reported.
func (s *Store) Set(user *domain.User) {
	s.mu.Lock()
	s.user = user
	subs := make([]func(*domain.User), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(user)
	}
}

// Clear resets the session to anonymous.
func (s *Store) Clear() {
	s.Set(nil)
}

// Current returns the last value set. It never blocks and returns nil until
// hydration (or login) has populated the store.
func (s *Store) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Subscribe registers fn to run after every session change and returns an
// unsubscribe function. fn is called outside the store's lock.
func (s *Store) Subscribe(fn func(*domain.User)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
