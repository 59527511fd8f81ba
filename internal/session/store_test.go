package session

import (
	"sync"
	"testing"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

func TestStore_DefaultsToAnonymous(t *testing.T) {
	s := NewStore()
	if s.Current() != nil {
		t.Fatalf("expected nil user before hydration")
	}
}

func TestStore_SetAndClear(t *testing.T) {
	s := NewStore()
	u := &domain.User{ID: "u1", Email: "u1@example.com", Role: domain.RoleReporter}

	s.Set(u)
	if got := s.Current(); got == nil || got.ID != "u1" {
		t.Fatalf("Current() = %+v, want user u1", got)
	}

	s.Clear()
	if s.Current() != nil {
		t.Fatalf("expected anonymous after Clear")
	}
}

func TestStore_SubscribeNotifiesOnEveryChange(t *testing.T) {
	s := NewStore()

	var seen []*domain.User
	unsub := s.Subscribe(func(u *domain.User) {
		seen = append(seen, u)
	})

	u := &domain.User{ID: "u1", Role: domain.RoleUser}
	s.Set(u)
	s.Clear()

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if seen[0] != u || seen[1] != nil {
		t.Fatalf("unexpected notification order: %+v", seen)
	}

	unsub()
	s.Set(u)
	if len(seen) != 2 {
		t.Fatalf("subscriber notified after unsubscribe")
	}
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := NewStore()
	u := &domain.User{ID: "u1", Role: domain.RoleAdmin}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Set(u)
				_ = s.Current()
				s.Clear()
			}
		}()
	}
	wg.Wait()
}
