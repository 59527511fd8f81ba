package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/newsdesk/portal-gateway/internal/core/ports"
)

// Hydrator resolves the initial session once per application load: probe
// "who am I", and on failure refresh once and reprobe. At most two probe
// calls and one refresh call per load, no loop. Failure never surfaces to
// the caller; it degrades to the anonymous session, which is the right
// default for a public-content site.
type Hydrator struct {
	api   ports.AuthAPI
	store *Store
	log   zerolog.Logger

	mu      sync.Mutex
	done    chan struct{}
	running bool
}

func NewHydrator(api ports.AuthAPI, store *Store, log zerolog.Logger) *Hydrator {
	return &Hydrator{api: api, store: store, log: log, done: make(chan struct{})}
}

// Run executes the hydration sequence. Calling it again after completion is
// a no-op; calling it while a run is in flight waits for that run's outcome
// instead of starting a second sequence, so concurrent invocations cannot
// leave the store inconsistent.
func (h *Hydrator) Run(ctx context.Context) {
	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		return
	default:
	}
	if h.running {
		done := h.done
		h.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
		}
		return
	}
	h.running = true
	h.mu.Unlock()

	h.hydrate(ctx)

	h.mu.Lock()
	h.running = false
	close(h.done)
	h.mu.Unlock()
}

func (h *Hydrator) hydrate(ctx context.Context) {
	user, err := h.api.Me(ctx)
	if err == nil {
		h.store.Set(user)
		return
	}

	h.log.Debug().Err(err).Msg("session probe failed, attempting refresh")

	if err := h.api.Refresh(ctx); err != nil {
		h.log.Debug().Err(err).Msg("session refresh failed, staying anonymous")
		h.store.Clear()
		return
	}

	user, err = h.api.Me(ctx)
	if err != nil {
		h.log.Debug().Err(err).Msg("session reprobe failed, staying anonymous")
		h.store.Clear()
		return
	}
	h.store.Set(user)
}

// Done is closed once hydration has resolved, successfully or not. Guards
// must wait on it before committing to a redirect decision.
func (h *Hydrator) Done() <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

// Reset re-arms the hydrator so the next Run executes the sequence again.
// Intended for tests; has no effect while a run is in flight.
func (h *Hydrator) Reset() {
	h.mu.Lock()
	if !h.running {
		h.done = make(chan struct{})
	}
	h.mu.Unlock()
}

// Hydrated reports whether the sequence has completed.
func (h *Hydrator) Hydrated() bool {
	h.mu.Lock()
	done := h.done
	h.mu.Unlock()
	select {
	case <-done:
		return true
	default:
		return false
	}
}
