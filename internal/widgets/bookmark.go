package widgets

import (
	"context"
	"errors"
	"sync"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
	"github.com/newsdesk/portal-gateway/internal/core/ports"
	"github.com/newsdesk/portal-gateway/internal/session"
)

// ErrInFlight is returned when a toggle is invoked while a previous toggle
// on the same control is still awaiting the backend. Repeated clicks are
// dropped, not queued.
var ErrInFlight = errors.New("bookmark toggle already in flight")

// BookmarkToggle tracks the speculative bookmarked flag for one article
// card. The flag flips only after the backend acknowledges; a failed call
// leaves it untouched.
type BookmarkToggle struct {
	articleID string
	api       ports.BookmarkAPI
	store     *session.Store
	notify    Notifier

	mu         sync.Mutex
	bookmarked bool
	busy       bool
	closed     bool
}

func NewBookmarkToggle(articleID string, bookmarked bool, api ports.BookmarkAPI, store *session.Store, notify Notifier) *BookmarkToggle {
	return &BookmarkToggle{
		articleID:  articleID,
		api:        api,
		store:      store,
		notify:     notify,
		bookmarked: bookmarked,
	}
}

// Bookmarked returns the current local belief.
func (b *BookmarkToggle) Bookmarked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bookmarked
}

// Busy reports whether a toggle is awaiting the backend.
func (b *BookmarkToggle) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

// Close marks the control as no longer interested; a response that arrives
// afterwards is ignored instead of mutating dead state.
func (b *BookmarkToggle) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

// Toggle flips the bookmark on the backend and, on acknowledgment, locally.
// Anonymous sessions are refused with a notice and zero network calls.
func (b *BookmarkToggle) Toggle(ctx context.Context) error {
	if b.store.Current() == nil {
		b.notify.Error("You need to be logged in to bookmark articles")
		return domain.ErrLoginRequired
	}

	b.mu.Lock()
	if b.busy {
		b.mu.Unlock()
		return ErrInFlight
	}
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	removing := b.bookmarked
	b.busy = true
	b.mu.Unlock()

	var err error
	if removing {
		err = b.api.RemoveBookmark(ctx, b.articleID)
	} else {
		err = b.api.AddBookmark(ctx, b.articleID)
	}

	b.mu.Lock()
	b.busy = false
	if b.closed {
		b.mu.Unlock()
		return err
	}
	if err == nil {
		b.bookmarked = !removing
	}
	b.mu.Unlock()

	if err != nil {
		b.notify.Error("Failed to update bookmark")
		return err
	}
	if removing {
		b.notify.Success("Bookmark removed")
	} else {
		b.notify.Success("Article bookmarked")
	}
	return nil
}
