package widgets

import (
	"context"
	"strings"
	"sync"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
	"github.com/newsdesk/portal-gateway/internal/core/ports"
	"github.com/newsdesk/portal-gateway/internal/session"
)

// ConfirmFunc asks the user to confirm a destructive action. Deleting a
// comment never reaches the network when the answer is false.
type ConfirmFunc func(prompt string) bool

// CommentThread manages the in-memory comment list for one article. The
// list mutates only after the backend acknowledges an operation; any failure
// leaves it exactly as it was. Operations on different comments don't block
// each other beyond the list lock, mirroring the fire-and-forget model.
type CommentThread struct {
	articleID string
	api       ports.CommentAPI
	store     *session.Store
	notify    Notifier
	confirm   ConfirmFunc

	mu       sync.Mutex
	comments []domain.Comment

	// editing state: a failed update keeps the edit open so the author can
	// correct and resubmit.
	editingID      string
	editingContent string
}

func NewCommentThread(articleID string, api ports.CommentAPI, store *session.Store, notify Notifier, confirm ConfirmFunc) *CommentThread {
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &CommentThread{
		articleID: articleID,
		api:       api,
		store:     store,
		notify:    notify,
		confirm:   confirm,
	}
}

// Load fetches the thread from the backend, replacing the local list.
func (t *CommentThread) Load(ctx context.Context) error {
	comments, err := t.api.Comments(ctx, t.articleID)
	if err != nil {
		t.notify.Error("Failed to load comments")
		return err
	}
	t.mu.Lock()
	t.comments = comments
	t.mu.Unlock()
	return nil
}

// Comments returns a copy of the local list.
func (t *CommentThread) Comments() []domain.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// Post submits a new comment. It requires a session and non-blank content;
// on acknowledgment the server-authoritative record is prepended.
func (t *CommentThread) Post(ctx context.Context, content string) error {
	if t.store.Current() == nil {
		t.notify.Error("You need to be logged in to comment")
		return domain.ErrLoginRequired
	}
	if strings.TrimSpace(content) == "" {
		t.notify.Error("Comment cannot be empty")
		return domain.ErrEmptyContent
	}

	created, err := t.api.PostComment(ctx, t.articleID, content)
	if err != nil {
		t.notify.Error("Failed to post comment")
		return err
	}

	t.mu.Lock()
	t.comments = append([]domain.Comment{*created}, t.comments...)
	t.mu.Unlock()

	t.notify.Success("Comment posted!")
	return nil
}

// BeginEdit opens edit mode for the comment with the given id, seeding the
// pending content from the current entry.
func (t *CommentThread) BeginEdit(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range t.comments {
		if c.ID == id {
			t.editingID = id
			t.editingContent = c.Content
			return
		}
	}
}

// EditingID returns the id of the comment currently in edit mode, or "".
func (t *CommentThread) EditingID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.editingID
}

// CancelEdit discards the pending edit.
func (t *CommentThread) CancelEdit() {
	t.mu.Lock()
	t.editingID = ""
	t.editingContent = ""
	t.mu.Unlock()
}

// Update submits new content for the comment with the given id. On success
// the single matching entry is patched in place and edit mode closes. On
// failure the list is untouched and the edit stays open for correction.
func (t *CommentThread) Update(ctx context.Context, id, content string) error {
	if strings.TrimSpace(content) == "" {
		t.notify.Error("Comment cannot be empty")
		return domain.ErrEmptyContent
	}

	if err := t.api.UpdateComment(ctx, id, content); err != nil {
		t.mu.Lock()
		t.editingContent = content
		t.mu.Unlock()
		t.notify.Error("Failed to update comment")
		return err
	}

	t.mu.Lock()
	for i := range t.comments {
		if t.comments[i].ID == id {
			t.comments[i].Content = content
			break
		}
	}
	if t.editingID == id {
		t.editingID = ""
		t.editingContent = ""
	}
	t.mu.Unlock()

	t.notify.Success("Comment updated!")
	return nil
}

// Delete removes the comment with the given id after a destructive
// confirmation. On success exactly one entry leaves the local list.
func (t *CommentThread) Delete(ctx context.Context, id string) error {
	if !t.confirm("Are you sure you want to delete this comment?") {
		return nil
	}

	if err := t.api.DeleteComment(ctx, id); err != nil {
		t.notify.Error("Failed to delete comment")
		return err
	}

	t.mu.Lock()
	for i := range t.comments {
		if t.comments[i].ID == id {
			t.comments = append(t.comments[:i], t.comments[i+1:]...)
			break
		}
	}
	t.mu.Unlock()

	t.notify.Success("Comment deleted!")
	return nil
}
