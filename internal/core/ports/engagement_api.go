package ports

import (
	"context"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

// BookmarkAPI toggles the per-(user, article) bookmark relation.
type BookmarkAPI interface {
	Bookmarks(ctx context.Context) ([]domain.Bookmark, error)
	AddBookmark(ctx context.Context, articleID string) error
	RemoveBookmark(ctx context.Context, articleID string) error
}

// CommentAPI is the comment CRUD surface scoped to an article.
type CommentAPI interface {
	Comments(ctx context.Context, articleID string) ([]domain.Comment, error)
	// PostComment returns the server-authoritative record; the backend
	// assigns the id and timestamp.
	PostComment(ctx context.Context, articleID, content string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, id, content string) error
	DeleteComment(ctx context.Context, id string) error
}
