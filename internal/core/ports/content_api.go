package ports

import (
	"context"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

// ArticleQuery narrows an article list request.
type ArticleQuery struct {
	CategorySlug string
	Search       string
	Page         int
	Limit        int
}

// ContentAPI is the read-only article and category surface of the backend.
type ContentAPI interface {
	Articles(ctx context.Context, q ArticleQuery) ([]domain.Article, error)
	ArticleBySlug(ctx context.Context, slug string) (*domain.Article, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	// Ping reports backend reachability for readiness probes.
	Ping(ctx context.Context) error
}
