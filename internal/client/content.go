package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/newsdesk/portal-gateway/internal/client/transport"
	"github.com/newsdesk/portal-gateway/internal/core/domain"
	"github.com/newsdesk/portal-gateway/internal/core/ports"
)

type articlesEnvelope struct {
	Articles []domain.Article `json:"articles"`
}

type articleEnvelope struct {
	Article *domain.Article `json:"article"`
}

type categoriesEnvelope struct {
	Categories []domain.Category `json:"categories"`
}

type categoryEnvelope struct {
	Category *domain.Category `json:"category"`
}

func (c *Client) Articles(ctx context.Context, q ports.ArticleQuery) ([]domain.Article, error) {
	params := url.Values{}
	if q.CategorySlug != "" {
		params.Set("category", q.CategorySlug)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	path := "/articles"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var env articlesEnvelope
	if err := c.t.Do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Articles, nil
}

func (c *Client) ArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	var env articleEnvelope
	if err := c.t.Do(ctx, http.MethodGet, "/articles/"+url.PathEscape(slug), nil, &env); err != nil {
		return nil, err
	}
	if env.Article == nil {
		return nil, domain.ErrNotFound
	}
	return env.Article, nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var env categoriesEnvelope
	if err := c.t.Do(ctx, http.MethodGet, "/categories", nil, &env); err != nil {
		return nil, err
	}
	return env.Categories, nil
}

func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var env categoryEnvelope
	if err := c.t.Do(ctx, http.MethodGet, "/categories/"+url.PathEscape(slug), nil, &env); err != nil {
		return nil, err
	}
	if env.Category == nil {
		return nil, domain.ErrNotFound
	}
	return env.Category, nil
}

// Ping checks backend reachability for the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.t.Do(ctx, http.MethodGet, "/health", nil, nil, transport.NoRetry())
}
