package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

type bookmarksEnvelope struct {
	Bookmarks []domain.Bookmark `json:"bookmarks"`
}

type commentsEnvelope struct {
	Comments []domain.Comment `json:"comments"`
}

type commentEnvelope struct {
	Comment *domain.Comment `json:"comment"`
}

type articleRef struct {
	ArticleID string `json:"articleId"`
}

func (c *Client) Bookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	var env bookmarksEnvelope
	if err := c.t.Do(ctx, http.MethodGet, "/bookmarks", nil, &env); err != nil {
		return nil, err
	}
	return env.Bookmarks, nil
}

func (c *Client) AddBookmark(ctx context.Context, articleID string) error {
	return c.t.Do(ctx, http.MethodPost, "/bookmarks", articleRef{ArticleID: articleID}, nil)
}

func (c *Client) RemoveBookmark(ctx context.Context, articleID string) error {
	return c.t.Do(ctx, http.MethodDelete, "/bookmarks", articleRef{ArticleID: articleID}, nil)
}

func (c *Client) Comments(ctx context.Context, articleID string) ([]domain.Comment, error) {
	var env commentsEnvelope
	if err := c.t.Do(ctx, http.MethodGet, "/comments/"+url.PathEscape(articleID), nil, &env); err != nil {
		return nil, err
	}
	return env.Comments, nil
}

type createCommentRequest struct {
	ArticleID string `json:"articleId"`
	Content   string `json:"content"`
}

func (c *Client) PostComment(ctx context.Context, articleID, content string) (*domain.Comment, error) {
	var env commentEnvelope
	req := createCommentRequest{ArticleID: articleID, Content: content}
	if err := c.t.Do(ctx, http.MethodPost, "/comments", req, &env); err != nil {
		return nil, err
	}
	return env.Comment, nil
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (c *Client) UpdateComment(ctx context.Context, id, content string) error {
	return c.t.Do(ctx, http.MethodPut, "/comments/"+url.PathEscape(id), updateCommentRequest{Content: content}, nil)
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.t.Do(ctx, http.MethodDelete, "/comments/"+url.PathEscape(id), nil, nil)
}
