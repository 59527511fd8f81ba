// Package client implements the typed surface of the news backend on top of
// the transport wrapper. One Client serves the whole process; per-visitor
// credentials travel in the request context (see transport.WithVisitor).
package client

import (
	"context"
	"net/http"

	"github.com/newsdesk/portal-gateway/internal/client/transport"
	"github.com/newsdesk/portal-gateway/internal/core/domain"
	"github.com/newsdesk/portal-gateway/internal/core/ports"
)

type Client struct {
	t *transport.Client
}

var (
	_ ports.AuthAPI     = (*Client)(nil)
	_ ports.ContentAPI  = (*Client)(nil)
	_ ports.BookmarkAPI = (*Client)(nil)
	_ ports.CommentAPI  = (*Client)(nil)
)

func New(t *transport.Client) *Client {
	return &Client{t: t}
}

type userEnvelope struct {
	User *domain.User `json:"user"`
}

// Me resolves the ambient credentials to a user. The call is a probe: it
// never triggers the transport's own refresh cycle, the hydration sequence
// owns recovery.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var env userEnvelope
	if err := c.t.Do(ctx, http.MethodGet, "/auth/me", nil, &env, transport.NoRetry()); err != nil {
		return nil, err
	}
	return env.User, nil
}

// Refresh renews the ambient credentials.
func (c *Client) Refresh(ctx context.Context) error {
	return c.t.Do(ctx, http.MethodPost, "/auth/refresh", nil, nil, transport.NoRetry())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var env userEnvelope
	req := loginRequest{Email: email, Password: password}
	if err := c.t.Do(ctx, http.MethodPost, "/auth/login", req, &env, transport.NoRetry()); err != nil {
		return nil, err
	}
	return env.User, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	var env userEnvelope
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := c.t.Do(ctx, http.MethodPost, "/auth/register", req, &env, transport.NoRetry()); err != nil {
		return nil, err
	}
	return env.User, nil
}

// Logout invalidates the backend session. Callers clear their local session
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.t.Do(ctx, http.MethodPost, "/auth/logout", nil, nil, transport.NoRetry())
}
