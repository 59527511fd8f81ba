// Package transport wraps outbound calls to the news backend. Every request
// carries ambient cookie credentials. When the backend rejects a request as
// unauthorized the wrapper performs a single credential refresh shared by
// every caller failing in the same window, then replays each request exactly
// once. All other failures propagate untouched.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/newsdesk/portal-gateway/internal/api/metrics"
	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

const (
	defaultTimeout = 15 * time.Second
	refreshPath    = "/auth/refresh"
)

// Config captures the settings for building a transport Client.
type Config struct {
	// BaseURL is the backend API root, e.g. http://localhost:5000/api.
	BaseURL string
	Timeout time.Duration
	// CookieJar enables an in-process jar holding the ambient credentials.
	// The gateway leaves it off and forwards each visitor's cookies instead.
	CookieJar bool
	Logger    zerolog.Logger
}

// Client is the shared HTTP wrapper. Safe for concurrent use.
type Client struct {
	base *url.URL
	hc   *http.Client
	log  zerolog.Logger
	sf   singleflight.Group
}

// New builds a Client from cfg. The base URL must be absolute.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("transport: parse base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("transport: base url %q is not absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	hc := &http.Client{Timeout: timeout}
	if cfg.CookieJar {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("transport: cookie jar: %w", err)
		}
		hc.Jar = jar
	}

	return &Client{base: base, hc: hc, log: cfg.Logger}, nil
}

type callOptions struct {
	noRetry bool
}

// CallOption adjusts a single request.
type CallOption func(*callOptions)

// NoRetry disables the unauthorized-refresh-replay cycle for this request.
// The hydrator's probe and refresh calls use it: the probe sequence owns its
// own recovery, and a refresh that recovered itself would mask a dead
// session behind extra round trips.
func NoRetry() CallOption {
	return func(o *callOptions) { o.noRetry = true }
}

// Do issues method path against the backend, encoding body as JSON when
// non-nil and decoding a 2xx response into out when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...CallOption) error {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("transport: encode request: %w", err)
		}
		payload = b
	}

	resp, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !o.noRetry {
		drain(resp)
		return c.refreshAndReplay(ctx, method, path, payload, out)
	}

	return c.finish(ctx, resp, method, path, out)
}

// refreshAndReplay performs the single-flight refresh and replays the
// original request once. A request that reaches this point is already marked
// as retried: whatever the replay returns is final.
func (c *Client) refreshAndReplay(ctx context.Context, method, path string, payload []byte, out any) error {
	key := refreshKey(ctx)
	_, err, shared := c.sf.Do(key, func() (any, error) {
		return nil, c.refresh(ctx)
	})
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("failure").Inc()
		c.log.Debug().Err(err).Str("path", path).Msg("credential refresh failed")
		// The caller sees the original authorization failure, not the
		// refresh mechanics.
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	}
	if !shared {
		metrics.RefreshTotal.WithLabelValues("success").Inc()
	}

	resp, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	}
	return c.finish(ctx, resp, method, path, out)
}

// refresh renews the ambient credentials. Fresh cookies land in the jar, or
// in the request context's recorder when a visitor's cookies are forwarded.
func (c *Client) refresh(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodPost, refreshPath, nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("refresh: %w", domain.ErrUnauthorized)
	}
	recordSetCookies(ctx, resp.Cookies())
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	// JoinPath escapes a "?" inside its argument, so the query travels
	// separately.
	p, query, _ := strings.Cut(path, "?")
	u := c.base.JoinPath(p)
	u.RawQuery = query

	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if h := forwardedCookies(ctx); h != "" {
		req.Header.Set("Cookie", h)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// finish maps the response status onto domain errors and decodes the body.
func (c *Client) finish(ctx context.Context, resp *http.Response, method, path string, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		recordSetCookies(ctx, resp.Cookies())
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
		return nil
	}

	msg := apiMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	case http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrForbidden)
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("%s %s: backend returned %d: %s", method, path, resp.StatusCode, msg)
}

// apiMessage extracts the backend's error envelope, tolerating both
// {"error": "..."} and {"message": "..."} shapes.
func apiMessage(r io.Reader) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
