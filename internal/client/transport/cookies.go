package transport

import (
	"context"
	"net/http"
	"strings"
	"sync"
)

type ctxKey int

const (
	visitorCookiesKey ctxKey = iota
	cookieRecorderKey
)

// CookieRecorder collects Set-Cookie values the backend issues while serving
// a forwarded request, so the gateway can relay them to the visitor. It also
// feeds refreshed credentials back into replayed requests.
type CookieRecorder struct {
	mu      sync.Mutex
	cookies []*http.Cookie
}

func (r *CookieRecorder) add(cs []*http.Cookie) {
	if len(cs) == 0 {
		return
	}
	r.mu.Lock()
	r.cookies = append(r.cookies, cs...)
	r.mu.Unlock()
}

// Cookies returns everything recorded so far.
func (r *CookieRecorder) Cookies() []*http.Cookie {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*http.Cookie, len(r.cookies))
	copy(out, r.cookies)
	return out
}

// WithVisitor attaches a visitor's Cookie header to ctx and returns the
// recorder that accumulates cookies the backend sets in response. Requests
// carrying a visitor context use these cookies instead of the process jar.
func WithVisitor(ctx context.Context, cookieHeader string) (context.Context, *CookieRecorder) {
	rec := &CookieRecorder{}
	ctx = context.WithValue(ctx, visitorCookiesKey, cookieHeader)
	ctx = context.WithValue(ctx, cookieRecorderKey, rec)
	return ctx, rec
}

// forwardedCookies returns the effective Cookie header for a visitor
// request: the forwarded header with any freshly recorded cookies (from a
// refresh) overriding same-named entries. Empty when no visitor is attached.
func forwardedCookies(ctx context.Context) string {
	header, _ := ctx.Value(visitorCookiesKey).(string)
	rec, _ := ctx.Value(cookieRecorderKey).(*CookieRecorder)
	if rec == nil {
		return header
	}
	fresh := rec.Cookies()
	if len(fresh) == 0 {
		return header
	}
	return mergeCookieHeader(header, fresh)
}

// refreshKey scopes the single-flight refresh window to one credential: the
// visitor's original cookie header at the gateway, or the process jar.
func refreshKey(ctx context.Context) string {
	if h, _ := ctx.Value(visitorCookiesKey).(string); h != "" {
		return h
	}
	return "ambient"
}

func recordSetCookies(ctx context.Context, cs []*http.Cookie) {
	if rec, ok := ctx.Value(cookieRecorderKey).(*CookieRecorder); ok {
		rec.add(cs)
	}
}

// mergeCookieHeader overlays fresh cookies onto an existing Cookie header,
// replacing same-named pairs and preserving the original order otherwise.
func mergeCookieHeader(header string, fresh []*http.Cookie) string {
	replaced := make(map[string]string, len(fresh))
	order := make([]string, 0, len(fresh))
	for _, c := range fresh {
		if _, seen := replaced[c.Name]; !seen {
			order = append(order, c.Name)
		}
		replaced[c.Name] = c.Value
	}

	var parts []string
	for _, pair := range strings.Split(header, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, _, _ := strings.Cut(pair, "=")
		if v, ok := replaced[name]; ok {
			parts = append(parts, name+"="+v)
			delete(replaced, name)
			continue
		}
		parts = append(parts, pair)
	}
	for _, name := range order {
		if v, ok := replaced[name]; ok {
			parts = append(parts, name+"="+v)
		}
	}
	return strings.Join(parts, "; ")
}
