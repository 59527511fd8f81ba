package ports

import (
	"context"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

// AuthAPI is the slice of the backend consumed by session hydration and the
// login/logout flows. Me and Refresh are probe calls: implementations must
// not trigger their own credential recovery on failure, the hydrator owns
// the probe → refresh → reprobe sequence.
type AuthAPI interface {
	// Me returns the user the ambient credentials resolve to, or nil when
	// the backend reports no session.
	Me(ctx context.Context) (*domain.User, error)
	// Refresh renews the ambient credentials. Success means a follow-up Me
	// call may now succeed; the response body carries nothing of interest.
	Refresh(ctx context.Context) error
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Logout is best effort: callers clear local session state regardless
	// of the returned error.
	Logout(ctx context.Context) error
}
