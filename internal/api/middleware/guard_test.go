package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

func guardContext(t *testing.T, path string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(userContextKey, user)
	return c, rec
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	c, rec := guardContext(t, "/dashboard", nil)

	handler := Guard()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestGuard_ReaderRoleTreatedAsAnonymous(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "reader@example.com", Role: domain.RoleUser, IsActive: true}
	c, rec := guardContext(t, "/dashboard", user)

	handler := Guard()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestGuard_RoleOutsideAllowListRedirectsUnauthorized(t *testing.T) {
	user := &domain.User{ID: "u2", Email: "reporter@example.com", Role: domain.RoleReporter, IsActive: true}
	c, rec := guardContext(t, "/dashboard/admin", user)

	handler := Guard(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/unauthorized" {
		t.Fatalf("expected redirect to /unauthorized, got %q", loc)
	}
}

func TestGuard_StaffAllowed(t *testing.T) {
	user := &domain.User{ID: "u3", Email: "editor@example.com", Role: domain.RoleEditor, IsActive: true}
	c, rec := guardContext(t, "/dashboard", user)

	called := false
	handler := Guard()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_AllowListAdmitsListedRole(t *testing.T) {
	user := &domain.User{ID: "u4", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true}
	c, rec := guardContext(t, "/dashboard/editor", user)

	called := false
	handler := Guard(domain.RoleAdmin, domain.RoleEditor)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
