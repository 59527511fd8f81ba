package guard

import (
	"testing"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

func userWithRole(r domain.Role) *domain.User {
	name := "Test User"
	return &domain.User{ID: "u1", Name: &name, Email: "u1@example.com", Role: r, IsActive: true}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		hydrated bool
		path     string
		allowed  []domain.Role
		want     State
		target   string
	}{
		{
			name:     "public article renders for anonymous",
			hydrated: true,
			path:     "/articles/some-slug",
			want:     Allowed,
		},
		{
			name: "public article renders before hydration",
			path: "/articles/some-slug",
			want: Allowed,
		},
		{
			name: "protected path blocks before hydration",
			path: "/dashboard",
			want: Checking,
		},
		{
			name:     "anonymous dashboard redirects to login",
			hydrated: true,
			path:     "/dashboard/reporter",
			want:     RedirectLogin,
			target:   LoginPath,
		},
		{
			name:     "plain USER on dashboard treated as anonymous",
			user:     userWithRole(domain.RoleUser),
			hydrated: true,
			path:     "/dashboard",
			want:     RedirectLogin,
			target:   LoginPath,
		},
		{
			name:     "reporter outside admin allow-list goes to unauthorized",
			user:     userWithRole(domain.RoleReporter),
			hydrated: true,
			path:     "/dashboard/admin",
			allowed:  []domain.Role{domain.RoleAdmin},
			want:     RedirectUnauthorized,
			target:   UnauthorizedPath,
		},
		{
			name:     "reporter allowed on shared dashboard",
			user:     userWithRole(domain.RoleReporter),
			hydrated: true,
			path:     "/dashboard",
			allowed:  domain.StaffRoles,
			want:     Allowed,
		},
		{
			name:     "dashboard without explicit allow-list defaults to staff",
			user:     userWithRole(domain.RoleEditor),
			hydrated: true,
			path:     "/dashboard/editor",
			want:     Allowed,
		},
		{
			name:     "admin allowed on admin subtree",
			user:     userWithRole(domain.RoleAdmin),
			hydrated: true,
			path:     "/dashboard/admin/categories",
			allowed:  []domain.Role{domain.RoleAdmin},
			want:     Allowed,
		},
		{
			name:     "login page public even with session",
			user:     userWithRole(domain.RoleAdmin),
			hydrated: true,
			path:     "/login",
			want:     Allowed,
		},
		{
			name:     "unauthorized page itself is public",
			hydrated: true,
			path:     "/unauthorized",
			want:     Allowed,
		},
		{
			name:     "non-dashboard subtree with allow-list rejects anonymous",
			hydrated: true,
			path:     "/profile",
			allowed:  []domain.Role{domain.RoleUser, domain.RoleAdmin},
			want:     RedirectLogin,
			target:   LoginPath,
		},
		{
			name:     "non-dashboard subtree with allow-list admits USER",
			user:     userWithRole(domain.RoleUser),
			hydrated: true,
			path:     "/profile",
			allowed:  []domain.Role{domain.RoleUser, domain.RoleAdmin},
			want:     Allowed,
		},
		{
			name:     "unknown path without allow-list renders",
			hydrated: true,
			path:     "/something-else",
			want:     Allowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.user, tt.hydrated, tt.path, tt.allowed)
			if got.State != tt.want {
				t.Fatalf("state = %s, want %s", got.State, tt.want)
			}
			if got.Target != tt.target {
				t.Fatalf("target = %q, want %q", got.Target, tt.target)
			}
		})
	}
}

func TestPublicClassification(t *testing.T) {
	public := []string{"/", "/login", "/signup", "/about", "/contact", "/articles", "/articles/a-slug", "/categories/politics"}
	for _, p := range public {
		if !Public(p) {
			t.Errorf("Public(%q) = false, want true", p)
		}
	}

	protected := []string{"/dashboard", "/dashboard/admin", "/articlesx", "/profile"}
	for _, p := range protected {
		if Public(p) {
			t.Errorf("Public(%q) = true, want false", p)
		}
	}
}

func TestDashboardHome(t *testing.T) {
	cases := map[domain.Role]string{
		domain.RoleAdmin:    "/dashboard/admin",
		domain.RoleEditor:   "/dashboard/editor",
		domain.RoleReporter: "/dashboard/reporter",
		domain.RoleUser:     "/dashboard",
	}
	for role, want := range cases {
		if got := role.DashboardHome(); got != want {
			t.Errorf("DashboardHome(%s) = %q, want %q", role, got, want)
		}
	}
}
