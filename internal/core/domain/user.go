package domain

import "time"

// Role is the access level assigned to a user by the backend.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEditor   Role = "EDITOR"
	RoleReporter Role = "REPORTER"
	RoleUser     Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleReporter, RoleUser:
		return true
	}
	return false
}

// Staff reports whether the role belongs to the editorial staff.
// Plain readers (RoleUser) are not staff.
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleReporter
}

// StaffRoles is the default allow-list for dashboard subtrees.
var StaffRoles = []Role{RoleAdmin, RoleEditor, RoleReporter}

// DashboardHome returns the landing path for a role after login.
func (r Role) DashboardHome() string {
	switch r {
	case RoleAdmin:
		return "/dashboard/admin"
	case RoleEditor:
		return "/dashboard/editor"
	case RoleReporter:
		return "/dashboard/reporter"
	default:
		return "/dashboard"
	}
}

// User models an authenticated reader or staff member as reported by the
// backend. A nil *User anywhere in this codebase means "anonymous".
type User struct {
	ID        string     `json:"id"`
	Name      *string    `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// DisplayName returns the user's name, falling back to the email address.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}
