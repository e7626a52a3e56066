// Package user defines the user entity and roles.
package user

// Role is a user's permission level.
type Role string

const (
	// RoleMember is the default role.
	RoleMember Role = "member"
	// RoleAdmin can manage tags, announcements and reports.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// User is an account record keyed by email.
type User struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	CreatedAt int64  `json:"created_at"`
}
