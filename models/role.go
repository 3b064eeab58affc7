// File: /models/role.go
package models

// Role is the caller's moderation capability, resolved once from the login
// token and passed down as a value. Ordering matters: a higher tier can do
// everything a lower tier can.
type Role int

const (
	RolePublic Role = iota
	RoleModerator
	RoleSuperAdmin
)

func (r Role) String() string {
	switch r {
	case RoleModerator:
		return "moderator"
	case RoleSuperAdmin:
		return "superadmin"
	default:
		return "public"
	}
}

func ParseRole(s string) Role {
	switch s {
	case "moderator":
		return RoleModerator
	case "superadmin":
		return RoleSuperAdmin
	default:
		return RolePublic
	}
}

// CanModerate reports whether the role may hide/unhide posts and read the
// admin listing.
func (r Role) CanModerate() bool {
	return r >= RoleModerator
}

// CanDelete reports whether the role may permanently delete posts.
func (r Role) CanDelete() bool {
	return r >= RoleSuperAdmin
}
