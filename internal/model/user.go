package model

// User is a login account. The password hash never leaves the server.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
}

// Roles.
const (
	RoleSuperadmin = "superadmin"
	RoleEditor     = "editor"
	RoleViewer     = "viewer"
)

// Roles lists every valid role, most privileged first.
var Roles = []string{RoleSuperadmin, RoleEditor, RoleViewer}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleIn reports whether role is a member of allowed. Unknown roles are never
// allowed.
func RoleIn(role string, allowed ...string) bool {
	if !ValidRole(role) {
		return false
	}
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}
