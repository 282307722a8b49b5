// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleUser indicates a regular user role.
	RoleUser Role = "User"
	// RoleAdmin indicates an administrator.
	RoleAdmin Role = "Admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts a claim or column value to a Role, reporting whether it is known.
func ParseRole(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
