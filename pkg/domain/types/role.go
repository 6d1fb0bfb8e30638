package types

import "github.com/m-mizutani/goerr/v2"

// ErrInvalidRole is returned when a string is not a known role
var ErrInvalidRole = goerr.New("invalid role")

// Role is the role of a user in the organisation
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleManager,
		RoleEmployee,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", goerr.Wrap(ErrInvalidRole, "failed to parse role", goerr.V("role", s))
	}
	return role, nil
}
