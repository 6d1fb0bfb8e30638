package model

import "github.com/PrashantJha183/Feedback-backend/pkg/domain/types"

// UnknownName is displayed in place of a user that no longer exists
const UnknownName = "Unknown"

// User is an identity with a role. EmployeeID is the stable primary key and
// is unique across managers and employees.
type User struct {
	EmployeeID        string
	Name              string
	Email             string
	PasswordDigest    string
	Role              types.Role
	ManagerEmployeeID string // Set only for employees; empty when unassigned
}

// IsManager reports whether the user has the manager role
func (u *User) IsManager() bool {
	return u != nil && u.Role == types.RoleManager
}

// IsEmployee reports whether the user has the employee role
func (u *User) IsEmployee() bool {
	return u != nil && u.Role == types.RoleEmployee
}

// DisplayName returns the user's name, or UnknownName for a nil user
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return UnknownName
	}
	return u.Name
}
