package interfaces

import (
	"context"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

// UserRepository defines the interface for User data access
type UserRepository interface {
	// Create stores a new user. Returns ErrAlreadyExists if the employee ID is
	// taken; the existing record is left unchanged.
	Create(ctx context.Context, user *model.User) error

	// Get retrieves a user by employee ID
	Get(ctx context.Context, employeeID string) (*model.User, error)

	// Update replaces an existing user
	Update(ctx context.Context, user *model.User) error

	// Delete deletes a user by employee ID
	Delete(ctx context.Context, employeeID string) error

	// ListByRole retrieves all users having the role
	ListByRole(ctx context.Context, role types.Role) ([]*model.User, error)

	// ListByManager retrieves employees whose manager is managerID
	ListByManager(ctx context.Context, managerID string) ([]*model.User, error)

	// CountByRole returns the number of users having the role
	CountByRole(ctx context.Context, role types.Role) (int, error)
}
