package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

func notFoundFor(role types.Role) error {
	switch role {
	case types.RoleManager:
		return ErrManagerNotFound
	case types.RoleEmployee:
		return ErrEmployeeNotFound
	default:
		return ErrUserNotFound
	}
}

// requireRole resolves employeeID and checks that it has role
func requireRole(ctx context.Context, repo interfaces.Repository, employeeID string, role types.Role) (*model.User, error) {
	if employeeID == "" {
		return nil, goerr.Wrap(notFoundFor(role), "empty employee ID", goerr.V(RoleKey, role))
	}

	user, err := repo.User().Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(notFoundFor(role), "user not found",
				goerr.V(EmployeeIDKey, employeeID), goerr.V(RoleKey, role))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(EmployeeIDKey, employeeID))
	}

	if user.Role != role {
		return nil, goerr.Wrap(ErrRoleMismatch, "unexpected role",
			goerr.V(EmployeeIDKey, employeeID),
			goerr.V(RoleKey, user.Role),
			goerr.V("required_role", role))
	}

	return user, nil
}

// nameResolver looks up display names once per request. Missing users
// resolve to model.UnknownName.
type nameResolver struct {
	repo  interfaces.Repository
	names map[string]string
}

func newNameResolver(repo interfaces.Repository) *nameResolver {
	return &nameResolver{
		repo:  repo,
		names: make(map[string]string),
	}
}

func (r *nameResolver) seed(user *model.User) {
	if user != nil {
		r.names[user.EmployeeID] = user.DisplayName()
	}
}

func (r *nameResolver) name(ctx context.Context, employeeID string) (string, error) {
	if name, ok := r.names[employeeID]; ok {
		return name, nil
	}

	user, err := r.repo.User().Get(ctx, employeeID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return "", goerr.Wrap(err, "failed to resolve user name", goerr.V(EmployeeIDKey, employeeID))
	}

	// user is nil when not found
	name := user.DisplayName()
	r.names[employeeID] = name
	return name, nil
}
