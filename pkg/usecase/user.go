package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

// RegisterInput is the data needed to create a user
type RegisterInput struct {
	EmployeeID        string
	Name              string
	Email             string
	Password          string `masq:"secret"`
	Role              types.Role
	ManagerEmployeeID string
}

// UpdateUserInput holds the fields to change. Nil fields are left as is.
type UpdateUserInput struct {
	Name              *string
	Email             *string
	Role              *types.Role
	ManagerEmployeeID *string
}

type UserUseCase struct {
	repo   interfaces.Repository
	hasher interfaces.PasswordHasher
}

func NewUserUseCase(repo interfaces.Repository, hasher interfaces.PasswordHasher) *UserUseCase {
	return &UserUseCase{
		repo:   repo,
		hasher: hasher,
	}
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return goerr.Wrap(ErrInvalidEmail, "invalid email", goerr.V("email", email))
	}
	return nil
}

func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return goerr.Wrap(ErrMissingField, name+" is required", goerr.V(FieldKey, name))
	}
	return nil
}

// Register creates a user. Employees can only be registered once at least
// one manager exists, and a referenced manager must exist.
func (uc *UserUseCase) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	in.Email = strings.TrimSpace(in.Email)
	in.ManagerEmployeeID = strings.TrimSpace(in.ManagerEmployeeID)

	for _, f := range []struct{ name, value string }{
		{"employee_id", in.EmployeeID},
		{"name", in.Name},
		{"email", in.Email},
		{"password", in.Password},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if !in.Role.IsValid() {
		return nil, goerr.Wrap(ErrInvalidRole, "invalid role", goerr.V(RoleKey, in.Role))
	}

	switch in.Role {
	case types.RoleManager:
		if in.ManagerEmployeeID != "" {
			return nil, goerr.Wrap(ErrManagerHasParent, "manager_employee_id must be empty for managers",
				goerr.V(EmployeeIDKey, in.EmployeeID))
		}

	case types.RoleEmployee:
		managers, err := uc.repo.User().CountByRole(ctx, types.RoleManager)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count managers")
		}
		if managers == 0 {
			return nil, goerr.Wrap(ErrNoManagerRegistered, "no manager registered",
				goerr.V(EmployeeIDKey, in.EmployeeID))
		}

		if in.ManagerEmployeeID != "" {
			if err := uc.checkManagerRef(ctx, in.ManagerEmployeeID); err != nil {
				return nil, err
			}
		}
	}

	digest, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	user := &model.User{
		EmployeeID:        in.EmployeeID,
		Name:              in.Name,
		Email:             in.Email,
		PasswordDigest:    digest,
		Role:              in.Role,
		ManagerEmployeeID: in.ManagerEmployeeID,
	}

	if err := uc.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, interfaces.ErrAlreadyExists) {
			return nil, goerr.Wrap(ErrDuplicateEmployeeID, "duplicate employee ID",
				goerr.V(EmployeeIDKey, in.EmployeeID))
		}
		return nil, goerr.Wrap(err, "failed to create user", goerr.V(EmployeeIDKey, in.EmployeeID))
	}

	return user, nil
}

// checkManagerRef verifies that id refers to an existing manager. Any other
// user is reported as a missing manager.
func (uc *UserUseCase) checkManagerRef(ctx context.Context, id string) error {
	if _, err := requireRole(ctx, uc.repo, id, types.RoleManager); err != nil {
		if errors.Is(err, ErrRoleMismatch) {
			return goerr.Wrap(ErrManagerNotFound, "referenced user is not a manager", goerr.V(ManagerIDKey, id))
		}
		return err
	}
	return nil
}

// Login verifies the password and returns the user's profile
func (uc *UserUseCase) Login(ctx context.Context, employeeID, password string) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrInvalidCredentials, "unknown employee ID", goerr.V(EmployeeIDKey, employeeID))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(EmployeeIDKey, employeeID))
	}

	if !uc.hasher.Verify(user.PasswordDigest, password) {
		return nil, goerr.Wrap(ErrInvalidCredentials, "password mismatch", goerr.V(EmployeeIDKey, employeeID))
	}

	return user, nil
}

func (uc *UserUseCase) Get(ctx context.Context, employeeID string) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "failed to get user", goerr.V(EmployeeIDKey, employeeID))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(EmployeeIDKey, employeeID))
	}
	return user, nil
}

// ListByRole lists users having role. An empty role lists everyone,
// managers first.
func (uc *UserUseCase) ListByRole(ctx context.Context, role types.Role) ([]*model.User, error) {
	roles := []types.Role{role}
	if role == "" {
		roles = types.AllRoles()
	} else if !role.IsValid() {
		return nil, goerr.Wrap(ErrInvalidRole, "invalid role", goerr.V(RoleKey, role))
	}

	users := make([]*model.User, 0)
	for _, r := range roles {
		found, err := uc.repo.User().ListByRole(ctx, r)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list users", goerr.V(RoleKey, r))
		}
		users = append(users, found...)
	}
	return users, nil
}

// Update changes profile fields of employeeID. Only managers may update users.
func (uc *UserUseCase) Update(ctx context.Context, requesterID, employeeID string, in UpdateUserInput) (*model.User, error) {
	if _, err := requireRole(ctx, uc.repo, requesterID, types.RoleManager); err != nil {
		return nil, err
	}

	user, err := uc.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	wasManager := user.IsManager()

	if in.Name != nil {
		if err := requireField("name", *in.Name); err != nil {
			return nil, err
		}
		user.Name = *in.Name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if in.Role != nil {
		if !in.Role.IsValid() {
			return nil, goerr.Wrap(ErrInvalidRole, "invalid role", goerr.V(RoleKey, *in.Role))
		}
		user.Role = *in.Role
	}
	if in.ManagerEmployeeID != nil {
		user.ManagerEmployeeID = strings.TrimSpace(*in.ManagerEmployeeID)
	}

	switch {
	case user.IsManager():
		// Promotion drops the old manager unless a new one was explicitly given
		if in.ManagerEmployeeID == nil {
			user.ManagerEmployeeID = ""
		}
		if user.ManagerEmployeeID != "" {
			return nil, goerr.Wrap(ErrManagerHasParent, "manager_employee_id must be empty for managers",
				goerr.V(EmployeeIDKey, employeeID))
		}

	case user.IsEmployee():
		if wasManager {
			if err := uc.checkNoReports(ctx, employeeID); err != nil {
				return nil, err
			}
		}
		if user.ManagerEmployeeID == user.EmployeeID {
			return nil, goerr.Wrap(ErrManagerNotFound, "employee cannot manage themselves",
				goerr.V(EmployeeIDKey, employeeID))
		}
		if user.ManagerEmployeeID != "" {
			if err := uc.checkManagerRef(ctx, user.ManagerEmployeeID); err != nil {
				return nil, err
			}
		}
	}

	if err := uc.repo.User().Update(ctx, user); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "user disappeared during update", goerr.V(EmployeeIDKey, employeeID))
		}
		return nil, goerr.Wrap(err, "failed to update user", goerr.V(EmployeeIDKey, employeeID))
	}

	return user, nil
}

// checkNoReports fails while any employee still references managerID
func (uc *UserUseCase) checkNoReports(ctx context.Context, managerID string) error {
	reports, err := uc.repo.User().ListByManager(ctx, managerID)
	if err != nil {
		return goerr.Wrap(err, "failed to list employees of manager", goerr.V(ManagerIDKey, managerID))
	}
	if len(reports) > 0 {
		return goerr.Wrap(ErrManagerHasReports, "reassign employees before demoting the manager",
			goerr.V(ManagerIDKey, managerID), goerr.V("employees", len(reports)))
	}
	return nil
}

// ChangePassword replaces the user's password after verifying the old one
func (uc *UserUseCase) ChangePassword(ctx context.Context, employeeID, oldPassword, newPassword string) error {
	user, err := uc.Get(ctx, employeeID)
	if err != nil {
		return err
	}

	if !uc.hasher.Verify(user.PasswordDigest, oldPassword) {
		return goerr.Wrap(ErrInvalidCredentials, "old password mismatch", goerr.V(EmployeeIDKey, employeeID))
	}

	return uc.setPassword(ctx, user, newPassword)
}

// ResetPassword sets a new password without the old one. Only managers may
// reset passwords.
func (uc *UserUseCase) ResetPassword(ctx context.Context, requesterID, employeeID, newPassword string) error {
	if _, err := requireRole(ctx, uc.repo, requesterID, types.RoleManager); err != nil {
		return err
	}

	user, err := uc.Get(ctx, employeeID)
	if err != nil {
		return err
	}

	return uc.setPassword(ctx, user, newPassword)
}

func (uc *UserUseCase) setPassword(ctx context.Context, user *model.User, newPassword string) error {
	if err := requireField("new_password", newPassword); err != nil {
		return err
	}

	digest, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return goerr.Wrap(err, "failed to hash password")
	}
	user.PasswordDigest = digest

	if err := uc.repo.User().Update(ctx, user); err != nil {
		return goerr.Wrap(err, "failed to update password", goerr.V(EmployeeIDKey, user.EmployeeID))
	}
	return nil
}

// Delete removes a user. References held by other records are left in
// place and render as model.UnknownName.
func (uc *UserUseCase) Delete(ctx context.Context, requesterID, employeeID string) error {
	if _, err := requireRole(ctx, uc.repo, requesterID, types.RoleManager); err != nil {
		return err
	}

	if err := uc.repo.User().Delete(ctx, employeeID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrUserNotFound, "failed to delete user", goerr.V(EmployeeIDKey, employeeID))
		}
		return goerr.Wrap(err, "failed to delete user", goerr.V(EmployeeIDKey, employeeID))
	}
	return nil
}

// RequireRole resolves employeeID and checks its role
func (uc *UserUseCase) RequireRole(ctx context.Context, employeeID string, role types.Role) (*model.User, error) {
	return requireRole(ctx, uc.repo, employeeID, role)
}
