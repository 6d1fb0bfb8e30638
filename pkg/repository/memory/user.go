package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[string]*model.User),
	}
}

func copyUser(u *model.User) *model.User {
	c := *u
	return &c
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.EmployeeID]; exists {
		return goerr.Wrap(ErrAlreadyExists, "user already exists", goerr.V("employee_id", user.EmployeeID))
	}

	r.users[user.EmployeeID] = copyUser(user)
	return nil
}

func (r *userRepository) Get(ctx context.Context, employeeID string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[employeeID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("employee_id", employeeID))
	}

	return copyUser(user), nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.EmployeeID]; !exists {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("employee_id", user.EmployeeID))
	}

	r.users[user.EmployeeID] = copyUser(user)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[employeeID]; !exists {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("employee_id", employeeID))
	}

	delete(r.users, employeeID)
	return nil
}

func (r *userRepository) ListByRole(ctx context.Context, role types.Role) ([]*model.User, error) {
	return r.filter(func(u *model.User) bool { return u.Role == role }), nil
}

func (r *userRepository) ListByManager(ctx context.Context, managerID string) ([]*model.User, error) {
	return r.filter(func(u *model.User) bool {
		return u.Role == types.RoleEmployee && u.ManagerEmployeeID == managerID
	}), nil
}

func (r *userRepository) CountByRole(ctx context.Context, role types.Role) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *userRepository) filter(match func(*model.User) bool) []*model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0)
	for _, u := range r.users {
		if match(u) {
			users = append(users, copyUser(u))
		}
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].EmployeeID < users[j].EmployeeID
	})
	return users
}
