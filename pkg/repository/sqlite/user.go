package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

type userRepository struct {
	db *sqlx.DB
}

type userRow struct {
	EmployeeID        string `db:"employee_id"`
	Name              string `db:"name"`
	Email             string `db:"email"`
	PasswordDigest    string `db:"password_digest"`
	Role              string `db:"role"`
	ManagerEmployeeID string `db:"manager_employee_id"`
}

func (row *userRow) toModel() (*model.User, error) {
	role, err := types.ParseRole(row.Role)
	if err != nil {
		return nil, goerr.Wrap(err, "corrupt user row", goerr.V("employee_id", row.EmployeeID))
	}

	return &model.User{
		EmployeeID:        row.EmployeeID,
		Name:              row.Name,
		Email:             row.Email,
		PasswordDigest:    row.PasswordDigest,
		Role:              role,
		ManagerEmployeeID: row.ManagerEmployeeID,
	}, nil
}

func toUserRow(u *model.User) *userRow {
	return &userRow{
		EmployeeID:        u.EmployeeID,
		Name:              u.Name,
		Email:             u.Email,
		PasswordDigest:    u.PasswordDigest,
		Role:              u.Role.String(),
		ManagerEmployeeID: u.ManagerEmployeeID,
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	result, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (employee_id, name, email, password_digest, role, manager_employee_id)
		VALUES (:employee_id, :name, :email, :password_digest, :role, :manager_employee_id)
		ON CONFLICT (employee_id) DO NOTHING`, toUserRow(user))
	if err != nil {
		return goerr.Wrap(err, "failed to create user", goerr.V("employee_id", user.EmployeeID))
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return goerr.Wrap(ErrAlreadyExists, "user already exists", goerr.V("employee_id", user.EmployeeID))
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, employeeID string) (*model.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM users WHERE employee_id = ?", employeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("employee_id", employeeID))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("employee_id", employeeID))
	}
	return row.toModel()
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE users SET name = :name, email = :email, password_digest = :password_digest,
			role = :role, manager_employee_id = :manager_employee_id
		WHERE employee_id = :employee_id`, toUserRow(user))
	if err != nil {
		return goerr.Wrap(err, "failed to update user", goerr.V("employee_id", user.EmployeeID))
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("employee_id", user.EmployeeID))
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, employeeID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE employee_id = ?", employeeID)
	if err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("employee_id", employeeID))
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("employee_id", employeeID))
	}
	return nil
}

func (r *userRepository) ListByRole(ctx context.Context, role types.Role) ([]*model.User, error) {
	return r.list(ctx, "SELECT * FROM users WHERE role = ? ORDER BY employee_id", role.String())
}

func (r *userRepository) ListByManager(ctx context.Context, managerID string) ([]*model.User, error) {
	return r.list(ctx,
		"SELECT * FROM users WHERE role = ? AND manager_employee_id = ? ORDER BY employee_id",
		types.RoleEmployee.String(), managerID)
}

func (r *userRepository) CountByRole(ctx context.Context, role types.Role) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE role = ?", role.String()); err != nil {
		return 0, goerr.Wrap(err, "failed to count users", goerr.V("role", role))
	}
	return count, nil
}

func (r *userRepository) list(ctx context.Context, query string, args ...any) ([]*model.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}

	users := make([]*model.User, 0, len(rows))
	for i := range rows {
		u, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
