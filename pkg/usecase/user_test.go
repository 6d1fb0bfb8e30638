package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
	"github.com/PrashantJha183/Feedback-backend/pkg/usecase"
)

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("manager and employee", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		m := registerManager(t, uc, "M1", "Alice")
		e := registerEmployee(t, uc, "E1", "Bob", "M1")

		gt.Value(t, m.Role).Equal(types.RoleManager)
		gt.Value(t, e.ManagerEmployeeID).Equal("M1")
		gt.String(t, e.PasswordDigest).NotEqual(testPassword)
	})

	t.Run("duplicate employee ID keeps the first user", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")

		_, err := uc.User.Register(ctx, usecase.RegisterInput{
			EmployeeID: "M1",
			Name:       "Mallory",
			Email:      "mallory@example.com",
			Password:   "other",
			Role:       types.RoleManager,
		})
		gt.Error(t, err).Is(usecase.ErrDuplicateEmployeeID)
		gt.Error(t, err).Is(usecase.ErrConflict)

		got, err := uc.User.Get(ctx, "M1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Alice")
		gt.Value(t, got.Email).Equal("M1@example.com")
	})

	t.Run("employee before any manager", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		_, err := uc.User.Register(ctx, usecase.RegisterInput{
			EmployeeID: "E1",
			Name:       "Bob",
			Email:      "bob@example.com",
			Password:   testPassword,
			Role:       types.RoleEmployee,
		})
		gt.Error(t, err).Is(usecase.ErrNoManagerRegistered)
		gt.Error(t, err).Is(usecase.ErrUnauthorized)
	})

	t.Run("unknown manager reference", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		for _, ref := range []string{"M9", "E1"} {
			_, err := uc.User.Register(ctx, usecase.RegisterInput{
				EmployeeID:        "E2",
				Name:              "Carol",
				Email:             "carol@example.com",
				Password:          testPassword,
				Role:              types.RoleEmployee,
				ManagerEmployeeID: ref,
			})
			gt.Error(t, err).Is(usecase.ErrManagerNotFound)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")

		valid := usecase.RegisterInput{
			EmployeeID: "X1",
			Name:       "Xavier",
			Email:      "x@example.com",
			Password:   testPassword,
			Role:       types.RoleManager,
		}

		testCases := []struct {
			name   string
			modify func(in *usecase.RegisterInput)
			expect error
		}{
			{"empty employee ID", func(in *usecase.RegisterInput) { in.EmployeeID = " " }, usecase.ErrMissingField},
			{"empty name", func(in *usecase.RegisterInput) { in.Name = "" }, usecase.ErrMissingField},
			{"empty password", func(in *usecase.RegisterInput) { in.Password = "" }, usecase.ErrMissingField},
			{"bad email", func(in *usecase.RegisterInput) { in.Email = "not-an-email" }, usecase.ErrInvalidEmail},
			{"display name email", func(in *usecase.RegisterInput) { in.Email = "X <x@example.com>" }, usecase.ErrInvalidEmail},
			{"bad role", func(in *usecase.RegisterInput) { in.Role = "admin" }, usecase.ErrInvalidRole},
			{"manager with manager", func(in *usecase.RegisterInput) { in.ManagerEmployeeID = "M1" }, usecase.ErrManagerHasParent},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				in := valid
				tc.modify(&in)
				_, err := uc.User.Register(ctx, in)
				gt.Error(t, err).Is(tc.expect)
				gt.Error(t, err).Is(usecase.ErrInvalid)
			})
		}
	})
}

func TestUserUseCase_Login(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)
	registerManager(t, uc, "M1", "Alice")

	user, err := uc.User.Login(ctx, "M1", testPassword)
	gt.NoError(t, err).Required()
	gt.Value(t, user.Name).Equal("Alice")

	_, err = uc.User.Login(ctx, "M1", "wrong")
	gt.Error(t, err).Is(usecase.ErrInvalidCredentials)

	_, err = uc.User.Login(ctx, "nobody", testPassword)
	gt.Error(t, err).Is(usecase.ErrInvalidCredentials)
}

func TestUserUseCase_ListByRole(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)
	registerManager(t, uc, "M1", "Alice")
	registerEmployee(t, uc, "E1", "Bob", "M1")
	registerEmployee(t, uc, "E2", "Carol", "M1")

	managers, err := uc.User.ListByRole(ctx, types.RoleManager)
	gt.NoError(t, err).Required()
	gt.Array(t, managers).Length(1)

	employees, err := uc.User.ListByRole(ctx, types.RoleEmployee)
	gt.NoError(t, err).Required()
	gt.Array(t, employees).Length(2)

	all, err := uc.User.ListByRole(ctx, "")
	gt.NoError(t, err).Required()
	gt.Array(t, all).Length(3)
	gt.Value(t, all[0].EmployeeID).Equal("M1")

	_, err = uc.User.ListByRole(ctx, "admin")
	gt.Error(t, err).Is(usecase.ErrInvalidRole)
}

func TestUserUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("manager updates profile", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		updated, err := uc.User.Update(ctx, "M1", "E1", usecase.UpdateUserInput{
			Name:  ptr("Robert"),
			Email: ptr("robert@example.com"),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Name).Equal("Robert")
		gt.Value(t, updated.ManagerEmployeeID).Equal("M1")

		got, err := uc.User.Get(ctx, "E1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Email).Equal("robert@example.com")
	})

	t.Run("employee cannot update", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		_, err := uc.User.Update(ctx, "E1", "E1", usecase.UpdateUserInput{Name: ptr("Bobby")})
		gt.Error(t, err).Is(usecase.ErrRoleMismatch)
	})

	t.Run("promotion clears manager reference", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		updated, err := uc.User.Update(ctx, "M1", "E1", usecase.UpdateUserInput{Role: ptr(types.RoleManager)})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Role).Equal(types.RoleManager)
		gt.Value(t, updated.ManagerEmployeeID).Equal("")
	})

	t.Run("demoting a manager with employees is rejected", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerManager(t, uc, "M2", "Carol")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		_, err := uc.User.Update(ctx, "M2", "M1", usecase.UpdateUserInput{Role: ptr(types.RoleEmployee)})
		gt.Error(t, err).Is(usecase.ErrManagerHasReports)
		gt.Error(t, err).Is(usecase.ErrConflict)

		got, err := uc.User.Get(ctx, "M1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Role).Equal(types.RoleManager)

		stats, err := uc.Dashboard.ManagerDashboard(ctx, "M1")
		gt.NoError(t, err).Required()
		gt.Array(t, stats).Length(1)
	})

	t.Run("demoting a manager without employees", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerManager(t, uc, "M2", "Carol")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		updated, err := uc.User.Update(ctx, "M1", "M2", usecase.UpdateUserInput{
			Role:              ptr(types.RoleEmployee),
			ManagerEmployeeID: ptr("M1"),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Role).Equal(types.RoleEmployee)
		gt.Value(t, updated.ManagerEmployeeID).Equal("M1")
	})

	t.Run("invalid manager reference", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		_, err := uc.User.Update(ctx, "M1", "E1", usecase.UpdateUserInput{ManagerEmployeeID: ptr("E1")})
		gt.Error(t, err).Is(usecase.ErrManagerNotFound)

		_, err = uc.User.Update(ctx, "M1", "E9", usecase.UpdateUserInput{Name: ptr("Ghost")})
		gt.Error(t, err).Is(usecase.ErrUserNotFound)
	})
}

func TestUserUseCase_Password(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)
	registerManager(t, uc, "M1", "Alice")
	registerEmployee(t, uc, "E1", "Bob", "M1")

	t.Run("change with old password", func(t *testing.T) {
		gt.Error(t, uc.User.ChangePassword(ctx, "E1", "wrong", "next")).Is(usecase.ErrInvalidCredentials)
		gt.NoError(t, uc.User.ChangePassword(ctx, "E1", testPassword, "next")).Required()

		_, err := uc.User.Login(ctx, "E1", "next")
		gt.NoError(t, err)
		_, err = uc.User.Login(ctx, "E1", testPassword)
		gt.Error(t, err).Is(usecase.ErrInvalidCredentials)
	})

	t.Run("reset by manager only", func(t *testing.T) {
		gt.Error(t, uc.User.ResetPassword(ctx, "E1", "E1", "x")).Is(usecase.ErrUnauthorized)
		gt.Error(t, uc.User.ResetPassword(ctx, "M1", "E9", "x")).Is(usecase.ErrUserNotFound)
		gt.Error(t, uc.User.ResetPassword(ctx, "M1", "E1", "")).Is(usecase.ErrMissingField)

		gt.NoError(t, uc.User.ResetPassword(ctx, "M1", "E1", "reset")).Required()
		_, err := uc.User.Login(ctx, "E1", "reset")
		gt.NoError(t, err)
	})
}

func TestUserUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)
	registerManager(t, uc, "M1", "Alice")
	registerEmployee(t, uc, "E1", "Bob", "M1")

	gt.Error(t, uc.User.Delete(ctx, "E1", "E1")).Is(usecase.ErrRoleMismatch)
	gt.Error(t, uc.User.Delete(ctx, "M1", "E9")).Is(usecase.ErrUserNotFound)

	gt.NoError(t, uc.User.Delete(ctx, "M1", "E1")).Required()
	_, err := uc.User.Get(ctx, "E1")
	gt.Error(t, err).Is(usecase.ErrNotFound)
}

func TestUserUseCase_RequireRole(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)
	registerManager(t, uc, "M1", "Alice")

	_, err := uc.User.RequireRole(ctx, "M1", types.RoleManager)
	gt.NoError(t, err)

	_, err = uc.User.RequireRole(ctx, "M1", types.RoleEmployee)
	gt.Error(t, err).Is(usecase.ErrRoleMismatch)

	_, err = uc.User.RequireRole(ctx, "M9", types.RoleManager)
	gt.Error(t, err).Is(usecase.ErrManagerNotFound)

	_, err = uc.User.RequireRole(ctx, "", types.RoleEmployee)
	gt.Error(t, err).Is(usecase.ErrEmployeeNotFound)
}
