package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
	"github.com/PrashantJha183/Feedback-backend/pkg/repository/memory"
	"github.com/PrashantJha183/Feedback-backend/pkg/service/password"
	"github.com/PrashantJha183/Feedback-backend/pkg/usecase"
)

const testPassword = "correct-horse"

// stepClock returns a strictly increasing time on each call
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func setupUseCases(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	base := []usecase.Option{
		usecase.WithPasswordHasher(password.New(password.WithCost(bcrypt.MinCost))),
		usecase.WithClock(newStepClock().Now),
	}
	return usecase.New(repo, append(base, opts...)...), repo
}

func registerManager(t *testing.T, uc *usecase.UseCases, id, name string) *model.User {
	t.Helper()
	user, err := uc.User.Register(context.Background(), usecase.RegisterInput{
		EmployeeID: id,
		Name:       name,
		Email:      id + "@example.com",
		Password:   testPassword,
		Role:       types.RoleManager,
	})
	gt.NoError(t, err).Required()
	return user
}

func registerEmployee(t *testing.T, uc *usecase.UseCases, id, name, managerID string) *model.User {
	t.Helper()
	user, err := uc.User.Register(context.Background(), usecase.RegisterInput{
		EmployeeID:        id,
		Name:              name,
		Email:             id + "@example.com",
		Password:          testPassword,
		Role:              types.RoleEmployee,
		ManagerEmployeeID: managerID,
	})
	gt.NoError(t, err).Required()
	return user
}

func createFeedback(t *testing.T, uc *usecase.UseCases, managerID, employeeID string, sentiment types.Sentiment) *model.FeedbackView {
	t.Helper()
	view, err := uc.Feedback.Create(context.Background(), usecase.CreateFeedbackInput{
		ManagerID:   managerID,
		EmployeeID:  employeeID,
		Strengths:   "Good work",
		Improvement: "More docs",
		Sentiment:   sentiment,
	})
	gt.NoError(t, err).Required()
	return view
}

func ptr[T any](v T) *T {
	return &v
}
