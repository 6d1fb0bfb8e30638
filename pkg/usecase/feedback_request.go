package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

type FeedbackRequestUseCase struct {
	repo         interfaces.Repository
	notification *NotificationUseCase
	now          func() time.Time
}

func NewFeedbackRequestUseCase(repo interfaces.Repository, notification *NotificationUseCase, now func() time.Time) *FeedbackRequestUseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &FeedbackRequestUseCase{
		repo:         repo,
		notification: notification,
		now:          now,
	}
}

// Create files a request from an employee to a manager and notifies the
// manager
func (uc *FeedbackRequestUseCase) Create(ctx context.Context, employeeID, managerID, message string) (*model.FeedbackRequest, error) {
	employee, err := requireRole(ctx, uc.repo, employeeID, types.RoleEmployee)
	if err != nil {
		return nil, err
	}
	if _, err := requireRole(ctx, uc.repo, managerID, types.RoleManager); err != nil {
		return nil, err
	}

	req := &model.FeedbackRequest{
		ID:                model.NewFeedbackRequestID(),
		EmployeeID:        employeeID,
		ManagerEmployeeID: managerID,
		Message:           message,
		Seen:              false,
		CreatedAt:         uc.now(),
	}

	if err := uc.repo.FeedbackRequest().Create(ctx, req); err != nil {
		return nil, goerr.Wrap(err, "failed to create feedback request",
			goerr.V(EmployeeIDKey, employeeID), goerr.V(ManagerIDKey, managerID))
	}

	uc.notification.emit(ctx, managerID,
		fmt.Sprintf("Feedback request from employee %s (%s)", employee.DisplayName(), employeeID))

	return req, nil
}

// ListForManager returns requests addressed to the manager, newest first
func (uc *FeedbackRequestUseCase) ListForManager(ctx context.Context, managerID string) ([]*model.FeedbackRequest, error) {
	if _, err := requireRole(ctx, uc.repo, managerID, types.RoleManager); err != nil {
		return nil, err
	}

	list, err := uc.repo.FeedbackRequest().ListByManager(ctx, managerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list feedback requests", goerr.V(ManagerIDKey, managerID))
	}
	return list, nil
}

// ListForEmployee returns requests the employee has filed, newest first
func (uc *FeedbackRequestUseCase) ListForEmployee(ctx context.Context, employeeID string) ([]*model.FeedbackRequest, error) {
	if _, err := requireRole(ctx, uc.repo, employeeID, types.RoleEmployee); err != nil {
		return nil, err
	}

	list, err := uc.repo.FeedbackRequest().ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list feedback requests", goerr.V(EmployeeIDKey, employeeID))
	}
	return list, nil
}

// MarkSeen marks a request as seen. Marking an already seen request
// succeeds without writing.
func (uc *FeedbackRequestUseCase) MarkSeen(ctx context.Context, id model.FeedbackRequestID) error {
	if _, err := uc.repo.FeedbackRequest().MarkSeen(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrFeedbackRequestNotFound, "failed to mark feedback request seen", goerr.V(RequestIDKey, id))
		}
		return goerr.Wrap(err, "failed to mark feedback request seen", goerr.V(RequestIDKey, id))
	}
	return nil
}

// MarkAllSeen marks every unseen request addressed to the manager
func (uc *FeedbackRequestUseCase) MarkAllSeen(ctx context.Context, managerID string) (int, error) {
	if _, err := requireRole(ctx, uc.repo, managerID, types.RoleManager); err != nil {
		return 0, err
	}

	count, err := uc.repo.FeedbackRequest().MarkAllSeen(ctx, managerID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to mark feedback requests seen", goerr.V(ManagerIDKey, managerID))
	}
	return count, nil
}

func (uc *FeedbackRequestUseCase) CountUnseen(ctx context.Context, managerID string) (int, error) {
	if _, err := requireRole(ctx, uc.repo, managerID, types.RoleManager); err != nil {
		return 0, err
	}

	count, err := uc.repo.FeedbackRequest().CountUnseen(ctx, managerID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count unseen feedback requests", goerr.V(ManagerIDKey, managerID))
	}
	return count, nil
}
