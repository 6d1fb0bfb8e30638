package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/utils/async"
	"github.com/PrashantJha183/Feedback-backend/pkg/utils/errutil"
	"github.com/PrashantJha183/Feedback-backend/pkg/utils/logging"
)

type NotificationUseCase struct {
	repo     interfaces.Repository
	notifier interfaces.Notifier
	now      func() time.Time
}

func NewNotificationUseCase(repo interfaces.Repository, notifier interfaces.Notifier, now func() time.Time) *NotificationUseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &NotificationUseCase{
		repo:     repo,
		notifier: notifier,
		now:      now,
	}
}

// Notify stores a notification for employeeID. When a notifier is
// configured the message is also pushed to the recipient in the background.
func (uc *NotificationUseCase) Notify(ctx context.Context, employeeID, message string) (*model.Notification, error) {
	n := &model.Notification{
		ID:         model.NewNotificationID(),
		EmployeeID: employeeID,
		Message:    message,
		CreatedAt:  uc.now(),
	}

	if err := uc.repo.Notification().Create(ctx, n); err != nil {
		return nil, goerr.Wrap(err, "failed to create notification", goerr.V(EmployeeIDKey, employeeID))
	}

	if uc.notifier != nil {
		async.Dispatch(ctx, "push_notification", func(ctx context.Context) error {
			return uc.push(ctx, employeeID, message)
		})
	}

	return n, nil
}

func (uc *NotificationUseCase) push(ctx context.Context, employeeID, message string) error {
	user, err := uc.repo.User().Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logging.From(ctx).Debug("skip push for unknown recipient", "employee_id", employeeID)
			return nil
		}
		return goerr.Wrap(err, "failed to get recipient", goerr.V(EmployeeIDKey, employeeID))
	}
	if user.Email == "" {
		return nil
	}

	if err := uc.notifier.Notify(ctx, user.Email, message); err != nil {
		return goerr.Wrap(err, "failed to push notification", goerr.V(EmployeeIDKey, employeeID))
	}
	return nil
}

// emit is Notify for side effects of other workflows. Failure is logged and
// never returned.
func (uc *NotificationUseCase) emit(ctx context.Context, employeeID, message string) {
	if _, err := uc.Notify(ctx, employeeID, message); err != nil {
		errutil.Handle(ctx, err, "failed to emit notification")
	}
}

// ListForEmployee returns the employee's notifications, newest first
func (uc *NotificationUseCase) ListForEmployee(ctx context.Context, employeeID string) ([]*model.Notification, error) {
	list, err := uc.repo.Notification().ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications", goerr.V(EmployeeIDKey, employeeID))
	}
	return list, nil
}

// MarkSeen marks a notification as seen. Marking an already seen
// notification succeeds without writing.
func (uc *NotificationUseCase) MarkSeen(ctx context.Context, id model.NotificationID) error {
	if _, err := uc.repo.Notification().MarkSeen(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrNotificationNotFound, "failed to mark notification seen", goerr.V("notification_id", id))
		}
		return goerr.Wrap(err, "failed to mark notification seen", goerr.V("notification_id", id))
	}
	return nil
}

// MarkAllSeen marks every unseen notification of the employee and returns
// how many changed
func (uc *NotificationUseCase) MarkAllSeen(ctx context.Context, employeeID string) (int, error) {
	count, err := uc.repo.Notification().MarkAllSeen(ctx, employeeID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to mark notifications seen", goerr.V(EmployeeIDKey, employeeID))
	}
	return count, nil
}

func (uc *NotificationUseCase) CountUnseen(ctx context.Context, employeeID string) (int, error) {
	count, err := uc.repo.Notification().CountUnseen(ctx, employeeID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count unseen notifications", goerr.V(EmployeeIDKey, employeeID))
	}
	return count, nil
}
