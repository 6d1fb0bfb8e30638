package interfaces

import (
	"context"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

// NotificationRepository defines the interface for Notification data access
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	Get(ctx context.Context, id model.NotificationID) (*model.Notification, error)

	// ListByEmployee returns notifications for the recipient, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]*model.Notification, error)

	// MarkSeen sets seen to true. It reports false without writing when the
	// notification was already seen.
	MarkSeen(ctx context.Context, id model.NotificationID) (bool, error)

	MarkAllSeen(ctx context.Context, employeeID string) (int, error)
	CountUnseen(ctx context.Context, employeeID string) (int, error)
}
