package interfaces

import (
	"context"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

// FeedbackRequestRepository defines the interface for FeedbackRequest data
// access. List methods return requests ordered by CreatedAt descending.
type FeedbackRequestRepository interface {
	Create(ctx context.Context, req *model.FeedbackRequest) error
	Get(ctx context.Context, id model.FeedbackRequestID) (*model.FeedbackRequest, error)
	ListByManager(ctx context.Context, managerID string) ([]*model.FeedbackRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*model.FeedbackRequest, error)

	// MarkSeen sets seen to true. It reports false without writing when the
	// request was already seen.
	MarkSeen(ctx context.Context, id model.FeedbackRequestID) (bool, error)

	// MarkAllSeen marks every unseen request addressed to managerID and
	// returns how many were changed
	MarkAllSeen(ctx context.Context, managerID string) (int, error)

	CountUnseen(ctx context.Context, managerID string) (int, error)
}
