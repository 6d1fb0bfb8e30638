package interfaces

import (
	"context"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

// FeedbackRepository defines the interface for Feedback data access.
// List methods return feedback ordered by CreatedAt descending.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	Get(ctx context.Context, id model.FeedbackID) (*model.Feedback, error)

	// Update writes the editable fields (strengths, improvement, sentiment,
	// anonymous, tags). Comments and the acknowledged flag are not touched.
	Update(ctx context.Context, feedback *model.Feedback) error

	Delete(ctx context.Context, id model.FeedbackID) error

	// DeleteByManager deletes all feedback authored by managerID and returns
	// the number of deleted records
	DeleteByManager(ctx context.Context, managerID string) (int, error)

	// Acknowledge sets the acknowledged flag. It reports false when the flag
	// was already set.
	Acknowledge(ctx context.Context, id model.FeedbackID) (bool, error)

	// AddComment appends a comment to the end of the comment sequence
	AddComment(ctx context.Context, id model.FeedbackID, comment model.Comment) error

	ListByEmployee(ctx context.Context, employeeID string) ([]*model.Feedback, error)
	ListByManager(ctx context.Context, managerID string) ([]*model.Feedback, error)
}
