package interfaces

import "errors"

// Repository errors shared by every backend
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Repository defines the interface for data persistence
type Repository interface {
	User() UserRepository
	Feedback() FeedbackRepository
	FeedbackRequest() FeedbackRequestRepository
	Notification() NotificationRepository

	Close() error
}
