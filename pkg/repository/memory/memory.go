package memory

import (
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
)

type Memory struct {
	user            *userRepository
	feedback        *feedbackRepository
	feedbackRequest *feedbackRequestRepository
	notification    *notificationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		user:            newUserRepository(),
		feedback:        newFeedbackRepository(),
		feedbackRequest: newFeedbackRequestRepository(),
		notification:    newNotificationRepository(),
	}
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Feedback() interfaces.FeedbackRepository {
	return m.feedback
}

func (m *Memory) FeedbackRequest() interfaces.FeedbackRequestRepository {
	return m.feedbackRequest
}

func (m *Memory) Notification() interfaces.NotificationRepository {
	return m.notification
}

func (m *Memory) Close() error {
	return nil
}
