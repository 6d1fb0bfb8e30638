package model

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackRequestID is a UUID-based identifier for FeedbackRequest
type FeedbackRequestID string

// NewFeedbackRequestID generates a new UUID v4 FeedbackRequestID
func NewFeedbackRequestID() FeedbackRequestID {
	return FeedbackRequestID(uuid.New().String())
}

func (id FeedbackRequestID) String() string {
	return string(id)
}

// FeedbackRequest is an employee's solicitation of feedback from a manager.
// Seen only ever changes from false to true.
type FeedbackRequest struct {
	ID                FeedbackRequestID
	EmployeeID        string
	ManagerEmployeeID string
	Message           string
	Seen              bool
	CreatedAt         time.Time
}
