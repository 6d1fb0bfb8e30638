package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

// FeedbackID is a UUID-based identifier for Feedback
type FeedbackID string

// NewFeedbackID generates a new UUID v4 FeedbackID
func NewFeedbackID() FeedbackID {
	return FeedbackID(uuid.New().String())
}

func (id FeedbackID) String() string {
	return string(id)
}

// Comment is a note left on a feedback by an employee
type Comment struct {
	EmployeeID string
	Text       string
}

// Feedback is a manager's evaluation of one employee
type Feedback struct {
	ID           FeedbackID
	ManagerID    string
	EmployeeID   string
	Strengths    string
	Improvement  string
	Sentiment    types.Sentiment
	Anonymous    bool
	Tags         []string
	Comments     []Comment // Append only, in insertion order
	Acknowledged bool
	CreatedAt    time.Time
}

// Clone returns a deep copy. Tags and Comments of the copy never alias the
// receiver's slices and are never nil.
func (f *Feedback) Clone() *Feedback {
	tags := make([]string, len(f.Tags))
	copy(tags, f.Tags)
	comments := make([]Comment, len(f.Comments))
	copy(comments, f.Comments)

	c := *f
	c.Tags = tags
	c.Comments = comments
	return &c
}

// FeedbackView is a Feedback joined with the display names of both parties
type FeedbackView struct {
	*Feedback
	ManagerName  string
	EmployeeName string
}
