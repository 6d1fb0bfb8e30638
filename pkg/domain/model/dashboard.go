package model

import (
	"time"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

// EmployeeStats summarises feedback received by one employee
type EmployeeStats struct {
	EmployeeID    string
	EmployeeName  string
	FeedbackCount int
	Positive      int
	Neutral       int
	Negative      int
	Acknowledged  int
}

// Add counts f into the stats
func (s *EmployeeStats) Add(f *Feedback) {
	s.FeedbackCount++
	switch f.Sentiment {
	case types.SentimentPositive:
		s.Positive++
	case types.SentimentNeutral:
		s.Neutral++
	case types.SentimentNegative:
		s.Negative++
	}
	if f.Acknowledged {
		s.Acknowledged++
	}
}

// TimelineEntry is one feedback on an employee's dashboard
type TimelineEntry struct {
	FeedbackID   FeedbackID
	ManagerID    string
	ManagerName  string
	Strengths    string
	Improvement  string
	Sentiment    types.Sentiment
	Acknowledged bool
	CreatedAt    time.Time
}
