package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationID is a UUID-based identifier for Notification
type NotificationID string

// NewNotificationID generates a new UUID v4 NotificationID
func NewNotificationID() NotificationID {
	return NotificationID(uuid.New().String())
}

func (id NotificationID) String() string {
	return string(id)
}

// Notification is a system generated event for one recipient
type Notification struct {
	ID         NotificationID
	EmployeeID string // Recipient
	Message    string
	Seen       bool
	CreatedAt  time.Time
}
