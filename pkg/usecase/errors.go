package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the use cases for a client mistake
// matches exactly one of them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrInvalid            = errors.New("invalid")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrUserNotFound            = fmt.Errorf("user %w", ErrNotFound)
	ErrManagerNotFound         = fmt.Errorf("manager %w", ErrNotFound)
	ErrEmployeeNotFound        = fmt.Errorf("employee %w", ErrNotFound)
	ErrFeedbackNotFound        = fmt.Errorf("feedback %w", ErrNotFound)
	ErrFeedbackRequestNotFound = fmt.Errorf("feedback request %w", ErrNotFound)
	ErrNotificationNotFound    = fmt.Errorf("notification %w", ErrNotFound)

	// Access control errors
	ErrRoleMismatch        = fmt.Errorf("%w: user does not have the required role", ErrUnauthorized)
	ErrNotOwner            = fmt.Errorf("%w: requester does not own the feedback", ErrUnauthorized)
	ErrNotRecipient        = fmt.Errorf("%w: feedback was given to another employee", ErrUnauthorized)
	ErrNoManagerRegistered = fmt.Errorf("%w: only manager can register employees", ErrUnauthorized)

	// Conflict errors
	ErrDuplicateEmployeeID = fmt.Errorf("%w: employee ID already exists", ErrConflict)
	ErrManagerHasReports   = fmt.Errorf("%w: manager still has employees assigned", ErrConflict)

	// Validation errors
	ErrInvalidRole      = fmt.Errorf("%w: role must be manager or employee", ErrInvalid)
	ErrInvalidSentiment = fmt.Errorf("%w: sentiment must be positive, neutral or negative", ErrInvalid)
	ErrInvalidEmail     = fmt.Errorf("%w: malformed email address", ErrInvalid)
	ErrMissingField     = fmt.Errorf("%w: required field is empty", ErrInvalid)
	ErrManagerHasParent = fmt.Errorf("%w: a manager cannot have a manager", ErrInvalid)
)

// Context keys for error values
const (
	EmployeeIDKey = "employee_id"
	ManagerIDKey  = "manager_id"
	FeedbackIDKey = "feedback_id"
	RequestIDKey  = "request_id"
	RoleKey       = "role"
	FieldKey      = "field"
)
