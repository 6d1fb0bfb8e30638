package memory

import "github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"

var (
	ErrNotFound      = interfaces.ErrNotFound
	ErrAlreadyExists = interfaces.ErrAlreadyExists
)
