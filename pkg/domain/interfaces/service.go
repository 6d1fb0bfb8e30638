package interfaces

import "context"

// PasswordHasher creates and verifies password digests
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(digest, password string) bool
}

// MarkupRenderer converts lightweight markup into display markup
type MarkupRenderer interface {
	Render(src string) (string, error)
}

// ReportRenderer creates paginated documents
type ReportRenderer interface {
	NewCanvas() ReportCanvas
}

// ReportCanvas is a single document being written. A canvas starts with one
// empty page.
type ReportCanvas interface {
	WriteLine(text string)
	NewPage()
	Finalize() ([]byte, error)
}

// Notifier pushes a message to a user outside of the application
type Notifier interface {
	Notify(ctx context.Context, email, message string) error
}
