package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Service delivers application notifications to Slack users
type Service interface {
	// LookupUserByEmail resolves a Slack user from an e-mail address (with caching)
	LookupUserByEmail(ctx context.Context, email string) (*User, error)

	// PostDirectMessage sends text to the user's direct message channel and
	// returns the message timestamp
	PostDirectMessage(ctx context.Context, userID, text string) (string, error)

	// Notify looks up the user by e-mail and sends them a direct message
	Notify(ctx context.Context, email, message string) error
}

// User represents a Slack user
type User struct {
	ID       string
	Name     string
	RealName string
	Email    string
}

// api is the subset of the slack-go client used by the service
type api interface {
	GetUserByEmailContext(ctx context.Context, email string) (*slack.User, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}
