package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Export internal functions and types for testing
var (
	TruncateToMaxBytes = truncateToMaxBytes
)

// API mirrors the internal api interface for test doubles
type API interface {
	GetUserByEmailContext(ctx context.Context, email string) (*slack.User, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// WithAPI is exported for testing
func WithAPI(a API) Option {
	return withAPI(a)
}
