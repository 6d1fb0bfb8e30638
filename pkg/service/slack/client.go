package slack

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
)

const (
	// DefaultCacheTTL is the default TTL for the e-mail to user cache
	DefaultCacheTTL = 10 * time.Minute

	// maxSectionTextBytes is Slack's limit for section block text
	maxSectionTextBytes = 3000
)

// cacheEntry holds a cached user with expiration
type cacheEntry struct {
	user      *User
	expiresAt time.Time
}

// client implements Service interface
type client struct {
	api      api
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

var _ interfaces.Notifier = (*client)(nil)

// Option is a functional option for client configuration
type Option func(*client)

// WithCacheTTL sets the TTL for the user lookup cache
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *client) {
		c.cacheTTL = ttl
	}
}

// withAPI replaces the Slack API client
func withAPI(a api) Option {
	return func(c *client) {
		c.api = a
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	c := &client{
		api:      slack.New(token),
		cacheTTL: DefaultCacheTTL,
		cache:    make(map[string]cacheEntry),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// LookupUserByEmail resolves a Slack user from an e-mail address
func (c *client) LookupUserByEmail(ctx context.Context, email string) (*User, error) {
	now := time.Now()

	c.mu.RLock()
	entry, ok := c.cache[email]
	c.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.user, nil
	}

	u, err := c.api.GetUserByEmailContext(ctx, email)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up Slack user by email", goerr.V("email", email))
	}

	user := &User{
		ID:       u.ID,
		Name:     u.Name,
		RealName: u.RealName,
		Email:    u.Profile.Email,
	}

	c.mu.Lock()
	c.cache[email] = cacheEntry{user: user, expiresAt: now.Add(c.cacheTTL)}
	c.mu.Unlock()

	return user, nil
}

// PostDirectMessage sends text to the user's direct message channel
func (c *client) PostDirectMessage(ctx context.Context, userID, text string) (string, error) {
	section := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, truncateToMaxBytes(text, maxSectionTextBytes), false, false),
		nil, nil,
	)

	_, ts, err := c.api.PostMessageContext(ctx, userID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(section),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post Slack direct message", goerr.V("user_id", userID))
	}

	return ts, nil
}

// Notify looks up the user by e-mail and sends them a direct message
func (c *client) Notify(ctx context.Context, email, message string) error {
	if email == "" {
		return goerr.New("email is required for Slack notification")
	}

	user, err := c.LookupUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if _, err := c.PostDirectMessage(ctx, user.ID, message); err != nil {
		return err
	}
	return nil
}

// truncateToMaxBytes cuts s to at most maxBytes without splitting a UTF-8
// sequence
func truncateToMaxBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}

	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
