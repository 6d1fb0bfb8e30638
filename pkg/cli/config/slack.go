package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/service/slack"
)

type Slack struct {
	botToken string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for pushing notifications as direct messages)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("FEEDBACK_SLACK_BOT_TOKEN"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
	)
}

// IsConfigured checks if a bot token was given
func (x *Slack) IsConfigured() bool {
	return x.botToken != ""
}

// Configure returns a notifier pushing Slack direct messages, or nil when
// Slack is not configured
func (x *Slack) Configure() (interfaces.Notifier, error) {
	if !x.IsConfigured() {
		return nil, nil
	}

	svc, err := slack.New(x.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	return svc, nil
}
