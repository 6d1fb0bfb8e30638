package async

import (
	"context"
	"log/slog"

	"github.com/PrashantJha183/Feedback-backend/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine detached from the cancellation of
// ctx. The logger carried by ctx is kept. Errors and panics are logged with
// task as the identifying label and never propagate to the caller.
func Dispatch(ctx context.Context, task string, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx).With(slog.String("task", task)))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", err.Error())
		}
	}()
}
