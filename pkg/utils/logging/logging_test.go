package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/utils/logging"
)

func TestFrom(t *testing.T) {
	t.Run("falls back to default logger", func(t *testing.T) {
		gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
	})

	t.Run("returns logger stored in context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := logging.With(context.Background(), logger)

		logging.From(ctx).Info("hello", "employee_id", "E1")
		gt.String(t, buf.String()).Contains("employee_id=E1")
	})
}

func TestSetDefault(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	logging.SetDefault(nil)
	gt.Value(t, logging.Default()).Equal(orig)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logging.SetDefault(logger)
	gt.Value(t, logging.Default()).Equal(logger)
}
