package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/cli/config"
	"github.com/PrashantJha183/Feedback-backend/pkg/utils/logging"
)

type loginForm struct {
	EmployeeID string
	Password   string `masq:"secret"`
}

func TestLogger_Configure(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	t.Run("json to file with secret redaction", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
		gt.NoError(t, err).Required()

		logging.Default().Info("login", slog.Any("form", loginForm{EmployeeID: "E1", Password: "hunter2"}))
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains(`"E1"`)
		gt.Bool(t, strings.Contains(string(data), "hunter2")).False()
	})

	t.Run("console", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		closer, err := config.NewLoggerForTest("info", "console", path).Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("loud", "json", "-").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "-").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogFormat)
	})
}
