package config_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/cli/config"
)

func TestRepository_Configure(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		repo, err := config.NewRepositoryForTest(config.BackendMemory, "", "").Configure(ctx)
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feedback.db")
		repo, err := config.NewRepositoryForTest(config.BackendSQLite, "", path).Configure(ctx)
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("sqlite without path", func(t *testing.T) {
		_, err := config.NewRepositoryForTest(config.BackendSQLite, "", "").Configure(ctx)
		gt.Error(t, err).Is(config.ErrMissingSQLitePath)
	})

	t.Run("firestore without project", func(t *testing.T) {
		_, err := config.NewRepositoryForTest(config.BackendFirestore, "", "").Configure(ctx)
		gt.Error(t, err).Is(config.ErrMissingProjectID)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("mysql", "", "").Configure(ctx)
		gt.Error(t, err).Is(config.ErrInvalidBackend)
	})
}
