package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/repository/firestore"
	"github.com/PrashantJha183/Feedback-backend/pkg/repository/memory"
	"github.com/PrashantJha183/Feedback-backend/pkg/repository/sqlite"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newSQLiteRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	repo, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "feedback.db"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	// Each test gets its own collections
	prefix := "test_" + uuid.NewString()[:8]

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

// runAllBackends runs fn against every repository backend
func runAllBackends(t *testing.T, fn func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository)) {
	t.Run("Memory", func(t *testing.T) {
		fn(t, newMemoryRepository)
	})
	t.Run("SQLite", func(t *testing.T) {
		fn(t, newSQLiteRepository)
	})
	t.Run("Firestore", func(t *testing.T) {
		fn(t, newFirestoreRepository)
	})
}
