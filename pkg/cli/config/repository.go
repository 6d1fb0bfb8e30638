package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/repository/firestore"
	"github.com/PrashantJha183/Feedback-backend/pkg/repository/memory"
	"github.com/PrashantJha183/Feedback-backend/pkg/repository/sqlite"
	"github.com/PrashantJha183/Feedback-backend/pkg/utils/logging"
)

const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendSQLite    = "sqlite"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
	sqlitePath       string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (memory, firestore or sqlite)",
			Category:    "Repository",
			Value:       BackendMemory,
			Sources:     cli.EnvVars("FEEDBACK_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("FEEDBACK_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("FEEDBACK_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix prepended to every Firestore collection name",
			Category:    "Repository",
			Sources:     cli.EnvVars("FEEDBACK_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file (required when using sqlite backend)",
			Category:    "Repository",
			Value:       "feedback.db",
			Sources:     cli.EnvVars("FEEDBACK_SQLITE_PATH"),
			Destination: &r.sqlitePath,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("project_id", r.projectID),
		slog.String("database_id", r.databaseID),
		slog.String("sqlite_path", r.sqlitePath),
	)
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case BackendFirestore:
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrMissingProjectID, "failed to configure repository")
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, firestore.WithCollectionPrefix(r.collectionPrefix))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case BackendSQLite:
		if r.sqlitePath == "" {
			return nil, goerr.Wrap(ErrMissingSQLitePath, "failed to configure repository")
		}
		repo, err := sqlite.New(ctx, r.sqlitePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite repository")
		}
		logging.Default().Info("Using SQLite repository", "path", r.sqlitePath)
		return repo, nil

	case BackendMemory:
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "failed to configure repository", goerr.V(BackendKey, r.backend))
	}
}
