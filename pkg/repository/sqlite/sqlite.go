package sqlite

import (
	"context"
	"net/url"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
)

var (
	ErrNotFound      = interfaces.ErrNotFound
	ErrAlreadyExists = interfaces.ErrAlreadyExists
)

// SQLite is a repository backed by an embedded SQLite database file
type SQLite struct {
	db              *sqlx.DB
	user            *userRepository
	feedback        *feedbackRepository
	feedbackRequest *feedbackRequestRepository
	notification    *notificationRepository
}

var _ interfaces.Repository = &SQLite{}

// dsn attaches the pragmas to the data source name so the driver applies
// them to every connection the pool opens
func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	return path + "?" + q.Encode()
}

// New opens (or creates) the database at path and applies pending migrations
func New(ctx context.Context, path string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", dsn(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}

	// A single connection serialises writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to connect sqlite database", goerr.V("path", path))
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to run migrations", goerr.V("path", path))
	}

	return &SQLite{
		db:              db,
		user:            &userRepository{db: db},
		feedback:        &feedbackRepository{db: db},
		feedbackRequest: &feedbackRequestRepository{db: db},
		notification:    &notificationRepository{db: db},
	}, nil
}

func (s *SQLite) User() interfaces.UserRepository {
	return s.user
}

func (s *SQLite) Feedback() interfaces.FeedbackRepository {
	return s.feedback
}

func (s *SQLite) FeedbackRequest() interfaces.FeedbackRequestRepository {
	return s.feedbackRequest
}

func (s *SQLite) Notification() interfaces.NotificationRepository {
	return s.notification
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
