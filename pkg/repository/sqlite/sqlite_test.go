package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(context.Background(), filepath.Join(t.TempDir(), "feedback.db"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPragmasApplyToEveryConnection(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	// Hold the first connection so the pool has to open another one
	s.db.SetMaxOpenConns(2)
	first, err := s.db.Conn(ctx)
	gt.NoError(t, err).Required()
	defer func() { _ = first.Close() }()

	second, err := s.db.Conn(ctx)
	gt.NoError(t, err).Required()
	defer func() { _ = second.Close() }()

	var foreignKeys, busyTimeout int
	gt.NoError(t, second.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys)).Required()
	gt.NoError(t, second.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busyTimeout)).Required()
	gt.Value(t, foreignKeys).Equal(1)
	gt.Value(t, busyTimeout).Equal(5000)
}

func TestCorruptRowsAreRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	t.Run("unknown role", func(t *testing.T) {
		_, err := s.db.ExecContext(ctx, `INSERT INTO users (employee_id, name, email, password_digest, role)
			VALUES ('X1', 'Xavier', 'x@example.com', 'digest', 'admin')`)
		gt.NoError(t, err).Required()

		_, err = s.User().Get(ctx, "X1")
		gt.Error(t, err).Is(types.ErrInvalidRole)
	})

	t.Run("unknown sentiment", func(t *testing.T) {
		_, err := s.db.ExecContext(ctx, `INSERT INTO feedbacks (id, manager_id, employee_id, strengths, improvement, sentiment, created_at)
			VALUES ('F1', 'M1', 'E1', 'clear', 'tests', 'mixed', 0)`)
		gt.NoError(t, err).Required()

		_, err = s.Feedback().ListByEmployee(ctx, "E1")
		gt.Error(t, err).Is(types.ErrInvalidSentiment)
	})
}
