package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
)

type migration struct {
	version int
	sql     string
}

// migrations must be ordered by version, starting from 1
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	employee_id         TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	email               TEXT NOT NULL,
	password_digest     TEXT NOT NULL,
	role                TEXT NOT NULL,
	manager_employee_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS feedbacks (
	id           TEXT PRIMARY KEY,
	manager_id   TEXT NOT NULL,
	employee_id  TEXT NOT NULL,
	strengths    TEXT NOT NULL,
	improvement  TEXT NOT NULL,
	sentiment    TEXT NOT NULL,
	anonymous    INTEGER NOT NULL DEFAULT 0,
	tags         TEXT NOT NULL DEFAULT '[]',
	acknowledged INTEGER NOT NULL DEFAULT 0,
	created_at   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS feedback_comments (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	feedback_id TEXT NOT NULL REFERENCES feedbacks(id) ON DELETE CASCADE,
	employee_id TEXT NOT NULL,
	text        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS feedback_requests (
	id                  TEXT PRIMARY KEY,
	employee_id         TEXT NOT NULL,
	manager_employee_id TEXT NOT NULL,
	message             TEXT NOT NULL DEFAULT '',
	seen                INTEGER NOT NULL DEFAULT 0,
	created_at          INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id          TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL,
	message     TEXT NOT NULL,
	seen        INTEGER NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);
CREATE INDEX IF NOT EXISTS idx_users_manager ON users(manager_employee_id);
CREATE INDEX IF NOT EXISTS idx_feedbacks_employee ON feedbacks(employee_id, created_at);
CREATE INDEX IF NOT EXISTS idx_feedbacks_manager ON feedbacks(manager_id, created_at);
CREATE INDEX IF NOT EXISTS idx_feedback_comments_feedback ON feedback_comments(feedback_id, seq);
CREATE INDEX IF NOT EXISTS idx_feedback_requests_manager ON feedback_requests(manager_employee_id, seen);
CREATE INDEX IF NOT EXISTS idx_notifications_employee ON notifications(employee_id, seen);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

func runMigrations(ctx context.Context, db *sqlx.DB) error {
	var tableCount int
	if err := db.GetContext(ctx, &tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'"); err != nil {
		return goerr.Wrap(err, "failed to check schema_version table")
	}

	currentVersion := 0
	if tableCount > 0 {
		if err := db.GetContext(ctx, &currentVersion,
			"SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
			return goerr.Wrap(err, "failed to read schema version")
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := db.ExecContext(ctx, m.sql); err != nil {
			return goerr.Wrap(err, "failed to apply migration", goerr.V("version", m.version))
		}
	}

	return nil
}
