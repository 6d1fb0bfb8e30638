package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

type notificationRepository struct {
	db *sqlx.DB
}

type notificationRow struct {
	ID         string `db:"id"`
	EmployeeID string `db:"employee_id"`
	Message    string `db:"message"`
	Seen       int    `db:"seen"`
	CreatedAt  int64  `db:"created_at"`
}

func (row *notificationRow) toModel() *model.Notification {
	return &model.Notification{
		ID:         model.NotificationID(row.ID),
		EmployeeID: row.EmployeeID,
		Message:    row.Message,
		Seen:       row.Seen != 0,
		CreatedAt:  time.Unix(0, row.CreatedAt).UTC(),
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	row := &notificationRow{
		ID:         n.ID.String(),
		EmployeeID: n.EmployeeID,
		Message:    n.Message,
		Seen:       boolToInt(n.Seen),
		CreatedAt:  n.CreatedAt.UnixNano(),
	}

	result, err := r.db.NamedExecContext(ctx, `
		INSERT INTO notifications (id, employee_id, message, seen, created_at)
		VALUES (:id, :employee_id, :message, :seen, :created_at)
		ON CONFLICT (id) DO NOTHING`, row)
	if err != nil {
		return goerr.Wrap(err, "failed to create notification", goerr.V("id", n.ID))
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return goerr.Wrap(ErrAlreadyExists, "notification already exists", goerr.V("id", n.ID))
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id model.NotificationID) (*model.Notification, error) {
	var row notificationRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM notifications WHERE id = ?", id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get notification", goerr.V("id", id))
	}
	return row.toModel(), nil
}

func (r *notificationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*model.Notification, error) {
	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM notifications WHERE employee_id = ? ORDER BY created_at DESC, id DESC", employeeID); err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications", goerr.V("employee_id", employeeID))
	}

	notifications := make([]*model.Notification, 0, len(rows))
	for i := range rows {
		notifications = append(notifications, rows[i].toModel())
	}
	return notifications, nil
}

func (r *notificationRepository) MarkSeen(ctx context.Context, id model.NotificationID) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET seen = 1 WHERE id = ? AND seen = 0", id.String())
	if err != nil {
		return false, goerr.Wrap(err, "failed to mark notification seen", goerr.V("id", id))
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return true, nil
	}

	if _, err := r.Get(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (r *notificationRepository) MarkAllSeen(ctx context.Context, employeeID string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET seen = 1 WHERE employee_id = ? AND seen = 0", employeeID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to mark notifications seen", goerr.V("employee_id", employeeID))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get updated count", goerr.V("employee_id", employeeID))
	}
	return int(n), nil
}

func (r *notificationRepository) CountUnseen(ctx context.Context, employeeID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE employee_id = ? AND seen = 0", employeeID); err != nil {
		return 0, goerr.Wrap(err, "failed to count unseen notifications", goerr.V("employee_id", employeeID))
	}
	return count, nil
}
