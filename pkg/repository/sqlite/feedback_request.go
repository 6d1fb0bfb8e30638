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

type feedbackRequestRepository struct {
	db *sqlx.DB
}

type feedbackRequestRow struct {
	ID                string `db:"id"`
	EmployeeID        string `db:"employee_id"`
	ManagerEmployeeID string `db:"manager_employee_id"`
	Message           string `db:"message"`
	Seen              int    `db:"seen"`
	CreatedAt         int64  `db:"created_at"`
}

func (row *feedbackRequestRow) toModel() *model.FeedbackRequest {
	return &model.FeedbackRequest{
		ID:                model.FeedbackRequestID(row.ID),
		EmployeeID:        row.EmployeeID,
		ManagerEmployeeID: row.ManagerEmployeeID,
		Message:           row.Message,
		Seen:              row.Seen != 0,
		CreatedAt:         time.Unix(0, row.CreatedAt).UTC(),
	}
}

func (r *feedbackRequestRepository) Create(ctx context.Context, req *model.FeedbackRequest) error {
	row := &feedbackRequestRow{
		ID:                req.ID.String(),
		EmployeeID:        req.EmployeeID,
		ManagerEmployeeID: req.ManagerEmployeeID,
		Message:           req.Message,
		Seen:              boolToInt(req.Seen),
		CreatedAt:         req.CreatedAt.UnixNano(),
	}

	result, err := r.db.NamedExecContext(ctx, `
		INSERT INTO feedback_requests (id, employee_id, manager_employee_id, message, seen, created_at)
		VALUES (:id, :employee_id, :manager_employee_id, :message, :seen, :created_at)
		ON CONFLICT (id) DO NOTHING`, row)
	if err != nil {
		return goerr.Wrap(err, "failed to create feedback request", goerr.V("id", req.ID))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return goerr.Wrap(ErrAlreadyExists, "feedback request already exists", goerr.V("id", req.ID))
	}
	return nil
}

func (r *feedbackRequestRepository) Get(ctx context.Context, id model.FeedbackRequestID) (*model.FeedbackRequest, error) {
	var row feedbackRequestRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM feedback_requests WHERE id = ?", id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "feedback request not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get feedback request", goerr.V("id", id))
	}
	return row.toModel(), nil
}

func (r *feedbackRequestRepository) ListByManager(ctx context.Context, managerID string) ([]*model.FeedbackRequest, error) {
	return r.list(ctx,
		"SELECT * FROM feedback_requests WHERE manager_employee_id = ? ORDER BY created_at DESC, id DESC", managerID)
}

func (r *feedbackRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*model.FeedbackRequest, error) {
	return r.list(ctx,
		"SELECT * FROM feedback_requests WHERE employee_id = ? ORDER BY created_at DESC, id DESC", employeeID)
}

func (r *feedbackRequestRepository) MarkSeen(ctx context.Context, id model.FeedbackRequestID) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE feedback_requests SET seen = 1 WHERE id = ? AND seen = 0", id.String())
	if err != nil {
		return false, goerr.Wrap(err, "failed to mark feedback request seen", goerr.V("id", id))
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return true, nil
	}

	if _, err := r.Get(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (r *feedbackRequestRepository) MarkAllSeen(ctx context.Context, managerID string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE feedback_requests SET seen = 1 WHERE manager_employee_id = ? AND seen = 0", managerID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to mark feedback requests seen", goerr.V("manager_id", managerID))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get updated count", goerr.V("manager_id", managerID))
	}
	return int(n), nil
}

func (r *feedbackRequestRepository) CountUnseen(ctx context.Context, managerID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM feedback_requests WHERE manager_employee_id = ? AND seen = 0", managerID); err != nil {
		return 0, goerr.Wrap(err, "failed to count unseen feedback requests", goerr.V("manager_id", managerID))
	}
	return count, nil
}

func (r *feedbackRequestRepository) list(ctx context.Context, query string, args ...any) ([]*model.FeedbackRequest, error) {
	var rows []feedbackRequestRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, goerr.Wrap(err, "failed to list feedback requests")
	}

	requests := make([]*model.FeedbackRequest, 0, len(rows))
	for i := range rows {
		requests = append(requests, rows[i].toModel())
	}
	return requests, nil
}
