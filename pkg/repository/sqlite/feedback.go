package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

type feedbackRepository struct {
	db *sqlx.DB
}

type feedbackRow struct {
	ID           string `db:"id"`
	ManagerID    string `db:"manager_id"`
	EmployeeID   string `db:"employee_id"`
	Strengths    string `db:"strengths"`
	Improvement  string `db:"improvement"`
	Sentiment    string `db:"sentiment"`
	Anonymous    int    `db:"anonymous"`
	Tags         string `db:"tags"`
	Acknowledged int    `db:"acknowledged"`
	CreatedAt    int64  `db:"created_at"`
}

type commentRow struct {
	Seq        int64  `db:"seq"`
	FeedbackID string `db:"feedback_id"`
	EmployeeID string `db:"employee_id"`
	Text       string `db:"text"`
}

func toFeedbackRow(f *model.Feedback) (*feedbackRow, error) {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal tags", goerr.V("id", f.ID))
	}

	return &feedbackRow{
		ID:           f.ID.String(),
		ManagerID:    f.ManagerID,
		EmployeeID:   f.EmployeeID,
		Strengths:    f.Strengths,
		Improvement:  f.Improvement,
		Sentiment:    f.Sentiment.String(),
		Anonymous:    boolToInt(f.Anonymous),
		Tags:         string(raw),
		Acknowledged: boolToInt(f.Acknowledged),
		CreatedAt:    f.CreatedAt.UnixNano(),
	}, nil
}

func (row *feedbackRow) toModel() (*model.Feedback, error) {
	tags := []string{}
	if row.Tags != "" {
		if err := json.Unmarshal([]byte(row.Tags), &tags); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal tags", goerr.V("id", row.ID))
		}
	}
	sentiment, err := types.ParseSentiment(row.Sentiment)
	if err != nil {
		return nil, goerr.Wrap(err, "corrupt feedback row", goerr.V("id", row.ID))
	}

	return &model.Feedback{
		ID:           model.FeedbackID(row.ID),
		ManagerID:    row.ManagerID,
		EmployeeID:   row.EmployeeID,
		Strengths:    row.Strengths,
		Improvement:  row.Improvement,
		Sentiment:    sentiment,
		Anonymous:    row.Anonymous != 0,
		Tags:         tags,
		Comments:     []model.Comment{},
		Acknowledged: row.Acknowledged != 0,
		CreatedAt:    time.Unix(0, row.CreatedAt).UTC(),
	}, nil
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	row, err := toFeedbackRow(feedback)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.NamedExecContext(ctx, `
		INSERT INTO feedbacks (id, manager_id, employee_id, strengths, improvement, sentiment,
			anonymous, tags, acknowledged, created_at)
		VALUES (:id, :manager_id, :employee_id, :strengths, :improvement, :sentiment,
			:anonymous, :tags, :acknowledged, :created_at)
		ON CONFLICT (id) DO NOTHING`, row)
	if err != nil {
		return goerr.Wrap(err, "failed to create feedback", goerr.V("id", feedback.ID))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return goerr.Wrap(ErrAlreadyExists, "feedback already exists", goerr.V("id", feedback.ID))
	}

	for _, c := range feedback.Comments {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO feedback_comments (feedback_id, employee_id, text) VALUES (?, ?, ?)",
			row.ID, c.EmployeeID, c.Text); err != nil {
			return goerr.Wrap(err, "failed to create comment", goerr.V("id", feedback.ID))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit feedback", goerr.V("id", feedback.ID))
	}
	return nil
}

func (r *feedbackRepository) Get(ctx context.Context, id model.FeedbackID) (*model.Feedback, error) {
	var row feedbackRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM feedbacks WHERE id = ?", id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get feedback", goerr.V("id", id))
	}

	feedbacks, err := r.withComments(ctx, []feedbackRow{row})
	if err != nil {
		return nil, err
	}
	return feedbacks[0], nil
}

func (r *feedbackRepository) Update(ctx context.Context, feedback *model.Feedback) error {
	row, err := toFeedbackRow(feedback)
	if err != nil {
		return err
	}

	result, err := r.db.NamedExecContext(ctx, `
		UPDATE feedbacks SET strengths = :strengths, improvement = :improvement,
			sentiment = :sentiment, anonymous = :anonymous, tags = :tags
		WHERE id = :id`, row)
	if err != nil {
		return goerr.Wrap(err, "failed to update feedback", goerr.V("id", feedback.ID))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", feedback.ID))
	}
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id model.FeedbackID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM feedbacks WHERE id = ?", id.String())
	if err != nil {
		return goerr.Wrap(err, "failed to delete feedback", goerr.V("id", id))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
	}
	return nil
}

func (r *feedbackRepository) DeleteByManager(ctx context.Context, managerID string) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM feedbacks WHERE manager_id = ?", managerID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete feedback by manager", goerr.V("manager_id", managerID))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get deleted count", goerr.V("manager_id", managerID))
	}
	return int(n), nil
}

func (r *feedbackRepository) Acknowledge(ctx context.Context, id model.FeedbackID) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE feedbacks SET acknowledged = 1 WHERE id = ? AND acknowledged = 0", id.String())
	if err != nil {
		return false, goerr.Wrap(err, "failed to acknowledge feedback", goerr.V("id", id))
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return true, nil
	}

	if _, err := r.Get(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (r *feedbackRepository) AddComment(ctx context.Context, id model.FeedbackID, comment model.Comment) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback_comments (feedback_id, employee_id, text)
		SELECT id, ?, ? FROM feedbacks WHERE id = ?`,
		comment.EmployeeID, comment.Text, id.String())
	if err != nil {
		return goerr.Wrap(err, "failed to add comment", goerr.V("id", id))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
	}
	return nil
}

func (r *feedbackRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*model.Feedback, error) {
	return r.list(ctx,
		"SELECT * FROM feedbacks WHERE employee_id = ? ORDER BY created_at DESC, id DESC", employeeID)
}

func (r *feedbackRepository) ListByManager(ctx context.Context, managerID string) ([]*model.Feedback, error) {
	return r.list(ctx,
		"SELECT * FROM feedbacks WHERE manager_id = ? ORDER BY created_at DESC, id DESC", managerID)
}

func (r *feedbackRepository) list(ctx context.Context, query string, args ...any) ([]*model.Feedback, error) {
	var rows []feedbackRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, goerr.Wrap(err, "failed to list feedback")
	}
	if len(rows) == 0 {
		return []*model.Feedback{}, nil
	}
	return r.withComments(ctx, rows)
}

// withComments converts rows and attaches their comments in insertion order
func (r *feedbackRepository) withComments(ctx context.Context, rows []feedbackRow) ([]*model.Feedback, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	query, args, err := sqlx.In(
		"SELECT * FROM feedback_comments WHERE feedback_id IN (?) ORDER BY seq", ids)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build comment query")
	}

	var comments []commentRow
	if err := r.db.SelectContext(ctx, &comments, r.db.Rebind(query), args...); err != nil {
		return nil, goerr.Wrap(err, "failed to list comments")
	}

	byFeedback := make(map[string][]model.Comment, len(rows))
	for _, c := range comments {
		byFeedback[c.FeedbackID] = append(byFeedback[c.FeedbackID], model.Comment{
			EmployeeID: c.EmployeeID,
			Text:       c.Text,
		})
	}

	feedbacks := make([]*model.Feedback, 0, len(rows))
	for i := range rows {
		f, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		if cs, ok := byFeedback[rows[i].ID]; ok {
			f.Comments = cs
		}
		feedbacks = append(feedbacks, f)
	}
	return feedbacks, nil
}
