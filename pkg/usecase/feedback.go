package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

// CreateFeedbackInput is the data a manager submits for new feedback
type CreateFeedbackInput struct {
	ManagerID   string
	EmployeeID  string
	Strengths   string
	Improvement string
	Sentiment   types.Sentiment
	Anonymous   bool
	Tags        []string
}

// UpdateFeedbackInput holds the content to change. Nil fields are left as is.
type UpdateFeedbackInput struct {
	Strengths   *string
	Improvement *string
	Sentiment   *types.Sentiment
	Anonymous   *bool
	Tags        []string // nil keeps the current tags
}

type FeedbackUseCase struct {
	repo         interfaces.Repository
	notification *NotificationUseCase
	markup       interfaces.MarkupRenderer
	renderer     interfaces.ReportRenderer
	reportConfig ReportConfig
	now          func() time.Time
}

func NewFeedbackUseCase(
	repo interfaces.Repository,
	notification *NotificationUseCase,
	markup interfaces.MarkupRenderer,
	renderer interfaces.ReportRenderer,
	reportConfig ReportConfig,
	now func() time.Time,
) *FeedbackUseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &FeedbackUseCase{
		repo:         repo,
		notification: notification,
		markup:       markup,
		renderer:     renderer,
		reportConfig: reportConfig,
		now:          now,
	}
}

func validateSentiment(s types.Sentiment) error {
	if !s.IsValid() {
		return goerr.Wrap(ErrInvalidSentiment, "invalid sentiment", goerr.V("sentiment", s))
	}
	return nil
}

func (uc *FeedbackUseCase) getFeedback(ctx context.Context, id model.FeedbackID) (*model.Feedback, error) {
	f, err := uc.repo.Feedback().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrFeedbackNotFound, "failed to get feedback", goerr.V(FeedbackIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get feedback", goerr.V(FeedbackIDKey, id))
	}
	return f, nil
}

// getOwned returns the feedback if managerID authored it
func (uc *FeedbackUseCase) getOwned(ctx context.Context, id model.FeedbackID, managerID string) (*model.Feedback, error) {
	f, err := uc.getFeedback(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.ManagerID != managerID {
		return nil, goerr.Wrap(ErrNotOwner, "feedback belongs to another manager",
			goerr.V(FeedbackIDKey, id), goerr.V(ManagerIDKey, managerID))
	}
	return f, nil
}

// Create stores new feedback and notifies the employee
func (uc *FeedbackUseCase) Create(ctx context.Context, in CreateFeedbackInput) (*model.FeedbackView, error) {
	manager, err := requireRole(ctx, uc.repo, in.ManagerID, types.RoleManager)
	if err != nil {
		return nil, err
	}
	employee, err := requireRole(ctx, uc.repo, in.EmployeeID, types.RoleEmployee)
	if err != nil {
		return nil, err
	}

	if err := validateSentiment(in.Sentiment); err != nil {
		return nil, err
	}
	if err := requireField("strengths", in.Strengths); err != nil {
		return nil, err
	}
	if err := requireField("improvement", in.Improvement); err != nil {
		return nil, err
	}

	tags := make([]string, len(in.Tags))
	copy(tags, in.Tags)

	f := &model.Feedback{
		ID:           model.NewFeedbackID(),
		ManagerID:    in.ManagerID,
		EmployeeID:   in.EmployeeID,
		Strengths:    in.Strengths,
		Improvement:  in.Improvement,
		Sentiment:    in.Sentiment,
		Anonymous:    in.Anonymous,
		Tags:         tags,
		Comments:     []model.Comment{},
		Acknowledged: false,
		CreatedAt:    uc.now(),
	}

	if err := uc.repo.Feedback().Create(ctx, f); err != nil {
		return nil, goerr.Wrap(err, "failed to create feedback",
			goerr.V(ManagerIDKey, in.ManagerID), goerr.V(EmployeeIDKey, in.EmployeeID))
	}

	uc.notification.emit(ctx, in.EmployeeID,
		fmt.Sprintf("You have received new feedback from manager %s", manager.DisplayName()))

	return &model.FeedbackView{
		Feedback:     f,
		ManagerName:  manager.DisplayName(),
		EmployeeName: employee.DisplayName(),
	}, nil
}

// Update changes the content of feedback owned by managerID. Acknowledgement
// and comments are kept.
func (uc *FeedbackUseCase) Update(ctx context.Context, id model.FeedbackID, managerID string, in UpdateFeedbackInput) (*model.FeedbackView, error) {
	f, err := uc.getOwned(ctx, id, managerID)
	if err != nil {
		return nil, err
	}

	if in.Strengths != nil {
		if err := requireField("strengths", *in.Strengths); err != nil {
			return nil, err
		}
		f.Strengths = *in.Strengths
	}
	if in.Improvement != nil {
		if err := requireField("improvement", *in.Improvement); err != nil {
			return nil, err
		}
		f.Improvement = *in.Improvement
	}
	if in.Sentiment != nil {
		if err := validateSentiment(*in.Sentiment); err != nil {
			return nil, err
		}
		f.Sentiment = *in.Sentiment
	}
	if in.Anonymous != nil {
		f.Anonymous = *in.Anonymous
	}
	if in.Tags != nil {
		tags := make([]string, len(in.Tags))
		copy(tags, in.Tags)
		f.Tags = tags
	}

	if err := uc.repo.Feedback().Update(ctx, f); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrFeedbackNotFound, "feedback disappeared during update", goerr.V(FeedbackIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to update feedback", goerr.V(FeedbackIDKey, id))
	}

	updated, err := uc.getFeedback(ctx, id)
	if err != nil {
		return nil, err
	}

	names := newNameResolver(uc.repo)
	managerName, err := names.name(ctx, updated.ManagerID)
	if err != nil {
		return nil, err
	}

	uc.notification.emit(ctx, updated.EmployeeID,
		fmt.Sprintf("Your feedback from manager %s has been updated", managerName))

	return uc.toView(ctx, names, updated)
}

// Delete removes feedback owned by managerID
func (uc *FeedbackUseCase) Delete(ctx context.Context, id model.FeedbackID, managerID string) error {
	if _, err := uc.getOwned(ctx, id, managerID); err != nil {
		return err
	}

	if err := uc.repo.Feedback().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrFeedbackNotFound, "failed to delete feedback", goerr.V(FeedbackIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete feedback", goerr.V(FeedbackIDKey, id))
	}
	return nil
}

// DeleteAllByManager removes every feedback authored by managerID and
// returns the number removed
func (uc *FeedbackUseCase) DeleteAllByManager(ctx context.Context, managerID string) (int, error) {
	if _, err := requireRole(ctx, uc.repo, managerID, types.RoleManager); err != nil {
		return 0, err
	}

	count, err := uc.repo.Feedback().DeleteByManager(ctx, managerID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete feedback", goerr.V(ManagerIDKey, managerID))
	}
	return count, nil
}

// Acknowledge marks feedback as acknowledged. When employeeID is given it
// must be the recipient. The manager is notified on the first
// acknowledgement only.
func (uc *FeedbackUseCase) Acknowledge(ctx context.Context, id model.FeedbackID, employeeID string) (*model.Feedback, error) {
	f, err := uc.getFeedback(ctx, id)
	if err != nil {
		return nil, err
	}

	if employeeID != "" && employeeID != f.EmployeeID {
		return nil, goerr.Wrap(ErrNotRecipient, "only the recipient can acknowledge feedback",
			goerr.V(FeedbackIDKey, id), goerr.V(EmployeeIDKey, employeeID))
	}

	changed, err := uc.repo.Feedback().Acknowledge(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrFeedbackNotFound, "failed to acknowledge feedback", goerr.V(FeedbackIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to acknowledge feedback", goerr.V(FeedbackIDKey, id))
	}
	f.Acknowledged = true

	if changed {
		name, err := newNameResolver(uc.repo).name(ctx, f.EmployeeID)
		if err != nil {
			return nil, err
		}
		uc.notification.emit(ctx, f.ManagerID,
			fmt.Sprintf("Employee %s acknowledged your feedback", name))
	}

	return f, nil
}

// AddComment appends a comment from an employee and notifies the manager
func (uc *FeedbackUseCase) AddComment(ctx context.Context, id model.FeedbackID, employeeID, text string) (*model.Feedback, error) {
	f, err := uc.getFeedback(ctx, id)
	if err != nil {
		return nil, err
	}

	commenter, err := requireRole(ctx, uc.repo, employeeID, types.RoleEmployee)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, goerr.Wrap(ErrRoleMismatch, "commenter is not a registered employee",
				goerr.V(EmployeeIDKey, employeeID))
		}
		return nil, err
	}

	if err := requireField("text", text); err != nil {
		return nil, err
	}

	comment := model.Comment{EmployeeID: employeeID, Text: text}
	if err := uc.repo.Feedback().AddComment(ctx, id, comment); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrFeedbackNotFound, "failed to add comment", goerr.V(FeedbackIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to add comment", goerr.V(FeedbackIDKey, id))
	}

	uc.notification.emit(ctx, f.ManagerID,
		fmt.Sprintf("New comment from employee %s on your feedback", commenter.DisplayName()))

	return uc.getFeedback(ctx, id)
}

// HistoryForEmployee returns feedback received by employeeID, newest first
func (uc *FeedbackUseCase) HistoryForEmployee(ctx context.Context, employeeID string) ([]*model.FeedbackView, error) {
	list, err := uc.repo.Feedback().ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list feedback", goerr.V(EmployeeIDKey, employeeID))
	}
	return uc.toViews(ctx, newNameResolver(uc.repo), list)
}

// HistoryForManager returns feedback authored by managerID, newest first
func (uc *FeedbackUseCase) HistoryForManager(ctx context.Context, managerID string) ([]*model.FeedbackView, error) {
	manager, err := requireRole(ctx, uc.repo, managerID, types.RoleManager)
	if err != nil {
		return nil, err
	}

	list, err := uc.repo.Feedback().ListByManager(ctx, managerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list feedback", goerr.V(ManagerIDKey, managerID))
	}

	names := newNameResolver(uc.repo)
	names.seed(manager)
	return uc.toViews(ctx, names, list)
}

func (uc *FeedbackUseCase) toViews(ctx context.Context, names *nameResolver, list []*model.Feedback) ([]*model.FeedbackView, error) {
	views := make([]*model.FeedbackView, 0, len(list))
	for _, f := range list {
		v, err := uc.toView(ctx, names, f)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// toView joins display names and renders comment markup. f is not modified.
func (uc *FeedbackUseCase) toView(ctx context.Context, names *nameResolver, f *model.Feedback) (*model.FeedbackView, error) {
	managerName, err := names.name(ctx, f.ManagerID)
	if err != nil {
		return nil, err
	}
	employeeName, err := names.name(ctx, f.EmployeeID)
	if err != nil {
		return nil, err
	}

	rendered := f.Clone()
	for i := range rendered.Comments {
		html, err := uc.markup.Render(rendered.Comments[i].Text)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to render comment", goerr.V(FeedbackIDKey, f.ID))
		}
		rendered.Comments[i].Text = strings.TrimSpace(html)
	}

	return &model.FeedbackView{
		Feedback:     rendered,
		ManagerName:  managerName,
		EmployeeName: employeeName,
	}, nil
}
