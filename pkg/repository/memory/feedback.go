package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

type feedbackRepository struct {
	mu        sync.RWMutex
	feedbacks map[model.FeedbackID]*model.Feedback
}

func newFeedbackRepository() *feedbackRepository {
	return &feedbackRepository{
		feedbacks: make(map[model.FeedbackID]*model.Feedback),
	}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.feedbacks[feedback.ID]; exists {
		return goerr.Wrap(ErrAlreadyExists, "feedback already exists", goerr.V("id", feedback.ID))
	}

	r.feedbacks[feedback.ID] = feedback.Clone()
	return nil
}

func (r *feedbackRepository) Get(ctx context.Context, id model.FeedbackID) (*model.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, exists := r.feedbacks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
	}

	return f.Clone(), nil
}

func (r *feedbackRepository) Update(ctx context.Context, feedback *model.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.feedbacks[feedback.ID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", feedback.ID))
	}

	updated := existing.Clone()
	updated.Strengths = feedback.Strengths
	updated.Improvement = feedback.Improvement
	updated.Sentiment = feedback.Sentiment
	updated.Anonymous = feedback.Anonymous
	updated.Tags = feedback.Clone().Tags

	r.feedbacks[feedback.ID] = updated
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id model.FeedbackID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.feedbacks[id]; !exists {
		return goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
	}

	delete(r.feedbacks, id)
	return nil
}

func (r *feedbackRepository) DeleteByManager(ctx context.Context, managerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, f := range r.feedbacks {
		if f.ManagerID == managerID {
			delete(r.feedbacks, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *feedbackRepository) Acknowledge(ctx context.Context, id model.FeedbackID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, exists := r.feedbacks[id]
	if !exists {
		return false, goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
	}
	if f.Acknowledged {
		return false, nil
	}

	f.Acknowledged = true
	return true, nil
}

func (r *feedbackRepository) AddComment(ctx context.Context, id model.FeedbackID, comment model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, exists := r.feedbacks[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
	}

	f.Comments = append(f.Comments, comment)
	return nil
}

func (r *feedbackRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*model.Feedback, error) {
	return r.filter(func(f *model.Feedback) bool { return f.EmployeeID == employeeID }), nil
}

func (r *feedbackRepository) ListByManager(ctx context.Context, managerID string) ([]*model.Feedback, error) {
	return r.filter(func(f *model.Feedback) bool { return f.ManagerID == managerID }), nil
}

func (r *feedbackRepository) filter(match func(*model.Feedback) bool) []*model.Feedback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Feedback, 0)
	for _, f := range r.feedbacks {
		if match(f) {
			result = append(result, f.Clone())
		}
	}

	// Newest first
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
