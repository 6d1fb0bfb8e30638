package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

type feedbackRequestRepository struct {
	mu       sync.RWMutex
	requests map[model.FeedbackRequestID]*model.FeedbackRequest
}

func newFeedbackRequestRepository() *feedbackRequestRepository {
	return &feedbackRequestRepository{
		requests: make(map[model.FeedbackRequestID]*model.FeedbackRequest),
	}
}

func copyFeedbackRequest(req *model.FeedbackRequest) *model.FeedbackRequest {
	c := *req
	return &c
}

func (r *feedbackRequestRepository) Create(ctx context.Context, req *model.FeedbackRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.requests[req.ID]; exists {
		return goerr.Wrap(ErrAlreadyExists, "feedback request already exists", goerr.V("id", req.ID))
	}

	r.requests[req.ID] = copyFeedbackRequest(req)
	return nil
}

func (r *feedbackRequestRepository) Get(ctx context.Context, id model.FeedbackRequestID) (*model.FeedbackRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, exists := r.requests[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "feedback request not found", goerr.V("id", id))
	}
	return copyFeedbackRequest(req), nil
}

func (r *feedbackRequestRepository) ListByManager(ctx context.Context, managerID string) ([]*model.FeedbackRequest, error) {
	return r.filter(func(req *model.FeedbackRequest) bool { return req.ManagerEmployeeID == managerID }), nil
}

func (r *feedbackRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*model.FeedbackRequest, error) {
	return r.filter(func(req *model.FeedbackRequest) bool { return req.EmployeeID == employeeID }), nil
}

func (r *feedbackRequestRepository) MarkSeen(ctx context.Context, id model.FeedbackRequestID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, exists := r.requests[id]
	if !exists {
		return false, goerr.Wrap(ErrNotFound, "feedback request not found", goerr.V("id", id))
	}
	if req.Seen {
		return false, nil
	}

	req.Seen = true
	return true, nil
}

func (r *feedbackRequestRepository) MarkAllSeen(ctx context.Context, managerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for _, req := range r.requests {
		if req.ManagerEmployeeID == managerID && !req.Seen {
			req.Seen = true
			changed++
		}
	}
	return changed, nil
}

func (r *feedbackRequestRepository) CountUnseen(ctx context.Context, managerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, req := range r.requests {
		if req.ManagerEmployeeID == managerID && !req.Seen {
			count++
		}
	}
	return count, nil
}

func (r *feedbackRequestRepository) filter(match func(*model.FeedbackRequest) bool) []*model.FeedbackRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.FeedbackRequest, 0)
	for _, req := range r.requests {
		if match(req) {
			result = append(result, copyFeedbackRequest(req))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
