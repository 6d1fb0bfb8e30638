package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications map[model.NotificationID]*model.Notification
}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{
		notifications: make(map[model.NotificationID]*model.Notification),
	}
}

func copyNotification(n *model.Notification) *model.Notification {
	c := *n
	return &c
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notifications[n.ID]; exists {
		return goerr.Wrap(ErrAlreadyExists, "notification already exists", goerr.V("id", n.ID))
	}

	r.notifications[n.ID] = copyNotification(n)
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id model.NotificationID) (*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.notifications[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
	}
	return copyNotification(n), nil
}

func (r *notificationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Notification, 0)
	for _, n := range r.notifications {
		if n.EmployeeID == employeeID {
			result = append(result, copyNotification(n))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *notificationRepository) MarkSeen(ctx context.Context, id model.NotificationID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, exists := r.notifications[id]
	if !exists {
		return false, goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
	}
	if n.Seen {
		return false, nil
	}

	n.Seen = true
	return true, nil
}

func (r *notificationRepository) MarkAllSeen(ctx context.Context, employeeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for _, n := range r.notifications {
		if n.EmployeeID == employeeID && !n.Seen {
			n.Seen = true
			changed++
		}
	}
	return changed, nil
}

func (r *notificationRepository) CountUnseen(ctx context.Context, employeeID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.notifications {
		if n.EmployeeID == employeeID && !n.Seen {
			count++
		}
	}
	return count, nil
}
