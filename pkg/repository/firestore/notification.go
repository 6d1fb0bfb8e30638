package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

type notificationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

type notificationDoc struct {
	ID         string    `firestore:"id"`
	EmployeeID string    `firestore:"employee_id"`
	Message    string    `firestore:"message"`
	Seen       bool      `firestore:"seen"`
	CreatedAt  time.Time `firestore:"created_at"`
}

func (d *notificationDoc) toModel() *model.Notification {
	return &model.Notification{
		ID:         model.NotificationID(d.ID),
		EmployeeID: d.EmployeeID,
		Message:    d.Message,
		Seen:       d.Seen,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *notificationRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, CollectionNotifications))
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	d := &notificationDoc{
		ID:         n.ID.String(),
		EmployeeID: n.EmployeeID,
		Message:    n.Message,
		Seen:       n.Seen,
		CreatedAt:  n.CreatedAt,
	}

	if _, err := r.collection().Doc(d.ID).Create(ctx, d); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(ErrAlreadyExists, "notification already exists", goerr.V("id", n.ID))
		}
		return goerr.Wrap(err, "failed to create notification", goerr.V("id", n.ID))
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id model.NotificationID) (*model.Notification, error) {
	docSnap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get notification", goerr.V("id", id))
	}

	var d notificationDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode notification", goerr.V("id", id))
	}
	return d.toModel(), nil
}

func (r *notificationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*model.Notification, error) {
	iter := r.collection().
		Where("employee_id", "==", employeeID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	notifications := make([]*model.Notification, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate notifications", goerr.V("employee_id", employeeID))
		}

		var d notificationDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode notification", goerr.V("doc_id", docSnap.Ref.ID))
		}
		notifications = append(notifications, d.toModel())
	}

	return notifications, nil
}

func (r *notificationRepository) MarkSeen(ctx context.Context, id model.NotificationID) (bool, error) {
	docRef := r.collection().Doc(id.String())

	var changed bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		changed = false

		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get notification", goerr.V("id", id))
		}

		var d notificationDoc
		if err := docSnap.DataTo(&d); err != nil {
			return goerr.Wrap(err, "failed to decode notification", goerr.V("id", id))
		}
		if d.Seen {
			return nil
		}

		changed = true
		return tx.Update(docRef, []firestore.Update{{Path: "seen", Value: true}})
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to mark notification seen", goerr.V("id", id))
	}

	return changed, nil
}

func (r *notificationRepository) MarkAllSeen(ctx context.Context, employeeID string) (int, error) {
	q := r.collection().
		Where("employee_id", "==", employeeID).
		Where("seen", "==", false)

	count, err := markAllSeen(ctx, r.client, q)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to mark notifications seen", goerr.V("employee_id", employeeID))
	}
	return count, nil
}

func (r *notificationRepository) CountUnseen(ctx context.Context, employeeID string) (int, error) {
	count, err := countQuery(ctx, r.collection().
		Where("employee_id", "==", employeeID).
		Where("seen", "==", false))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count unseen notifications", goerr.V("employee_id", employeeID))
	}
	return count, nil
}
