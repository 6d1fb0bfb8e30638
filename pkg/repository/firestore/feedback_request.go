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

type feedbackRequestRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

type feedbackRequestDoc struct {
	ID                string    `firestore:"id"`
	EmployeeID        string    `firestore:"employee_id"`
	ManagerEmployeeID string    `firestore:"manager_employee_id"`
	Message           string    `firestore:"message"`
	Seen              bool      `firestore:"seen"`
	CreatedAt         time.Time `firestore:"created_at"`
}

func (d *feedbackRequestDoc) toModel() *model.FeedbackRequest {
	return &model.FeedbackRequest{
		ID:                model.FeedbackRequestID(d.ID),
		EmployeeID:        d.EmployeeID,
		ManagerEmployeeID: d.ManagerEmployeeID,
		Message:           d.Message,
		Seen:              d.Seen,
		CreatedAt:         d.CreatedAt,
	}
}

func (r *feedbackRequestRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, CollectionFeedbackRequests))
}

func (r *feedbackRequestRepository) Create(ctx context.Context, req *model.FeedbackRequest) error {
	d := &feedbackRequestDoc{
		ID:                req.ID.String(),
		EmployeeID:        req.EmployeeID,
		ManagerEmployeeID: req.ManagerEmployeeID,
		Message:           req.Message,
		Seen:              req.Seen,
		CreatedAt:         req.CreatedAt,
	}

	if _, err := r.collection().Doc(d.ID).Create(ctx, d); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(ErrAlreadyExists, "feedback request already exists", goerr.V("id", req.ID))
		}
		return goerr.Wrap(err, "failed to create feedback request", goerr.V("id", req.ID))
	}
	return nil
}

func (r *feedbackRequestRepository) Get(ctx context.Context, id model.FeedbackRequestID) (*model.FeedbackRequest, error) {
	docSnap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "feedback request not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get feedback request", goerr.V("id", id))
	}

	var d feedbackRequestDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode feedback request", goerr.V("id", id))
	}
	return d.toModel(), nil
}

func (r *feedbackRequestRepository) ListByManager(ctx context.Context, managerID string) ([]*model.FeedbackRequest, error) {
	return r.list(ctx, r.collection().Where("manager_employee_id", "==", managerID))
}

func (r *feedbackRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*model.FeedbackRequest, error) {
	return r.list(ctx, r.collection().Where("employee_id", "==", employeeID))
}

func (r *feedbackRequestRepository) MarkSeen(ctx context.Context, id model.FeedbackRequestID) (bool, error) {
	docRef := r.collection().Doc(id.String())

	var changed bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		changed = false

		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "feedback request not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get feedback request", goerr.V("id", id))
		}

		var d feedbackRequestDoc
		if err := docSnap.DataTo(&d); err != nil {
			return goerr.Wrap(err, "failed to decode feedback request", goerr.V("id", id))
		}
		if d.Seen {
			return nil
		}

		changed = true
		return tx.Update(docRef, []firestore.Update{{Path: "seen", Value: true}})
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to mark feedback request seen", goerr.V("id", id))
	}

	return changed, nil
}

func (r *feedbackRequestRepository) MarkAllSeen(ctx context.Context, managerID string) (int, error) {
	q := r.collection().
		Where("manager_employee_id", "==", managerID).
		Where("seen", "==", false)

	count, err := markAllSeen(ctx, r.client, q)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to mark feedback requests seen", goerr.V("manager_id", managerID))
	}
	return count, nil
}

func (r *feedbackRequestRepository) CountUnseen(ctx context.Context, managerID string) (int, error) {
	count, err := countQuery(ctx, r.collection().
		Where("manager_employee_id", "==", managerID).
		Where("seen", "==", false))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count unseen feedback requests", goerr.V("manager_id", managerID))
	}
	return count, nil
}

func (r *feedbackRequestRepository) list(ctx context.Context, q firestore.Query) ([]*model.FeedbackRequest, error) {
	iter := q.OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	requests := make([]*model.FeedbackRequest, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate feedback requests")
		}

		var d feedbackRequestDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode feedback request", goerr.V("doc_id", docSnap.Ref.ID))
		}
		requests = append(requests, d.toModel())
	}

	return requests, nil
}

// markAllSeen sets seen=true on every document matched by q
func markAllSeen(ctx context.Context, client *firestore.Client, q firestore.Query) (int, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	bulkWriter := client.BulkWriter(ctx)
	count := 0

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bulkWriter.End()
			return 0, goerr.Wrap(err, "failed to iterate documents")
		}

		if _, err := bulkWriter.Update(doc.Ref, []firestore.Update{{Path: "seen", Value: true}}); err != nil {
			bulkWriter.End()
			return 0, goerr.Wrap(err, "failed to enqueue update", goerr.V("doc_id", doc.Ref.ID))
		}
		count++
	}

	bulkWriter.End()

	return count, nil
}
