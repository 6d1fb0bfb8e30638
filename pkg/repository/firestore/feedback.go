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
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

type feedbackRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

type commentDoc struct {
	EmployeeID string `firestore:"employee_id"`
	Text       string `firestore:"text"`
}

type feedbackDoc struct {
	ID           string       `firestore:"id"`
	ManagerID    string       `firestore:"manager_id"`
	EmployeeID   string       `firestore:"employee_id"`
	Strengths    string       `firestore:"strengths"`
	Improvement  string       `firestore:"improvement"`
	Sentiment    string       `firestore:"sentiment"`
	Anonymous    bool         `firestore:"anonymous"`
	Tags         []string     `firestore:"tags"`
	Comments     []commentDoc `firestore:"comments"`
	Acknowledged bool         `firestore:"acknowledged"`
	CreatedAt    time.Time    `firestore:"created_at"`
}

func toFeedbackDoc(f *model.Feedback) *feedbackDoc {
	comments := make([]commentDoc, 0, len(f.Comments))
	for _, c := range f.Comments {
		comments = append(comments, commentDoc{EmployeeID: c.EmployeeID, Text: c.Text})
	}
	tags := make([]string, len(f.Tags))
	copy(tags, f.Tags)

	return &feedbackDoc{
		ID:           f.ID.String(),
		ManagerID:    f.ManagerID,
		EmployeeID:   f.EmployeeID,
		Strengths:    f.Strengths,
		Improvement:  f.Improvement,
		Sentiment:    f.Sentiment.String(),
		Anonymous:    f.Anonymous,
		Tags:         tags,
		Comments:     comments,
		Acknowledged: f.Acknowledged,
		CreatedAt:    f.CreatedAt,
	}
}

func (d *feedbackDoc) toModel() *model.Feedback {
	comments := make([]model.Comment, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, model.Comment{EmployeeID: c.EmployeeID, Text: c.Text})
	}
	tags := make([]string, len(d.Tags))
	copy(tags, d.Tags)

	return &model.Feedback{
		ID:           model.FeedbackID(d.ID),
		ManagerID:    d.ManagerID,
		EmployeeID:   d.EmployeeID,
		Strengths:    d.Strengths,
		Improvement:  d.Improvement,
		Sentiment:    types.Sentiment(d.Sentiment),
		Anonymous:    d.Anonymous,
		Tags:         tags,
		Comments:     comments,
		Acknowledged: d.Acknowledged,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *feedbackRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, CollectionFeedbacks))
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	if _, err := r.collection().Doc(feedback.ID.String()).Create(ctx, toFeedbackDoc(feedback)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(ErrAlreadyExists, "feedback already exists", goerr.V("id", feedback.ID))
		}
		return goerr.Wrap(err, "failed to create feedback", goerr.V("id", feedback.ID))
	}
	return nil
}

func (r *feedbackRepository) Get(ctx context.Context, id model.FeedbackID) (*model.Feedback, error) {
	docSnap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get feedback", goerr.V("id", id))
	}

	var d feedbackDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode feedback", goerr.V("id", id))
	}
	return d.toModel(), nil
}

func (r *feedbackRepository) Update(ctx context.Context, feedback *model.Feedback) error {
	tags := make([]string, len(feedback.Tags))
	copy(tags, feedback.Tags)

	_, err := r.collection().Doc(feedback.ID.String()).Update(ctx, []firestore.Update{
		{Path: "strengths", Value: feedback.Strengths},
		{Path: "improvement", Value: feedback.Improvement},
		{Path: "sentiment", Value: feedback.Sentiment.String()},
		{Path: "anonymous", Value: feedback.Anonymous},
		{Path: "tags", Value: tags},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", feedback.ID))
		}
		return goerr.Wrap(err, "failed to update feedback", goerr.V("id", feedback.ID))
	}
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id model.FeedbackID) error {
	docRef := r.collection().Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check feedback existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete feedback", goerr.V("id", id))
	}
	return nil
}

func (r *feedbackRepository) DeleteByManager(ctx context.Context, managerID string) (int, error) {
	iter := r.collection().Where("manager_id", "==", managerID).Documents(ctx)
	defer iter.Stop()

	bulkWriter := r.client.BulkWriter(ctx)
	deleted := 0

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bulkWriter.End()
			return 0, goerr.Wrap(err, "failed to iterate feedback for deletion", goerr.V("manager_id", managerID))
		}

		if _, err := bulkWriter.Delete(doc.Ref); err != nil {
			bulkWriter.End()
			return 0, goerr.Wrap(err, "failed to delete feedback", goerr.V("manager_id", managerID))
		}
		deleted++
	}

	bulkWriter.End()

	return deleted, nil
}

func (r *feedbackRepository) Acknowledge(ctx context.Context, id model.FeedbackID) (bool, error) {
	docRef := r.collection().Doc(id.String())

	var changed bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		changed = false

		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get feedback", goerr.V("id", id))
		}

		acked, err := docSnap.DataAt("acknowledged")
		if err == nil {
			if v, ok := acked.(bool); ok && v {
				return nil
			}
		}

		changed = true
		return tx.Update(docRef, []firestore.Update{{Path: "acknowledged", Value: true}})
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to acknowledge feedback", goerr.V("id", id))
	}

	return changed, nil
}

func (r *feedbackRepository) AddComment(ctx context.Context, id model.FeedbackID, comment model.Comment) error {
	docRef := r.collection().Doc(id.String())

	// ArrayUnion drops duplicate elements, so the append runs in a transaction
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "feedback not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get feedback", goerr.V("id", id))
		}

		var d feedbackDoc
		if err := docSnap.DataTo(&d); err != nil {
			return goerr.Wrap(err, "failed to decode feedback", goerr.V("id", id))
		}

		comments := append(d.Comments, commentDoc{EmployeeID: comment.EmployeeID, Text: comment.Text})
		return tx.Update(docRef, []firestore.Update{{Path: "comments", Value: comments}})
	})
	if err != nil {
		return goerr.Wrap(err, "failed to add comment", goerr.V("id", id))
	}

	return nil
}

func (r *feedbackRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*model.Feedback, error) {
	return r.list(ctx, r.collection().Where("employee_id", "==", employeeID))
}

func (r *feedbackRepository) ListByManager(ctx context.Context, managerID string) ([]*model.Feedback, error) {
	return r.list(ctx, r.collection().Where("manager_id", "==", managerID))
}

func (r *feedbackRepository) list(ctx context.Context, q firestore.Query) ([]*model.Feedback, error) {
	iter := q.OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	feedbacks := make([]*model.Feedback, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate feedback")
		}

		var d feedbackDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode feedback", goerr.V("doc_id", docSnap.Ref.ID))
		}
		feedbacks = append(feedbacks, d.toModel())
	}

	return feedbacks, nil
}
