package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
)

var (
	ErrNotFound      = interfaces.ErrNotFound
	ErrAlreadyExists = interfaces.ErrAlreadyExists
)

type Firestore struct {
	client          *firestore.Client
	user            *userRepository
	feedback        *feedbackRepository
	feedbackRequest *feedbackRequestRepository
	notification    *notificationRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prepends prefix to every collection name. Tests use
// it to isolate runs sharing one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.user.collectionPrefix = prefix
		f.feedback.collectionPrefix = prefix
		f.feedbackRequest.collectionPrefix = prefix
		f.notification.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:          client,
		user:            &userRepository{client: client},
		feedback:        &feedbackRepository{client: client},
		feedbackRequest: &feedbackRequestRepository{client: client},
		notification:    &notificationRepository{client: client},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Feedback() interfaces.FeedbackRepository {
	return f.feedback
}

func (f *Firestore) FeedbackRequest() interfaces.FeedbackRequestRepository {
	return f.feedbackRequest
}

func (f *Firestore) Notification() interfaces.NotificationRepository {
	return f.notification
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// Collection names without prefix. The migrate command defines indexes
// against these names.
const (
	CollectionUsers            = "users"
	CollectionFeedbacks        = "feedbacks"
	CollectionFeedbackRequests = "feedback_requests"
	CollectionNotifications    = "notifications"
)

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

// countQuery runs a server side COUNT aggregation over q
func countQuery(ctx context.Context, q firestore.Query) (int, error) {
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to run count aggregation")
	}

	v, ok := res["all"]
	if !ok {
		return 0, goerr.New("count aggregation returned no result")
	}
	pv, ok := v.(*firestorepb.Value)
	if !ok {
		return 0, goerr.New("unexpected count aggregation value", goerr.V("value", v))
	}

	return int(pv.GetIntegerValue()), nil
}
