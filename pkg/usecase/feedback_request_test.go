package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/usecase"
)

func TestFeedbackRequestUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("unseen count follows mark seen", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		req, err := uc.FeedbackRequest.Create(ctx, "E1", "M1", "please review")
		gt.NoError(t, err).Required()
		gt.Bool(t, req.Seen).False()

		count, err := uc.FeedbackRequest.CountUnseen(ctx, "M1")
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(1)

		gt.NoError(t, uc.FeedbackRequest.MarkSeen(ctx, req.ID)).Required()
		count, err = uc.FeedbackRequest.CountUnseen(ctx, "M1")
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(0)

		// marking again is a no-op
		gt.NoError(t, uc.FeedbackRequest.MarkSeen(ctx, req.ID))
	})

	t.Run("manager is notified", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		_, err := uc.FeedbackRequest.Create(ctx, "E1", "M1", "please review")
		gt.NoError(t, err).Required()

		notifications, err := uc.Notification.ListForEmployee(ctx, "M1")
		gt.NoError(t, err).Required()
		gt.Array(t, notifications).Length(1).Required()
		gt.Value(t, notifications[0].Message).Equal("Feedback request from employee Bob (E1)")
	})

	t.Run("role checks", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		_, err := uc.FeedbackRequest.Create(ctx, "E9", "M1", "x")
		gt.Error(t, err).Is(usecase.ErrEmployeeNotFound)

		_, err = uc.FeedbackRequest.Create(ctx, "E1", "M9", "x")
		gt.Error(t, err).Is(usecase.ErrManagerNotFound)

		_, err = uc.FeedbackRequest.Create(ctx, "E1", "E1", "x")
		gt.Error(t, err).Is(usecase.ErrRoleMismatch)

		_, err = uc.FeedbackRequest.ListForManager(ctx, "M9")
		gt.Error(t, err).Is(usecase.ErrNotFound)

		_, err = uc.FeedbackRequest.CountUnseen(ctx, "M9")
		gt.Error(t, err).Is(usecase.ErrNotFound)

		_, err = uc.FeedbackRequest.ListForEmployee(ctx, "M1")
		gt.Error(t, err).Is(usecase.ErrUnauthorized)

		gt.Error(t, uc.FeedbackRequest.MarkSeen(ctx, model.NewFeedbackRequestID())).Is(usecase.ErrFeedbackRequestNotFound)
	})

	t.Run("lists newest first and marks all seen", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")
		registerEmployee(t, uc, "E2", "Carol", "M1")

		first, err := uc.FeedbackRequest.Create(ctx, "E1", "M1", "one")
		gt.NoError(t, err).Required()
		second, err := uc.FeedbackRequest.Create(ctx, "E2", "M1", "two")
		gt.NoError(t, err).Required()
		_, err = uc.FeedbackRequest.Create(ctx, "E1", "M1", "three")
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.FeedbackRequest.MarkSeen(ctx, second.ID)).Required()

		list, err := uc.FeedbackRequest.ListForManager(ctx, "M1")
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3).Required()
		gt.Value(t, list[0].Message).Equal("three")
		gt.Value(t, list[2].ID).Equal(first.ID)

		mine, err := uc.FeedbackRequest.ListForEmployee(ctx, "E1")
		gt.NoError(t, err).Required()
		gt.Array(t, mine).Length(2)

		changed, err := uc.FeedbackRequest.MarkAllSeen(ctx, "M1")
		gt.NoError(t, err).Required()
		gt.Value(t, changed).Equal(2)

		count, err := uc.FeedbackRequest.CountUnseen(ctx, "M1")
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(0)
	})
}
