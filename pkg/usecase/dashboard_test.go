package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
	"github.com/PrashantJha183/Feedback-backend/pkg/usecase"
)

func TestDashboardUseCase_ManagerDashboard(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)
	registerManager(t, uc, "M1", "Alice")
	registerManager(t, uc, "M2", "Carol")
	registerEmployee(t, uc, "E1", "Bob", "M1")
	registerEmployee(t, uc, "E2", "Dave", "M1")
	registerEmployee(t, uc, "E3", "Erin", "M2")

	createFeedback(t, uc, "M1", "E1", types.SentimentPositive)
	createFeedback(t, uc, "M2", "E1", types.SentimentNegative)
	ack := createFeedback(t, uc, "M1", "E1", types.SentimentPositive)
	createFeedback(t, uc, "M1", "E3", types.SentimentNeutral)

	_, err := uc.Feedback.Acknowledge(ctx, ack.ID, "E1")
	gt.NoError(t, err).Required()

	stats, err := uc.Dashboard.ManagerDashboard(ctx, "M1")
	gt.NoError(t, err).Required()
	gt.Array(t, stats).Length(2).Required()

	gt.Value(t, *stats[0]).Equal(model.EmployeeStats{
		EmployeeID:    "E1",
		EmployeeName:  "Bob",
		FeedbackCount: 3,
		Positive:      2,
		Negative:      1,
		Acknowledged:  1,
	})
	gt.Value(t, *stats[1]).Equal(model.EmployeeStats{
		EmployeeID:   "E2",
		EmployeeName: "Dave",
	})

	_, err = uc.Dashboard.ManagerDashboard(ctx, "M9")
	gt.Error(t, err).Is(usecase.ErrManagerNotFound)

	_, err = uc.Dashboard.ManagerDashboard(ctx, "E1")
	gt.Error(t, err).Is(usecase.ErrRoleMismatch)
}

func TestDashboardUseCase_EmployeeDashboard(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)
	registerManager(t, uc, "M1", "Alice")
	registerManager(t, uc, "M2", "Carol")
	registerEmployee(t, uc, "E1", "Bob", "M1")

	older := createFeedback(t, uc, "M2", "E1", types.SentimentNeutral)
	newer := createFeedback(t, uc, "M1", "E1", types.SentimentPositive)
	gt.NoError(t, uc.User.Delete(ctx, "M1", "M2")).Required()

	timeline, err := uc.Dashboard.EmployeeDashboard(ctx, "E1")
	gt.NoError(t, err).Required()
	gt.Array(t, timeline).Length(2).Required()

	gt.Value(t, timeline[0].FeedbackID).Equal(newer.ID)
	gt.Value(t, timeline[0].ManagerName).Equal("Alice")
	gt.Value(t, timeline[0].Sentiment).Equal(types.SentimentPositive)
	gt.Value(t, timeline[1].FeedbackID).Equal(older.ID)
	gt.Value(t, timeline[1].ManagerName).Equal(model.UnknownName)

	_, err = uc.Dashboard.EmployeeDashboard(ctx, "E9")
	gt.Error(t, err).Is(usecase.ErrEmployeeNotFound)
}
