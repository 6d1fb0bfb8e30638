package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

const dashboardConcurrency = 8

type DashboardUseCase struct {
	repo interfaces.Repository
}

func NewDashboardUseCase(repo interfaces.Repository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// ManagerDashboard returns feedback stats for every employee reporting to
// managerID, ordered by employee ID
func (uc *DashboardUseCase) ManagerDashboard(ctx context.Context, managerID string) ([]*model.EmployeeStats, error) {
	if _, err := requireRole(ctx, uc.repo, managerID, types.RoleManager); err != nil {
		return nil, err
	}

	employees, err := uc.repo.User().ListByManager(ctx, managerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list team members", goerr.V(ManagerIDKey, managerID))
	}

	stats := make([]*model.EmployeeStats, len(employees))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(dashboardConcurrency)

	for i, emp := range employees {
		eg.Go(func() error {
			list, err := uc.repo.Feedback().ListByEmployee(ctx, emp.EmployeeID)
			if err != nil {
				return goerr.Wrap(err, "failed to list feedback", goerr.V(EmployeeIDKey, emp.EmployeeID))
			}

			s := &model.EmployeeStats{
				EmployeeID:   emp.EmployeeID,
				EmployeeName: emp.DisplayName(),
			}
			for _, f := range list {
				s.Add(f)
			}
			stats[i] = s
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// EmployeeDashboard returns the feedback timeline of employeeID, newest first
func (uc *DashboardUseCase) EmployeeDashboard(ctx context.Context, employeeID string) ([]*model.TimelineEntry, error) {
	if _, err := requireRole(ctx, uc.repo, employeeID, types.RoleEmployee); err != nil {
		return nil, err
	}

	list, err := uc.repo.Feedback().ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list feedback", goerr.V(EmployeeIDKey, employeeID))
	}

	names := newNameResolver(uc.repo)
	timeline := make([]*model.TimelineEntry, 0, len(list))
	for _, f := range list {
		managerName, err := names.name(ctx, f.ManagerID)
		if err != nil {
			return nil, err
		}
		timeline = append(timeline, &model.TimelineEntry{
			FeedbackID:   f.ID,
			ManagerID:    f.ManagerID,
			ManagerName:  managerName,
			Strengths:    f.Strengths,
			Improvement:  f.Improvement,
			Sentiment:    f.Sentiment,
			Acknowledged: f.Acknowledged,
			CreatedAt:    f.CreatedAt,
		})
	}
	return timeline, nil
}
