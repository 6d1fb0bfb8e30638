package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

// ExportReport renders every feedback received by employeeID as a
// paginated document, one line per feedback
func (uc *FeedbackUseCase) ExportReport(ctx context.Context, employeeID string) ([]byte, error) {
	if _, err := uc.repo.User().Get(ctx, employeeID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrEmployeeNotFound, "failed to export report", goerr.V(EmployeeIDKey, employeeID))
		}
		return nil, goerr.Wrap(err, "failed to get employee", goerr.V(EmployeeIDKey, employeeID))
	}

	list, err := uc.repo.Feedback().ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list feedback", goerr.V(EmployeeIDKey, employeeID))
	}

	canvas := uc.renderer.NewCanvas()
	canvas.WriteLine(uc.reportConfig.TitlePrefix + employeeID)

	lines := 0
	for _, f := range list {
		if lines == uc.reportConfig.LinesPerPage {
			canvas.NewPage()
			lines = 0
		}
		canvas.WriteLine(reportLine(f))
		lines++
	}

	out, err := canvas.Finalize()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to finalize report", goerr.V(EmployeeIDKey, employeeID))
	}
	return out, nil
}

// reportLine formats one feedback as "<SENTIMENT> - <strengths> | <improvement>"
func reportLine(f *model.Feedback) string {
	return fmt.Sprintf("%s - %s | %s",
		f.Sentiment.Label(), singleLine(f.Strengths), singleLine(f.Improvement))
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
