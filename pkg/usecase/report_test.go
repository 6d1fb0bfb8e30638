package usecase_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
	"github.com/PrashantJha183/Feedback-backend/pkg/usecase"
)

// pageRecorder keeps written lines grouped by page
type pageRecorder struct {
	pages [][]string
}

func (r *pageRecorder) NewCanvas() interfaces.ReportCanvas {
	r.pages = [][]string{{}}
	return r
}

func (r *pageRecorder) WriteLine(text string) {
	last := len(r.pages) - 1
	r.pages[last] = append(r.pages[last], text)
}

func (r *pageRecorder) NewPage() {
	r.pages = append(r.pages, []string{})
}

func (r *pageRecorder) Finalize() ([]byte, error) {
	var buf bytes.Buffer
	for _, page := range r.pages {
		buf.WriteString(strings.Join(page, "\n"))
		buf.WriteString("\f")
	}
	return buf.Bytes(), nil
}

func TestFeedbackUseCase_ExportReport(t *testing.T) {
	ctx := context.Background()

	t.Run("layout", func(t *testing.T) {
		recorder := &pageRecorder{}
		uc, _ := setupUseCases(t,
			usecase.WithReportRenderer(recorder),
			usecase.WithReportConfig(usecase.ReportConfig{LinesPerPage: 2}),
		)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		for range 5 {
			createFeedback(t, uc, "M1", "E1", types.SentimentNegative)
		}

		out, err := uc.Feedback.ExportReport(ctx, "E1")
		gt.NoError(t, err).Required()
		gt.Bool(t, len(out) > 0).True()

		gt.Array(t, recorder.pages).Length(3).Required()
		gt.Array(t, recorder.pages[0]).Length(3).Required()
		gt.Value(t, recorder.pages[0][0]).Equal("Feedback Report for Employee ID: E1")
		gt.Value(t, recorder.pages[0][1]).Equal("NEGATIVE - Good work | More docs")
		gt.Array(t, recorder.pages[1]).Length(2)
		gt.Array(t, recorder.pages[2]).Length(1)
	})

	t.Run("multi-line text is flattened", func(t *testing.T) {
		recorder := &pageRecorder{}
		uc, _ := setupUseCases(t, usecase.WithReportRenderer(recorder))
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")

		_, err := uc.Feedback.Create(ctx, usecase.CreateFeedbackInput{
			ManagerID:   "M1",
			EmployeeID:  "E1",
			Strengths:   "clear\nwriting",
			Improvement: "tests",
			Sentiment:   types.SentimentPositive,
		})
		gt.NoError(t, err).Required()

		_, err = uc.Feedback.ExportReport(ctx, "E1")
		gt.NoError(t, err).Required()
		gt.Array(t, recorder.pages).Length(1).Required()
		gt.Value(t, recorder.pages[0][1]).Equal("POSITIVE - clear writing | tests")
	})

	t.Run("pdf output", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		registerManager(t, uc, "M1", "Alice")
		registerEmployee(t, uc, "E1", "Bob", "M1")
		createFeedback(t, uc, "M1", "E1", types.SentimentPositive)

		out, err := uc.Feedback.ExportReport(ctx, "E1")
		gt.NoError(t, err).Required()
		gt.Bool(t, bytes.HasPrefix(out, []byte("%PDF-"))).True()
	})

	t.Run("unknown employee", func(t *testing.T) {
		uc, _ := setupUseCases(t)
		_, err := uc.Feedback.ExportReport(ctx, "E9")
		gt.Error(t, err).Is(usecase.ErrEmployeeNotFound)
	})
}
