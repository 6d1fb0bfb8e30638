package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/usecase"
	"github.com/PrashantJha183/Feedback-backend/pkg/utils/errutil"
	"github.com/PrashantJha183/Feedback-backend/pkg/utils/safe"
)

var errBadRequest = goerr.New("malformed request body")

type messageResponse struct {
	Message string `json:"message"`
}

type countResponse struct {
	Count int `json:"count"`
}

type userResponse struct {
	EmployeeID        string `json:"employee_id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	ManagerEmployeeID string `json:"manager_employee_id,omitempty"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		EmployeeID:        u.EmployeeID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role.String(),
		ManagerEmployeeID: u.ManagerEmployeeID,
	}
}

type commentResponse struct {
	EmployeeID string `json:"employee_id"`
	Text       string `json:"text"`
}

type feedbackResponse struct {
	ID           string            `json:"id"`
	ManagerID    string            `json:"manager_id"`
	EmployeeID   string            `json:"employee_id"`
	ManagerName  string            `json:"manager_name,omitempty"`
	EmployeeName string            `json:"employee_name,omitempty"`
	Strengths    string            `json:"strengths"`
	Improvement  string            `json:"improvement"`
	Sentiment    string            `json:"sentiment"`
	Anonymous    bool              `json:"anonymous"`
	Tags         []string          `json:"tags"`
	Comments     []commentResponse `json:"comments"`
	Acknowledged bool              `json:"acknowledged"`
	CreatedAt    time.Time         `json:"created_at"`
}

func toFeedbackResponse(f *model.Feedback) feedbackResponse {
	resp := feedbackResponse{
		ID:           f.ID.String(),
		ManagerID:    f.ManagerID,
		EmployeeID:   f.EmployeeID,
		Strengths:    f.Strengths,
		Improvement:  f.Improvement,
		Sentiment:    f.Sentiment.String(),
		Anonymous:    f.Anonymous,
		Tags:         make([]string, len(f.Tags)),
		Comments:     make([]commentResponse, len(f.Comments)),
		Acknowledged: f.Acknowledged,
		CreatedAt:    f.CreatedAt,
	}
	copy(resp.Tags, f.Tags)
	for i, c := range f.Comments {
		resp.Comments[i] = commentResponse{EmployeeID: c.EmployeeID, Text: c.Text}
	}
	return resp
}

func toFeedbackViewResponse(v *model.FeedbackView) feedbackResponse {
	resp := toFeedbackResponse(v.Feedback)
	resp.ManagerName = v.ManagerName
	resp.EmployeeName = v.EmployeeName
	return resp
}

type feedbackRequestResponse struct {
	ID                string    `json:"id"`
	EmployeeID        string    `json:"employee_id"`
	ManagerEmployeeID string    `json:"manager_employee_id"`
	Message           string    `json:"message"`
	Seen              bool      `json:"seen"`
	CreatedAt         time.Time `json:"created_at"`
}

func toFeedbackRequestResponse(req *model.FeedbackRequest) feedbackRequestResponse {
	return feedbackRequestResponse{
		ID:                req.ID.String(),
		EmployeeID:        req.EmployeeID,
		ManagerEmployeeID: req.ManagerEmployeeID,
		Message:           req.Message,
		Seen:              req.Seen,
		CreatedAt:         req.CreatedAt,
	}
}

type notificationResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Message    string    `json:"message"`
	Seen       bool      `json:"seen"`
	CreatedAt  time.Time `json:"created_at"`
}

func toNotificationResponse(n *model.Notification) notificationResponse {
	return notificationResponse{
		ID:         n.ID.String(),
		EmployeeID: n.EmployeeID,
		Message:    n.Message,
		Seen:       n.Seen,
		CreatedAt:  n.CreatedAt,
	}
}

// writeJSON writes v with status 200
func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(ctx, w, data)
}

// decodeJSON reads the request body into v. An empty body is accepted when
// optional is true.
func decodeJSON(r *http.Request, v any, optional bool) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return goerr.Wrap(errBadRequest, err.Error())
	}
	return nil
}

// statusOf maps use case error kinds to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrConflict), errors.Is(err, usecase.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func handleError(r *http.Request, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}
