package http

import (
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
	"github.com/PrashantJha183/Feedback-backend/pkg/usecase"
	"github.com/PrashantJha183/Feedback-backend/pkg/utils/safe"
)

type createFeedbackRequest struct {
	ManagerID   string   `json:"manager_id"`
	EmployeeID  string   `json:"employee_id"`
	Strengths   string   `json:"strengths"`
	Improvement string   `json:"improvement"`
	Sentiment   string   `json:"sentiment"`
	Anonymous   bool     `json:"anonymous"`
	Tags        []string `json:"tags"`
}

type updateFeedbackRequest struct {
	ManagerID   string   `json:"manager_id"`
	Strengths   *string  `json:"strengths"`
	Improvement *string  `json:"improvement"`
	Sentiment   *string  `json:"sentiment"`
	Anonymous   *bool    `json:"anonymous"`
	Tags        []string `json:"tags"`
}

type acknowledgeRequest struct {
	EmployeeID string `json:"employee_id"`
}

type commentRequest struct {
	EmployeeID string `json:"employee_id"`
	Text       string `json:"text"`
}

type deleteCountResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
}

func toFeedbackViewsResponse(views []*model.FeedbackView) []feedbackResponse {
	resp := make([]feedbackResponse, len(views))
	for i, v := range views {
		resp[i] = toFeedbackViewResponse(v)
	}
	return resp
}

func feedbackIDParam(r *http.Request) model.FeedbackID {
	return model.FeedbackID(chi.URLParam(r, "feedback_id"))
}

func (s *Server) createFeedback(w http.ResponseWriter, r *http.Request) {
	var req createFeedbackRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(r, w, err)
		return
	}

	view, err := s.uc.Feedback.Create(r.Context(), usecase.CreateFeedbackInput{
		ManagerID:   req.ManagerID,
		EmployeeID:  req.EmployeeID,
		Strengths:   req.Strengths,
		Improvement: req.Improvement,
		Sentiment:   types.Sentiment(req.Sentiment),
		Anonymous:   req.Anonymous,
		Tags:        req.Tags,
	})
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toFeedbackViewResponse(view))
}

func (s *Server) updateFeedback(w http.ResponseWriter, r *http.Request) {
	var req updateFeedbackRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(r, w, err)
		return
	}

	in := usecase.UpdateFeedbackInput{
		Strengths:   req.Strengths,
		Improvement: req.Improvement,
		Anonymous:   req.Anonymous,
		Tags:        req.Tags,
	}
	if req.Sentiment != nil {
		sentiment := types.Sentiment(*req.Sentiment)
		in.Sentiment = &sentiment
	}

	view, err := s.uc.Feedback.Update(r.Context(), feedbackIDParam(r), req.ManagerID, in)
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toFeedbackViewResponse(view))
}

func (s *Server) deleteFeedback(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Feedback.Delete(r.Context(), feedbackIDParam(r), r.URL.Query().Get("manager_id")); err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, messageResponse{Message: "Feedback deleted"})
}

func (s *Server) deleteFeedbackByManager(w http.ResponseWriter, r *http.Request) {
	count, err := s.uc.Feedback.DeleteAllByManager(r.Context(), chi.URLParam(r, "manager_id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, deleteCountResponse{
		Message:      "Feedback deleted",
		DeletedCount: count,
	})
}

func (s *Server) acknowledgeFeedback(w http.ResponseWriter, r *http.Request) {
	var req acknowledgeRequest
	if err := decodeJSON(r, &req, true); err != nil {
		handleError(r, w, err)
		return
	}
	if req.EmployeeID == "" {
		req.EmployeeID = r.URL.Query().Get("employee_id")
	}

	f, err := s.uc.Feedback.Acknowledge(r.Context(), feedbackIDParam(r), req.EmployeeID)
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toFeedbackResponse(f))
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(r, w, err)
		return
	}

	f, err := s.uc.Feedback.AddComment(r.Context(), feedbackIDParam(r), req.EmployeeID, req.Text)
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toFeedbackResponse(f))
}

func (s *Server) employeeHistory(w http.ResponseWriter, r *http.Request) {
	views, err := s.uc.Feedback.HistoryForEmployee(r.Context(), chi.URLParam(r, "employee_id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toFeedbackViewsResponse(views))
}

func (s *Server) managerHistory(w http.ResponseWriter, r *http.Request) {
	views, err := s.uc.Feedback.HistoryForManager(r.Context(), chi.URLParam(r, "manager_id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toFeedbackViewsResponse(views))
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")
	data, err := s.uc.Feedback.ExportReport(r.Context(), employeeID)
	if err != nil {
		handleError(r, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": "feedback_" + employeeID + ".pdf"}))
	safe.Write(r.Context(), w, data)
}
