package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

type createFeedbackRequestRequest struct {
	EmployeeID        string `json:"employee_id"`
	ManagerEmployeeID string `json:"manager_employee_id"`
	Message           string `json:"message"`
}

func toFeedbackRequestsResponse(list []*model.FeedbackRequest) []feedbackRequestResponse {
	resp := make([]feedbackRequestResponse, len(list))
	for i, req := range list {
		resp[i] = toFeedbackRequestResponse(req)
	}
	return resp
}

func (s *Server) createFeedbackRequest(w http.ResponseWriter, r *http.Request) {
	var req createFeedbackRequestRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(r, w, err)
		return
	}

	created, err := s.uc.FeedbackRequest.Create(r.Context(), req.EmployeeID, req.ManagerEmployeeID, req.Message)
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toFeedbackRequestResponse(created))
}

func (s *Server) managerFeedbackRequests(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.FeedbackRequest.ListForManager(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toFeedbackRequestsResponse(list))
}

func (s *Server) employeeFeedbackRequests(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.FeedbackRequest.ListForEmployee(r.Context(), chi.URLParam(r, "employee_id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toFeedbackRequestsResponse(list))
}

func (s *Server) countUnseenFeedbackRequests(w http.ResponseWriter, r *http.Request) {
	count, err := s.uc.FeedbackRequest.CountUnseen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, countResponse{Count: count})
}

func (s *Server) markFeedbackRequestSeen(w http.ResponseWriter, r *http.Request) {
	id := model.FeedbackRequestID(chi.URLParam(r, "id"))
	if err := s.uc.FeedbackRequest.MarkSeen(r.Context(), id); err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, messageResponse{Message: "Feedback request marked as seen"})
}

func (s *Server) markAllFeedbackRequestsSeen(w http.ResponseWriter, r *http.Request) {
	count, err := s.uc.FeedbackRequest.MarkAllSeen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, countResponse{Count: count})
}
