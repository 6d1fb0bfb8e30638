package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
)

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Notification.ListForEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	resp := make([]notificationResponse, len(list))
	for i, n := range list {
		resp[i] = toNotificationResponse(n)
	}
	writeJSON(r.Context(), w, resp)
}

func (s *Server) countUnseenNotifications(w http.ResponseWriter, r *http.Request) {
	count, err := s.uc.Notification.CountUnseen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, countResponse{Count: count})
}

func (s *Server) markNotificationSeen(w http.ResponseWriter, r *http.Request) {
	id := model.NotificationID(chi.URLParam(r, "id"))
	if err := s.uc.Notification.MarkSeen(r.Context(), id); err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, messageResponse{Message: "Notification marked as seen"})
}

func (s *Server) markAllNotificationsSeen(w http.ResponseWriter, r *http.Request) {
	count, err := s.uc.Notification.MarkAllSeen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, countResponse{Count: count})
}
