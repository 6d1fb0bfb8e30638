package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
	"github.com/PrashantJha183/Feedback-backend/pkg/usecase"
)

type registerRequest struct {
	EmployeeID        string `json:"employee_id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password" masq:"secret"`
	Role              string `json:"role"`
	ManagerEmployeeID string `json:"manager_employee_id"`
}

type loginRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password" masq:"secret"`
}

type updateUserRequest struct {
	RequesterID       string  `json:"requester_id"`
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Role              *string `json:"role"`
	ManagerEmployeeID *string `json:"manager_employee_id"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" masq:"secret"`
	NewPassword string `json:"new_password" masq:"secret"`
}

type resetPasswordRequest struct {
	RequesterID string `json:"requester_id"`
	EmployeeID  string `json:"employee_id"`
	NewPassword string `json:"new_password" masq:"secret"`
}

type employeeStatsResponse struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	FeedbackCount int    `json:"feedback_count"`
	Positive      int    `json:"positive"`
	Neutral       int    `json:"neutral"`
	Negative      int    `json:"negative"`
	Acknowledged  int    `json:"acknowledged"`
}

type timelineResponse struct {
	FeedbackID   string    `json:"feedback_id"`
	ManagerID    string    `json:"manager_id"`
	ManagerName  string    `json:"manager_name"`
	Strengths    string    `json:"strengths"`
	Improvement  string    `json:"improvement"`
	Sentiment    string    `json:"sentiment"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUsersResponse(users []*model.User) []userResponse {
	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	return resp
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(r, w, err)
		return
	}

	user, err := s.uc.User.Register(r.Context(), usecase.RegisterInput{
		EmployeeID:        req.EmployeeID,
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		Role:              types.Role(req.Role),
		ManagerEmployeeID: req.ManagerEmployeeID,
	})
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toUserResponse(user))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(r, w, err)
		return
	}

	user, err := s.uc.User.Login(r.Context(), req.EmployeeID, req.Password)
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toUserResponse(user))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.uc.User.Get(r.Context(), chi.URLParam(r, "employee_id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toUserResponse(user))
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.uc.User.ListByRole(r.Context(), types.Role(r.URL.Query().Get("role")))
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toUsersResponse(users))
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(r, w, err)
		return
	}

	in := usecase.UpdateUserInput{
		Name:              req.Name,
		Email:             req.Email,
		ManagerEmployeeID: req.ManagerEmployeeID,
	}
	if req.Role != nil {
		role := types.Role(*req.Role)
		in.Role = &role
	}

	user, err := s.uc.User.Update(r.Context(), req.RequesterID, chi.URLParam(r, "employee_id"), in)
	if err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, toUserResponse(user))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")
	if err := s.uc.User.Delete(r.Context(), r.URL.Query().Get("requester_id"), employeeID); err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, messageResponse{Message: "User deleted"})
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(r, w, err)
		return
	}

	if err := s.uc.User.ChangePassword(r.Context(), chi.URLParam(r, "employee_id"), req.OldPassword, req.NewPassword); err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, messageResponse{Message: "Password updated"})
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(r, w, err)
		return
	}

	if err := s.uc.User.ResetPassword(r.Context(), req.RequesterID, req.EmployeeID, req.NewPassword); err != nil {
		handleError(r, w, err)
		return
	}

	writeJSON(r.Context(), w, messageResponse{Message: "Password reset"})
}

func (s *Server) managerDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.uc.Dashboard.ManagerDashboard(r.Context(), chi.URLParam(r, "manager_id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	resp := make([]employeeStatsResponse, len(stats))
	for i, st := range stats {
		resp[i] = employeeStatsResponse(*st)
	}
	writeJSON(r.Context(), w, resp)
}

func (s *Server) employeeDashboard(w http.ResponseWriter, r *http.Request) {
	timeline, err := s.uc.Dashboard.EmployeeDashboard(r.Context(), chi.URLParam(r, "employee_id"))
	if err != nil {
		handleError(r, w, err)
		return
	}

	resp := make([]timelineResponse, len(timeline))
	for i, e := range timeline {
		resp[i] = timelineResponse{
			FeedbackID:   e.FeedbackID.String(),
			ManagerID:    e.ManagerID,
			ManagerName:  e.ManagerName,
			Strengths:    e.Strengths,
			Improvement:  e.Improvement,
			Sentiment:    e.Sentiment.String(),
			Acknowledged: e.Acknowledged,
			CreatedAt:    e.CreatedAt,
		}
	}
	writeJSON(r.Context(), w, resp)
}
