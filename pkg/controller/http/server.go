package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/PrashantJha183/Feedback-backend/pkg/usecase"
	"github.com/PrashantJha183/Feedback-backend/pkg/utils/logging"
)

const welcomeMessage = "Welcome to the Feedback API"

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, messageResponse{Message: welcomeMessage})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.registerUser)
		r.Get("/", s.listUsers)
		r.Post("/login", s.login)
		r.Post("/password/reset", s.resetPassword)
		r.Get("/dashboard/manager/{manager_id}", s.managerDashboard)
		r.Get("/dashboard/employee/{employee_id}", s.employeeDashboard)
		r.Get("/{employee_id}", s.getUser)
		r.Put("/{employee_id}", s.updateUser)
		r.Delete("/{employee_id}", s.deleteUser)
		r.Put("/{employee_id}/password", s.changePassword)
	})

	r.Route("/feedback", func(r chi.Router) {
		r.Post("/", s.createFeedback)
		r.Put("/{feedback_id}", s.updateFeedback)
		r.Delete("/{feedback_id}", s.deleteFeedback)
		r.Delete("/manager/{manager_id}", s.deleteFeedbackByManager)
		r.Patch("/acknowledge/{feedback_id}", s.acknowledgeFeedback)
		r.Post("/comment/{feedback_id}", s.addComment)
		r.Get("/employee/{employee_id}", s.employeeHistory)
		r.Get("/manager/{manager_id}", s.managerHistory)
		r.Get("/export/{employee_id}", s.exportReport)

		// {id} is a manager ID or a request ID depending on the route
		r.Post("/request", s.createFeedbackRequest)
		r.Get("/requests/employee/{employee_id}", s.employeeFeedbackRequests)
		r.Get("/requests/{id}", s.managerFeedbackRequests)
		r.Get("/requests/{id}/count-unseen", s.countUnseenFeedbackRequests)
		r.Patch("/requests/{id}/seen", s.markFeedbackRequestSeen)
		r.Patch("/requests/{id}/mark-all-seen", s.markAllFeedbackRequestsSeen)
	})

	// {id} is an employee ID or a notification ID depending on the route
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/{id}", s.listNotifications)
		r.Get("/{id}/count-unseen", s.countUnseenNotifications)
		r.Patch("/{id}/seen", s.markNotificationSeen)
		r.Patch("/{id}/mark-all-seen", s.markAllNotificationsSeen)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
