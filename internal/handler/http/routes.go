package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/civicgrid/civicwatch/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)

		// reached from links in the complaint email
		r.Get("/api/complaints/status", h.complaintStatus)
	})

	// routes for any authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/reports", h.createReport)
		r.Get("/api/reports", h.listReports)
		r.Get("/api/reports/watch", h.watchReports)
		r.Get("/api/reports/{reportID}", h.getReport)
		r.Patch("/api/reports/{reportID}", h.updateReport)

		r.Post("/api/images", h.uploadImage)

		r.Post("/api/reports/{reportID}/complaint", h.sendComplaint)

		r.Get("/api/notifications", h.listNotifications)
		r.Post("/api/notifications/{notificationID}/read", h.markNotificationRead)
	})

	// administrator routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.requireRole(models.RoleAdmin))

		r.Post("/api/reports/{reportID}/approve", h.approveReport)
		r.Post("/api/reports/{reportID}/reject", h.rejectReport)
		r.Post("/api/reports/{reportID}/assign", h.assignReport)

		r.Get("/api/workers", h.listWorkers)
	})

	// field worker routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.requireRole(models.RoleWorker))

		r.Post("/api/reports/{reportID}/start", h.startReport)
		r.Post("/api/reports/{reportID}/complete", h.completeReport)
	})

	return router
}
