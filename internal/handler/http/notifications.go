package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/utils"
)

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email, err := utils.UserEmailFromContext(ctx)
	if err != nil {
		log.Err(err).Msg("no user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	role, err := utils.RoleFromContext(ctx)
	if err != nil {
		log.Err(err).Msg("no role in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	notifications, err := h.services.NotificationService.GetNotifications(ctx, email, role)
	if err != nil {
		log.Err(err).Msg("notification listing failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	writeJSON(w, r, http.StatusOK, notifications)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.services.NotificationService.MarkNotificationAsRead(ctx, chi.URLParam(r, "notificationID")); err != nil {
		log.Err(err).Msg("marking notification as read failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
