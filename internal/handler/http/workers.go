package http

import (
	"net/http"

	"github.com/civicgrid/civicwatch/internal/logger"
)

func (h *Handler) listWorkers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	workers, err := h.services.WorkerService.GetWorkers(ctx)
	if err != nil {
		log.Err(err).Msg("worker listing failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	writeJSON(w, r, http.StatusOK, workers)
}
