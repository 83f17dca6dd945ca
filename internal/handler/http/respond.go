package http

import (
	"encoding/json"
	"net/http"

	"github.com/civicgrid/civicwatch/internal/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to encode response body")
	}
}
