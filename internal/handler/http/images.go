package http

import (
	"io"
	"net/http"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/models"
)

// maxImageSize caps in-memory buffering of uploaded photos at 10 MiB.
const maxImageSize = 10 << 20

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Err(err).Msg("missing file field")
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		log.Err(err).Msg("failed to read uploaded file")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	url, err := h.services.ReportService.UploadImage(ctx, data, header.Filename)
	if err != nil {
		log.Err(err).Msg("image upload failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	writeJSON(w, r, http.StatusCreated, models.UploadResponse{URL: url})
}
