package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/models"
)

// createReportRequest carries a report submission. The optional imageData
// field is a base64-encoded photo that is uploaded before the report is
// stored.
type createReportRequest struct {
	models.Report
	ImageData string `json:"imageData,omitempty"`
	ImageName string `json:"imageName,omitempty"`
}

func (h *Handler) createReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	userEmail, err := utils.UserEmailFromContext(ctx)
	if err != nil {
		log.Err(err).Msg("no user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	req.Report.UserEmail = userEmail

	var image []byte
	if req.ImageData != "" {
		image, err = base64.StdEncoding.DecodeString(req.ImageData)
		if err != nil {
			log.Err(err).Msg("invalid base64 image data")
			http.Error(w, "invalid base64 image data", http.StatusBadRequest)
			return
		}
	}

	created, err := h.services.ReportService.CreateReport(ctx, req.Report, image, req.ImageName)
	if err != nil {
		log.Err(err).Msg("report creation failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	writeJSON(w, r, http.StatusCreated, created)
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	report, err := h.services.ReportService.GetReport(ctx, chi.URLParam(r, "reportID"))
	if err != nil {
		log.Err(err).Msg("report lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	writeJSON(w, r, http.StatusOK, report)
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	reports, err := h.services.ReportService.GetReports(ctx, reportFilterFromQuery(r))
	if err != nil {
		log.Err(err).Msg("report listing failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	writeJSON(w, r, http.StatusOK, reports)
}

func (h *Handler) updateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var patch models.ReportPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.ReportService.UpdateReport(ctx, chi.URLParam(r, "reportID"), patch); err != nil {
		log.Err(err).Msg("report update failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) approveReport(w http.ResponseWriter, r *http.Request) {
	h.workflowAction(w, r, h.services.ReportService.ApproveReport)
}

func (h *Handler) rejectReport(w http.ResponseWriter, r *http.Request) {
	h.workflowAction(w, r, h.services.ReportService.RejectReport)
}

func (h *Handler) assignReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req struct {
		WorkerID string `json:"workerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.ReportService.AssignReport(ctx, chi.URLParam(r, "reportID"), req.WorkerID); err != nil {
		log.Err(err).Msg("report assignment failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) startReport(w http.ResponseWriter, r *http.Request) {
	h.workerAction(w, r, h.services.ReportService.StartReport)
}

func (h *Handler) completeReport(w http.ResponseWriter, r *http.Request) {
	h.workerAction(w, r, h.services.ReportService.CompleteReport)
}

func (h *Handler) workflowAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, reportID string) error) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := action(ctx, chi.URLParam(r, "reportID")); err != nil {
		log.Err(err).Msg("workflow action failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) workerAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, reportID, workerEmail string) error) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	workerEmail, err := utils.UserEmailFromContext(ctx)
	if err != nil {
		log.Err(err).Msg("no user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err = action(ctx, chi.URLParam(r, "reportID"), workerEmail); err != nil {
		log.Err(err).Msg("worker action failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func reportFilterFromQuery(r *http.Request) models.ReportFilter {
	q := r.URL.Query()

	return models.ReportFilter{
		Status:           models.ReportStatus(q.Get("status")),
		Type:             q.Get("type"),
		UserEmail:        q.Get("userEmail"),
		AssignedWorkerID: q.Get("assignedWorkerId"),
	}
}
