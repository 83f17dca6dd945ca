// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CivicWatch Authors

package http

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/models"
)

func (h *Handler) sendComplaint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	requesterEmail, err := utils.UserEmailFromContext(ctx)
	if err != nil {
		log.Err(err).Msg("no user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err = h.services.ComplaintService.SendComplaint(ctx, chi.URLParam(r, "reportID"), requesterEmail); err != nil {
		log.Err(err).Msg("complaint dispatch failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	// 202: the email relay accepted the message, delivery is asynchronous.
	w.WriteHeader(http.StatusAccepted)
}

// complaintStatusPage is served to municipal staff who follow a link from the
// complaint email. It renders a plain confirmation instead of JSON because the
// link is opened in a browser.
var complaintStatusPage = template.Must(template.New("complaintStatus").Parse(`<!DOCTYPE html>
<html>
<head><title>Complaint status updated</title></head>
<body>
<h1>Complaint status updated</h1>
<p>Report <strong>{{.Report.Title}}</strong> ({{.Report.ID}}) complaint is now <strong>{{.Status}}</strong>.</p>
<p>The reporter has been notified.</p>
</body>
</html>
`))

func (h *Handler) complaintStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	reportID := r.URL.Query().Get("reportId")
	status := r.URL.Query().Get("status")

	report, err := h.services.ComplaintService.UpdateComplaintStatus(ctx, reportID, status)
	if err != nil {
		log.Err(err).Msg("complaint status update failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	data := struct {
		Report models.Report
		Status string
	}{Report: report, Status: status}
	if err = complaintStatusPage.Execute(w, data); err != nil {
		log.Err(err).Msg("failed to render complaint status page")
	}
}
