package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/civicgrid/civicwatch/internal/adapter"
	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/store"
	"github.com/civicgrid/civicwatch/models"
)

// complaintEmail is the escalation email sent to the municipal authority.
// The two links drive the complaint workflow: the authority clicks one and
// the status lands back on the report without any authenticated round trip.
var complaintEmail = template.Must(template.New("complaint").Parse(`
<h2>Unresolved civic issue report</h2>
<p>A citizen escalated the following report because it has not been resolved:</p>
<ul>
	<li><b>Title:</b> {{.Title}}</li>
	<li><b>Type:</b> {{.Type}}</li>
	<li><b>Location:</b> {{.Location}}</li>
	<li><b>Reported:</b> {{.CreatedAt}}</li>
	<li><b>Status:</b> {{.Status}}</li>
</ul>
<p>{{.Description}}</p>
<p>
	<a href="{{.ProcessingLink}}">Mark as processing</a> |
	<a href="{{.CompletedLink}}">Mark as completed</a>
</p>
`))

type complaintEmailData struct {
	Title          string
	Type           string
	Location       string
	CreatedAt      string
	Status         string
	Description    string
	ProcessingLink string
	CompletedLink  string
}

// complaintService escalates unresolved reports to the municipal authority
// by email and tracks the authority's response on the report record.
type complaintService struct {
	*facade

	relay     adapter.EmailRelay
	baseURL   string
	recipient string

	logger *logger.Logger
}

func NewComplaintService(f *facade, relay adapter.EmailRelay, appCfg config.App, adapterCfg config.Adapter, logger *logger.Logger) ComplaintService {
	return &complaintService{
		facade:    f,
		relay:     relay,
		baseURL:   appCfg.BaseURL,
		recipient: adapterCfg.RelayRecipient,
		logger:    logger,
	}
}

// SendComplaint emails the authority about the caller's unresolved report
// and marks the report as escalated. Only the reporter may escalate, only
// once, and never for an already-resolved report.
func (s *complaintService) SendComplaint(ctx context.Context, reportID string, requesterEmail string) error {
	log := logger.FromContext(ctx)

	if s.relay == nil {
		return ErrRelayNotConfigured
	}
	if reportID == "" || requesterEmail == "" {
		return ErrInvalidDataProvided
	}

	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return err
	}

	if report.UserEmail != requesterEmail {
		return ErrNotReportOwner
	}
	if report.Status == models.StatusCompleted {
		return ErrReportAlreadyResolved
	}
	if report.ComplaintSent {
		return ErrComplaintAlreadySent
	}

	html, err := s.renderComplaintEmail(report)
	if err != nil {
		return err
	}

	err = s.relay.SendEmail(ctx, adapter.EmailMessage{
		To:      s.recipient,
		Subject: fmt.Sprintf("Unresolved report: %s", report.Title),
		HTML:    html,
	})
	if err != nil {
		log.Err(err).
			Str("func", "complaintService.SendComplaint").
			Str("report_id", reportID).
			Msg("complaint email not sent")
		return fmt.Errorf("complaint email not sent: %w", err)
	}

	sent := true
	complaintStatus := models.ComplaintProcessing
	now := time.Now().UTC()
	patch := models.ReportPatch{
		ComplaintSent:   &sent,
		ComplaintStatus: &complaintStatus,
		ComplaintSentAt: &now,
	}
	if err = runFallbackErr(ctx, s.facade, "UpdateReport", func(b *store.Backend) error {
		return b.Reports.UpdateReport(ctx, reportID, patch)
	}); err != nil {
		return err
	}

	s.notifyOwner(ctx, report, "Complaint sent",
		fmt.Sprintf("Your complaint about %q was forwarded to the municipal authority", report.Title))

	return nil
}

// UpdateComplaintStatus records the authority's response. It is reached
// from the links embedded in the complaint email, so it accepts exactly the
// two statuses those links carry.
func (s *complaintService) UpdateComplaintStatus(ctx context.Context, reportID string, status string) (models.Report, error) {
	if status != models.ComplaintProcessing && status != models.ComplaintCompleted {
		return models.Report{}, fmt.Errorf("%w: %q", ErrInvalidComplaintStatus, status)
	}

	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return models.Report{}, err
	}
	if !report.ComplaintSent {
		return models.Report{}, ErrComplaintNotSent
	}

	now := time.Now().UTC()
	patch := models.ReportPatch{
		ComplaintStatus:          &status,
		ComplaintStatusUpdatedAt: &now,
	}
	if err = runFallbackErr(ctx, s.facade, "UpdateReport", func(b *store.Backend) error {
		return b.Reports.UpdateReport(ctx, reportID, patch)
	}); err != nil {
		return models.Report{}, err
	}

	if status == models.ComplaintCompleted {
		s.notifyOwner(ctx, report, "Complaint resolved",
			fmt.Sprintf("The municipal authority marked your complaint about %q as completed", report.Title))
	}

	report.ComplaintStatus = status
	report.ComplaintStatusUpdatedAt = &now

	return report, nil
}

func (s *complaintService) getReport(ctx context.Context, reportID string) (models.Report, error) {
	return runFallback(ctx, s.facade, "GetReport", func(b *store.Backend) (models.Report, error) {
		return b.Reports.GetReport(ctx, reportID)
	})
}

func (s *complaintService) renderComplaintEmail(report models.Report) (string, error) {
	var body bytes.Buffer

	err := complaintEmail.Execute(&body, complaintEmailData{
		Title:          report.Title,
		Type:           report.Type,
		Location:       report.Location,
		CreatedAt:      report.CreatedAt.Format(time.RFC1123),
		Status:         string(report.Status),
		Description:    report.Description,
		ProcessingLink: s.statusLink(report.ID, models.ComplaintProcessing),
		CompletedLink:  s.statusLink(report.ID, models.ComplaintCompleted),
	})
	if err != nil {
		return "", fmt.Errorf("render complaint email: %w", err)
	}

	return body.String(), nil
}

func (s *complaintService) statusLink(reportID, status string) string {
	query := url.Values{}
	query.Set("reportId", reportID)
	query.Set("status", status)

	return fmt.Sprintf("%s/api/complaints/status?%s", s.baseURL, query.Encode())
}

func (s *complaintService) notifyOwner(ctx context.Context, report models.Report, title, message string) {
	_, err := runFallback(ctx, s.facade, "CreateNotification", func(b *store.Backend) (models.Notification, error) {
		return b.Notifications.CreateNotification(ctx, models.Notification{
			Title:          title,
			Message:        message,
			ReportID:       report.ID,
			RecipientEmail: report.UserEmail,
		})
	})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "complaintService.notifyOwner").
			Str("report_id", report.ID).
			Msg("notification not delivered")
	}
}
