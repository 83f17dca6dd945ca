package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/civicgrid/civicwatch/internal/adapter"
	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/mock"
	"github.com/civicgrid/civicwatch/models"
)

var testAdapterConfig = config.Adapter{
	RelayRecipient: "authority@city.example",
}

func newComplaintService(b *testBackends, relay adapter.EmailRelay) ComplaintService {
	return NewComplaintService(
		b.localOnlyFacade(),
		relay,
		config.App{BaseURL: "https://civicwatch.example"},
		testAdapterConfig,
		logger.Nop(),
	)
}

func pendingReport() models.Report {
	return models.Report{
		ID:          "report-1",
		Title:       "Pothole",
		Description: "Deep one",
		Location:    "Elm st",
		Type:        models.TypePothole,
		Status:      models.StatusPending,
		UserEmail:   "citizen@example.com",
		CreatedAt:   time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
	}
}

func TestComplaintService_SendComplaint(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	relay := mock.NewMockEmailRelay(ctrl)
	svc := newComplaintService(b, relay)

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(pendingReport(), nil)

	relay.EXPECT().
		SendEmail(gomock.Any(), gomock.Cond(func(msg adapter.EmailMessage) bool {
			// html/template escapes the query separator inside href
			return msg.To == "authority@city.example" &&
				strings.Contains(msg.HTML, "https://civicwatch.example/api/complaints/status?reportId=report-1&amp;status=processing") &&
				strings.Contains(msg.HTML, "status=completed")
		})).
		Return(nil)

	b.localReports.EXPECT().
		UpdateReport(gomock.Any(), "report-1", gomock.Cond(func(p models.ReportPatch) bool {
			return p.ComplaintSent != nil && *p.ComplaintSent &&
				p.ComplaintStatus != nil && *p.ComplaintStatus == models.ComplaintProcessing &&
				p.ComplaintSentAt != nil
		})).
		Return(nil)

	b.localNotifications.EXPECT().
		CreateNotification(gomock.Any(), gomock.Cond(func(n models.Notification) bool {
			return n.RecipientEmail == "citizen@example.com"
		})).
		Return(models.Notification{}, nil)

	require.NoError(t, svc.SendComplaint(context.Background(), "report-1", "citizen@example.com"))
}

func TestComplaintService_SendComplaint_NotOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := newComplaintService(b, mock.NewMockEmailRelay(ctrl))

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(pendingReport(), nil)

	err := svc.SendComplaint(context.Background(), "report-1", "stranger@example.com")
	assert.ErrorIs(t, err, ErrNotReportOwner)
}

func TestComplaintService_SendComplaint_AlreadySent(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := newComplaintService(b, mock.NewMockEmailRelay(ctrl))

	report := pendingReport()
	report.ComplaintSent = true

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(report, nil)

	err := svc.SendComplaint(context.Background(), "report-1", "citizen@example.com")
	assert.ErrorIs(t, err, ErrComplaintAlreadySent)
}

func TestComplaintService_SendComplaint_AlreadyResolved(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := newComplaintService(b, mock.NewMockEmailRelay(ctrl))

	report := pendingReport()
	report.Status = models.StatusCompleted

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(report, nil)

	err := svc.SendComplaint(context.Background(), "report-1", "citizen@example.com")
	assert.ErrorIs(t, err, ErrReportAlreadyResolved)
}

func TestComplaintService_SendComplaint_RelayFailureLeavesReportUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	relay := mock.NewMockEmailRelay(ctrl)
	svc := newComplaintService(b, relay)

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(pendingReport(), nil)
	relay.EXPECT().
		SendEmail(gomock.Any(), gomock.Any()).
		Return(errors.New("relay down"))

	err := svc.SendComplaint(context.Background(), "report-1", "citizen@example.com")
	assert.Error(t, err)
}

func TestComplaintService_SendComplaint_NoRelayConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := newComplaintService(b, nil)

	err := svc.SendComplaint(context.Background(), "report-1", "citizen@example.com")
	assert.ErrorIs(t, err, ErrRelayNotConfigured)
}

func TestComplaintService_UpdateComplaintStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := newComplaintService(b, nil)

	report := pendingReport()
	report.ComplaintSent = true
	report.ComplaintStatus = models.ComplaintProcessing

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(report, nil)
	b.localReports.EXPECT().
		UpdateReport(gomock.Any(), "report-1", gomock.Cond(func(p models.ReportPatch) bool {
			return p.ComplaintStatus != nil && *p.ComplaintStatus == models.ComplaintCompleted &&
				p.ComplaintStatusUpdatedAt != nil
		})).
		Return(nil)
	b.localNotifications.EXPECT().
		CreateNotification(gomock.Any(), gomock.Cond(func(n models.Notification) bool {
			return n.RecipientEmail == "citizen@example.com"
		})).
		Return(models.Notification{}, nil)

	updated, err := svc.UpdateComplaintStatus(context.Background(), "report-1", models.ComplaintCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintCompleted, updated.ComplaintStatus)
}

func TestComplaintService_UpdateComplaintStatus_InvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := newComplaintService(b, nil)

	_, err := svc.UpdateComplaintStatus(context.Background(), "report-1", "escalated")
	assert.ErrorIs(t, err, ErrInvalidComplaintStatus)
}

func TestComplaintService_UpdateComplaintStatus_NotSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := newComplaintService(b, nil)

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(pendingReport(), nil)

	_, err := svc.UpdateComplaintStatus(context.Background(), "report-1", models.ComplaintProcessing)
	assert.ErrorIs(t, err, ErrComplaintNotSent)
}
