package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/mock"
	"github.com/civicgrid/civicwatch/models"
)

func TestReportService_CreateReport_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewReportService(b.facade(), nil, logger.Nop())

	_, err := svc.CreateReport(context.Background(), models.Report{Title: "no type or email"}, nil, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestReportService_CreateReport_RemoteFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewReportService(b.facade(), nil, logger.Nop())

	report := models.Report{
		Title:     "Pothole",
		Type:      models.TypePothole,
		UserEmail: "citizen@example.com",
	}

	b.remoteReports.EXPECT().
		CreateReport(gomock.Any(), gomock.Cond(func(r models.Report) bool {
			return r.Title == "Pothole" && r.Status == models.StatusPending
		})).
		Return(models.Report{ID: "report-1", Title: "Pothole", Status: models.StatusPending}, nil)

	b.remoteNotifications.EXPECT().
		CreateNotification(gomock.Any(), gomock.Cond(func(n models.Notification) bool {
			return n.RecipientRole == models.RoleAdmin && n.ReportID == "report-1"
		})).
		Return(models.Notification{}, nil)

	created, err := svc.CreateReport(context.Background(), report, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "report-1", created.ID)
}

func TestReportService_CreateReport_FallsBackToLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewReportService(b.facade(), nil, logger.Nop())

	report := models.Report{
		Title:     "Pothole",
		Type:      models.TypePothole,
		UserEmail: "citizen@example.com",
	}

	b.remoteReports.EXPECT().
		CreateReport(gomock.Any(), gomock.Any()).
		Return(models.Report{}, errors.New("connection refused"))
	b.localReports.EXPECT().
		CreateReport(gomock.Any(), gomock.Any()).
		Return(models.Report{ID: "report-1"}, nil)

	// the notification fan-out runs the same fallback policy
	b.remoteNotifications.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		Return(models.Notification{}, nil)

	created, err := svc.CreateReport(context.Background(), report, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "report-1", created.ID)
}

func TestReportService_CreateReport_ClassifierVerdictIsAdvisory(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	classifier := mock.NewMockImageClassifier(ctrl)
	svc := NewReportService(b.facade(), classifier, logger.Nop())

	image := []byte("image-bytes")

	b.remoteImages.EXPECT().
		UploadImage(gomock.Any(), image, "photo.jpg", "reports").
		Return("https://media.example/reports/photo.jpg", nil)
	classifier.EXPECT().
		ValidateImage(gomock.Any(), image, models.TypePothole).
		Return(models.AIValidation{}, errors.New("classifier down"))

	b.remoteReports.EXPECT().
		CreateReport(gomock.Any(), gomock.Cond(func(r models.Report) bool {
			// the report still goes through, without a verdict
			return r.Image == "https://media.example/reports/photo.jpg" && r.AIValidation == nil
		})).
		Return(models.Report{ID: "report-1"}, nil)
	b.remoteNotifications.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		Return(models.Notification{}, nil)

	_, err := svc.CreateReport(context.Background(), models.Report{
		Title:     "Pothole",
		Type:      models.TypePothole,
		UserEmail: "citizen@example.com",
	}, image, "photo.jpg")
	require.NoError(t, err)
}

func TestReportService_UpdateReport_EmptyPatchIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewReportService(b.facade(), nil, logger.Nop())

	err := svc.UpdateReport(context.Background(), "report-1", models.ReportPatch{})
	assert.NoError(t, err)
}

func TestReportService_UploadImage_RemoteWithoutMediaFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	b.remote.Images = nil
	svc := NewReportService(b.facade(), nil, logger.Nop())

	b.localImages.EXPECT().
		UploadImage(gomock.Any(), []byte("image-bytes"), "photo.jpg", "reports").
		Return("data:image/jpeg;base64,xxx", nil)

	url, err := svc.UploadImage(context.Background(), []byte("image-bytes"), "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,xxx", url)
}

func TestReportService_ApproveReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewReportService(b.localOnlyFacade(), nil, logger.Nop())

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(models.Report{ID: "report-1", Title: "Pothole", Status: models.StatusPending, UserEmail: "citizen@example.com"}, nil)
	b.localReports.EXPECT().
		UpdateReport(gomock.Any(), "report-1", gomock.Cond(func(p models.ReportPatch) bool {
			return p.Status != nil && *p.Status == models.StatusApproved
		})).
		Return(nil)
	b.localNotifications.EXPECT().
		CreateNotification(gomock.Any(), gomock.Cond(func(n models.Notification) bool {
			return n.RecipientEmail == "citizen@example.com"
		})).
		Return(models.Notification{}, nil)

	require.NoError(t, svc.ApproveReport(context.Background(), "report-1"))
}

func TestReportService_ApproveReport_WrongState(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewReportService(b.localOnlyFacade(), nil, logger.Nop())

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(models.Report{ID: "report-1", Status: models.StatusCompleted}, nil)

	err := svc.ApproveReport(context.Background(), "report-1")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestReportService_AssignReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewReportService(b.localOnlyFacade(), nil, logger.Nop())

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(models.Report{
			ID:        "report-1",
			Title:     "Pothole",
			Location:  "Elm st",
			Status:    models.StatusApproved,
			UserEmail: "citizen@example.com",
		}, nil)
	b.localWorkers.EXPECT().
		GetWorker(gomock.Any(), "worker-1").
		Return(models.Worker{ID: "worker-1", Name: "Boris", Email: "boris@city.example", Status: models.WorkerAvailable}, nil)
	b.localReports.EXPECT().
		UpdateReport(gomock.Any(), "report-1", gomock.Cond(func(p models.ReportPatch) bool {
			return p.Status != nil && *p.Status == models.StatusAssigned &&
				p.AssignedWorkerID != nil && *p.AssignedWorkerID == "worker-1" &&
				p.AssignedWorker != nil && *p.AssignedWorker == "Boris"
		})).
		Return(nil)
	b.localWorkers.EXPECT().
		SaveWorker(gomock.Any(), gomock.Cond(func(w models.Worker) bool {
			return w.AssignedTasks == 1 && w.Status == models.WorkerBusy
		})).
		Return(nil)
	b.localNotifications.EXPECT().
		CreateNotification(gomock.Any(), gomock.Cond(func(n models.Notification) bool {
			return n.RecipientEmail == "citizen@example.com"
		})).
		Return(models.Notification{}, nil)
	b.localNotifications.EXPECT().
		CreateNotification(gomock.Any(), gomock.Cond(func(n models.Notification) bool {
			return n.RecipientEmail == "boris@city.example"
		})).
		Return(models.Notification{}, nil)

	require.NoError(t, svc.AssignReport(context.Background(), "report-1", "worker-1"))
}

func TestReportService_StartReport_NotTheAssignee(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewReportService(b.localOnlyFacade(), nil, logger.Nop())

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(models.Report{
			ID:               "report-1",
			Status:           models.StatusAssigned,
			AssignedWorkerID: "worker-1",
		}, nil)
	b.localWorkers.EXPECT().
		GetWorker(gomock.Any(), "worker-1").
		Return(models.Worker{ID: "worker-1", Email: "boris@city.example"}, nil)

	err := svc.StartReport(context.Background(), "report-1", "someone-else@city.example")
	assert.ErrorIs(t, err, ErrReportNotAssignedToWorker)
}

func TestReportService_CompleteReport_ReleasesWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewReportService(b.localOnlyFacade(), nil, logger.Nop())

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(models.Report{
			ID:               "report-1",
			Title:            "Pothole",
			Status:           models.StatusInProgress,
			UserEmail:        "citizen@example.com",
			AssignedWorkerID: "worker-1",
			AssignedWorker:   "Boris",
		}, nil)

	// once for the assignee check, once for the counter release
	b.localWorkers.EXPECT().
		GetWorker(gomock.Any(), "worker-1").
		Return(models.Worker{ID: "worker-1", Email: "boris@city.example", Status: models.WorkerBusy, AssignedTasks: 1}, nil).
		Times(2)

	b.localReports.EXPECT().
		UpdateReport(gomock.Any(), "report-1", gomock.Cond(func(p models.ReportPatch) bool {
			return p.Status != nil && *p.Status == models.StatusCompleted && p.CompletedAt != nil
		})).
		Return(nil)
	b.localWorkers.EXPECT().
		SaveWorker(gomock.Any(), gomock.Cond(func(w models.Worker) bool {
			return w.AssignedTasks == 0 && w.Status == models.WorkerAvailable
		})).
		Return(nil)

	b.localNotifications.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		Return(models.Notification{}, nil).
		Times(2)

	require.NoError(t, svc.CompleteReport(context.Background(), "report-1", "boris@city.example"))
}

func TestReportService_NotificationFailureDoesNotFailWorkflow(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewReportService(b.localOnlyFacade(), nil, logger.Nop())

	b.localReports.EXPECT().
		GetReport(gomock.Any(), "report-1").
		Return(models.Report{ID: "report-1", Status: models.StatusPending, UserEmail: "citizen@example.com"}, nil)
	b.localReports.EXPECT().
		UpdateReport(gomock.Any(), "report-1", gomock.Any()).
		Return(nil)
	b.localNotifications.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		Return(models.Notification{}, errors.New("disk full"))

	assert.NoError(t, svc.ApproveReport(context.Background(), "report-1"))
}
