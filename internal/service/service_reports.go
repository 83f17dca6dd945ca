package service

import (
	"context"
	"fmt"
	"time"

	"github.com/civicgrid/civicwatch/internal/adapter"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/store"
	"github.com/civicgrid/civicwatch/models"
)

// reportService is the concrete implementation of ReportService. It routes
// every storage call through the facade and layers the report workflow
// (approve, reject, assign, start, complete) with its notification fan-out
// on top.
type reportService struct {
	*facade
	classifier adapter.ImageClassifier
	logger     *logger.Logger
}

func NewReportService(f *facade, classifier adapter.ImageClassifier, logger *logger.Logger) ReportService {
	return &reportService{
		facade:     f,
		classifier: classifier,
		logger:     logger,
	}
}

// CreateReport stores a new report. When image bytes are provided the image
// is uploaded first and its URL embedded in the record; the classifier
// verdict, if one can be obtained, rides along as advisory metadata and
// never blocks submission. Administrators are notified about every new
// report.
func (s *reportService) CreateReport(ctx context.Context, report models.Report, image []byte, imageName string) (models.Report, error) {
	log := logger.FromContext(ctx)

	if report.Title == "" || report.Type == "" || report.UserEmail == "" {
		return models.Report{}, ErrInvalidDataProvided
	}

	if len(image) > 0 {
		url, err := s.UploadImage(ctx, image, imageName)
		if err != nil {
			return models.Report{}, fmt.Errorf("report image upload failed: %w", err)
		}
		report.Image = url

		if s.classifier != nil {
			verdict, err := s.classifier.ValidateImage(ctx, image, report.Type)
			if err != nil {
				log.Warn().Err(err).
					Str("func", "reportService.CreateReport").
					Msg("image validation unavailable, storing report without verdict")
			} else {
				report.AIValidation = &verdict
			}
		}
	}

	report.Status = models.StatusPending

	created, err := runFallback(ctx, s.facade, "CreateReport", func(b *store.Backend) (models.Report, error) {
		return b.Reports.CreateReport(ctx, report)
	})
	if err != nil {
		log.Err(err).
			Str("func", "reportService.CreateReport").
			Str("user_email", report.UserEmail).
			Msg("report creation ended with error")
		return models.Report{}, fmt.Errorf("report creation ended with error: %w", err)
	}

	s.notify(ctx, models.Notification{
		Title:         "New report submitted",
		Message:       fmt.Sprintf("%q was submitted and awaits review", created.Title),
		ReportID:      created.ID,
		RecipientRole: models.RoleAdmin,
	})

	return created, nil
}

func (s *reportService) GetReport(ctx context.Context, reportID string) (models.Report, error) {
	if reportID == "" {
		return models.Report{}, ErrInvalidDataProvided
	}

	return runFallback(ctx, s.facade, "GetReport", func(b *store.Backend) (models.Report, error) {
		return b.Reports.GetReport(ctx, reportID)
	})
}

func (s *reportService) UpdateReport(ctx context.Context, reportID string, patch models.ReportPatch) error {
	if reportID == "" {
		return ErrInvalidDataProvided
	}
	if patch.IsZero() {
		return nil
	}

	return runFallbackErr(ctx, s.facade, "UpdateReport", func(b *store.Backend) error {
		return b.Reports.UpdateReport(ctx, reportID, patch)
	})
}

func (s *reportService) GetReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	return runFallback(ctx, s.facade, "GetReports", func(b *store.Backend) ([]models.Report, error) {
		return b.Reports.GetReports(ctx, filter)
	})
}

func (s *reportService) SubscribeToReports(ctx context.Context, filter models.ReportFilter, callback store.ReportsCallback) (store.Unsubscribe, error) {
	return runFallback(ctx, s.facade, "SubscribeToReports", func(b *store.Backend) (store.Unsubscribe, error) {
		return b.Reports.SubscribeToReports(ctx, filter, callback)
	})
}

// UploadImage stores an image with the facade policy. A remote backend
// without a media service counts as unavailable, so the local data-URI
// fallback still produces a usable image reference.
func (s *reportService) UploadImage(ctx context.Context, data []byte, name string) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidDataProvided
	}

	return runFallback(ctx, s.facade, "UploadImage", func(b *store.Backend) (string, error) {
		if b.Images == nil {
			return "", ErrInvalidDataProvided
		}
		return b.Images.UploadImage(ctx, data, name, "reports")
	})
}

// ApproveReport moves a pending report into the approved state and tells
// the reporter.
func (s *reportService) ApproveReport(ctx context.Context, reportID string) error {
	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	if report.Status != models.StatusPending {
		return fmt.Errorf("%w: cannot approve a %s report", ErrInvalidStatusTransition, report.Status)
	}

	status := models.StatusApproved
	if err = s.UpdateReport(ctx, reportID, models.ReportPatch{Status: &status}); err != nil {
		return err
	}

	s.notify(ctx, models.Notification{
		Title:          "Report approved",
		Message:        fmt.Sprintf("%q was approved and will be assigned to a worker", report.Title),
		ReportID:       reportID,
		RecipientEmail: report.UserEmail,
	})

	return nil
}

// RejectReport moves a pending report into the rejected state and tells
// the reporter.
func (s *reportService) RejectReport(ctx context.Context, reportID string) error {
	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	if report.Status != models.StatusPending {
		return fmt.Errorf("%w: cannot reject a %s report", ErrInvalidStatusTransition, report.Status)
	}

	status := models.StatusRejected
	if err = s.UpdateReport(ctx, reportID, models.ReportPatch{Status: &status}); err != nil {
		return err
	}

	s.notify(ctx, models.Notification{
		Title:          "Report rejected",
		Message:        fmt.Sprintf("%q was reviewed and rejected", report.Title),
		ReportID:       reportID,
		RecipientEmail: report.UserEmail,
	})

	return nil
}

// AssignReport hands an approved report to a worker, bumps the worker's
// task counter and notifies both the reporter and the worker.
func (s *reportService) AssignReport(ctx context.Context, reportID string, workerID string) error {
	if workerID == "" {
		return ErrInvalidDataProvided
	}

	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	if report.Status != models.StatusApproved {
		return fmt.Errorf("%w: cannot assign a %s report", ErrInvalidStatusTransition, report.Status)
	}

	worker, err := runFallback(ctx, s.facade, "GetWorker", func(b *store.Backend) (models.Worker, error) {
		return b.Workers.GetWorker(ctx, workerID)
	})
	if err != nil {
		return err
	}

	status := models.StatusAssigned
	patch := models.ReportPatch{
		Status:           &status,
		AssignedWorkerID: &worker.ID,
		AssignedWorker:   &worker.Name,
	}
	if err = s.UpdateReport(ctx, reportID, patch); err != nil {
		return err
	}

	worker.AssignedTasks++
	worker.Status = models.WorkerBusy
	if err = s.saveWorker(ctx, worker); err != nil {
		s.logger.Warn().Err(err).
			Str("func", "reportService.AssignReport").
			Str("worker_id", worker.ID).
			Msg("worker task counter not updated")
	}

	s.notify(ctx, models.Notification{
		Title:          "Report assigned",
		Message:        fmt.Sprintf("%q was assigned to %s", report.Title, worker.Name),
		ReportID:       reportID,
		RecipientEmail: report.UserEmail,
	})
	s.notify(ctx, models.Notification{
		Title:          "New assignment",
		Message:        fmt.Sprintf("You were assigned to %q at %s", report.Title, report.Location),
		ReportID:       reportID,
		RecipientEmail: worker.Email,
	})

	return nil
}

// StartReport lets the assigned worker move their report into progress.
func (s *reportService) StartReport(ctx context.Context, reportID string, workerEmail string) error {
	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	if report.Status != models.StatusAssigned {
		return fmt.Errorf("%w: cannot start a %s report", ErrInvalidStatusTransition, report.Status)
	}

	if err = s.checkAssignee(ctx, report, workerEmail); err != nil {
		return err
	}

	status := models.StatusInProgress
	now := time.Now().UTC()
	if err = s.UpdateReport(ctx, reportID, models.ReportPatch{Status: &status, StartedAt: &now}); err != nil {
		return err
	}

	s.notify(ctx, models.Notification{
		Title:          "Work started",
		Message:        fmt.Sprintf("%s started working on %q", report.AssignedWorker, report.Title),
		ReportID:       reportID,
		RecipientEmail: report.UserEmail,
	})

	return nil
}

// CompleteReport closes out an in-progress report, releases the worker's
// task slot and notifies the reporter and administrators.
func (s *reportService) CompleteReport(ctx context.Context, reportID string, workerEmail string) error {
	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	if report.Status != models.StatusInProgress {
		return fmt.Errorf("%w: cannot complete a %s report", ErrInvalidStatusTransition, report.Status)
	}

	if err = s.checkAssignee(ctx, report, workerEmail); err != nil {
		return err
	}

	status := models.StatusCompleted
	now := time.Now().UTC()
	if err = s.UpdateReport(ctx, reportID, models.ReportPatch{Status: &status, CompletedAt: &now}); err != nil {
		return err
	}

	worker, workerErr := runFallback(ctx, s.facade, "GetWorker", func(b *store.Backend) (models.Worker, error) {
		return b.Workers.GetWorker(ctx, report.AssignedWorkerID)
	})
	if workerErr == nil {
		if worker.AssignedTasks > 0 {
			worker.AssignedTasks--
		}
		if worker.AssignedTasks == 0 {
			worker.Status = models.WorkerAvailable
		}
		if saveErr := s.saveWorker(ctx, worker); saveErr != nil {
			s.logger.Warn().Err(saveErr).
				Str("func", "reportService.CompleteReport").
				Str("worker_id", worker.ID).
				Msg("worker task counter not updated")
		}
	}

	s.notify(ctx, models.Notification{
		Title:          "Report completed",
		Message:        fmt.Sprintf("%q was resolved", report.Title),
		ReportID:       reportID,
		RecipientEmail: report.UserEmail,
	})
	s.notify(ctx, models.Notification{
		Title:         "Report completed",
		Message:       fmt.Sprintf("%q was resolved by %s", report.Title, report.AssignedWorker),
		ReportID:      reportID,
		RecipientRole: models.RoleAdmin,
	})

	return nil
}

// checkAssignee confirms the acting worker is the one the report was
// assigned to.
func (s *reportService) checkAssignee(ctx context.Context, report models.Report, workerEmail string) error {
	if report.AssignedWorkerID == "" {
		return ErrReportNotAssignedToWorker
	}

	worker, err := runFallback(ctx, s.facade, "GetWorker", func(b *store.Backend) (models.Worker, error) {
		return b.Workers.GetWorker(ctx, report.AssignedWorkerID)
	})
	if err != nil {
		return err
	}
	if worker.Email != workerEmail {
		return ErrReportNotAssignedToWorker
	}

	return nil
}

func (s *reportService) saveWorker(ctx context.Context, worker models.Worker) error {
	return runFallbackErr(ctx, s.facade, "SaveWorker", func(b *store.Backend) error {
		return b.Workers.SaveWorker(ctx, worker)
	})
}

// notify fans a notification out through the facade. Delivery is best
// effort: a failed insert is logged and the triggering operation still
// succeeds.
func (s *reportService) notify(ctx context.Context, notification models.Notification) {
	_, err := runFallback(ctx, s.facade, "CreateNotification", func(b *store.Backend) (models.Notification, error) {
		return b.Notifications.CreateNotification(ctx, notification)
	})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "reportService.notify").
			Str("title", notification.Title).
			Msg("notification not delivered")
	}
}
