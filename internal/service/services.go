package service

import (
	"github.com/civicgrid/civicwatch/internal/adapter"
	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/store"
)

type Services struct {
	AuthService         AuthService
	ReportService       ReportService
	NotificationService NotificationService
	WorkerService       WorkerService
	ComplaintService    ComplaintService
}

// NewServices wires the service layer on top of the configured storage
// backends. relay and classifier may be nil when the corresponding external
// service is not configured; the dependent features then degrade instead of
// failing at startup.
func NewServices(storages *store.Storages, relay adapter.EmailRelay, classifier adapter.ImageClassifier, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	f := newFacade(storages, logger)

	return &Services{
		AuthService:         NewAuthService(f, cfg.App, logger),
		ReportService:       NewReportService(f, classifier, logger),
		NotificationService: NewNotificationService(f, logger),
		WorkerService:       NewWorkerService(f, logger),
		ComplaintService:    NewComplaintService(f, relay, cfg.App, cfg.Adapter, logger),
	}
}
