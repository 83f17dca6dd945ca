package service

import (
	"context"

	"github.com/civicgrid/civicwatch/internal/store"
	"github.com/civicgrid/civicwatch/models"
)

type ReportService interface {
	CreateReport(ctx context.Context, report models.Report, image []byte, imageName string) (models.Report, error)
	GetReport(ctx context.Context, reportID string) (models.Report, error)
	UpdateReport(ctx context.Context, reportID string, patch models.ReportPatch) error
	GetReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error)
	SubscribeToReports(ctx context.Context, filter models.ReportFilter, callback store.ReportsCallback) (store.Unsubscribe, error)
	UploadImage(ctx context.Context, data []byte, name string) (string, error)

	ApproveReport(ctx context.Context, reportID string) error
	RejectReport(ctx context.Context, reportID string) error
	AssignReport(ctx context.Context, reportID string, workerID string) error
	StartReport(ctx context.Context, reportID string, workerEmail string) error
	CompleteReport(ctx context.Context, reportID string, workerEmail string) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, recipientEmail string, recipientRole models.Role) ([]models.Notification, error)
	MarkNotificationAsRead(ctx context.Context, notificationID string) error
}

type WorkerService interface {
	GetWorkers(ctx context.Context) ([]models.Worker, error)
}

type AuthService interface {
	Register(ctx context.Context, user models.User) (models.User, models.Token, error)
	Login(ctx context.Context, email string, password string) (models.User, models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type ComplaintService interface {
	SendComplaint(ctx context.Context, reportID string, requesterEmail string) error
	UpdateComplaintStatus(ctx context.Context, reportID string, status string) (models.Report, error)
}
