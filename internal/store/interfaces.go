package store

import (
	"context"

	"github.com/civicgrid/civicwatch/models"
)

// ReportsCallback receives the full filtered, ordered report set on every
// delivery. Both backends deliver the same payload shape so subscribers are
// backend-agnostic.
type ReportsCallback func(reports []models.Report)

// Unsubscribe cancels a subscription and waits until its background work has
// stopped. Safe to call more than once.
type Unsubscribe func()

// ReportStore is the report persistence contract implemented by both the
// remote (PostgreSQL + Redis) and local (SQLite collections) adapters.
type ReportStore interface {
	// CreateReport persists a new report, assigning its id and stamping
	// createdAt/updatedAt with the backend's clock. Status defaults to
	// pending when empty.
	CreateReport(ctx context.Context, report models.Report) (models.Report, error)

	// GetReport returns a single report by id, or ErrReportNotFound.
	GetReport(ctx context.Context, reportID string) (models.Report, error)

	// UpdateReport shallow-merges patch into the stored record and
	// refreshes updatedAt. Updating a missing id is a silent no-op.
	UpdateReport(ctx context.Context, reportID string, patch models.ReportPatch) error

	// GetReports returns records matching every supplied predicate,
	// ordered by createdAt descending (id descending as tie-breaker).
	GetReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error)

	// SubscribeToReports delivers the current filtered snapshot
	// immediately and again on every subsequent change (remote) or
	// polling tick (local). The returned handle stops deliveries.
	SubscribeToReports(ctx context.Context, filter models.ReportFilter, callback ReportsCallback) (Unsubscribe, error)
}

// NotificationStore persists in-app notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notification models.Notification) (models.Notification, error)

	// GetNotifications returns the inbox for the filter, ordered by
	// createdAt descending.
	GetNotifications(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)

	// MarkNotificationAsRead sets read/readAt. Missing id is a no-op.
	MarkNotificationAsRead(ctx context.Context, notificationID string) error
}

// WorkerStore persists the municipal worker roster.
type WorkerStore interface {
	GetWorkers(ctx context.Context) ([]models.Worker, error)
	GetWorker(ctx context.Context, workerID string) (models.Worker, error)

	// SaveWorker inserts or replaces a roster entry.
	SaveWorker(ctx context.Context, worker models.Worker) error
}

// UserStore persists accounts.
type UserStore interface {
	// CreateUser stores a new account; ErrEmailAlreadyExists when the
	// email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the account or ErrNoUserWasFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// ImageStore stores report photos and returns a reference the web client can
// render: a durable URL (remote) or a data URI (local).
type ImageStore interface {
	UploadImage(ctx context.Context, data []byte, name, path string) (string, error)
}
