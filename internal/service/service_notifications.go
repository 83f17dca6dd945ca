package service

import (
	"context"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/store"
	"github.com/civicgrid/civicwatch/models"
)

type notificationService struct {
	*facade
	logger *logger.Logger
}

func NewNotificationService(f *facade, logger *logger.Logger) NotificationService {
	return &notificationService{
		facade: f,
		logger: logger,
	}
}

// GetNotifications lists the caller's inbox: everything addressed to their
// email plus everything addressed to their role.
func (s *notificationService) GetNotifications(ctx context.Context, recipientEmail string, recipientRole models.Role) ([]models.Notification, error) {
	if recipientEmail == "" && recipientRole == "" {
		return nil, ErrInvalidDataProvided
	}

	filter := models.NotificationFilter{
		RecipientEmail: recipientEmail,
		RecipientRole:  recipientRole,
	}

	return runFallback(ctx, s.facade, "GetNotifications", func(b *store.Backend) ([]models.Notification, error) {
		return b.Notifications.GetNotifications(ctx, filter)
	})
}

func (s *notificationService) MarkNotificationAsRead(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return ErrInvalidDataProvided
	}

	return runFallbackErr(ctx, s.facade, "MarkNotificationAsRead", func(b *store.Backend) error {
		return b.Notifications.MarkNotificationAsRead(ctx, notificationID)
	})
}
