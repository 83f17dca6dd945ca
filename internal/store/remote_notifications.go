package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/models"
)

// notificationRepository is the PostgreSQL-backed [NotificationStore].
type notificationRepository struct {
	*DB
	logger *logger.Logger
}

func NewNotificationRepository(db *DB, logger *logger.Logger) NotificationStore {
	return &notificationRepository{
		DB:     db,
		logger: logger,
	}
}

func (p *notificationRepository) CreateNotification(ctx context.Context, notification models.Notification) (models.Notification, error) {
	log := logger.FromContext(ctx)

	notification.ID = utils.NewUUID()
	notification.Read = false
	notification.ReadAt = nil

	row := p.DB.QueryRowContext(ctx, insertNotification,
		notification.ID,
		notification.Title,
		notification.Message,
		notification.ReportID,
		notification.RecipientEmail,
		string(notification.RecipientRole),
	)
	if err := row.Scan(&notification.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "notificationRepository.CreateNotification").
			Str("recipient_email", notification.RecipientEmail).
			Msg("failed to insert notification")
		return models.Notification{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	notification.CreatedAt = notification.CreatedAt.UTC()

	return notification, nil
}

func (p *notificationRepository) GetNotifications(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildNotificationsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "notificationRepository.GetNotifications").
			Msg("failed to build notifications query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "notificationRepository.GetNotifications").
			Msg("failed to execute notifications query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Notification, 0, 20)

	for rows.Next() {
		var (
			n      models.Notification
			readAt sql.NullTime
		)

		scanErr := rows.Scan(
			&n.ID,
			&n.Title,
			&n.Message,
			&n.ReportID,
			&n.RecipientEmail,
			&n.RecipientRole,
			&n.Read,
			&readAt,
			&n.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "notificationRepository.GetNotifications").
				Msg("failed to scan notification row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		n.CreatedAt = n.CreatedAt.UTC()
		n.ReadAt = nullTimeToUTC(readAt)

		results = append(results, n)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "notificationRepository.GetNotifications").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

func (p *notificationRepository) MarkNotificationAsRead(ctx context.Context, notificationID string) error {
	log := logger.FromContext(ctx)

	// missing or already-read ids are a no-op
	_, err := p.DB.ExecContext(ctx, markNotificationRead, notificationID)
	if err != nil {
		log.Err(err).
			Str("func", "notificationRepository.MarkNotificationAsRead").
			Str("notification_id", notificationID).
			Msg("failed to mark notification as read")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
