package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/models"
)

func (s *localStore) CreateNotification(ctx context.Context, notification models.Notification) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, err := readCollection[models.Notification](ctx, s, collectionNotifications)
	if err != nil {
		return models.Notification{}, err
	}

	notification.ID = utils.NewUUID()
	notification.Read = false
	notification.ReadAt = nil
	notification.CreatedAt = time.Now().UTC()

	notifications = append(notifications, notification)

	if err = writeCollection(ctx, s, collectionNotifications, notifications); err != nil {
		return models.Notification{}, err
	}

	return notification, nil
}

func (s *localStore) GetNotifications(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, err := readCollection[models.Notification](ctx, s, collectionNotifications)
	if err != nil {
		return nil, err
	}

	results := make([]models.Notification, 0, len(notifications))
	for _, n := range notifications {
		if filter.Matches(n) {
			results = append(results, n)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return strings.Compare(results[i].ID, results[j].ID) > 0
	})

	return results, nil
}

func (s *localStore) MarkNotificationAsRead(ctx context.Context, notificationID string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, err := readCollection[models.Notification](ctx, s, collectionNotifications)
	if err != nil {
		return err
	}

	for i := range notifications {
		if notifications[i].ID != notificationID {
			continue
		}
		if notifications[i].Read {
			return nil
		}

		now := time.Now().UTC()
		notifications[i].Read = true
		notifications[i].ReadAt = &now

		return writeCollection(ctx, s, collectionNotifications, notifications)
	}

	// missing ids are a no-op
	log.Debug().
		Str("func", "localStore.MarkNotificationAsRead").
		Str("notification_id", notificationID).
		Msg("notification not found, mark skipped")

	return nil
}
