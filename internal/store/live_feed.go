package store

import (
	"context"
	"encoding/json"

	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/redis/go-redis/v9"
)

// reportsChannel carries change announcements for the reports collection.
// Messages are fan-out hints only: subscribers re-query the store for the
// authoritative snapshot, so a lost message delays an update until the next
// mutation rather than corrupting anything.
const reportsChannel = "civicwatch:reports"

// FeedEvent is the payload published on every report mutation.
type FeedEvent struct {
	Op       string `json:"op"`
	ReportID string `json:"reportId"`
}

// ReportFeed is the Redis-backed change feed that turns remote mutations
// into live subscription deliveries.
type ReportFeed struct {
	client *redis.Client
	logger *logger.Logger
}

// NewReportFeed connects to Redis and verifies the connection with a ping.
func NewReportFeed(ctx context.Context, cfg config.Remote, log *logger.Logger) (*ReportFeed, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewReportFeed").Msg("error connecting redis (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewReportFeed").Str("addr", cfg.RedisAddr).Msg("connected to change feed")

	return &ReportFeed{client: client, logger: log}, nil
}

// Publish announces a mutation. Failures are logged and swallowed: the
// database write has already succeeded and losing an announcement only
// postpones a snapshot delivery.
func (f *ReportFeed) Publish(ctx context.Context, op, reportID string) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(FeedEvent{Op: op, ReportID: reportID})
	if err != nil {
		log.Err(err).Str("func", "ReportFeed.Publish").Msg("failed to encode feed event")
		return
	}

	if err = f.client.Publish(ctx, reportsChannel, payload).Err(); err != nil {
		log.Warn().Err(err).
			Str("func", "ReportFeed.Publish").
			Str("op", op).
			Str("report_id", reportID).
			Msg("failed to publish feed event")
	}
}

// Listen attaches a subscriber to the change feed. It returns the message
// channel and a close function that detaches the subscriber (which also
// closes the channel).
func (f *ReportFeed) Listen(ctx context.Context) (<-chan *redis.Message, func() error, error) {
	sub := f.client.Subscribe(ctx, reportsChannel)

	// confirm the subscription before handing out the channel
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	return sub.Channel(), sub.Close, nil
}

// Close releases the underlying Redis client.
func (f *ReportFeed) Close() error {
	return f.client.Close()
}
