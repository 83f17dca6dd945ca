package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/internal/workers"
	"github.com/civicgrid/civicwatch/models"
)

// reportRepository is the PostgreSQL-backed implementation of [ReportStore].
// Mutations stamp created_at/updated_at with the database clock (NOW()) so
// ordering never depends on client clocks, and announce themselves on the
// Redis change feed when one is configured.
type reportRepository struct {
	*DB
	feed   *ReportFeed
	logger *logger.Logger
}

// NewReportRepository constructs a [ReportStore] backed by the provided
// database connection. feed may be nil; subscriptions then return
// [ErrLiveFeedUnavailable] and callers fall back to local polling.
func NewReportRepository(db *DB, feed *ReportFeed, logger *logger.Logger) ReportStore {
	return &reportRepository{
		DB:     db,
		feed:   feed,
		logger: logger,
	}
}

func (p *reportRepository) CreateReport(ctx context.Context, report models.Report) (models.Report, error) {
	log := logger.FromContext(ctx)

	report.ID = utils.NewUUID()
	if report.Status == "" {
		report.Status = models.StatusPending
	}

	aiValidation, err := marshalAIValidation(report.AIValidation)
	if err != nil {
		return models.Report{}, err
	}

	var lat, lng any
	if report.Coords != nil {
		lat, lng = report.Coords.Latitude, report.Coords.Longitude
	}

	row := p.DB.QueryRowContext(ctx, insertReport,
		report.ID,
		report.Title,
		report.Description,
		report.Location,
		lat,
		lng,
		report.Type,
		report.Image,
		string(report.Status),
		report.UserEmail,
		report.ComplaintSent,
		report.ComplaintStatus,
		aiValidation,
	)
	if err = row.Scan(&report.CreatedAt, &report.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "reportRepository.CreateReport").
			Str("user_email", report.UserEmail).
			Msg("failed to insert report")
		return models.Report{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	report.CreatedAt = report.CreatedAt.UTC()
	report.UpdatedAt = report.UpdatedAt.UTC()

	if p.feed != nil {
		p.feed.Publish(ctx, "create", report.ID)
	}

	return report, nil
}

func (p *reportRepository) GetReport(ctx context.Context, reportID string) (models.Report, error) {
	log := logger.FromContext(ctx)

	report, err := scanReport(p.DB.QueryRowContext(ctx, getSingleReport, reportID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, ErrReportNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "reportRepository.GetReport").
			Str("report_id", reportID).
			Msg("failed to query report")
		return models.Report{}, err
	}

	return report, nil
}

func (p *reportRepository) UpdateReport(ctx context.Context, reportID string, patch models.ReportPatch) error {
	log := logger.FromContext(ctx)

	aiValidation, err := marshalAIValidation(patch.AIValidation)
	if err != nil {
		return err
	}

	query, args, err := buildUpdateReportQuery(reportID, patch, aiValidation)
	if err != nil {
		log.Err(err).
			Str("func", "reportRepository.UpdateReport").
			Str("report_id", reportID).
			Msg("failed to build update query")
		return fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	res, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "reportRepository.UpdateReport").
			Str("report_id", reportID).
			Msg("failed to execute update query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// updating a missing report is a deliberate no-op; nothing to announce
	affected, err := res.RowsAffected()
	if err == nil && affected > 0 && p.feed != nil {
		p.feed.Publish(ctx, "update", reportID)
	}

	return nil
}

func (p *reportRepository) GetReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildReportsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "reportRepository.GetReports").
			Msg("failed to build reports query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "reportRepository.GetReports").
			Msg("failed to execute reports query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Report, 0, 50)

	for rows.Next() {
		report, scanErr := scanReport(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "reportRepository.GetReports").
				Msg("failed to scan report row")
			return nil, scanErr
		}
		results = append(results, report)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "reportRepository.GetReports").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// SubscribeToReports attaches a change-feed listener. Every announcement
// re-queries the store and hands the full filtered, ordered snapshot to the
// callback; the first snapshot is delivered immediately on subscribe.
func (p *reportRepository) SubscribeToReports(ctx context.Context, filter models.ReportFilter, callback ReportsCallback) (Unsubscribe, error) {
	if p.feed == nil {
		return nil, ErrLiveFeedUnavailable
	}

	messages, detach, err := p.feed.Listen(ctx)
	if err != nil {
		return nil, fmt.Errorf("attach to change feed: %w", err)
	}

	deliver := func(c context.Context) {
		reports, listErr := p.GetReports(c, filter)
		if listErr != nil {
			p.logger.Warn().Err(listErr).
				Str("func", "reportRepository.SubscribeToReports").
				Msg("snapshot query failed, delivery skipped")
			return
		}
		callback(reports)
	}

	job := &workers.PumpJob{}
	job.Start(ctx, func(c context.Context) {
		deliver(c)
		for {
			select {
			case <-c.Done():
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				deliver(c)
			}
		}
	})

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			_ = detach()
			job.Stop()
		})
	}

	return unsubscribe, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanReport reads one row in [reportColumns] order and normalizes all
// timestamps to UTC at the store boundary.
func scanReport(row rowScanner) (models.Report, error) {
	var (
		report                   models.Report
		lat, lng                 sql.NullFloat64
		startedAt, completedAt   sql.NullTime
		complaintSentAt          sql.NullTime
		complaintStatusUpdatedAt sql.NullTime
		aiValidation             []byte
	)

	err := row.Scan(
		&report.ID,
		&report.Title,
		&report.Description,
		&report.Location,
		&lat,
		&lng,
		&report.Type,
		&report.Image,
		&report.Status,
		&report.UserEmail,
		&report.AssignedWorkerID,
		&report.AssignedWorker,
		&report.CreatedAt,
		&report.UpdatedAt,
		&startedAt,
		&completedAt,
		&report.ComplaintSent,
		&report.ComplaintStatus,
		&complaintSentAt,
		&complaintStatusUpdatedAt,
		&aiValidation,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, err
	}
	if err != nil {
		return models.Report{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if lat.Valid && lng.Valid {
		report.Coords = &models.Coords{Latitude: lat.Float64, Longitude: lng.Float64}
	}

	report.CreatedAt = report.CreatedAt.UTC()
	report.UpdatedAt = report.UpdatedAt.UTC()
	report.StartedAt = nullTimeToUTC(startedAt)
	report.CompletedAt = nullTimeToUTC(completedAt)
	report.ComplaintSentAt = nullTimeToUTC(complaintSentAt)
	report.ComplaintStatusUpdatedAt = nullTimeToUTC(complaintStatusUpdatedAt)

	if len(aiValidation) > 0 {
		var v models.AIValidation
		if unmarshalErr := json.Unmarshal(aiValidation, &v); unmarshalErr == nil {
			report.AIValidation = &v
		}
	}

	return report, nil
}

func nullTimeToUTC(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	utc := t.Time.UTC()
	return &utc
}

func marshalAIValidation(v *models.AIValidation) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode ai validation: %w", err)
	}
	return payload, nil
}
