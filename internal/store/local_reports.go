package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/internal/workers"
	"github.com/civicgrid/civicwatch/models"
)

func (s *localStore) CreateReport(ctx context.Context, report models.Report) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := readCollection[models.Report](ctx, s, collectionReports)
	if err != nil {
		return models.Report{}, err
	}

	now := time.Now().UTC()
	report.ID = utils.NewUUID()
	if report.Status == "" {
		report.Status = models.StatusPending
	}
	report.CreatedAt = now
	report.UpdatedAt = now

	reports = append(reports, report)

	if err = writeCollection(ctx, s, collectionReports, reports); err != nil {
		return models.Report{}, err
	}

	return report, nil
}

func (s *localStore) GetReport(ctx context.Context, reportID string) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := readCollection[models.Report](ctx, s, collectionReports)
	if err != nil {
		return models.Report{}, err
	}

	for _, report := range reports {
		if report.ID == reportID {
			return report, nil
		}
	}

	return models.Report{}, ErrReportNotFound
}

func (s *localStore) UpdateReport(ctx context.Context, reportID string, patch models.ReportPatch) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := readCollection[models.Report](ctx, s, collectionReports)
	if err != nil {
		return err
	}

	for i := range reports {
		if reports[i].ID != reportID {
			continue
		}

		patch.Apply(&reports[i])
		reports[i].UpdatedAt = time.Now().UTC()

		return writeCollection(ctx, s, collectionReports, reports)
	}

	// updating a missing report is a deliberate no-op
	log.Debug().
		Str("func", "localStore.UpdateReport").
		Str("report_id", reportID).
		Msg("report not found, update skipped")

	return nil
}

func (s *localStore) GetReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listReportsLocked(ctx, filter)
}

// listReportsLocked filters and orders in memory so both backends hand
// callers the same shape: newest first, id as the tie break.
func (s *localStore) listReportsLocked(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	reports, err := readCollection[models.Report](ctx, s, collectionReports)
	if err != nil {
		return nil, err
	}

	results := make([]models.Report, 0, len(reports))
	for _, report := range reports {
		if filter.Matches(report) {
			results = append(results, report)
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

// SubscribeToReports polls the local collection on a fixed interval. The
// first snapshot goes out immediately; unsubscribe stops the ticker and is
// safe to call more than once.
func (s *localStore) SubscribeToReports(ctx context.Context, filter models.ReportFilter, callback ReportsCallback) (Unsubscribe, error) {
	deliver := func(c context.Context) {
		s.mu.Lock()
		reports, err := s.listReportsLocked(c, filter)
		s.mu.Unlock()
		if err != nil {
			s.logger.Warn().Err(err).
				Str("func", "localStore.SubscribeToReports").
				Msg("snapshot read failed, delivery skipped")
			return
		}
		callback(reports)
	}

	deliver(ctx)

	job := &workers.PollJob{}
	job.Start(ctx, s.pollInterval, deliver)

	var once sync.Once
	unsubscribe := func() {
		once.Do(job.Stop)
	}

	return unsubscribe, nil
}
