package service

import (
	"context"
	"sync"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/store"
	"github.com/civicgrid/civicwatch/models"
)

// defaultRoster seeds an empty deployment so administrators always have
// someone to assign reports to.
var defaultRoster = []models.Worker{
	{ID: "worker-1", Name: "John Smith", Email: "john.smith@city.example", Status: models.WorkerAvailable},
	{ID: "worker-2", Name: "Maria Garcia", Email: "maria.garcia@city.example", Status: models.WorkerAvailable},
	{ID: "worker-3", Name: "David Chen", Email: "david.chen@city.example", Status: models.WorkerAvailable},
}

type workerService struct {
	*facade
	seedOnce sync.Once
	logger   *logger.Logger
}

func NewWorkerService(f *facade, logger *logger.Logger) WorkerService {
	return &workerService{
		facade: f,
		logger: logger,
	}
}

// GetWorkers returns the municipal worker roster, seeding the default
// roster the first time an empty deployment asks for it.
func (s *workerService) GetWorkers(ctx context.Context) ([]models.Worker, error) {
	workers, err := runFallback(ctx, s.facade, "GetWorkers", func(b *store.Backend) ([]models.Worker, error) {
		return b.Workers.GetWorkers(ctx)
	})
	if err != nil {
		return nil, err
	}

	if len(workers) > 0 {
		return workers, nil
	}

	s.seedOnce.Do(func() {
		for _, worker := range defaultRoster {
			saveErr := runFallbackErr(ctx, s.facade, "SaveWorker", func(b *store.Backend) error {
				return b.Workers.SaveWorker(ctx, worker)
			})
			if saveErr != nil {
				s.logger.Warn().Err(saveErr).
					Str("func", "workerService.GetWorkers").
					Str("worker_id", worker.ID).
					Msg("roster seeding failed for worker")
			}
		}
	})

	return runFallback(ctx, s.facade, "GetWorkers", func(b *store.Backend) ([]models.Worker, error) {
		return b.Workers.GetWorkers(ctx)
	})
}
