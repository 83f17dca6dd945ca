package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/models"
)

// workerRepository is the PostgreSQL-backed [WorkerStore].
type workerRepository struct {
	*DB
	logger *logger.Logger
}

func NewWorkerRepository(db *DB, logger *logger.Logger) WorkerStore {
	return &workerRepository{
		DB:     db,
		logger: logger,
	}
}

func (p *workerRepository) GetWorkers(ctx context.Context) ([]models.Worker, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, getAllWorkers)
	if err != nil {
		log.Err(err).
			Str("func", "workerRepository.GetWorkers").
			Msg("failed to execute workers query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var workers []models.Worker

	for rows.Next() {
		var w models.Worker
		if scanErr := rows.Scan(&w.ID, &w.Name, &w.Email, &w.Status, &w.AssignedTasks); scanErr != nil {
			log.Err(scanErr).
				Str("func", "workerRepository.GetWorkers").
				Msg("failed to scan worker row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		workers = append(workers, w)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "workerRepository.GetWorkers").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return workers, nil
}

func (p *workerRepository) GetWorker(ctx context.Context, workerID string) (models.Worker, error) {
	log := logger.FromContext(ctx)

	var w models.Worker
	err := p.DB.QueryRowContext(ctx, getSingleWorker, workerID).
		Scan(&w.ID, &w.Name, &w.Email, &w.Status, &w.AssignedTasks)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Worker{}, ErrWorkerNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "workerRepository.GetWorker").
			Str("worker_id", workerID).
			Msg("failed to query worker")
		return models.Worker{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return w, nil
}

func (p *workerRepository) SaveWorker(ctx context.Context, worker models.Worker) error {
	log := logger.FromContext(ctx)

	_, err := p.DB.ExecContext(ctx, upsertWorker,
		worker.ID,
		worker.Name,
		worker.Email,
		string(worker.Status),
		worker.AssignedTasks,
	)
	if err != nil {
		log.Err(err).
			Str("func", "workerRepository.SaveWorker").
			Str("worker_id", worker.ID).
			Msg("failed to upsert worker")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
