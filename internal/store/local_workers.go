package store

import (
	"context"
	"sort"

	"github.com/civicgrid/civicwatch/models"
)

func (s *localStore) GetWorkers(ctx context.Context) ([]models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workers, err := readCollection[models.Worker](ctx, s, collectionWorkers)
	if err != nil {
		return nil, err
	}

	sort.Slice(workers, func(i, j int) bool {
		return workers[i].Name < workers[j].Name
	})

	return workers, nil
}

func (s *localStore) GetWorker(ctx context.Context, workerID string) (models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workers, err := readCollection[models.Worker](ctx, s, collectionWorkers)
	if err != nil {
		return models.Worker{}, err
	}

	for _, w := range workers {
		if w.ID == workerID {
			return w, nil
		}
	}

	return models.Worker{}, ErrWorkerNotFound
}

func (s *localStore) SaveWorker(ctx context.Context, worker models.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	workers, err := readCollection[models.Worker](ctx, s, collectionWorkers)
	if err != nil {
		return err
	}

	replaced := false
	for i := range workers {
		if workers[i].ID == worker.ID {
			workers[i] = worker
			replaced = true
			break
		}
	}
	if !replaced {
		workers = append(workers, worker)
	}

	return writeCollection(ctx, s, collectionWorkers, workers)
}
