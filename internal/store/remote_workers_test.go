package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/models"
)

func TestWorkerRepository_GetWorkers(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWorkerRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(getAllWorkers)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "status", "assigned_tasks"}).
			AddRow("w-1", "Boris", "boris@city.example", string(models.WorkerAvailable), 0).
			AddRow("w-2", "Clara", "clara@city.example", string(models.WorkerBusy), 3))

	workers, err := repo.GetWorkers(context.Background())
	require.NoError(t, err)
	require.Len(t, workers, 2)

	assert.Equal(t, models.WorkerBusy, workers[1].Status)
	assert.Equal(t, 3, workers[1].AssignedTasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepository_GetWorker_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWorkerRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(getSingleWorker)).
		WithArgs("missing-id").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetWorker(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrWorkerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepository_SaveWorker(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewWorkerRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(upsertWorker)).
		WithArgs("w-1", "Boris", "boris@city.example", string(models.WorkerBusy), 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveWorker(context.Background(), models.Worker{
		ID:            "w-1",
		Name:          "Boris",
		Email:         "boris@city.example",
		Status:        models.WorkerBusy,
		AssignedTasks: 4,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
