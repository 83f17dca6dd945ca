package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/models"
)

func TestWorkerService_GetWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewWorkerService(b.localOnlyFacade(), logger.Nop())

	roster := []models.Worker{{ID: "w-1", Name: "Boris"}}

	b.localWorkers.EXPECT().
		GetWorkers(gomock.Any()).
		Return(roster, nil)

	workers, err := svc.GetWorkers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, roster, workers)
}

func TestWorkerService_GetWorkers_SeedsEmptyRoster(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewWorkerService(b.localOnlyFacade(), logger.Nop())

	b.localWorkers.EXPECT().
		GetWorkers(gomock.Any()).
		Return(nil, nil)
	b.localWorkers.EXPECT().
		SaveWorker(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(len(defaultRoster))
	b.localWorkers.EXPECT().
		GetWorkers(gomock.Any()).
		Return(defaultRoster, nil)

	workers, err := svc.GetWorkers(context.Background())
	require.NoError(t, err)
	assert.Len(t, workers, len(defaultRoster))
}
