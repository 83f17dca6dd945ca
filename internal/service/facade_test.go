package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/mock"
	"github.com/civicgrid/civicwatch/internal/store"
)

type testBackends struct {
	remote *store.Backend
	local  *store.Backend

	remoteReports       *mock.MockReportStore
	localReports        *mock.MockReportStore
	remoteNotifications *mock.MockNotificationStore
	localNotifications  *mock.MockNotificationStore
	remoteWorkers       *mock.MockWorkerStore
	localWorkers        *mock.MockWorkerStore
	remoteUsers         *mock.MockUserStore
	localUsers          *mock.MockUserStore
	remoteImages        *mock.MockImageStore
	localImages         *mock.MockImageStore
}

func newTestBackends(ctrl *gomock.Controller) *testBackends {
	b := &testBackends{
		remoteReports:       mock.NewMockReportStore(ctrl),
		localReports:        mock.NewMockReportStore(ctrl),
		remoteNotifications: mock.NewMockNotificationStore(ctrl),
		localNotifications:  mock.NewMockNotificationStore(ctrl),
		remoteWorkers:       mock.NewMockWorkerStore(ctrl),
		localWorkers:        mock.NewMockWorkerStore(ctrl),
		remoteUsers:         mock.NewMockUserStore(ctrl),
		localUsers:          mock.NewMockUserStore(ctrl),
		remoteImages:        mock.NewMockImageStore(ctrl),
		localImages:         mock.NewMockImageStore(ctrl),
	}

	b.remote = &store.Backend{
		Reports:       b.remoteReports,
		Notifications: b.remoteNotifications,
		Workers:       b.remoteWorkers,
		Users:         b.remoteUsers,
		Images:        b.remoteImages,
	}
	b.local = &store.Backend{
		Reports:       b.localReports,
		Notifications: b.localNotifications,
		Workers:       b.localWorkers,
		Users:         b.localUsers,
		Images:        b.localImages,
	}

	return b
}

func (b *testBackends) facade() *facade {
	return &facade{remote: b.remote, local: b.local, logger: logger.Nop()}
}

func (b *testBackends) localOnlyFacade() *facade {
	return &facade{remote: nil, local: b.local, logger: logger.Nop()}
}

func TestRunFallback_RemoteWinsWhenHealthy(t *testing.T) {
	f := &facade{
		remote: &store.Backend{},
		local:  &store.Backend{},
		logger: logger.Nop(),
	}

	calls := []string{}
	result, err := runFallback(context.Background(), f, "op", func(b *store.Backend) (string, error) {
		if b == f.remote {
			calls = append(calls, "remote")
			return "remote-result", nil
		}
		calls = append(calls, "local")
		return "local-result", nil
	})
	require.NoError(t, err)

	assert.Equal(t, "remote-result", result)
	assert.Equal(t, []string{"remote"}, calls)
}

func TestRunFallback_EachBackendTriedExactlyOnce(t *testing.T) {
	f := &facade{
		remote: &store.Backend{},
		local:  &store.Backend{},
		logger: logger.Nop(),
	}

	calls := []string{}
	result, err := runFallback(context.Background(), f, "op", func(b *store.Backend) (string, error) {
		if b == f.remote {
			calls = append(calls, "remote")
			return "", errors.New("connection refused")
		}
		calls = append(calls, "local")
		return "local-result", nil
	})
	require.NoError(t, err)

	assert.Equal(t, "local-result", result)
	assert.Equal(t, []string{"remote", "local"}, calls)
}

func TestRunFallback_LocalErrorSurfaces(t *testing.T) {
	f := &facade{
		remote: &store.Backend{},
		local:  &store.Backend{},
		logger: logger.Nop(),
	}

	localErr := errors.New("disk full")
	_, err := runFallback(context.Background(), f, "op", func(b *store.Backend) (string, error) {
		if b == f.remote {
			return "", errors.New("connection refused")
		}
		return "", localErr
	})

	assert.ErrorIs(t, err, localErr)
}

func TestRunFallback_NoRemoteConfigured(t *testing.T) {
	f := &facade{remote: nil, local: &store.Backend{}, logger: logger.Nop()}

	calls := 0
	result, err := runFallback(context.Background(), f, "op", func(b *store.Backend) (string, error) {
		calls++
		assert.Same(t, f.local, b)
		return "local-result", nil
	})
	require.NoError(t, err)

	assert.Equal(t, "local-result", result)
	assert.Equal(t, 1, calls)
}
