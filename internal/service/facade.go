// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CivicWatch Authors

package service

import (
	"context"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/store"
)

// facade holds both storage backends and implements the call policy shared
// by every service: when a remote backend is configured it is tried first,
// and any remote failure falls the call back to the local backend. Each
// backend is attempted at most once per call; there are no retries and no
// cross-backend reconciliation.
type facade struct {
	remote *store.Backend
	local  *store.Backend
	logger *logger.Logger
}

func newFacade(storages *store.Storages, logger *logger.Logger) *facade {
	return &facade{
		remote: storages.Remote,
		local:  storages.Local,
		logger: logger,
	}
}

// runFallback executes a single read or write with the facade policy.
// opName only feeds the fallback log line.
func runFallback[T any](ctx context.Context, f *facade, opName string, op func(*store.Backend) (T, error)) (T, error) {
	if f.remote != nil {
		result, err := op(f.remote)
		if err == nil {
			return result, nil
		}
		logger.FromContext(ctx).Warn().Err(err).
			Str("op", opName).
			Msg("remote backend failed, falling back to local")
	}

	return op(f.local)
}

// runFallbackErr is runFallback for operations with no result value.
func runFallbackErr(ctx context.Context, f *facade, opName string, op func(*store.Backend) error) error {
	_, err := runFallback(ctx, f, opName, func(b *store.Backend) (struct{}, error) {
		return struct{}{}, op(b)
	})
	return err
}
