// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CivicWatch Authors

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
)

// Collection names inside the local database. Each collection is a single
// row holding the whole dataset as one JSON array.
const (
	collectionReports       = "reports"
	collectionNotifications = "notifications"
	collectionWorkers       = "workers"
	collectionUsers         = "users"
)

const (
	selectCollection = `SELECT payload FROM collections WHERE name = ?;`
	upsertCollection = `
		INSERT INTO collections (name, payload)
		VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload;`
)

// localStore is the embedded fallback backend. Every collection lives as a
// JSON blob in the collections table and mutations rewrite the whole blob,
// so a single mutex serializes all read-modify-write cycles.
type localStore struct {
	db           *DB
	mu           sync.Mutex
	pollInterval time.Duration
	logger       *logger.Logger
}

// NewLocalStore wires the SQLite-backed fallback. pollInterval drives
// subscription delivery; zero falls back to the subscriber default.
func NewLocalStore(db *DB, pollInterval time.Duration, log *logger.Logger) *localStore {
	return &localStore{
		db:           db,
		pollInterval: pollInterval,
		logger:       log,
	}
}

// readCollection loads and decodes a whole collection. A missing row or a
// corrupt payload both yield an empty slice; corruption is logged and the
// next write replaces the damaged blob.
func readCollection[T any](ctx context.Context, s *localStore, name string) ([]T, error) {
	log := logger.FromContext(ctx)

	var payload string
	err := s.db.QueryRowContext(ctx, selectCollection, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []T{}, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "localStore.readCollection").
			Str("collection", name).
			Msg("failed to read collection payload")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var items []T
	if unmarshalErr := json.Unmarshal([]byte(payload), &items); unmarshalErr != nil {
		log.Warn().Err(unmarshalErr).
			Str("func", "localStore.readCollection").
			Str("collection", name).
			Msg("corrupt collection payload, treating as empty")
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

// writeCollection replaces a collection wholesale.
func writeCollection[T any](ctx context.Context, s *localStore, name string, items []T) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}

	if _, err = s.db.ExecContext(ctx, upsertCollection, name, string(payload)); err != nil {
		log.Err(err).
			Str("func", "localStore.writeCollection").
			Str("collection", name).
			Msg("failed to write collection payload")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
