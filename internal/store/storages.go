// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CivicWatch Authors

package store

import (
	"context"
	"fmt"

	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/migrations"
)

// Backend groups one storage side's repositories behind the shared store
// interfaces.
type Backend struct {
	Reports       ReportStore
	Notifications NotificationStore
	Workers       WorkerStore
	Users         UserStore
	Images        ImageStore
}

// Storages holds both backends. Remote is nil when no database DSN is
// configured; Local is always present so the service layer can fall back
// without caring which side it talks to.
type Storages struct {
	Remote *Backend
	Local  *Backend

	remoteDB *DB
	localDB  *DB
	feed     *ReportFeed
}

// NewStorages connects the configured backends. The local SQLite store is
// mandatory; PostgreSQL, the Redis change feed and the media service are
// wired only when their configuration is present.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	localDB, err := NewConnectSQLite(ctx, cfg.Local, log)
	if err != nil {
		return nil, fmt.Errorf("connect local store: %w", err)
	}

	local := NewLocalStore(localDB, cfg.Local.PollInterval, log)

	storages := &Storages{
		Local: &Backend{
			Reports:       local,
			Notifications: local,
			Workers:       local,
			Users:         local,
			Images:        NewDataURIStore(),
		},
		localDB: localDB,
	}

	if !cfg.RemoteEnabled() {
		log.Info().Msg("no remote database configured, running local-only")
		return storages, nil
	}

	remoteDB, err := NewConnectPostgres(ctx, cfg.Remote, log)
	if err != nil {
		localDB.Close()
		return nil, fmt.Errorf("connect remote store: %w", err)
	}

	if err = migrations.Migrate(remoteDB.DB); err != nil {
		remoteDB.Close()
		localDB.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	var feed *ReportFeed
	if cfg.Remote.RedisAddr != "" {
		feed, err = NewReportFeed(ctx, cfg.Remote, log)
		if err != nil {
			log.Warn().Err(err).Msg("change feed unavailable, live subscriptions fall back to polling")
			feed = nil
		}
	}

	var remoteImages ImageStore
	if cfg.Remote.MediaEndpoint != "" {
		remoteImages = NewMediaStore(cfg.Remote.MediaEndpoint, cfg.Remote.MediaToken, log)
	}

	storages.Remote = &Backend{
		Reports:       NewReportRepository(remoteDB, feed, log),
		Notifications: NewNotificationRepository(remoteDB, log),
		Workers:       NewWorkerRepository(remoteDB, log),
		Users:         NewUserRepository(remoteDB, log),
		Images:        remoteImages,
	}
	storages.remoteDB = remoteDB
	storages.feed = feed

	return storages, nil
}

// Close releases every connection the storages hold.
func (s *Storages) Close() {
	if s.feed != nil {
		s.feed.Close()
	}
	if s.remoteDB != nil {
		s.remoteDB.Close()
	}
	if s.localDB != nil {
		s.localDB.Close()
	}
}
