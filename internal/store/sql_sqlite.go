package store

import (
	"context"
	"fmt"

	"database/sql"

	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

// The local backend is a key-value area: one row per logical collection,
// holding the whole collection as a JSON array. Every mutation re-writes the
// blob, matching the read-modify-write semantics of the browser storage it
// replaces.
const createCollectionsTable = `
	CREATE TABLE IF NOT EXISTS collections (
		name    TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	);`

func NewConnectSQLite(ctx context.Context, cfg config.Local, log *logger.Logger) (*DB, error) {
	path := cfg.Path
	if path == "" {
		path = "civicwatch.db"
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error occured during local database connection")
		return nil, fmt.Errorf("error occured during local database connection: %w", err)
	}

	// the collections blob is read-modify-written as a whole; a single
	// connection sidesteps sqlite writer contention
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting local database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, createCollectionsTable); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error bootstrapping collections table")
		return nil, fmt.Errorf("error bootstrapping collections table: %w", err)
	}

	log.Info().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to local database successfully")

	return &DB{DB: conn, logger: log}, nil
}
