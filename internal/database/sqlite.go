package database

import (
	"context"
	"fmt"

	"catalog-service/internal/config"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens the embedded SQLite database at cfg.SQLitePath.
// The path ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*sqlx.DB, error) {
	logger.Info().Str("path", cfg.SQLitePath).Msg("opening sqlite database")

	db, err := sqlx.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite serialises writers; a single connection also keeps an
	// in-memory database alive and shared for the process lifetime.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return db, nil
}

// EnsureSQLiteSchema creates the catalog_items table in SQLite if it is missing.
func EnsureSQLiteSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, SQLiteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
