package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"skyline/models"
	"skyline/utils"
)

// PostgresStore persists cleaned skyscrapers to PostgreSQL and serves them
// back as a record source.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to accept
// pings using retry, runs schema migrations, and returns a ready store.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func() error {
		return db.PingContext(ctx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS skyscrapers (
			position        INTEGER          NOT NULL,
			id              BIGINT           PRIMARY KEY,
			name            TEXT             NOT NULL DEFAULT '',
			city            TEXT             NOT NULL DEFAULT '',
			latitude        DOUBLE PRECISION,
			longitude       DOUBLE PRECISION,
			completion_year INTEGER          NOT NULL DEFAULT 0,
			height          DOUBLE PRECISION
		);

		CREATE INDEX IF NOT EXISTS idx_skyscrapers_position ON skyscrapers(position);
		CREATE INDEX IF NOT EXISTS idx_skyscrapers_city     ON skyscrapers(city);
	`)
	return err
}

// Write replaces the stored records with rows.
func (ps *PostgresStore) Write(ctx context.Context, rows []models.Skyscraper) error {
	return writeAll(ctx, ps.db, postgresDialect, rows)
}

// ReadAll retrieves all stored records in their original order.
func (ps *PostgresStore) ReadAll(ctx context.Context) ([]models.Skyscraper, error) {
	return readAll(ctx, ps.db, postgresDialect)
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
