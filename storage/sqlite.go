package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"skyline/models"
)

// SQLiteStore keeps cleaned skyscrapers in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the SQLite file at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS skyscrapers (
			position INTEGER NOT NULL,
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			latitude REAL,
			longitude REAL,
			completion_year INTEGER NOT NULL DEFAULT 0,
			height REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_skyscrapers_position ON skyscrapers(position)`,
		`CREATE INDEX IF NOT EXISTS idx_skyscrapers_city ON skyscrapers(city)`,
	}
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Write replaces the stored records with rows.
func (s *SQLiteStore) Write(ctx context.Context, rows []models.Skyscraper) error {
	return writeAll(ctx, s.db, sqliteDialect, rows)
}

// ReadAll retrieves all stored records in their original order.
func (s *SQLiteStore) ReadAll(ctx context.Context) ([]models.Skyscraper, error) {
	return readAll(ctx, s.db, sqliteDialect)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
