package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"skyline/models"
)

const insertBatchSize = 50

// sqlDialect captures the few statements that differ between backends.
type sqlDialect struct {
	name        string
	placeholder func(n int) string
	insertVerb  string
	conflict    string
}

var (
	postgresDialect = sqlDialect{
		name:        "postgres",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		insertVerb:  "INSERT INTO",
		conflict:    "ON CONFLICT (id) DO NOTHING",
	}
	sqliteDialect = sqlDialect{
		name:        "sqlite",
		placeholder: func(int) string { return "?" },
		insertVerb:  "INSERT OR IGNORE INTO",
	}
)

const skyscraperColumns = "position, id, name, city, latitude, longitude, completion_year, height"

// writeAll replaces the table contents with rows, keeping their order in the
// position column.
func writeAll(ctx context.Context, db *sql.DB, d sqlDialect, rows []models.Skyscraper) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", d.name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM skyscrapers"); err != nil {
		return fmt.Errorf("%s: clear: %w", d.name, err)
	}

	for i := 0; i < len(rows); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := insertBatch(ctx, tx, d, i, rows[i:end]); err != nil {
			return fmt.Errorf("%s: insert batch at %d: %w", d.name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", d.name, err)
	}
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, d sqlDialect, offset int, batch []models.Skyscraper) error {
	const cols = 8
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, s := range batch {
		ph := make([]string, cols)
		for c := 0; c < cols; c++ {
			ph[c] = d.placeholder(idx*cols + c + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			offset+idx, s.ID, s.Name, s.City,
			nullFloat(s.Latitude), nullFloat(s.Longitude), s.Year, nullFloat(s.Height))
	}

	query := fmt.Sprintf("%s skyscrapers (%s) VALUES %s %s",
		d.insertVerb, skyscraperColumns, strings.Join(valueStrings, ","), d.conflict)

	_, err := tx.ExecContext(ctx, query, valueArgs...)
	return err
}

// readAll returns every stored record in source order.
func readAll(ctx context.Context, db *sql.DB, d sqlDialect) ([]models.Skyscraper, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, city, latitude, longitude, completion_year, height
		FROM skyscrapers
		ORDER BY position
	`)
	if err != nil {
		return nil, &DataSourceError{Source: d.name, Err: err}
	}
	defer rows.Close()

	var out []models.Skyscraper
	for rows.Next() {
		var (
			s             models.Skyscraper
			lat, lon, hgt sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &lat, &lon, &s.Year, &hgt); err != nil {
			return nil, &DataSourceError{Source: d.name, Err: fmt.Errorf("scan row: %w", err)}
		}
		s.Latitude = floatOrNaN(lat)
		s.Longitude = floatOrNaN(lon)
		s.Height = floatOrNaN(hgt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &DataSourceError{Source: d.name, Err: err}
	}
	return out, nil
}

func nullFloat(f float64) sql.NullFloat64 {
	if math.IsNaN(f) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func floatOrNaN(n sql.NullFloat64) float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}
