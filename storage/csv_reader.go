package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"skyline/models"
)

// Column names accepted for each field. The first entry is the canonical
// header written by CSVWriter.
var csvColumns = []struct {
	field   string
	aliases []string
}{
	{"id", []string{"id"}},
	{"name", []string{"name"}},
	{"city", []string{"location.city", "city"}},
	{"latitude", []string{"latitude", "location.latitude", "lat"}},
	{"longitude", []string{"longitude", "location.longitude", "lon", "lng"}},
	{"year", []string{"status.completed.year", "completion_year", "year"}},
	{"height", []string{"statistics.height", "height"}},
}

// CSVReader reads skyscraper records from a CSV file.
type CSVReader struct {
	path string
}

// NewCSVReader returns a reader for the file at path. The file is opened on
// ReadAll.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// ReadAll parses every row of the file.
func (c *CSVReader) ReadAll(ctx context.Context) ([]models.Skyscraper, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, &DataSourceError{Source: c.path, Err: err}
	}
	defer f.Close()
	return ParseCSV(ctx, f, c.path)
}

func (c *CSVReader) Close() error { return nil }

// ParseCSV parses skyscraper rows from r. source names r in errors.
func ParseCSV(ctx context.Context, r io.Reader, source string) ([]models.Skyscraper, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DataSourceError{Source: source, Line: 1, Err: fmt.Errorf("empty file: %w", ErrMissingColumn)}
		}
		return nil, &DataSourceError{Source: source, Line: 1, Err: err}
	}

	idx, missing := resolveColumns(header)
	if missing != nil {
		return nil, &DataSourceError{Source: source, Column: missing.column, Err: ErrMissingColumn}
	}

	var rows []models.Skyscraper
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &DataSourceError{Source: source, Err: err}
		}
		line, _ := cr.FieldPos(0)

		row, colErr := parseRow(rec, idx)
		if colErr != nil {
			return nil, &DataSourceError{Source: source, Line: line, Column: colErr.column, Err: colErr.err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type columnError struct {
	column string
	err    error
}

func resolveColumns(header []string) (map[string]int, *columnError) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := byName[name]; !dup {
			byName[name] = i
		}
	}

	idx := make(map[string]int, len(csvColumns))
	for _, col := range csvColumns {
		found := false
		for _, alias := range col.aliases {
			if i, ok := byName[alias]; ok {
				idx[col.field] = i
				found = true
				break
			}
		}
		if !found {
			return nil, &columnError{column: col.aliases[0]}
		}
	}
	return idx, nil
}

func parseRow(rec []string, idx map[string]int) (models.Skyscraper, *columnError) {
	cell := func(field string) string {
		i := idx[field]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var s models.Skyscraper
	var err error

	if s.ID, err = parseID(cell("id")); err != nil {
		return s, &columnError{"id", err}
	}
	s.Name = cell("name")
	s.City = cell("city")
	if s.Latitude, err = parseFloat(cell("latitude")); err != nil {
		return s, &columnError{"latitude", err}
	}
	if s.Longitude, err = parseFloat(cell("longitude")); err != nil {
		return s, &columnError{"longitude", err}
	}
	if s.Year, err = parseYear(cell("year")); err != nil {
		return s, &columnError{"status.completed.year", err}
	}
	if s.Height, err = parseFloat(cell("height")); err != nil {
		return s, &columnError{"statistics.height", err}
	}
	return s, nil
}

func parseID(v string) (int64, error) {
	if v == "" {
		return 0, fmt.Errorf("empty id: %w", ErrMalformedValue)
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q: %w", v, ErrMalformedValue)
	}
	return int64(f), nil
}

// parseFloat returns NaN for an empty cell.
func parseFloat(v string) (float64, error) {
	if v == "" {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", v, ErrMalformedValue)
	}
	return f, nil
}

// parseYear accepts integer or integral float notation; empty and NaN
// become 0. Fractional or out of range years are malformed.
func parseYear(v string) (int, error) {
	f, err := parseFloat(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%q: %w", v, ErrMalformedValue)
	}
	return int(f), nil
}
