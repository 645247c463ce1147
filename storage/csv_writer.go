package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"skyline/models"
)

// CSVWriter writes skyscraper records to a CSV file using the canonical
// dotted column names. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	header := make([]string, len(csvColumns))
	for i, col := range csvColumns {
		header[i] = col.aliases[0]
	}
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends rows to the file.
func (c *CSVWriter) Write(ctx context.Context, rows []models.Skyscraper) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := []string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			s.City,
			formatFloat(s.Latitude),
			formatFloat(s.Longitude),
			strconv.Itoa(s.Year),
			formatFloat(s.Height),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writer.Flush()
	return c.file.Close()
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
