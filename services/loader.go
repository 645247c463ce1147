package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"skyline/models"
	"skyline/storage"
	"skyline/utils"
)

// Loader reads a record source once and cleans it into a Dataset.
type Loader struct {
	source storage.SkyscraperReader
	logger *utils.Logger
}

// NewLoader creates a Loader over source.
func NewLoader(source storage.SkyscraperReader, logger *utils.Logger) *Loader {
	return &Loader{source: source, logger: logger}
}

// Load reads every row and returns the cleaned Dataset. Source failures are
// returned as *storage.DataSourceError.
func (l *Loader) Load(ctx context.Context) (*models.Dataset, error) {
	rows, err := l.source.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	ds := models.NewDataset(l.Clean(rows))
	l.logger.Info("[loader] Dataset ready: %d skyscrapers in %d cities", ds.Len(), len(ds.Cities()))
	return ds, nil
}

// Clean normalises text, drops duplicate IDs and applies the validity rules
// in order: completion year must be positive, then latitude must be positive.
func (l *Loader) Clean(raw []models.Skyscraper) []models.Skyscraper {
	seen := make(map[int64]struct{}, len(raw))
	result := make([]models.Skyscraper, 0, len(raw))
	var dups, badYear, badLat int

	for _, r := range raw {
		if _, dup := seen[r.ID]; dup {
			l.logger.Debug("[loader] Duplicate id skipped: %d", r.ID)
			dups++
			continue
		}
		seen[r.ID] = struct{}{}

		r.Name = normaliseText(r.Name)
		r.City = normaliseText(r.City)

		if r.Year <= 0 {
			badYear++
			continue
		}
		if math.IsNaN(r.Latitude) || r.Latitude <= 0 {
			badLat++
			continue
		}
		result = append(result, r)
	}

	l.logger.Info("[loader] Cleaned %d → %d rows (duplicates %d, no completion year %d, bad latitude %d)",
		len(raw), len(result), dups, badYear, badLat)
	return result
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
