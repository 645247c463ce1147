package storage

import (
	"context"

	"skyline/models"
)

// SkyscraperReader is the interface any record source must satisfy.
type SkyscraperReader interface {
	ReadAll(ctx context.Context) ([]models.Skyscraper, error)
	Close() error
}

// SkyscraperWriter is the interface for import targets.
type SkyscraperWriter interface {
	Write(ctx context.Context, rows []models.Skyscraper) error
	Close() error
}
