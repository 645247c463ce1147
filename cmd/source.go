package cmd

import (
	"context"
	"fmt"
	"time"

	"skyline/config"
	"skyline/services"
	"skyline/storage"
	"skyline/utils"
)

func retryConfig(c *config.Config) *utils.RetryConfig {
	return &utils.RetryConfig{
		MaxAttempts: c.MaxRetries,
		BaseDelay:   time.Duration(c.RetryBaseMs) * time.Millisecond,
		Logger:      logger,
	}
}

// openSource opens the configured record source.
func openSource(ctx context.Context, c *config.Config) (storage.SkyscraperReader, error) {
	switch c.Source {
	case "", "csv":
		return storage.NewCSVReader(c.CSVPath), nil
	case "postgres":
		store, err := storage.NewPostgresStore(ctx, c.DSN(), retryConfig(c))
		if err != nil {
			return nil, err
		}
		return store, nil
	case "sqlite":
		store, err := storage.NewSQLiteStore(ctx, c.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown source %q (want csv, postgres or sqlite)", c.Source)
}

// loadDashboard reads the configured source once and prepares a Dashboard.
func loadDashboard(ctx context.Context) (*services.Dashboard, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, err
	}
	src, err := openSource(ctx, c)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ds, err := services.NewLoader(src, logger).Load(ctx)
	if err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		logger.Warn("[loader] Dataset is empty, every query will report no data")
	}
	return services.NewDashboard(ds, c.Dashboard, logger), nil
}
