package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"skyline/services"
	"skyline/storage"
)

var importTarget string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the CSV dataset, clean it and store it in Postgres or SQLite",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := requireConfig()
		if err != nil {
			return err
		}

		ds, err := services.NewLoader(storage.NewCSVReader(c.CSVPath), logger).Load(ctx)
		if err != nil {
			return err
		}

		var target storage.SkyscraperWriter
		switch importTarget {
		case "sqlite":
			target, err = storage.NewSQLiteStore(ctx, c.SQLitePath)
		case "postgres":
			target, err = storage.NewPostgresStore(ctx, c.DSN(), retryConfig(c))
		default:
			return fmt.Errorf("unknown import target %q (want sqlite or postgres)", importTarget)
		}
		if err != nil {
			return err
		}
		defer target.Close()

		if err := target.Write(ctx, ds.Records()); err != nil {
			return err
		}
		logger.Info("[import] Stored %d skyscrapers in %s", ds.Len(), importTarget)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importTarget, "to", "sqlite", "import target: sqlite or postgres")
}
