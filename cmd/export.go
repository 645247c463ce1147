package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"skyline/charts"
	"skyline/models"
	"skyline/storage"
	"skyline/utils"
)

var exportOut string

// exportManifest records what one export run wrote.
type exportManifest struct {
	RunID     string       `yaml:"run_id"`
	CreatedAt time.Time    `yaml:"created_at"`
	Query     models.Query `yaml:"query"`
	Rows      int          `yaml:"rows"`
	Files     []string     `yaml:"files"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every chart as SVG plus the filtered rows as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dash, err := loadDashboard(ctx)
		if err != nil {
			return err
		}
		out := cfg.ExportDir
		if cmd.Flags().Changed("out") && exportOut != "" {
			out = exportOut
		}
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("export: create %s: %w", out, err)
		}

		q := selectionFromFlags(cmd, dash)
		v := dash.Build(q)
		set := charts.FromView(v)
		runID := uuid.NewString()
		logger.Info("[export] Run %s: %d rows for %v", runID, len(v.Rows), q.Cities)

		files, err := exportFiles(ctx, out, v, set)
		if err != nil {
			return err
		}

		m := exportManifest{RunID: runID, CreatedAt: time.Now().UTC(), Query: q, Rows: len(v.Rows), Files: files}
		data, err := yaml.Marshal(m)
		if err != nil {
			return fmt.Errorf("export: manifest: %w", err)
		}
		if err := os.WriteFile(filepath.Join(out, "manifest.yaml"), data, 0o644); err != nil {
			return fmt.Errorf("export: manifest: %w", err)
		}
		logger.Info("[export] Wrote %d files to %s", len(files)+1, out)
		return nil
	},
}

// exportFiles renders the charts and the rows CSV concurrently and returns
// the written file names.
func exportFiles(ctx context.Context, out string, v *models.DashboardView, set charts.Set) ([]string, error) {
	pool := utils.NewWorkerPool(cfg.MaxConcurrency, 0)
	var errs utils.ErrorList

	files := make([]string, 0, len(charts.Kinds)+1)
	for _, kind := range charts.Kinds {
		name := kind + ".svg"
		files = append(files, name)
		pool.Submit(func() {
			var buf bytes.Buffer
			if err := charts.Render(&buf, kind, set); err != nil {
				errs.Add(fmt.Errorf("export: %s: %w", name, err))
				return
			}
			if err := os.WriteFile(filepath.Join(out, name), buf.Bytes(), 0o644); err != nil {
				errs.Add(fmt.Errorf("export: %s: %w", name, err))
				return
			}
			logger.Debug("[export] Wrote %s", name)
		})
	}

	files = append(files, "skyscrapers.csv")
	pool.Submit(func() {
		w, err := storage.NewCSVWriter(filepath.Join(out, "skyscrapers.csv"))
		if err != nil {
			errs.Add(fmt.Errorf("export: %w", err))
			return
		}
		if err := w.Write(ctx, v.Rows); err != nil {
			errs.Add(fmt.Errorf("export: %w", err))
		}
		if err := w.Close(); err != nil {
			errs.Add(fmt.Errorf("export: %w", err))
		}
	})

	pool.Wait()
	if e := errs.Errors(); len(e) > 0 {
		return nil, errors.Join(e...)
	}
	return files, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addSelectionFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (overrides config export_dir)")
}
