package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skyline/charts"
	"skyline/config"
	"skyline/models"
	"skyline/storage"
)

const testCSV = `id,name,location.city,latitude,longitude,status.completed.year,statistics.height
1,Tower One,A,40.1,-70.2,2000,500
2,Tower Two,A,40.3,-70.1,2005,300
3,Tower Three,B,35.0,-80.0,2010,700
4,Unfinished,B,35.1,-80.1,,900
`

func useTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "skyscrapers.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	prev := cfg
	t.Cleanup(func() { cfg = prev })
	cfg = &config.Config{
		Source:         "csv",
		CSVPath:        path,
		SQLitePath:     filepath.Join(dir, "skyline.db"),
		MaxConcurrency: 2,
		Dashboard:      config.DefaultDashboard(),
	}
	return dir
}

func TestLoadDashboard(t *testing.T) {
	useTestConfig(t)
	dash, err := loadDashboard(context.Background())
	if err != nil {
		t.Fatalf("loadDashboard: %v", err)
	}
	if got := dash.Dataset().Len(); got != 3 {
		t.Errorf("dataset: got %d rows, want 3", got)
	}
}

func TestOpenSourceUnknown(t *testing.T) {
	if _, err := openSource(context.Background(), &config.Config{Source: "mongo"}); err == nil {
		t.Errorf("openSource: got nil error for unknown source")
	}
}

func TestRequireConfigMissing(t *testing.T) {
	prev := cfg
	cfg = nil
	defer func() { cfg = prev }()
	if _, err := requireConfig(); err == nil {
		t.Errorf("requireConfig: got nil error without config")
	}
}

func TestExportFiles(t *testing.T) {
	useTestConfig(t)
	dash, err := loadDashboard(context.Background())
	if err != nil {
		t.Fatalf("loadDashboard: %v", err)
	}
	out := t.TempDir()
	v := dash.Build(models.Query{Cities: []string{"A", "B"}, MinYear: 1900})

	files, err := exportFiles(context.Background(), out, v, charts.FromView(v))
	if err != nil {
		t.Fatalf("exportFiles: %v", err)
	}
	if len(files) != len(charts.Kinds)+1 {
		t.Errorf("files: got %v", files)
	}

	share, err := os.ReadFile(filepath.Join(out, "share.svg"))
	if err != nil || !strings.Contains(string(share), "<svg") {
		t.Errorf("share.svg: err %v", err)
	}
	rows, err := storage.NewCSVReader(filepath.Join(out, "skyscrapers.csv")).ReadAll(context.Background())
	if err != nil {
		t.Fatalf("read exported csv: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("exported rows: got %d, want 3", len(rows))
	}
}

func TestImportRoundTripThroughSQLite(t *testing.T) {
	useTestConfig(t)
	ctx := context.Background()

	importTarget = "sqlite"
	importCmd.SetContext(ctx)
	if err := importCmd.RunE(importCmd, nil); err != nil {
		t.Fatalf("import: %v", err)
	}

	cfg.Source = "sqlite"
	dash, err := loadDashboard(ctx)
	if err != nil {
		t.Fatalf("loadDashboard from sqlite: %v", err)
	}
	if got := dash.Dataset().Len(); got != 3 {
		t.Errorf("sqlite dataset: got %d rows, want 3", got)
	}
}
