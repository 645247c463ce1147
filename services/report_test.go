package services

import (
	"bytes"
	"strings"
	"testing"

	"skyline/models"
)

func TestReportPrint(t *testing.T) {
	d := newTestDashboard()
	var buf bytes.Buffer
	NewReport(&buf).Print(d.Build(models.Query{Cities: []string{"A", "B"}, MinYear: 1900}))
	out := buf.String()

	for _, want := range []string{
		"Skyscraper Distribution: A, B",
		"66.67% (2)",
		"Average Heights of Skyscrapers by City",
		"Tallest and Shortest in A",
		"Filtered Skyscrapers (3)",
		"a2",
		"Top 3 Tallest Skyscrapers of All Time",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report: missing %q", want)
		}
	}
}

func TestReportPrintNoData(t *testing.T) {
	d := newTestDashboard()
	var buf bytes.Buffer
	NewReport(&buf).Print(d.Build(models.Query{}))
	out := buf.String()
	if !strings.Contains(out, noDataNotice) {
		t.Errorf("report: missing no-data notice")
	}
	if strings.Contains(out, "Filtered Skyscrapers") {
		t.Errorf("report: filtered table printed without data")
	}
	if !strings.Contains(out, "b1") {
		t.Errorf("report: all-time list missing")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Burj Khalifa", 5); got != "Burj…" {
		t.Errorf("truncate: got %q, want %q", got, "Burj…")
	}
	if got := truncate("Tower", 5); got != "Tower" {
		t.Errorf("truncate: got %q, want %q", got, "Tower")
	}
}
