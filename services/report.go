package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-gg/table"

	"skyline/charts"
	"skyline/models"
)

// Report renders dashboard views as a coloured terminal report.
type Report struct {
	w io.Writer
}

// NewReport creates a Report writing to w.
func NewReport(w io.Writer) *Report {
	return &Report{w: w}
}

// Print writes every panel of v.
func (r *Report) Print(v *models.DashboardView) {
	sep := strings.Repeat("═", 60)
	thin := strings.Repeat("─", 60)
	w := r.w

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  SKYSCRAPER DASHBOARD\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Selection\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Cities     : \033[1m%s\033[0m\n", strings.Join(v.Query.Cities, ", "))
	fmt.Fprintf(w, "  Height >   : \033[1m%.0f ft\033[0m (max %d)\n", v.Query.MinHeight, v.Bounds.MaxHeight)
	fmt.Fprintf(w, "  Year >     : \033[1m%d\033[0m (%d-%d)\n", v.Query.MinYear, v.Bounds.MinYear, v.Bounds.MaxYear)
	fmt.Fprintln(w)

	if v.NoData {
		fmt.Fprintf(w, "  \033[1;31m%s\033[0m\n\n", v.Notice)
	} else {
		r.printShare(v, thin)
		r.printAverages(v, thin)
		r.printComparison(v.Comparison, thin)

		fmt.Fprintf(w, "\033[1;33m  Filtered Skyscrapers (%d)\033[0m\n", len(v.Table))
		fmt.Fprintf(w, "  %s\n", thin)
		table.Fprint(w, tableRows(v.Table))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Top %d Tallest Skyscrapers of All Time\033[0m\n", len(v.AllTimeTallest))
	fmt.Fprintf(w, "  %s\n", thin)
	if len(v.AllTimeTallest) == 0 {
		fmt.Fprintf(w, "  No completed skyscrapers\n")
	} else {
		table.Fprint(w, rankedTable(v.AllTimeTallest), "%s", "%s", "%.0f")
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func (r *Report) printShare(v *models.DashboardView, thin string) {
	share := charts.Share(v.Counts, v.Query.Cities)
	fmt.Fprintf(r.w, "\033[1;33m  %s\033[0m\n", share.Title)
	fmt.Fprintf(r.w, "  %s\n", thin)
	if share.Empty() {
		fmt.Fprintf(r.w, "  %s\n\n", share.Notice)
		return
	}
	for _, s := range share.Slices {
		bar := strings.Repeat("█", int(s.Percent/2))
		marker := " "
		if s.Exploded {
			marker = "*"
		}
		fmt.Fprintf(r.w, " %s%-24s %s %s%% (%d)\n", marker, truncate(s.City, 22), bar, s.Label, s.Count)
	}
	fmt.Fprintln(r.w)
}

func (r *Report) printAverages(v *models.DashboardView, thin string) {
	fmt.Fprintf(r.w, "\033[1;33m  Average Heights of Skyscrapers by City\033[0m\n")
	fmt.Fprintf(r.w, "  %s\n", thin)
	for _, a := range v.Averages {
		fmt.Fprintf(r.w, "  %-24s \033[1;32m%8.1f ft\033[0m\n", truncate(a.City, 22), a.Mean)
	}
	fmt.Fprintln(r.w)
}

func (r *Report) printComparison(cmp *models.Comparison, thin string) {
	if cmp == nil {
		return
	}
	fmt.Fprintf(r.w, "\033[1;33m  Tallest and Shortest in %s\033[0m\n", cmp.City)
	fmt.Fprintf(r.w, "  %s\n", thin)
	if cmp.Notice != "" {
		fmt.Fprintf(r.w, "  %s\n\n", cmp.Notice)
		return
	}
	for _, part := range []struct {
		label string
		rows  []models.RankedRow
	}{{"Tallest", cmp.Tallest}, {"Shortest", cmp.Shortest}} {
		fmt.Fprintf(r.w, "  %s:\n", part.label)
		for i, row := range part.rows {
			fmt.Fprintf(r.w, "  \033[1m%d.\033[0m %-40s \033[1;32m%.0f ft\033[0m\n", i+1, truncate(row.Name, 38), row.Height)
		}
	}
	fmt.Fprintln(r.w)
}

func tableRows(rows []models.TableRow) *table.Table {
	names := make([]string, len(rows))
	cities := make([]string, len(rows))
	years := make([]int, len(rows))
	for i, row := range rows {
		names[i], cities[i], years[i] = row.Name, row.City, row.Year
	}
	return new(table.Builder).
		Add("name", names).
		Add("city", cities).
		Add("year", years).
		Done()
}

func rankedTable(rows []models.RankedRow) *table.Table {
	names := make([]string, len(rows))
	cities := make([]string, len(rows))
	heights := make([]float64, len(rows))
	for i, row := range rows {
		names[i], cities[i], heights[i] = row.Name, row.City, row.Height
	}
	return new(table.Builder).
		Add("name", names).
		Add("city", cities).
		Add("height", heights).
		Done()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
