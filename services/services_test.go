package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"skyline/config"
	"skyline/models"
	"skyline/storage"
	"skyline/utils"
)

type sliceSource struct {
	rows []models.Skyscraper
	err  error
}

func (s sliceSource) ReadAll(ctx context.Context) ([]models.Skyscraper, error) {
	return s.rows, s.err
}

func (s sliceSource) Close() error { return nil }

// abDataset is two cities with three qualifying records in total.
func abDataset() *models.Dataset {
	return models.NewDataset([]models.Skyscraper{
		{ID: 1, Name: "a1", City: "A", Latitude: 40, Longitude: -70, Year: 2000, Height: 500},
		{ID: 2, Name: "a2", City: "A", Latitude: 40, Longitude: -71, Year: 2005, Height: 300},
		{ID: 3, Name: "b1", City: "B", Latitude: 35, Longitude: -80, Year: 2010, Height: 700},
	})
}

func TestLoaderClean(t *testing.T) {
	raw := []models.Skyscraper{
		{ID: 1, Name: "  Tower\tOne ", City: " New  York", Latitude: 40, Year: 1990, Height: 100},
		{ID: 1, Name: "dup", City: "X", Latitude: 40, Year: 1990, Height: 100},
		{ID: 2, Name: "no year", City: "X", Latitude: 40, Year: 0, Height: 100},
		{ID: 3, Name: "bad lat", City: "X", Latitude: -3, Year: 1990, Height: 100},
		{ID: 4, Name: "nan lat", City: "X", Latitude: math.NaN(), Year: 1990, Height: 100},
		{ID: 5, Name: "ok", City: "Y", Latitude: 1, Year: 1, Height: math.NaN()},
	}
	got := NewLoader(nil, utils.NewDiscardLogger()).Clean(raw)
	if len(got) != 2 {
		t.Fatalf("Clean: got %d rows, want 2", len(got))
	}
	if got[0].Name != "Tower One" || got[0].City != "New York" {
		t.Errorf("normalised text: got %q/%q", got[0].Name, got[0].City)
	}
	for _, r := range got {
		if r.Year <= 0 || r.Latitude <= 0 {
			t.Errorf("invalid row kept: %+v", r)
		}
	}
}

func TestLoaderLoad(t *testing.T) {
	l := NewLoader(sliceSource{rows: abDataset().Records()}, utils.NewDiscardLogger())
	ds, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 3 {
		t.Errorf("Len: got %d, want 3", ds.Len())
	}

	srcErr := &storage.DataSourceError{Source: "x.csv", Column: "latitude", Err: storage.ErrMissingColumn}
	_, err = NewLoader(sliceSource{err: srcErr}, utils.NewDiscardLogger()).Load(context.Background())
	var dse *storage.DataSourceError
	if !errors.As(err, &dse) || !errors.Is(err, storage.ErrMissingColumn) {
		t.Errorf("Load error: got %v, want wrapped DataSourceError", err)
	}
}

func TestFilter(t *testing.T) {
	ds := abDataset()
	tests := []struct {
		name string
		q    models.Query
		want []int64
	}{
		{"both cities", models.Query{Cities: []string{"A", "B"}, MinHeight: 0, MinYear: 1900}, []int64{1, 2, 3}},
		{"height boundary is strict", models.Query{Cities: []string{"A", "B"}, MinHeight: 500}, []int64{3}},
		{"year boundary is strict", models.Query{Cities: []string{"A", "B"}, MinYear: 2005}, []int64{3}},
		{"one city", models.Query{Cities: []string{"B"}}, []int64{3}},
		{"unknown city", models.Query{Cities: []string{"Z"}}, nil},
		{"no cities", models.Query{}, nil},
	}
	for _, tt := range tests {
		got := Filter(ds, tt.q)
		if got == nil {
			t.Errorf("%s: got nil view", tt.name)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %d rows, want %d", tt.name, len(got), len(tt.want))
			continue
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("%s: row %d: got id %d, want %d", tt.name, i, got[i].ID, id)
			}
		}
	}
}

func TestFilterExcludesMissingHeight(t *testing.T) {
	ds := models.NewDataset([]models.Skyscraper{
		{ID: 1, City: "A", Latitude: 1, Year: 2000, Height: math.NaN()},
	})
	if got := Filter(ds, models.Query{Cities: []string{"A"}}); len(got) != 0 {
		t.Errorf("Filter: got %d rows, want 0", len(got))
	}
}

func TestAggregates(t *testing.T) {
	view := Filter(abDataset(), models.Query{Cities: []string{"A", "B"}, MinYear: 1900})

	counts := CountByCity(view, []string{"A", "B", "C"})
	want := []int{2, 1, 0}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("CountByCity[%d]: got %d, want %d", i, counts[i], want[i])
		}
	}

	avgs := AveragesByCity(HeightsByCity(view))
	if len(avgs) != 2 {
		t.Fatalf("AveragesByCity: got %d cities, want 2", len(avgs))
	}
	if avgs[0].City != "A" || avgs[0].Mean != 400 {
		t.Errorf("A: got %+v, want mean 400", avgs[0])
	}
	if avgs[1].City != "B" || avgs[1].Mean != 700 {
		t.Errorf("B: got %+v, want mean 700", avgs[1])
	}

	if got := AveragesByCity([]models.CityHeights{{City: "E"}}); len(got) != 0 {
		t.Errorf("empty group: got %+v, want omitted", got)
	}

	aggs := AggregateByCity(view)
	if len(aggs) != 2 || aggs[0].Count != 2 || aggs[0].MeanHeight != 400 {
		t.Errorf("AggregateByCity: got %+v", aggs)
	}
}

func TestRanking(t *testing.T) {
	rows := []models.Skyscraper{
		{ID: 1, Height: 300},
		{ID: 2, Height: math.NaN()},
		{ID: 3, Height: 500},
		{ID: 4, Height: 300},
		{ID: 5, Height: 100},
	}
	ids := func(rs []models.Skyscraper) []int64 {
		out := make([]int64, len(rs))
		for i, r := range rs {
			out[i] = r.ID
		}
		return out
	}
	tests := []struct {
		name string
		got  []models.Skyscraper
		want []int64
	}{
		{"top 3", TopN(rows, 3), []int64{3, 1, 4}},
		{"bottom 3", BottomN(rows, 3), []int64{5, 1, 4}},
		{"top all", TopN(rows, 10), []int64{3, 1, 4, 5, 2}},
		{"bottom all", BottomN(rows, 10), []int64{5, 1, 4, 3, 2}},
		{"zero", TopN(rows, 0), []int64{}},
		{"empty input", BottomN(nil, 3), []int64{}},
	}
	for _, tt := range tests {
		got := ids(tt.got)
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
				break
			}
		}
	}
}

func TestTopAndBottomCoverDistinctHeights(t *testing.T) {
	rows := abDataset().Records()
	k := (len(rows) + 1) / 2
	seen := map[float64]bool{}
	for _, r := range append(TopN(rows, k), BottomN(rows, k)...) {
		seen[r.Height] = true
	}
	for _, r := range rows {
		if !seen[r.Height] {
			t.Errorf("height %v missing from top/bottom %d", r.Height, k)
		}
	}
}

func newTestDashboard() *Dashboard {
	settings := config.DefaultDashboard()
	settings.DefaultCities = []string{"A", "Nowhere"}
	return NewDashboard(abDataset(), settings, utils.NewDiscardLogger())
}

func TestDashboardBounds(t *testing.T) {
	d := newTestDashboard()

	b := d.Bounds([]string{"A"})
	if b.Fallback || b.MaxHeight != 500 || b.MinYear != 2000 || b.MaxYear != 2005 {
		t.Errorf("Bounds(A): got %+v", b)
	}

	fb := d.Bounds(nil)
	if !fb.Fallback || fb.MaxHeight != 600 || fb.MinYear != 1900 || fb.MaxYear != 2024 {
		t.Errorf("Bounds(nil): got %+v, want fallback 600/1900/2024", fb)
	}
}

func TestDashboardResolve(t *testing.T) {
	d := newTestDashboard()

	q := d.Resolve([]string{"A"}, nil, nil)
	if q.MinHeight != 0 || q.MinYear != 2000 {
		t.Errorf("defaults: got %+v, want height 0 year 2000", q)
	}

	h, y := 9000.0, 1800
	q = d.Resolve([]string{"A"}, &h, &y)
	if q.MinHeight != 500 || q.MinYear != 2000 {
		t.Errorf("clamped: got %+v, want height 500 year 2000", q)
	}
}

func TestDashboardResolveNonFiniteHeight(t *testing.T) {
	d := newTestDashboard()
	tests := []struct {
		in   float64
		want float64
	}{
		{math.NaN(), 0},
		{math.Inf(1), 500},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		h := tt.in
		q := d.Resolve([]string{"A"}, &h, nil)
		if q.MinHeight != tt.want {
			t.Errorf("Resolve(%v): got height %v, want %v", tt.in, q.MinHeight, tt.want)
		}
	}
}

func TestDashboardDefaultCities(t *testing.T) {
	got := newTestDashboard().DefaultCities()
	if len(got) != 1 || got[0] != "A" {
		t.Errorf("DefaultCities: got %v, want [A]", got)
	}
}

func TestDashboardBuild(t *testing.T) {
	d := newTestDashboard()
	v := d.Build(models.Query{Cities: []string{"A", "B"}, MinHeight: 0, MinYear: 1900})

	if v.NoData {
		t.Fatalf("Build: got NoData, notice %q", v.Notice)
	}
	if len(v.Table) != 3 || len(v.Counts) != 2 || v.Counts[0] != 2 || v.Counts[1] != 1 {
		t.Errorf("table/counts: got %d rows, counts %v", len(v.Table), v.Counts)
	}
	if v.Comparison == nil || v.Comparison.City != "A" || v.Comparison.Tallest[0].Name != "a1" {
		t.Errorf("comparison: got %+v", v.Comparison)
	}
	if len(v.AllTimeTallest) != 3 || v.AllTimeTallest[0].Name != "b1" {
		t.Errorf("all-time: got %+v", v.AllTimeTallest)
	}
}

func TestDashboardBuildComparisonWithoutFirstCityRows(t *testing.T) {
	d := newTestDashboard()
	v := d.Build(models.Query{Cities: []string{"A", "B"}, MinHeight: 600})
	if v.NoData {
		t.Fatalf("Build: got NoData")
	}
	if v.Comparison.Notice != "No data available for A." {
		t.Errorf("comparison notice: got %q", v.Comparison.Notice)
	}
}

func TestDashboardBuildNoData(t *testing.T) {
	d := newTestDashboard()
	v := d.Build(models.Query{})
	if !v.NoData || v.Notice != noDataNotice {
		t.Errorf("empty selection: got NoData=%v notice %q", v.NoData, v.Notice)
	}
	if len(v.Counts) != 0 || v.Comparison != nil {
		t.Errorf("empty selection: panels not empty: %+v", v)
	}
	if len(v.AllTimeTallest) == 0 {
		t.Errorf("empty selection: all-time list should still be filled")
	}
}
