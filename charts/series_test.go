package charts

import (
	"math"
	"testing"

	"skyline/models"
)

func TestShare(t *testing.T) {
	c := Share([]int{2, 1}, []string{"A", "B"})
	if c.Empty() {
		t.Fatalf("Share: got empty chart, notice %q", c.Notice)
	}
	if c.Title != "Skyscraper Distribution: A, B" {
		t.Errorf("title: got %q", c.Title)
	}
	if !c.Slices[0].Exploded || c.Slices[1].Exploded {
		t.Errorf("exploded: got %v/%v, want true/false", c.Slices[0].Exploded, c.Slices[1].Exploded)
	}
	if c.Slices[0].Label != "66.67" || c.Slices[1].Label != "33.33" {
		t.Errorf("labels: got %q/%q, want 66.67/33.33", c.Slices[0].Label, c.Slices[1].Label)
	}
}

func TestShareExplodesFirstMaximum(t *testing.T) {
	c := Share([]int{1, 3, 3}, []string{"A", "B", "C"})
	var exploded []string
	for _, s := range c.Slices {
		if s.Exploded {
			exploded = append(exploded, s.City)
		}
	}
	if len(exploded) != 1 || exploded[0] != "B" {
		t.Errorf("exploded: got %v, want [B]", exploded)
	}
}

func TestShareNoData(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		cities []string
	}{
		{"no cities", nil, nil},
		{"all zero", []int{0, 0}, []string{"A", "B"}},
		{"length mismatch", []int{1}, []string{"A", "B"}},
	}
	for _, tt := range tests {
		c := Share(tt.counts, tt.cities)
		if !c.Empty() || c.Notice == "" {
			t.Errorf("%s: got %d slices notice %q, want empty with notice", tt.name, len(c.Slices), c.Notice)
		}
	}
}

func TestAverages(t *testing.T) {
	c := Averages([]models.CityAverage{{City: "A", Mean: 400}, {City: "B", Mean: 700}})
	if len(c.Bars) != 2 || c.Bars[1].Label != "B" || c.Bars[1].Value != 700 {
		t.Errorf("bars: got %+v", c.Bars)
	}
	if c.YLabel != "Average Height (ft)" {
		t.Errorf("y label: got %q", c.YLabel)
	}
	if empty := Averages(nil); !empty.Empty() || empty.Notice == "" {
		t.Errorf("empty averages: got %+v", empty)
	}
}

func TestComparison(t *testing.T) {
	c := Comparison(&models.Comparison{
		City:     "A",
		Tallest:  []models.RankedRow{{Name: "x", City: "A", Height: 500}, {Name: "y", City: "A", Height: 300}},
		Shortest: []models.RankedRow{{Name: "y", City: "A", Height: 300}, {Name: "x", City: "A", Height: 500}},
	})
	if c.Empty() {
		t.Fatalf("Comparison: got empty chart")
	}
	if c.Tallest.Title != "2 Tallest Skyscrapers in A" {
		t.Errorf("tallest title: got %q", c.Tallest.Title)
	}
	if c.Shortest.Bars[0].Label != "1. y" {
		t.Errorf("shortest first label: got %q, want %q", c.Shortest.Bars[0].Label, "1. y")
	}

	short := Comparison(&models.Comparison{
		City:     "C",
		Tallest:  []models.RankedRow{{Name: "only", City: "C", Height: 100}},
		Shortest: []models.RankedRow{{Name: "only", City: "C", Height: 100}},
	})
	if short.Tallest.Title != "1 Tallest Skyscrapers in C" || short.Shortest.Title != "1 Shortest Skyscrapers in C" {
		t.Errorf("titles follow row count: got %q / %q", short.Tallest.Title, short.Shortest.Title)
	}

	empty := Comparison(&models.Comparison{City: "Z"})
	if !empty.Empty() || empty.Notice != "No data available for Z." {
		t.Errorf("empty comparison notice: got %q", empty.Notice)
	}
}

func TestMap(t *testing.T) {
	rows := models.FilteredView{
		{Name: "a", City: "A", Latitude: 10, Longitude: 20},
		{Name: "b", City: "A", Latitude: 30, Longitude: math.NaN()},
		{Name: "c", City: "B", Latitude: 20, Longitude: 40},
	}
	m := Map(rows)
	if len(m.Points) != 2 {
		t.Fatalf("points: got %d, want 2", len(m.Points))
	}
	if m.CenterLat != 15 || m.CenterLon != 30 {
		t.Errorf("centre: got %v,%v, want 15,30", m.CenterLat, m.CenterLon)
	}
	if m.Zoom != DefaultZoom {
		t.Errorf("zoom: got %d, want %d", m.Zoom, DefaultZoom)
	}

	empty := Map(models.FilteredView{{Name: "n", Latitude: math.NaN(), Longitude: 1}})
	if !empty.Empty() || empty.Notice != "No valid data for selected cities." {
		t.Errorf("empty map: got %+v", empty)
	}
}
