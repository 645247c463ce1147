// Package charts turns dashboard results into chart-ready series and renders
// them as SVG.
package charts

import (
	"fmt"
	"strings"

	"skyline/models"
)

// ExplodeOffset is how far, as a fraction of the radius, the largest share
// slice is pulled out of the pie.
const ExplodeOffset = 0.25

// DefaultZoom is the initial zoom level of the map view.
const DefaultZoom = 4

// ShareSlice is one city's part of the share chart.
type ShareSlice struct {
	City     string  `json:"city"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
	Label    string  `json:"label"`
	Exploded bool    `json:"exploded"`
}

// ShareChart shows how the filtered skyscrapers split across cities.
type ShareChart struct {
	Title  string       `json:"title"`
	Slices []ShareSlice `json:"slices"`
	Notice string       `json:"notice,omitempty"`
}

// Empty reports whether the chart has nothing to draw.
func (c ShareChart) Empty() bool { return len(c.Slices) == 0 }

// Share pairs counts with cities. The first city with the maximal count is
// exploded. No cities or an all-zero count list yield a notice instead.
func Share(counts []int, cities []string) ShareChart {
	c := ShareChart{Title: "Skyscraper Distribution: " + strings.Join(cities, ", ")}

	total, maxIdx := 0, -1
	for i, n := range counts {
		total += n
		if maxIdx < 0 || n > counts[maxIdx] {
			maxIdx = i
		}
	}
	if len(counts) == 0 || len(counts) != len(cities) || total == 0 {
		c.Notice = "No data available for the selected criteria."
		return c
	}

	c.Slices = make([]ShareSlice, len(counts))
	for i, n := range counts {
		pct := float64(n) / float64(total) * 100
		c.Slices[i] = ShareSlice{
			City:     cities[i],
			Count:    n,
			Percent:  pct,
			Label:    fmt.Sprintf("%.2f", pct),
			Exploded: i == maxIdx,
		}
	}
	return c
}

// Bar is one labelled magnitude.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// BarChart is a titled list of bars.
type BarChart struct {
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
	Notice string `json:"notice,omitempty"`
}

// Empty reports whether the chart has nothing to draw.
func (c BarChart) Empty() bool { return len(c.Bars) == 0 }

// Averages builds the average height per city chart.
func Averages(averages []models.CityAverage) BarChart {
	c := BarChart{
		Title:  "Average Heights of Skyscrapers by City",
		XLabel: "Cities",
		YLabel: "Average Height (ft)",
	}
	for _, a := range averages {
		c.Bars = append(c.Bars, Bar{Label: a.City, Value: a.Mean})
	}
	if c.Empty() {
		c.Notice = "No data available for the selected criteria."
	}
	return c
}

// ComparisonChart holds the tallest and shortest panels for one city.
type ComparisonChart struct {
	City     string   `json:"city"`
	Tallest  BarChart `json:"tallest"`
	Shortest BarChart `json:"shortest"`
	Notice   string   `json:"notice,omitempty"`
}

// Empty reports whether the chart has nothing to draw.
func (c ComparisonChart) Empty() bool { return c.Tallest.Empty() && c.Shortest.Empty() }

// Comparison builds the side-by-side panels from a dashboard comparison.
// Bar labels carry the rank so repeated names stay distinct.
func Comparison(cmp *models.Comparison) ComparisonChart {
	if cmp == nil {
		return ComparisonChart{Notice: "No data available."}
	}
	c := ComparisonChart{
		City:     cmp.City,
		Tallest:  rankedChart(fmt.Sprintf("%d Tallest Skyscrapers in %s", len(cmp.Tallest), cmp.City), cmp.Tallest),
		Shortest: rankedChart(fmt.Sprintf("%d Shortest Skyscrapers in %s", len(cmp.Shortest), cmp.City), cmp.Shortest),
		Notice:   cmp.Notice,
	}
	if c.Empty() && c.Notice == "" {
		c.Notice = fmt.Sprintf("No data available for %s.", cmp.City)
	}
	return c
}

func rankedChart(title string, rows []models.RankedRow) BarChart {
	c := BarChart{Title: title, XLabel: "Height (ft)", YLabel: "Skyscraper Name"}
	for i, r := range rows {
		c.Bars = append(c.Bars, Bar{Label: fmt.Sprintf("%d. %s", i+1, r.Name), Value: r.Height})
	}
	return c
}

// MapPoint is one skyscraper on the map.
type MapPoint struct {
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MapLayer is the geographic view of the filtered rows.
type MapLayer struct {
	Points    []MapPoint `json:"points"`
	CenterLat float64    `json:"center_lat"`
	CenterLon float64    `json:"center_lon"`
	Zoom      int        `json:"zoom"`
	Notice    string     `json:"notice,omitempty"`
}

// Empty reports whether the map has nothing to draw.
func (m MapLayer) Empty() bool { return len(m.Points) == 0 }

// Map keeps the rows with both coordinates and centres the view on their
// mean position.
func Map(rows models.FilteredView) MapLayer {
	m := MapLayer{Zoom: DefaultZoom}
	var sumLat, sumLon float64
	for _, s := range rows {
		if !s.HasCoordinates() {
			continue
		}
		m.Points = append(m.Points, MapPoint{Name: s.Name, City: s.City, Latitude: s.Latitude, Longitude: s.Longitude})
		sumLat += s.Latitude
		sumLon += s.Longitude
	}
	if m.Empty() {
		m.Notice = "No valid data for selected cities."
		return m
	}
	m.CenterLat = sumLat / float64(len(m.Points))
	m.CenterLon = sumLon / float64(len(m.Points))
	return m
}
