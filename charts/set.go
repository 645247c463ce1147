package charts

import (
	"errors"
	"fmt"
	"io"

	"skyline/models"
)

// Chart image sizes.
const (
	Width            = 640
	Height           = 400
	ComparisonHeight = 600
)

// ErrUnknownKind is returned by Render for a chart name not in Kinds.
var ErrUnknownKind = errors.New("unknown chart kind")

// Kinds lists every chart Render knows, in page order.
var Kinds = []string{"map", "share", "averages", "comparison"}

// Set is the chart-ready form of one dashboard view.
type Set struct {
	Share      ShareChart      `json:"share"`
	Averages   BarChart        `json:"averages"`
	Comparison ComparisonChart `json:"comparison"`
	Map        MapLayer        `json:"map"`
}

// FromView builds every chart for v. A view without data still yields a
// comparison notice for the first selected city.
func FromView(v *models.DashboardView) Set {
	cmp := v.Comparison
	if cmp == nil && len(v.Query.Cities) > 0 {
		city := v.Query.Cities[0]
		cmp = &models.Comparison{City: city, Notice: fmt.Sprintf("No data available for %s.", city)}
	}
	return Set{
		Share:      Share(v.Counts, v.Query.Cities),
		Averages:   Averages(v.Averages),
		Comparison: Comparison(cmp),
		Map:        Map(v.Rows),
	}
}

// Render writes the named chart of s as SVG.
func Render(w io.Writer, kind string, s Set) error {
	switch kind {
	case "share":
		return WriteShareSVG(w, s.Share, Width, Height)
	case "averages":
		return WriteBarSVG(w, s.Averages, Width, Height)
	case "comparison":
		return WriteComparisonSVG(w, s.Comparison, Width, ComparisonHeight)
	case "map":
		return WriteMapSVG(w, s.Map, Width, Height)
	}
	return fmt.Errorf("charts: %q: %w", kind, ErrUnknownKind)
}
