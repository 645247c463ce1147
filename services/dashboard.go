package services

import (
	"fmt"
	"math"

	"skyline/config"
	"skyline/models"
	"skyline/utils"
)

const noDataNotice = "No valid data available for the selected parameters."

// Dashboard answers queries against one loaded Dataset. It holds no mutable
// state, so a single instance can serve concurrent requests.
type Dashboard struct {
	dataset  *models.Dataset
	settings config.Dashboard
	logger   *utils.Logger
	allTime  []models.RankedRow
}

// NewDashboard prepares a Dashboard over ds. The all-time ranking ignores
// filters and is computed once.
func NewDashboard(ds *models.Dataset, settings config.Dashboard, logger *utils.Logger) *Dashboard {
	if settings.RankSize <= 0 {
		settings.RankSize = config.DefaultDashboard().RankSize
	}
	return &Dashboard{
		dataset:  ds,
		settings: settings,
		logger:   logger,
		allTime:  rankedRows(TopN(ds.Records(), settings.RankSize)),
	}
}

// Dataset returns the underlying dataset.
func (d *Dashboard) Dataset() *models.Dataset { return d.dataset }

// Settings returns the dashboard settings in use.
func (d *Dashboard) Settings() config.Dashboard { return d.settings }

// Cities lists every selectable city in dataset order.
func (d *Dashboard) Cities() []string { return d.dataset.Cities() }

// DefaultCities returns the configured initial selection, limited to cities
// present in the dataset.
func (d *Dashboard) DefaultCities() []string {
	known := make(map[string]struct{})
	for _, c := range d.dataset.Cities() {
		known[c] = struct{}{}
	}
	var out []string
	for _, c := range d.settings.DefaultCities {
		if _, ok := known[c]; ok {
			out = append(out, c)
		} else {
			d.logger.Warn("[dashboard] Default city %q not in dataset, skipping", c)
		}
	}
	return out
}

// AllTimeTallest returns the tallest records of the whole dataset.
func (d *Dashboard) AllTimeTallest() []models.RankedRow {
	out := make([]models.RankedRow, len(d.allTime))
	copy(out, d.allTime)
	return out
}

// Bounds computes the slider limits for a city selection: the truncated
// maximum height and the completion year range of the selected cities.
// Without matching records the configured fallbacks are used.
func (d *Dashboard) Bounds(cities []string) models.SliderBounds {
	selected := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		selected[c] = struct{}{}
	}

	var (
		n                int
		maxHeight        = math.Inf(-1)
		minYear, maxYear int
	)
	d.dataset.Each(func(s models.Skyscraper) {
		if _, ok := selected[s.City]; !ok {
			return
		}
		if n == 0 || s.Year < minYear {
			minYear = s.Year
		}
		if n == 0 || s.Year > maxYear {
			maxYear = s.Year
		}
		if !math.IsNaN(s.Height) && s.Height > maxHeight {
			maxHeight = s.Height
		}
		n++
	})

	if n == 0 {
		return models.SliderBounds{
			MaxHeight: d.settings.FallbackMaxHeight,
			MinYear:   d.settings.FallbackMinYear,
			MaxYear:   d.settings.FallbackMaxYear,
			Fallback:  true,
		}
	}

	b := models.SliderBounds{MinYear: minYear, MaxYear: maxYear}
	if math.IsInf(maxHeight, -1) {
		b.MaxHeight = d.settings.FallbackMaxHeight
	} else {
		b.MaxHeight = int(maxHeight)
	}
	return b
}

// Resolve turns raw slider input into a Query. Missing or NaN values take
// the lower slider bound; present values are clamped into the bounds.
func (d *Dashboard) Resolve(cities []string, minHeight *float64, minYear *int) models.Query {
	b := d.Bounds(cities)
	q := models.Query{Cities: cities, MinHeight: 0, MinYear: b.MinYear}

	if minHeight != nil && !math.IsNaN(*minHeight) {
		q.MinHeight = math.Max(0, math.Min(*minHeight, float64(b.MaxHeight)))
	}
	if minYear != nil {
		q.MinYear = *minYear
		if q.MinYear < b.MinYear {
			q.MinYear = b.MinYear
		}
		if q.MinYear > b.MaxYear {
			q.MinYear = b.MaxYear
		}
	}
	return q
}

// Build recomputes every panel for q. An empty result is reported through
// NoData and Notice, never as an error.
func (d *Dashboard) Build(q models.Query) *models.DashboardView {
	view := Filter(d.dataset, q)
	v := &models.DashboardView{
		Query:          q,
		Bounds:         d.Bounds(q.Cities),
		AllTimeTallest: d.AllTimeTallest(),
		Rows:           view,
	}
	d.logger.Debug("[dashboard] Query cities=%q minHeight=%g minYear=%d → %d rows",
		q.Cities, q.MinHeight, q.MinYear, len(view))

	if len(view) == 0 {
		v.NoData = true
		v.Notice = noDataNotice
		return v
	}

	v.Table = make([]models.TableRow, len(view))
	for i, s := range view {
		v.Table[i] = models.TableRow{Name: s.Name, City: s.City, Year: s.Year}
	}
	v.Counts = CountByCity(view, q.Cities)
	v.Aggregates = AggregateByCity(view)
	v.Averages = AveragesByCity(HeightsByCity(view))

	city := q.Cities[0]
	cmp := &models.Comparison{
		City:     city,
		Tallest:  rankedRows(CityTopN(view, city, d.settings.RankSize)),
		Shortest: rankedRows(CityBottomN(view, city, d.settings.RankSize)),
	}
	if len(cmp.Tallest) == 0 {
		cmp.Notice = fmt.Sprintf("No data available for %s.", city)
	}
	v.Comparison = cmp
	return v
}

// rankedRows converts ranked records, dropping any without a height.
func rankedRows(rows []models.Skyscraper) []models.RankedRow {
	out := make([]models.RankedRow, 0, len(rows))
	for _, s := range rows {
		if math.IsNaN(s.Height) {
			continue
		}
		out = append(out, models.RankedRow{Name: s.Name, City: s.City, Height: s.Height})
	}
	return out
}
