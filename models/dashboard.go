package models

// SliderBounds are the limits of the height and year inputs for a city
// selection. Fallback is set when the selection matched no records.
type SliderBounds struct {
	MaxHeight int  `json:"max_height"`
	MinYear   int  `json:"min_year"`
	MaxYear   int  `json:"max_year"`
	Fallback  bool `json:"fallback"`
}

// TableRow is one line of the filtered records table.
type TableRow struct {
	Name string `json:"name"`
	City string `json:"city"`
	Year int    `json:"year"`
}

// RankedRow is one line of a tallest/shortest listing.
type RankedRow struct {
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Height float64 `json:"height"`
}

// Comparison holds the tallest and shortest records of a single city.
type Comparison struct {
	City     string      `json:"city"`
	Tallest  []RankedRow `json:"tallest"`
	Shortest []RankedRow `json:"shortest"`
	Notice   string      `json:"notice,omitempty"`
}

// DashboardView is everything the presentation layer needs for one query.
// When NoData is set only Query, Bounds, Notice and AllTimeTallest are filled.
type DashboardView struct {
	Query          Query           `json:"query"`
	Bounds         SliderBounds    `json:"bounds"`
	NoData         bool            `json:"no_data"`
	Notice         string          `json:"notice,omitempty"`
	Rows           FilteredView    `json:"-"`
	Table          []TableRow      `json:"table"`
	Counts         []int           `json:"counts"`
	Aggregates     []CityAggregate `json:"aggregates"`
	Averages       []CityAverage   `json:"averages"`
	Comparison     *Comparison     `json:"comparison,omitempty"`
	AllTimeTallest []RankedRow     `json:"all_time_tallest"`
}
