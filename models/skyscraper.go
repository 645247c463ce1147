package models

import "math"

// Skyscraper is one record of the dataset. Missing coordinates and heights
// are NaN, a missing completion year is 0.
type Skyscraper struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Year      int     `json:"year"`
	Height    float64 `json:"height"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (s Skyscraper) HasCoordinates() bool {
	return !math.IsNaN(s.Latitude) && !math.IsNaN(s.Longitude)
}

// Query is the user's current selection.
type Query struct {
	Cities    []string `json:"cities"`
	MinHeight float64  `json:"min_height"`
	MinYear   int      `json:"min_year"`
}

// FilteredView is the ordered subset of the dataset matching a Query.
type FilteredView []Skyscraper

// CityHeights groups the heights of one city in row order.
type CityHeights struct {
	City    string    `json:"city"`
	Heights []float64 `json:"heights"`
}

// CityAverage is the mean height of one city.
type CityAverage struct {
	City string  `json:"city"`
	Mean float64 `json:"mean"`
}

// CityAggregate combines count, heights and mean height for one city.
type CityAggregate struct {
	City       string    `json:"city"`
	Count      int       `json:"count"`
	Heights    []float64 `json:"heights"`
	MeanHeight float64   `json:"mean_height"`
}
