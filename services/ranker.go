package services

import (
	"math"
	"sort"

	"skyline/models"
)

// TopN returns the n tallest rows, tallest first. Equal heights keep their
// input order and rows without a height come last.
func TopN(rows []models.Skyscraper, n int) []models.Skyscraper {
	return rank(rows, n, true)
}

// BottomN returns the n shortest rows, shortest first.
func BottomN(rows []models.Skyscraper, n int) []models.Skyscraper {
	return rank(rows, n, false)
}

// CityTopN is TopN restricted to the rows of one city.
func CityTopN(view models.FilteredView, city string, n int) []models.Skyscraper {
	return TopN(cityRows(view, city), n)
}

// CityBottomN is BottomN restricted to the rows of one city.
func CityBottomN(view models.FilteredView, city string, n int) []models.Skyscraper {
	return BottomN(cityRows(view, city), n)
}

func cityRows(view models.FilteredView, city string) []models.Skyscraper {
	var out []models.Skyscraper
	for _, s := range view {
		if s.City == city {
			out = append(out, s)
		}
	}
	return out
}

func rank(rows []models.Skyscraper, n int, descending bool) []models.Skyscraper {
	if n <= 0 || len(rows) == 0 {
		return []models.Skyscraper{}
	}
	sorted := make([]models.Skyscraper, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Height, sorted[j].Height
		switch {
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		case descending:
			return a > b
		default:
			return a < b
		}
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
