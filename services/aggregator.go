package services

import (
	"github.com/aclements/go-moremath/stats"

	"skyline/models"
)

// CountByCity returns, for each city in order, how many rows of view are in
// that city.
func CountByCity(view models.FilteredView, cities []string) []int {
	perCity := make(map[string]int)
	for _, s := range view {
		perCity[s.City]++
	}
	counts := make([]int, len(cities))
	for i, c := range cities {
		counts[i] = perCity[c]
	}
	return counts
}

// HeightsByCity groups heights by city. Cities appear in first-seen order and
// heights keep row order.
func HeightsByCity(view models.FilteredView) []models.CityHeights {
	var groups []models.CityHeights
	index := make(map[string]int)
	for _, s := range view {
		i, ok := index[s.City]
		if !ok {
			i = len(groups)
			index[s.City] = i
			groups = append(groups, models.CityHeights{City: s.City})
		}
		groups[i].Heights = append(groups[i].Heights, s.Height)
	}
	return groups
}

// AveragesByCity returns the arithmetic mean height of each group, in group
// order. Groups without heights have no mean and are left out.
func AveragesByCity(groups []models.CityHeights) []models.CityAverage {
	averages := make([]models.CityAverage, 0, len(groups))
	for _, g := range groups {
		if len(g.Heights) == 0 {
			continue
		}
		averages = append(averages, models.CityAverage{City: g.City, Mean: stats.Mean(g.Heights)})
	}
	return averages
}

// AggregateByCity combines count, heights and mean for every city of view.
func AggregateByCity(view models.FilteredView) []models.CityAggregate {
	groups := HeightsByCity(view)
	out := make([]models.CityAggregate, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.CityAggregate{
			City:       g.City,
			Count:      len(g.Heights),
			Heights:    g.Heights,
			MeanHeight: stats.Mean(g.Heights),
		})
	}
	return out
}
