package services

import "skyline/models"

// Filter returns the records of ds in the query's cities that are strictly
// taller than q.MinHeight and completed strictly after q.MinYear. An empty
// city selection matches nothing.
func Filter(ds *models.Dataset, q models.Query) models.FilteredView {
	view := models.FilteredView{}
	if len(q.Cities) == 0 {
		return view
	}

	selected := make(map[string]struct{}, len(q.Cities))
	for _, c := range q.Cities {
		selected[c] = struct{}{}
	}

	ds.Each(func(s models.Skyscraper) {
		if _, ok := selected[s.City]; !ok {
			return
		}
		// NaN heights fail the comparison and are never selected.
		if !(s.Height > q.MinHeight) {
			return
		}
		if s.Year <= q.MinYear {
			return
		}
		view = append(view, s)
	})
	return view
}
