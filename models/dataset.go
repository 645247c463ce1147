package models

// Dataset is the cleaned, immutable collection of skyscrapers for a session.
// Records keep the order of the source.
type Dataset struct {
	records []Skyscraper
	byID    map[int64]int
	cities  []string
}

// NewDataset indexes rows by ID. Rows are copied; later duplicates of an ID
// are ignored.
func NewDataset(rows []Skyscraper) *Dataset {
	ds := &Dataset{
		records: make([]Skyscraper, 0, len(rows)),
		byID:    make(map[int64]int, len(rows)),
	}
	seenCity := make(map[string]struct{})
	for _, r := range rows {
		if _, dup := ds.byID[r.ID]; dup {
			continue
		}
		ds.byID[r.ID] = len(ds.records)
		ds.records = append(ds.records, r)
		if _, ok := seenCity[r.City]; !ok {
			seenCity[r.City] = struct{}{}
			ds.cities = append(ds.cities, r.City)
		}
	}
	return ds
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records in source order.
func (d *Dataset) Records() []Skyscraper {
	out := make([]Skyscraper, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in order without copying the slice.
func (d *Dataset) Each(fn func(Skyscraper)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Get looks up a record by ID.
func (d *Dataset) Get(id int64) (Skyscraper, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Skyscraper{}, false
	}
	return d.records[i], true
}

// Cities returns the distinct city names in first-seen order.
func (d *Dataset) Cities() []string {
	out := make([]string, len(d.cities))
	copy(out, d.cities)
	return out
}
