package entity

import "sort"

// RawRow maps header names to field values for one imported line.
type RawRow map[string]string

// ListingMeta is a listing from the reference table.
type ListingMeta struct {
	ID   string  `json:"id" yaml:"id" toml:"id" validate:"required"`
	Area float64 `json:"area" yaml:"area" toml:"area" validate:"gte=0"`
}

// MonthlySeries holds one integer figure per month. A missing month means
// "no data", which is not the same as a zero figure.
type MonthlySeries map[Month]int64

// Get returns the figure for m and whether one exists.
func (s MonthlySeries) Get(m Month) (int64, bool) {
	v, ok := s[m]
	return v, ok
}

// Sum adds up every month present in the series.
func (s MonthlySeries) Sum() int64 {
	var total int64
	for _, v := range s {
		total += v
	}
	return total
}

// Months lists the months present, in calendar order.
func (s MonthlySeries) Months() []Month {
	months := make([]Month, 0, len(s))
	for m := range s {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months
}

// Clone returns an independent copy. A nil series clones to an empty one.
func (s MonthlySeries) Clone() MonthlySeries {
	out := make(MonthlySeries, len(s))
	for m, v := range s {
		out[m] = v
	}
	return out
}

// ListingRecord accumulates one listing's monthly revenue.
type ListingRecord struct {
	ID      string        `json:"id" yaml:"id" toml:"id"`
	Area    *float64      `json:"area,omitempty" yaml:"area,omitempty" toml:"area,omitempty"`
	Revenue MonthlySeries `json:"revenue" yaml:"revenue" toml:"revenue"`
}

// Clone returns a deep copy of the record.
func (r ListingRecord) Clone() ListingRecord {
	out := ListingRecord{ID: r.ID, Revenue: r.Revenue.Clone()}
	if r.Area != nil {
		area := *r.Area
		out.Area = &area
	}
	return out
}

// CloneListings deep-copies a listing slice.
func CloneListings(in []ListingRecord) []ListingRecord {
	out := make([]ListingRecord, len(in))
	for i, l := range in {
		out[i] = l.Clone()
	}
	return out
}

// ListingsByID indexes listings by id; the first record wins on duplicates.
func ListingsByID(listings []ListingRecord) map[string]ListingRecord {
	idx := make(map[string]ListingRecord, len(listings))
	for _, l := range listings {
		if _, ok := idx[l.ID]; !ok {
			idx[l.ID] = l
		}
	}
	return idx
}
