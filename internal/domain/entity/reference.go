package entity

// Columns names the export columns the aggregator reads.
type Columns struct {
	Listing   string `json:"listing" validate:"required"`
	Month     string `json:"month" validate:"required"`
	Revenue   string `json:"revenue" validate:"required"`
	Occupancy string `json:"occupancy" validate:"required"`
	Rate      string `json:"rate" validate:"required"`
}

// DefaultColumns are the headers of the booking platform's performance export.
func DefaultColumns() Columns {
	return Columns{
		Listing:   "Listing Nickname",
		Month:     "Month",
		Revenue:   "Owner Revenue",
		Occupancy: "Occupancy",
		Rate:      "ANR",
	}
}

// Reference is the fixed data a report is built against: the ordered listing
// table and the prior-year baseline. It never changes during a session.
type Reference struct {
	ClientName  string        `json:"client_name"`
	TargetYear  int           `json:"target_year" validate:"gt=1999"`
	DefaultYear int           `json:"default_year" validate:"gt=1999"`
	Delimiter   rune          `json:"delimiter"`
	Columns     Columns       `json:"columns"`
	Listings    []ListingMeta `json:"listings" validate:"dive"`
	Baseline    YearFigures   `json:"baseline"`
	Quality     QualityScores `json:"quality"`
}

// Clone returns a deep copy.
func (r Reference) Clone() Reference {
	out := r
	out.Listings = append([]ListingMeta{}, r.Listings...)
	out.Baseline = r.Baseline.Clone()
	return out
}

// ListingOrder returns the reference listing ids in table order.
func (r Reference) ListingOrder() []string {
	ids := make([]string, len(r.Listings))
	for i, l := range r.Listings {
		ids[i] = l.ID
	}
	return ids
}

// AggregateStats counts what happened to the imported rows.
type AggregateStats struct {
	Rows         int `json:"rows"`
	DroppedMonth int `json:"dropped_month"`
	OtherYear    int `json:"other_year"`
	Retained     int `json:"retained"`
}

// Aggregation is the aggregator's result for the target year.
type Aggregation struct {
	Year         int             `json:"year"`
	Revenue      MonthlySeries   `json:"revenue"`
	Occupancy    MonthlySeries   `json:"occupancy"`
	Rate         MonthlySeries   `json:"rate"`
	TotalRevenue int64           `json:"total_revenue"`
	Listings     []ListingRecord `json:"listings"`
	Stats        AggregateStats  `json:"stats"`
}

// Figures converts the aggregation into a model year.
func (a Aggregation) Figures() YearFigures {
	return YearFigures{
		Year:         a.Year,
		Revenue:      a.Revenue.Clone(),
		Occupancy:    a.Occupancy.Clone(),
		Rate:         a.Rate.Clone(),
		TotalRevenue: a.TotalRevenue,
		Listings:     CloneListings(a.Listings),
	}
}

// ListingRow is one line of the fixed-order listing table.
type ListingRow struct {
	ID      string        `json:"id"`
	Area    float64       `json:"area"`
	Revenue MonthlySeries `json:"revenue"`
}
