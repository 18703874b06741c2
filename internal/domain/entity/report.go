package entity

import "time"

// YearFigures holds one year's month-indexed metrics and listing revenue.
type YearFigures struct {
	Year         int             `json:"year"`
	Revenue      MonthlySeries   `json:"revenue"`
	Occupancy    MonthlySeries   `json:"occupancy"`
	Rate         MonthlySeries   `json:"rate"`
	TotalRevenue int64           `json:"total_revenue"`
	Listings     []ListingRecord `json:"listings"`
}

// Clone returns a deep copy.
func (y YearFigures) Clone() YearFigures {
	return YearFigures{
		Year:         y.Year,
		Revenue:      y.Revenue.Clone(),
		Occupancy:    y.Occupancy.Clone(),
		Rate:         y.Rate.Clone(),
		TotalRevenue: y.TotalRevenue,
		Listings:     CloneListings(y.Listings),
	}
}

// QualityScores are the guest review sub-scores, 0 to 5.
type QualityScores struct {
	Overall       float64 `json:"overall" validate:"gte=0,lte=5"`
	Cleanliness   float64 `json:"cleanliness" validate:"gte=0,lte=5"`
	Accuracy      float64 `json:"accuracy" validate:"gte=0,lte=5"`
	Location      float64 `json:"location" validate:"gte=0,lte=5"`
	CheckIn       float64 `json:"check_in" validate:"gte=0,lte=5"`
	Communication float64 `json:"communication" validate:"gte=0,lte=5"`
	Value         float64 `json:"value" validate:"gte=0,lte=5"`
}

// HighlightThreshold marks a quality score worth highlighting.
const HighlightThreshold = 4.9

// Bullets are the free-text points shown under each slide.
type Bullets struct {
	Revenue   []string `json:"revenue"`
	Occupancy []string `json:"occupancy"`
	Rate      []string `json:"rate"`
	Listings  []string `json:"listings"`
	Total     []string `json:"total"`
	Quality   []string `json:"quality"`
	Actions   []string `json:"actions"`
}

// Clone returns a deep copy.
func (b Bullets) Clone() Bullets {
	cp := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return append([]string{}, s...)
	}
	return Bullets{
		Revenue:   cp(b.Revenue),
		Occupancy: cp(b.Occupancy),
		Rate:      cp(b.Rate),
		Listings:  cp(b.Listings),
		Total:     cp(b.Total),
		Quality:   cp(b.Quality),
		Actions:   cp(b.Actions),
	}
}

// ImportInfo describes the import that produced the current-year figures.
type ImportInfo struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	ImportedAt time.Time `json:"imported_at"`
	Rows       int       `json:"rows"`
	Listings   int       `json:"listings"`
}

// ReportModel is everything the slides are rendered from. Prior-year figures
// come from the reference baseline; only Current is replaced by an import.
type ReportModel struct {
	ClientName    string        `json:"client_name"`
	ReportDate    string        `json:"report_date"`
	Prior         YearFigures   `json:"prior"`
	Current       YearFigures   `json:"current"`
	Quality       QualityScores `json:"quality"`
	Bullets       Bullets       `json:"bullets"`
	ListingWindow MonthWindow   `json:"listing_window"`
	ShowPrior     bool          `json:"show_prior"`
	ChartMonths   []Month       `json:"chart_months"`
	LastImport    *ImportInfo   `json:"last_import,omitempty"`
}

// Clone returns a deep copy of the model.
func (m *ReportModel) Clone() *ReportModel {
	if m == nil {
		return nil
	}
	out := *m
	out.Prior = m.Prior.Clone()
	out.Current = m.Current.Clone()
	out.Bullets = m.Bullets.Clone()
	out.ChartMonths = append([]Month{}, m.ChartMonths...)
	if m.LastImport != nil {
		info := *m.LastImport
		out.LastImport = &info
	}
	return &out
}

// PercentChange compares current and prior totals. It is nil unless both
// totals are positive.
func (m *ReportModel) PercentChange() *int64 {
	prior, current := m.Prior.Revenue.Sum(), m.Current.Revenue.Sum()
	if prior <= 0 || current <= 0 {
		return nil
	}
	change := RoundKr(float64(current-prior) / float64(prior) * 100)
	return &change
}

// Edits carries the fields owned by the report editor. Nil fields are left
// unchanged.
type Edits struct {
	ClientName    *string        `json:"client_name,omitempty"`
	ReportDate    *string        `json:"report_date,omitempty"`
	Quality       *QualityScores `json:"quality,omitempty"`
	Bullets       *Bullets       `json:"bullets,omitempty"`
	ListingWindow *MonthWindow   `json:"listing_window,omitempty"`
	ShowPrior     *bool          `json:"show_prior,omitempty"`
	ChartMonths   []Month        `json:"chart_months,omitempty"`
}
