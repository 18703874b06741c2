package entity

// DefaultWindowCount is used when a window has no count set.
const DefaultWindowCount = 4

// MonthWindow is a run of consecutive months starting at Start, wrapping past
// December back to January.
type MonthWindow struct {
	Start Month `json:"start"`
	Count int   `json:"count"`
}

// Normalized clamps the window to a valid start and a count within 1..12.
func (w MonthWindow) Normalized() MonthWindow {
	if !w.Start.Valid() {
		w.Start = Jan
	}
	switch {
	case w.Count == 0:
		w.Count = DefaultWindowCount
	case w.Count < 1:
		w.Count = 1
	case w.Count > MonthsInYear:
		w.Count = MonthsInYear
	}
	return w
}

// Months expands the window into its months.
func (w MonthWindow) Months() []Month {
	w = w.Normalized()
	months := make([]Month, w.Count)
	for i := range months {
		months[i] = Month((w.Start.Index()+i)%MonthsInYear + 1)
	}
	return months
}

// MonthExtremes are the lowest and highest qualifying listing figures of a
// month. Both are nil when no highlight applies.
type MonthExtremes struct {
	Month Month  `json:"month"`
	Min   *int64 `json:"min"`
	Max   *int64 `json:"max"`
}

// IsBest reports whether v is the month's maximum.
func (e MonthExtremes) IsBest(v int64) bool {
	return v > 0 && e.Max != nil && v == *e.Max
}

// IsWorst reports whether v is the month's minimum.
func (e MonthExtremes) IsWorst(v int64) bool {
	return v > 0 && e.Min != nil && v == *e.Min
}

// Extremes lists the extremes of each month of a window, in window order.
type Extremes []MonthExtremes

// For returns the extremes for m, or an empty entry when m is outside the window.
func (x Extremes) For(m Month) MonthExtremes {
	for _, e := range x {
		if e.Month == m {
			return e
		}
	}
	return MonthExtremes{Month: m}
}
