package engine

import (
	"github.com/filip867/Karl-Filip/internal/domain/entity"
)

// ComputeExtremes finds, for each month of window, the lowest and highest
// positive figure among the listings in order. A month needs two different
// qualifying figures; otherwise both ends are left nil so no listing is
// marked as best and worst at once.
func ComputeExtremes(order []string, listings []entity.ListingRecord, window entity.MonthWindow) entity.Extremes {
	byID := entity.ListingsByID(listings)
	months := window.Months()
	out := make(entity.Extremes, 0, len(months))

	for _, m := range months {
		ext := entity.MonthExtremes{Month: m}
		var (
			lo, hi int64
			count  int
		)
		for _, id := range order {
			rec, ok := byID[id]
			if !ok {
				continue
			}
			v, ok := rec.Revenue.Get(m)
			if !ok || v <= 0 {
				continue
			}
			if count == 0 || v < lo {
				lo = v
			}
			if count == 0 || v > hi {
				hi = v
			}
			count++
		}
		if count >= 2 && lo != hi {
			ext.Min, ext.Max = &lo, &hi
		}
		out = append(out, ext)
	}
	return out
}
