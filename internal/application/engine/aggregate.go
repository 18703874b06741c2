package engine

import (
	"github.com/filip867/Karl-Filip/internal/domain/entity"
)

// Aggregator folds normalized rows into monthly and per-listing figures for
// one target year.
type Aggregator struct {
	Columns     entity.Columns
	Resolver    *Resolver
	TargetYear  int
	DefaultYear int
}

// samples collects the positive values seen for each month.
type samples map[entity.Month][]float64

func (s samples) add(m entity.Month, a entity.Amount) {
	if a.IsPositive() {
		s[m] = append(s[m], a.Value())
	}
}

// mean averages each month's samples; scale turns fractions into percent.
func (s samples) mean(scale float64) entity.MonthlySeries {
	out := entity.MonthlySeries{}
	for m, values := range s {
		if len(values) == 0 {
			continue
		}
		var sum float64
		for _, v := range values {
			sum += v
		}
		out[m] = entity.RoundKr(sum / float64(len(values)) * scale)
	}
	return out
}

// Aggregate runs over rows once. Rows without a month are dropped and rows of
// other years are skipped; every other row registers its listing even when
// it carries no revenue.
func (a Aggregator) Aggregate(rows []entity.RawRow) entity.Aggregation {
	agg := entity.Aggregation{
		Year:     a.TargetYear,
		Revenue:  entity.MonthlySeries{},
		Listings: []entity.ListingRecord{},
		Stats:    entity.AggregateStats{Rows: len(rows)},
	}
	occupancy, rate := samples{}, samples{}
	seen := map[string]int{}

	for _, row := range rows {
		key, ok := ParseMonthKey(row[a.Columns.Month], a.DefaultYear)
		if !ok {
			agg.Stats.DroppedMonth++
			continue
		}
		if key.Year != a.TargetYear {
			agg.Stats.OtherYear++
			continue
		}
		agg.Stats.Retained++

		rec := a.Resolver.Resolve(row[a.Columns.Listing])
		pos, ok := seen[rec.ID]
		if !ok {
			pos = len(agg.Listings)
			seen[rec.ID] = pos
			agg.Listings = append(agg.Listings, rec)
		}

		if revenue := ParseAmount(row[a.Columns.Revenue]); revenue.IsNonZero() {
			kr := revenue.Rounded()
			agg.Listings[pos].Revenue[key.Month] += kr
			agg.Revenue[key.Month] += kr
		}
		occupancy.add(key.Month, ParseAmount(row[a.Columns.Occupancy]))
		rate.add(key.Month, ParseAmount(row[a.Columns.Rate]))
	}

	agg.Occupancy = occupancy.mean(100)
	agg.Rate = rate.mean(1)
	agg.TotalRevenue = agg.Revenue.Sum()
	return agg
}
