package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
	"github.com/filip867/Karl-Filip/internal/shared/types"
)

// BuildReference converts a loaded configuration into the immutable
// reference data the engine runs against.
func (r *ConfigRepositoryImpl) BuildReference(cfg *types.Config) (entity.Reference, error) {
	ref := entity.Reference{
		ClientName:  cfg.ClientName,
		TargetYear:  cfg.Year,
		DefaultYear: cfg.DefaultYear,
		Columns:     entity.DefaultColumns(),
	}
	if ref.DefaultYear == 0 {
		ref.DefaultYear = ref.TargetYear
	}

	if cfg.Delimiter != "" {
		d, _ := utf8.DecodeRuneInString(cfg.Delimiter)
		ref.Delimiter = d
	}

	overrideColumn := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overrideColumn(&ref.Columns.Listing, cfg.Columns.Listing)
	overrideColumn(&ref.Columns.Month, cfg.Columns.Month)
	overrideColumn(&ref.Columns.Revenue, cfg.Columns.Revenue)
	overrideColumn(&ref.Columns.Occupancy, cfg.Columns.Occupancy)
	overrideColumn(&ref.Columns.Rate, cfg.Columns.Rate)

	seen := make(map[string]bool, len(cfg.Listings))
	for _, l := range cfg.Listings {
		if seen[l.ID] {
			return entity.Reference{}, fmt.Errorf("listing %s appears twice in the reference table", l.ID)
		}
		seen[l.ID] = true
		ref.Listings = append(ref.Listings, entity.ListingMeta{ID: l.ID, Area: l.Area})
	}

	baseline, err := buildBaseline(cfg.Baseline, cfg.Year-1)
	if err != nil {
		return entity.Reference{}, err
	}
	ref.Baseline = baseline

	if cfg.Quality != nil {
		ref.Quality = entity.QualityScores{
			Overall:       cfg.Quality.Overall,
			Cleanliness:   cfg.Quality.Cleanliness,
			Accuracy:      cfg.Quality.Accuracy,
			Location:      cfg.Quality.Location,
			CheckIn:       cfg.Quality.CheckIn,
			Communication: cfg.Quality.Communication,
			Value:         cfg.Quality.Value,
		}
	}

	return ref, nil
}

func buildBaseline(cfg *types.BaselineConfig, fallbackYear int) (entity.YearFigures, error) {
	figures := entity.YearFigures{
		Year:      fallbackYear,
		Revenue:   entity.MonthlySeries{},
		Occupancy: entity.MonthlySeries{},
		Rate:      entity.MonthlySeries{},
		Listings:  []entity.ListingRecord{},
	}
	if cfg == nil {
		return figures, nil
	}
	if cfg.Year != 0 {
		figures.Year = cfg.Year
	}

	var err error
	if figures.Revenue, err = seriesFromLabels(cfg.Revenue); err != nil {
		return entity.YearFigures{}, fmt.Errorf("baseline revenue: %w", err)
	}
	if figures.Occupancy, err = seriesFromLabels(cfg.Occupancy); err != nil {
		return entity.YearFigures{}, fmt.Errorf("baseline occupancy: %w", err)
	}
	if figures.Rate, err = seriesFromLabels(cfg.Rate); err != nil {
		return entity.YearFigures{}, fmt.Errorf("baseline rate: %w", err)
	}

	figures.TotalRevenue = cfg.TotalRevenue
	if figures.TotalRevenue == 0 {
		figures.TotalRevenue = figures.Revenue.Sum()
	}

	for _, l := range cfg.Listings {
		revenue, err := seriesFromLabels(l.Revenue)
		if err != nil {
			return entity.YearFigures{}, fmt.Errorf("baseline listing %s: %w", l.ID, err)
		}
		rec := entity.ListingRecord{ID: l.ID, Revenue: revenue}
		if l.Area > 0 {
			area := l.Area
			rec.Area = &area
		}
		figures.Listings = append(figures.Listings, rec)
	}
	return figures, nil
}

func seriesFromLabels(values map[string]int64) (entity.MonthlySeries, error) {
	series := make(entity.MonthlySeries, len(values))
	for label, v := range values {
		m, err := entity.ParseMonth(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidMonth, err)
		}
		series[m] = v
	}
	return series, nil
}
