package engine

import (
	"github.com/filip867/Karl-Filip/internal/domain/entity"
)

// DefaultQuality are the review scores a fresh report starts with.
var DefaultQuality = entity.QualityScores{
	Overall:       5,
	Cleanliness:   4.93,
	Accuracy:      4.86,
	Location:      5,
	CheckIn:       5,
	Communication: 4.93,
	Value:         4.93,
}

// NewModel builds the starting report for ref: the baseline as prior year and
// an empty current year.
func NewModel(ref entity.Reference) *entity.ReportModel {
	quality := ref.Quality
	if quality == (entity.QualityScores{}) {
		quality = DefaultQuality
	}
	return &entity.ReportModel{
		ClientName: ref.ClientName,
		Prior:      ref.Baseline.Clone(),
		Current:    emptyYear(ref.TargetYear),
		Quality:    quality,
		Bullets:    entity.Bullets{}.Clone(),
		ListingWindow: entity.MonthWindow{
			Start: entity.Jan,
			Count: entity.DefaultWindowCount,
		},
		ShowPrior:   true,
		ChartMonths: []entity.Month{entity.Jan, entity.Feb, entity.Mar, entity.Apr, entity.May, entity.Jun},
	}
}

func emptyYear(year int) entity.YearFigures {
	return entity.YearFigures{
		Year:      year,
		Revenue:   entity.MonthlySeries{},
		Occupancy: entity.MonthlySeries{},
		Rate:      entity.MonthlySeries{},
		Listings:  []entity.ListingRecord{},
	}
}

// Merge returns a new model with the current year replaced by agg. Prior
// figures, quality scores and editor fields are carried over untouched.
func Merge(model *entity.ReportModel, agg entity.Aggregation, info *entity.ImportInfo) *entity.ReportModel {
	next := model.Clone()
	next.Current = agg.Figures()
	next.LastImport = nil
	if info != nil {
		cp := *info
		next.LastImport = &cp
	}
	return next
}

// ApplyEdits returns a new model with the editor-owned fields that edits sets.
func ApplyEdits(model *entity.ReportModel, edits entity.Edits) *entity.ReportModel {
	next := model.Clone()
	if edits.ClientName != nil {
		next.ClientName = *edits.ClientName
	}
	if edits.ReportDate != nil {
		next.ReportDate = *edits.ReportDate
	}
	if edits.Quality != nil {
		next.Quality = *edits.Quality
	}
	if edits.Bullets != nil {
		next.Bullets = edits.Bullets.Clone()
	}
	if edits.ListingWindow != nil {
		next.ListingWindow = edits.ListingWindow.Normalized()
	}
	if edits.ShowPrior != nil {
		next.ShowPrior = *edits.ShowPrior
	}
	if edits.ChartMonths != nil {
		next.ChartMonths = append([]entity.Month{}, edits.ChartMonths...)
	}
	return next
}

// ListingTable lays the current year's listings out in reference order.
// Reference listings missing from the import get an empty row; imported
// listings unknown to the reference are not shown, although their revenue
// still counts in the totals.
func ListingTable(ref entity.Reference, model *entity.ReportModel) []entity.ListingRow {
	byID := entity.ListingsByID(model.Current.Listings)
	rows := make([]entity.ListingRow, 0, len(ref.Listings))
	for _, meta := range ref.Listings {
		row := entity.ListingRow{ID: meta.ID, Area: meta.Area, Revenue: entity.MonthlySeries{}}
		if rec, ok := byID[meta.ID]; ok {
			row.Revenue = rec.Revenue.Clone()
		}
		rows = append(rows, row)
	}
	return rows
}

// UnlistedListings returns the imported ids that the reference table does not
// know about.
func UnlistedListings(ref entity.Reference, model *entity.ReportModel) []string {
	known := make(map[string]bool, len(ref.Listings))
	for _, meta := range ref.Listings {
		known[meta.ID] = true
	}
	var ids []string
	for _, rec := range model.Current.Listings {
		if !known[rec.ID] {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}
