// Package engine turns a rental performance export into report figures:
// tokenizing, value normalization, listing resolution, monthly aggregation,
// the merge over the prior-year baseline and the per-month extremes.
//
// Everything here is synchronous and free of I/O. The Engine holds only the
// reference data it was built with.
package engine

import (
	"github.com/filip867/Karl-Filip/internal/domain/entity"
)

// Engine runs the import pipeline against one reference.
type Engine struct {
	ref        entity.Reference
	tokenizer  Tokenizer
	aggregator Aggregator
}

// New builds an engine over a private copy of ref.
func New(ref entity.Reference) *Engine {
	ref = ref.Clone()
	if ref.Columns == (entity.Columns{}) {
		ref.Columns = entity.DefaultColumns()
	}
	if ref.DefaultYear == 0 {
		ref.DefaultYear = ref.TargetYear
	}

	tokenizer := NewTokenizer(ref.Columns.Listing)
	if ref.Delimiter != 0 {
		tokenizer.Delimiter = ref.Delimiter
	}

	return &Engine{
		ref:       ref,
		tokenizer: tokenizer,
		aggregator: Aggregator{
			Columns:     ref.Columns,
			Resolver:    NewResolver(ref.Listings),
			TargetYear:  ref.TargetYear,
			DefaultYear: ref.DefaultYear,
		},
	}
}

// Reference returns a copy of the engine's reference data.
func (e *Engine) Reference() entity.Reference {
	return e.ref.Clone()
}

// Ingest aggregates delimited export text.
func (e *Engine) Ingest(text string) entity.Aggregation {
	return e.aggregator.Aggregate(e.tokenizer.Rows(text))
}

// IngestRecords aggregates records that are already split into fields.
func (e *Engine) IngestRecords(records [][]string) entity.Aggregation {
	return e.aggregator.Aggregate(RowsFromRecords(records, e.ref.Columns.Listing))
}

// IngestDocument dispatches on the document kind.
func (e *Engine) IngestDocument(doc entity.SourceDocument) entity.Aggregation {
	if doc.Kind == entity.SourceWorkbook {
		return e.IngestRecords(doc.Records)
	}
	return e.Ingest(doc.Text)
}

// NewModel returns the starting report for the engine's reference.
func (e *Engine) NewModel() *entity.ReportModel {
	return NewModel(e.ref)
}

// ListingTable lays out model's listings in reference order.
func (e *Engine) ListingTable(model *entity.ReportModel) []entity.ListingRow {
	return ListingTable(e.ref, model)
}

// Extremes computes the highlight extremes of model for window.
func (e *Engine) Extremes(model *entity.ReportModel, window entity.MonthWindow) entity.Extremes {
	return ComputeExtremes(e.ref.ListingOrder(), model.Current.Listings, window)
}
