package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
)

const sampleExport = "\uFEFFListing Nickname,Month,Owner Revenue,Occupancy,ANR,Channel\n" +
	"Apt 1102 Downtown,jan 2026,100,\"0,80\",1200,airbnb\n" +
	"Apt 1102 Downtown,jan 2026,50,\"0,60\",1000,booking\n" +
	"1103 Corner,jan 2026,\"12 345,50\",\"0,70\",\"1 100\",airbnb\n" +
	"1105,dec. 25,9000,\"0,9\",1500,airbnb\n" +
	"Loft Suite,feb 2026,400,,,airbnb\n" +
	",jan 2026,999,,,\n" +
	"1102,xyz 2026,999,,,\n"

func TestEngine_Ingest(t *testing.T) {
	e := New(testReference())
	agg := e.Ingest(sampleExport)

	assert.Equal(t, 6, agg.Stats.Rows)
	assert.Equal(t, 1, agg.Stats.DroppedMonth)
	assert.Equal(t, 1, agg.Stats.OtherYear)

	byID := entity.ListingsByID(agg.Listings)
	assert.Equal(t, int64(150), byID["1102"].Revenue[entity.Jan])
	assert.Equal(t, int64(12346), byID["1103"].Revenue[entity.Jan])
	assert.Equal(t, int64(400), byID["Loft Suite"].Revenue[entity.Feb])
	_, has1105 := byID["1105"]
	assert.False(t, has1105, "a 2025 row does not register the listing")

	assert.Equal(t, int64(150+12346), agg.Revenue[entity.Jan])
	assert.Equal(t, int64(70), agg.Occupancy[entity.Jan])
	assert.Equal(t, int64(1100), agg.Rate[entity.Jan])
	_, ok := agg.Occupancy[entity.Feb]
	assert.False(t, ok)
	assert.Equal(t, int64(150+12346+400), agg.TotalRevenue)
}

func TestEngine_IngestIsIdempotent(t *testing.T) {
	e := New(testReference())

	first, err := json.Marshal(e.Ingest(sampleExport))
	require.NoError(t, err)
	second, err := json.Marshal(e.Ingest(sampleExport))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestEngine_IngestRecordsMatchesText(t *testing.T) {
	e := New(testReference())
	records := NewTokenizer("Listing Nickname").Records(sampleExport)

	assert.Equal(t, e.Ingest(sampleExport), e.IngestRecords(records))
	assert.Equal(t, e.Ingest(sampleExport), e.IngestDocument(entity.SourceDocument{Kind: entity.SourceWorkbook, Records: records}))
}

func TestEngine_NoLabelledRowsGivesEmptyYear(t *testing.T) {
	e := New(testReference())
	agg := e.Ingest("Listing Nickname,Month,Owner Revenue\n,jan 2026,100\n")

	model := Merge(e.NewModel(), agg, nil)
	assert.Empty(t, model.Current.Listings)
	assert.Empty(t, model.Current.Revenue)
	assert.Zero(t, model.Current.TotalRevenue)
	assert.Equal(t, int64(166680), model.Prior.TotalRevenue)
}

func TestEngine_ReferenceIsPrivate(t *testing.T) {
	ref := testReference()
	e := New(ref)
	ref.Listings[0].ID = "9999"

	assert.Equal(t, "1102", e.Reference().Listings[0].ID)
}

func TestEngine_Extremes(t *testing.T) {
	e := New(testReference())
	model := Merge(e.NewModel(), e.Ingest(sampleExport), nil)

	ext := e.Extremes(model, entity.MonthWindow{Start: entity.Jan, Count: 2})
	require.Len(t, ext, 2)
	assert.Equal(t, int64(150), *ext[0].Min)
	assert.Equal(t, int64(12346), *ext[0].Max)
	assert.Nil(t, ext[1].Min, "only an unlisted listing has February revenue")
}

func TestEngine_DefaultsColumnsAndDelimiter(t *testing.T) {
	ref := testReference()
	ref.Columns = entity.Columns{}
	ref.Delimiter = ';'
	e := New(ref)

	agg := e.Ingest("Listing Nickname;Month;Owner Revenue\n1102;jan 2026;10")
	assert.Equal(t, int64(10), agg.TotalRevenue)
}
