package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonth(t *testing.T) {
	assert.Equal(t, "Maj", May.String())
	assert.Equal(t, "Okt", Oct.String())
	assert.Equal(t, "Month(13)", Month(13).String())
	assert.Equal(t, Jan, Dec.Add(1))
	assert.Equal(t, Nov, Jan.Add(-2))
	assert.Len(t, Calendar(), 12)

	m, err := ParseMonth(" okt ")
	require.NoError(t, err)
	assert.Equal(t, Oct, m)
	_, err = ParseMonth("October")
	assert.Error(t, err)
}

func TestMonthlySeries_JSON(t *testing.T) {
	data, err := json.Marshal(MonthlySeries{Oct: 1, Jan: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Jan":2,"Okt":1}`, string(data))

	var back MonthlySeries
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, MonthlySeries{Oct: 1, Jan: 2}, back)

	assert.Error(t, json.Unmarshal([]byte(`{"Smarch":1}`), &back))
}

func TestMonthlySeries(t *testing.T) {
	s := MonthlySeries{Mar: 3, Jan: 1}
	assert.Equal(t, int64(4), s.Sum())
	assert.Equal(t, []Month{Jan, Mar}, s.Months())

	_, ok := s.Get(Feb)
	assert.False(t, ok)

	var nilSeries MonthlySeries
	assert.NotNil(t, nilSeries.Clone())
}

func TestAmount(t *testing.T) {
	assert.False(t, NoAmount().Present())
	assert.True(t, AmountOf(0).IsZero())
	assert.False(t, AmountOf(0).IsNonZero())
	assert.True(t, AmountOf(-5).IsNonZero())
	assert.False(t, AmountOf(-5).IsPositive())
	assert.False(t, NoAmount().IsZero())

	assert.Equal(t, int64(71), AmountOf(70.5).Rounded())
	assert.Equal(t, int64(100), RoundKr(100.4))
	assert.Equal(t, int64(1), RoundKr(0.5))
	assert.Equal(t, int64(-1), RoundKr(-1.5))
}

func TestMonthWindow(t *testing.T) {
	assert.Equal(t, MonthWindow{Start: Jan, Count: 4}, MonthWindow{}.Normalized())
	assert.Equal(t, MonthWindow{Start: Jan, Count: 1}, MonthWindow{Start: 20, Count: -3}.Normalized())
	assert.Equal(t, MonthWindow{Start: Nov, Count: 12}, MonthWindow{Start: Nov, Count: 99}.Normalized())

	assert.Equal(t, []Month{Nov, Dec, Jan, Feb}, MonthWindow{Start: Nov}.Months())
	assert.Len(t, MonthWindow{Start: Jun, Count: 12}.Months(), 12)
}

func TestMonthExtremes(t *testing.T) {
	lo, hi := int64(10), int64(30)
	e := MonthExtremes{Month: Jan, Min: &lo, Max: &hi}
	assert.True(t, e.IsBest(30))
	assert.True(t, e.IsWorst(10))
	assert.False(t, e.IsBest(20))

	x := Extremes{e}
	assert.Equal(t, e, x.For(Jan))
	assert.Nil(t, x.For(Feb).Max)
}

func TestReportModel_PercentChange(t *testing.T) {
	m := &ReportModel{
		Prior:   YearFigures{Revenue: MonthlySeries{Dec: 200}},
		Current: YearFigures{Revenue: MonthlySeries{Jan: 150, Feb: 100}},
	}
	require.NotNil(t, m.PercentChange())
	assert.Equal(t, int64(25), *m.PercentChange())

	m.Current.Revenue = MonthlySeries{}
	assert.Nil(t, m.PercentChange())
	m.Current.Revenue = MonthlySeries{Jan: 1}
	m.Prior.Revenue = nil
	assert.Nil(t, m.PercentChange())
}

func TestReportModel_Clone(t *testing.T) {
	area := 35.0
	m := &ReportModel{
		Current:     YearFigures{Revenue: MonthlySeries{Jan: 1}, Listings: []ListingRecord{{ID: "1102", Area: &area, Revenue: MonthlySeries{Jan: 1}}}},
		Bullets:     Bullets{Actions: []string{"a"}},
		ChartMonths: []Month{Jan},
		LastImport:  &ImportInfo{ID: "x"},
	}
	cp := m.Clone()
	cp.Current.Revenue[Jan] = 9
	*cp.Current.Listings[0].Area = 99
	cp.Bullets.Actions[0] = "b"
	cp.ChartMonths[0] = Feb
	cp.LastImport.ID = "y"

	assert.Equal(t, int64(1), m.Current.Revenue[Jan])
	assert.Equal(t, 35.0, *m.Current.Listings[0].Area)
	assert.Equal(t, "a", m.Bullets.Actions[0])
	assert.Equal(t, Jan, m.ChartMonths[0])
	assert.Equal(t, "x", m.LastImport.ID)

	var nilModel *ReportModel
	assert.Nil(t, nilModel.Clone())
}

func TestReference(t *testing.T) {
	ref := Reference{Listings: []ListingMeta{{ID: "1102"}, {ID: "1103"}}}
	assert.Equal(t, []string{"1102", "1103"}, ref.ListingOrder())

	cp := ref.Clone()
	cp.Listings[0].ID = "x"
	assert.Equal(t, "1102", ref.Listings[0].ID)
}
