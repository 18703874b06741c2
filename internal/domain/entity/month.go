package entity

import (
	"fmt"
	"strings"
)

// Month is a calendar month, 1 (Jan) through 12 (Dec).
type Month int

const (
	Jan Month = iota + 1
	Feb
	Mar
	Apr
	May
	Jun
	Jul
	Aug
	Sep
	Oct
	Nov
	Dec
)

// MonthsInYear is the length of the fixed calendar.
const MonthsInYear = 12

// monthLabels are the canonical labels used in the report model and on the slides.
var monthLabels = [MonthsInYear]string{"Jan", "Feb", "Mar", "Apr", "Maj", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dec"}

// Calendar returns the twelve months in order.
func Calendar() []Month {
	months := make([]Month, MonthsInYear)
	for i := range months {
		months[i] = Month(i + 1)
	}
	return months
}

// Valid reports whether m is one of the twelve calendar months.
func (m Month) Valid() bool {
	return m >= Jan && m <= Dec
}

// Index returns the zero-based position of m in the calendar.
func (m Month) Index() int {
	return int(m) - 1
}

// Add moves n months forward (or backward) wrapping around the calendar.
func (m Month) Add(n int) Month {
	idx := (m.Index() + n) % MonthsInYear
	if idx < 0 {
		idx += MonthsInYear
	}
	return Month(idx + 1)
}

func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthLabels[m.Index()]
}

// ParseMonth accepts a canonical label ("Okt"), case-insensitively.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	for i, label := range monthLabels {
		if strings.EqualFold(label, s) {
			return Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}

// MarshalText lets months act as map keys in JSON and YAML documents. The
// zero Month marshals to an empty string.
func (m Month) MarshalText() ([]byte, error) {
	if m == 0 {
		return []byte{}, nil
	}
	if !m.Valid() {
		return nil, fmt.Errorf("invalid month %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText parses a canonical month label.
func (m *Month) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = 0
		return nil
	}
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MonthKey identifies one month of one year.
type MonthKey struct {
	Month Month `json:"month"`
	Year  int   `json:"year"`
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%s %d", k.Month, k.Year)
}
