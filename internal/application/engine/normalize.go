package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
)

// leadingNumber matches the numeric prefix of a cell such as "1188kr" or "79%".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// maxAmount bounds the magnitude of a readable cell. Anything at or beyond it,
// including infinities and NaN, is absent, so that rounded kronor and their
// sums stay within int64.
const maxAmount = 1e12

// monthWords is the export's Swedish month vocabulary.
var monthWords = map[string]entity.Month{
	"jan":  entity.Jan,
	"feb":  entity.Feb,
	"mars": entity.Mar,
	"apr":  entity.Apr,
	"maj":  entity.May,
	"juni": entity.Jun,
	"jul":  entity.Jul,
	"aug":  entity.Aug,
	"sep":  entity.Sep,
	"okt":  entity.Oct,
	"nov":  entity.Nov,
	"dec":  entity.Dec,
}

// ParseAmount reads a Swedish formatted number: spaces group thousands and a
// comma marks decimals. Empty, non-numeric or out-of-range cells give an
// absent amount.
func ParseAmount(s string) entity.Amount {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return entity.NoAmount()
	}
	s = strings.Replace(s, ",", ".", 1)

	match := leadingNumber.FindString(s)
	if match == "" {
		return entity.NoAmount()
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.Abs(v) >= maxAmount {
		return entity.NoAmount()
	}
	return entity.AmountOf(v)
}

// ParseMonthKey reads labels like "jan 2026", "dec. 25" or "juni". A missing
// or unreadable year falls back to defaultYear; an unknown month word gives
// no key.
func ParseMonthKey(label string, defaultYear int) (entity.MonthKey, bool) {
	parts := strings.Fields(strings.ReplaceAll(strings.ToLower(label), ".", ""))
	if len(parts) == 0 {
		return entity.MonthKey{}, false
	}
	month, ok := monthWords[parts[0]]
	if !ok {
		return entity.MonthKey{}, false
	}

	year := defaultYear
	if len(parts) > 1 {
		if y, err := strconv.Atoi(parts[1]); err == nil && y > 0 {
			year = y
			if year < 100 {
				year += 2000
			}
		}
	}
	return entity.MonthKey{Month: month, Year: year}, true
}
