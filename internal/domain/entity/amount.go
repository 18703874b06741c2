package entity

import "math"

// Amount is a parsed numeric cell. A cell either carries no value at all or a
// value, which may be zero; the two render differently ("—" versus "0").
type Amount struct {
	value   float64
	present bool
}

// NoAmount is the absent value.
func NoAmount() Amount {
	return Amount{}
}

// AmountOf wraps a present value.
func AmountOf(v float64) Amount {
	return Amount{value: v, present: true}
}

// Present reports whether the cell carried a number.
func (a Amount) Present() bool {
	return a.present
}

// Value returns the number, or 0 when absent. Check Present first.
func (a Amount) Value() float64 {
	return a.value
}

// IsZero reports a present value of exactly zero.
func (a Amount) IsZero() bool {
	return a.present && a.value == 0
}

// IsNonZero reports a present value other than zero, negative values included.
func (a Amount) IsNonZero() bool {
	return a.present && a.value != 0
}

// IsPositive reports a present value strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.present && a.value > 0
}

// Rounded returns the value rounded to whole kronor.
func (a Amount) Rounded() int64 {
	return RoundKr(a.value)
}

// RoundKr rounds to the nearest whole krona, halves rounding up.
func RoundKr(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
