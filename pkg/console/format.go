package console

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder drawn for a month without data.
const Placeholder = "—"

var swedish = message.NewPrinter(language.Swedish)

// FormatNumber groups thousands the Swedish way ("183 673"). Non-breaking and
// narrow spaces from the locale tables are printed as plain spaces so tables
// line up in a terminal.
func FormatNumber(v int64) string {
	s := swedish.Sprintf("%d", v)
	s = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2212", "-").Replace(s)
	return s
}

// FormatKr formats an amount in Swedish kronor.
func FormatKr(v int64) string {
	return FormatNumber(v) + " kr"
}

// FormatPercent formats an occupancy percentage.
func FormatPercent(v int64) string {
	return fmt.Sprintf("%d%%", v)
}

// FormatChange formats a signed percent change.
func FormatChange(v int64) string {
	if v > 0 {
		return fmt.Sprintf("+%d%%", v)
	}
	return fmt.Sprintf("%d%%", v)
}

// FormatOptional renders the value through format, or the placeholder when
// the value is absent.
func FormatOptional(v int64, ok bool, format func(int64) string) string {
	if !ok {
		return Placeholder
	}
	return format(v)
}
