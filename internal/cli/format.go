// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatMillions formats a $M amount with thousands separators.
// e.g., 29.9778 -> "$29.98M", 1234.5 -> "$1,234.50M"
func FormatMillions(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	if v < 0 {
		return "-" + FormatMillions(-v)
	}
	return printer.Sprintf("$%.2fM", v)
}

// FormatAmount formats a plain number with two decimals and separators.
func FormatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatRange renders the headline valuation range, multiple first.
func FormatRange(multiple, dcf float64) string {
	return FormatMillions(multiple) + " - " + FormatMillions(dcf)
}

// FormatPercent formats a value that is already in percent units.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatMultiple formats a revenue multiple, e.g. 5 -> "5.0x".
func FormatMultiple(m float64) string {
	return fmt.Sprintf("%.1fx", m)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatDelta formats the signed change from previous to current in $M.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMillions(delta)
	}
	return "-" + FormatMillions(-delta)
}

// YearLabel returns the export/display label for a 1-based year.
func YearLabel(year int) string {
	return fmt.Sprintf("Year %d", year)
}
