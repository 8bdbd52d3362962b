package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 normalizes a monetary value to two decimal places. Intermediate
// arithmetic stays unrounded; this is applied once, at the end.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatAmount renders a monetary value with exactly two decimal places,
// the format every form and report displays.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// NormalizeText prepares a free-text identity field (client name, driver
// name, vehicle number, description) for persistence: trimmed and
// upper-cased. Applied at submission time only.
func NormalizeText(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// TextChanged normalizes the submitted value and reports whether it differs
// from the stored one, ignoring case and surrounding whitespace. Unchanged
// fields are omitted from partial-update payloads. An empty submission never
// counts as a change.
func TextChanged(stored, submitted string) (string, bool) {
	normalized := NormalizeText(submitted)
	if normalized == "" {
		return "", false
	}
	return normalized, !strings.EqualFold(normalized, NormalizeText(stored))
}
