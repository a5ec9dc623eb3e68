package units

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders "<value> <unit>" with value rounded half away from zero.
func Format(value decimal.Decimal, unit string, places int32) string {
	text := value.StringFixed(places)
	if unit == "" {
		return text
	}
	return text + " " + unit
}

// FormatTrimmed is Format with trailing fractional zeros removed.
func FormatTrimmed(value decimal.Decimal, unit string, places int32) string {
	text := TrimZeros(value.StringFixed(places))
	if unit == "" {
		return text
	}
	return text + " " + unit
}

// TrimZeros strips trailing zeros (and a dangling point) from a fixed-point string.
func TrimZeros(text string) string {
	if !strings.Contains(text, ".") {
		return text
	}
	text = strings.TrimRight(text, "0")
	text = strings.TrimSuffix(text, ".")
	if text == "-0" {
		return "0"
	}
	return text
}
