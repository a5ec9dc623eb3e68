package units

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Convert converts value from one unit symbol to another of the same dimension.
// Equal symbols return value untouched without any arithmetic.
func Convert(value decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return value, nil
	}
	fromUnit, err := Lookup(from)
	if err != nil {
		return decimal.Zero, err
	}
	toUnit, err := Lookup(to)
	if err != nil {
		return decimal.Zero, err
	}
	if fromUnit.Dimension != toUnit.Dimension {
		return decimal.Zero, fmt.Errorf("%w: %s is %s, %s is %s",
			ErrDimensionMismatch, from, fromUnit.Dimension, to, toUnit.Dimension)
	}
	return value.Mul(fromUnit.Factor).Div(toUnit.Factor), nil
}

// ConvertIn is Convert restricted to dimension d.
func ConvertIn(d Dimension, value decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if err := Check(d, from); err != nil {
		return decimal.Zero, err
	}
	if err := Check(d, to); err != nil {
		return decimal.Zero, err
	}
	return Convert(value, from, to)
}

// Check verifies that symbol is a unit of dimension d.
func Check(d Dimension, symbol string) error {
	if !d.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDimension, d)
	}
	if !Supports(d, symbol) {
		return &UnsupportedUnitError{Symbol: symbol, Dimension: d}
	}
	return nil
}
