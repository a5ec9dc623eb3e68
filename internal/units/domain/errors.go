package units

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedUnit is returned when a unit symbol is not in the table.
	ErrUnsupportedUnit = errors.New("units: unsupported unit")
	// ErrDimensionMismatch is returned when two symbols measure different quantities.
	ErrDimensionMismatch = errors.New("units: dimension mismatch")
	// ErrInvalidDimension is returned for an unknown dimension.
	ErrInvalidDimension = errors.New("units: invalid dimension")
)

// UnsupportedUnitError names the symbol that could not be resolved.
type UnsupportedUnitError struct {
	Symbol    string
	Dimension Dimension
}

func (e *UnsupportedUnitError) Error() string {
	if e.Dimension != "" {
		return fmt.Sprintf("units: unsupported %s unit %q", e.Dimension, e.Symbol)
	}
	return fmt.Sprintf("units: unsupported unit %q", e.Symbol)
}

// Unwrap lets errors.Is match ErrUnsupportedUnit.
func (e *UnsupportedUnitError) Unwrap() error { return ErrUnsupportedUnit }
