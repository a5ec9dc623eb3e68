package motors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// VoltageConfiguration holds the ratings and curves of a drive at one supply voltage.
type VoltageConfiguration struct {
	Voltage               decimal.Decimal `json:"voltage"`
	MaxSpeed              decimal.Decimal `json:"max_speed"`
	RatedSpeed            decimal.Decimal `json:"rated_speed"`
	Power                 decimal.Decimal `json:"power"`
	RatedPeakTorque       decimal.Decimal `json:"rated_peak_torque"`
	RatedContinuousTorque decimal.Decimal `json:"rated_continuous_torque"`
	PeakAmperage          decimal.Decimal `json:"peak_amperage"`
	ContinuousAmperage    decimal.Decimal `json:"continuous_amperage"`
	Curves                []*Curve        `json:"curves"`
}

// Label is a human readable name, e.g. "208 V".
func (v *VoltageConfiguration) Label() string {
	return fmt.Sprintf("%s V", v.Voltage.String())
}

// Curve returns the curve at index i.
func (v *VoltageConfiguration) Curve(i int) (*Curve, error) {
	if i < 0 || i >= len(v.Curves) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrCurveNotFound, i, len(v.Curves))
	}
	return v.Curves[i], nil
}

// Clone deep copies the configuration and its curves.
func (v *VoltageConfiguration) Clone() *VoltageConfiguration {
	if v == nil {
		return nil
	}
	clone := *v
	clone.Curves = make([]*Curve, len(v.Curves))
	for i, c := range v.Curves {
		clone.Curves[i] = c.Clone()
	}
	return &clone
}
