package motors

import "github.com/shopspring/decimal"

// PointCount is the number of points a new curve is created with (0..100%).
const PointCount = 101

// DataPoint is one torque/speed sample of a curve.
type DataPoint struct {
	Percent int             `json:"percent"`
	Speed   decimal.Decimal `json:"speed"`
	Torque  decimal.Decimal `json:"torque"`
}

// Equal compares points by value.
func (p DataPoint) Equal(other DataPoint) bool {
	return p.Percent == other.Percent && p.Speed.Equal(other.Speed) && p.Torque.Equal(other.Torque)
}

// Power returns the mechanical power at this point, torque × speed × 2π/60.
func (p DataPoint) Power() decimal.Decimal {
	return p.Torque.Mul(p.Speed).Mul(RadPerSecPerRPM)
}

// RadPerSecPerRPM converts rpm to rad/s (2π/60).
var RadPerSecPerRPM = decimal.RequireFromString("0.1047197551196597746")
