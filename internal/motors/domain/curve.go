package motors

import "github.com/shopspring/decimal"

// Curve is a named torque/speed curve owned by a voltage configuration.
// Locked curves must not have their points edited; callers enforce it.
type Curve struct {
	Name   string      `json:"name"`
	Points []DataPoint `json:"points"`
	Locked bool        `json:"locked"`
}

// NewCurve builds a curve from a copy of points.
func NewCurve(name string, points []DataPoint) *Curve {
	return &Curve{Name: name, Points: append([]DataPoint(nil), points...)}
}

// NewBlankCurve builds a 101 point curve with zero torque, speeds spread up to maxSpeed.
func NewBlankCurve(name string, maxSpeed decimal.Decimal) *Curve {
	points := make([]DataPoint, PointCount)
	hundred := decimal.NewFromInt(100)
	for p := range points {
		points[p] = DataPoint{
			Percent: p,
			Speed:   maxSpeed.Mul(decimal.NewFromInt(int64(p))).Div(hundred).Round(2),
			Torque:  decimal.Zero,
		}
	}
	return &Curve{Name: name, Points: points}
}

// Clone deep copies the curve.
func (c *Curve) Clone() *Curve {
	if c == nil {
		return nil
	}
	return &Curve{Name: c.Name, Points: append([]DataPoint(nil), c.Points...), Locked: c.Locked}
}

// PointsEqual reports whether both curves hold the same point values.
func (c *Curve) PointsEqual(other *Curve) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.Points) != len(other.Points) {
		return false
	}
	for i := range c.Points {
		if !c.Points[i].Equal(other.Points[i]) {
			return false
		}
	}
	return true
}

// PeakTorque returns the largest torque on the curve.
func (c *Curve) PeakTorque() decimal.Decimal {
	peak := decimal.Zero
	for _, p := range c.Points {
		if p.Torque.GreaterThan(peak) {
			peak = p.Torque
		}
	}
	return peak
}
