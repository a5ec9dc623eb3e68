// Package curvegen derives torque/speed curves from max speed, max torque
// and max power using a constant-torque / constant-power model.
//
// Values are rounded to two decimal places, half away from zero.
package curvegen

import (
	"fmt"

	"github.com/shopspring/decimal"

	motors "motor-editor/internal/motors/domain"
)

// Places is the number of decimal places generated values are rounded to.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Parameters are the physical inputs of a generated curve.
type Parameters struct {
	MaxSpeed  decimal.Decimal `json:"max_speed"`
	MaxTorque decimal.Decimal `json:"max_torque"`
	MaxPower  decimal.Decimal `json:"max_power"`
}

// Validate rejects negative inputs.
func (p Parameters) Validate() error {
	if p.MaxSpeed.IsNegative() {
		return fmt.Errorf("%w: max speed %s", ErrNegativeInput, p.MaxSpeed)
	}
	if p.MaxTorque.IsNegative() {
		return fmt.Errorf("%w: max torque %s", ErrNegativeInput, p.MaxTorque)
	}
	if p.MaxPower.IsNegative() {
		return fmt.Errorf("%w: max power %s", ErrNegativeInput, p.MaxPower)
	}
	return nil
}

// PeakParameters derives the peak curve inputs of a voltage configuration.
func PeakParameters(v *motors.VoltageConfiguration) Parameters {
	return Parameters{MaxSpeed: v.MaxSpeed, MaxTorque: v.RatedPeakTorque, MaxPower: v.Power}
}

// ContinuousParameters derives the continuous curve inputs of a voltage configuration.
func ContinuousParameters(v *motors.VoltageConfiguration) Parameters {
	return Parameters{MaxSpeed: v.MaxSpeed, MaxTorque: v.RatedContinuousTorque, MaxPower: v.Power}
}

// Interpolate returns 101 points (percent 0..100) for the given limits.
// Below the corner speed torque is maxTorque; above it power is held at
// maxPower. Any input of zero yields a flat zero-torque curve.
func Interpolate(maxSpeed, maxTorque, maxPower decimal.Decimal) ([]motors.DataPoint, error) {
	params := Parameters{MaxSpeed: maxSpeed, MaxTorque: maxTorque, MaxPower: maxPower}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	flat := !maxSpeed.IsPositive() || !maxTorque.IsPositive() || !maxPower.IsPositive()
	corner := cornerSpeed(maxTorque, maxPower)

	points := make([]motors.DataPoint, motors.PointCount)
	for p := range points {
		speed := maxSpeed.Mul(decimal.NewFromInt(int64(p))).Div(hundred)
		torque := decimal.Zero
		switch {
		case flat:
		case !speed.IsPositive() || speed.LessThanOrEqual(corner):
			torque = maxTorque
		default:
			torque = maxPower.Div(speed.Mul(motors.RadPerSecPerRPM))
			if torque.IsNegative() {
				torque = decimal.Zero
			}
		}
		points[p] = motors.DataPoint{
			Percent: p,
			Speed:   clampZero(speed.Round(Places)),
			Torque:  torque.Round(Places),
		}
	}
	return points, nil
}

// Generate builds a named curve from params.
func Generate(name string, params Parameters) (*motors.Curve, error) {
	points, err := Interpolate(params.MaxSpeed, params.MaxTorque, params.MaxPower)
	if err != nil {
		return nil, err
	}
	return &motors.Curve{Name: name, Points: points}, nil
}

// CornerSpeed is the speed where the motor leaves the constant-torque
// region: (maxPower × 60) / (maxTorque × 2π), or 0 when maxTorque ≤ 0.
func CornerSpeed(maxTorque, maxPower decimal.Decimal) decimal.Decimal {
	return cornerSpeed(maxTorque, maxPower).Round(Places)
}

// Power returns torque × speed × 2π/60.
func Power(torque, speed decimal.Decimal) decimal.Decimal {
	return torque.Mul(speed).Mul(motors.RadPerSecPerRPM).Round(Places)
}

func cornerSpeed(maxTorque, maxPower decimal.Decimal) decimal.Decimal {
	if !maxTorque.IsPositive() {
		return decimal.Zero
	}
	return maxPower.Div(maxTorque.Mul(motors.RadPerSecPerRPM))
}

func clampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
