package motors

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Validate reports every structural problem of the document at once.
func (m *MotorDefinition) Validate() error {
	if m == nil {
		return ErrNilMotor
	}
	var err error
	if m.ID == "" {
		err = multierr.Append(err, ErrEmptyID)
	}
	if m.Name == "" {
		err = multierr.Append(err, fmt.Errorf("%w: motor", ErrEmptyName))
	}
	err = multierr.Append(err, m.Units.Validate())
	err = multierr.Combine(err,
		nonNegative("max speed", m.MaxSpeed),
		nonNegative("rated speed", m.RatedSpeed),
		nonNegative("power", m.Power),
		nonNegative("weight", m.Weight),
		nonNegative("rotor inertia", m.RotorInertia),
	)
	if m.FeedbackPPR < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: feedback ppr %d", ErrNegativeValue, m.FeedbackPPR))
	}
	for d, drive := range m.Drives {
		if drive == nil {
			err = multierr.Append(err, fmt.Errorf("%w: drive %d is nil", ErrDriveNotFound, d))
			continue
		}
		for v, voltage := range drive.Voltages {
			if voltage == nil {
				err = multierr.Append(err, fmt.Errorf("%w: drive %d voltage %d is nil", ErrVoltageNotFound, d, v))
				continue
			}
			for c, curve := range voltage.Curves {
				err = multierr.Append(err, validateCurve(fmt.Sprintf("drive %d voltage %d curve %d", d, v, c), curve))
			}
		}
	}
	return err
}

func validateCurve(where string, c *Curve) error {
	if c == nil {
		return fmt.Errorf("%w: %s is nil", ErrCurveNotFound, where)
	}
	var err error
	for i, p := range c.Points {
		if p.Percent < 0 || p.Percent > 100 {
			err = multierr.Append(err, fmt.Errorf("%w: %s point %d percent %d", ErrInvalidPercent, where, i, p.Percent))
		}
		if p.Speed.IsNegative() {
			err = multierr.Append(err, fmt.Errorf("%w: %s point %d speed %s", ErrNegativeValue, where, i, p.Speed))
		}
	}
	return err
}

func nonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%w: %s %s", ErrNegativeValue, field, value)
	}
	return nil
}
