package application

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	motors "motor-editor/internal/motors/domain"
	"motor-editor/internal/observability/metrics"
	units "motor-editor/internal/units/domain"
)

// Service converts quantities in one of two modes. In display mode values
// are only converted on the way to and from the user; in stored mode bulk
// operations rewrite the document in place.
type Service struct {
	convertStoredData bool
	displayUnits      units.Settings
	logger            *log.Logger
}

// NewService constructs a conversion service.
func NewService(convertStoredData bool, logger *log.Logger) *Service {
	return &Service{
		convertStoredData: convertStoredData,
		displayUnits:      units.DefaultSettings(),
		logger:            logger,
	}
}

// ConvertsStoredData reports whether bulk operations rewrite data.
func (s *Service) ConvertsStoredData() bool {
	return s.convertStoredData
}

// SetConvertStoredData switches between display and stored mode.
func (s *Service) SetConvertStoredData(enabled bool) {
	s.convertStoredData = enabled
}

// DisplayUnits returns the units values are presented in.
func (s *Service) DisplayUnits() units.Settings {
	return s.displayUnits
}

// SetDisplayUnits replaces the presentation units.
func (s *Service) SetDisplayUnits(settings units.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.displayUnits = settings
	return nil
}

// Convert converts a scalar between two symbols.
func (s *Service) Convert(value decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return units.Convert(value, from, to)
}

// DisplayValue converts a stored value for presentation. Nothing is mutated.
func (s *Service) DisplayValue(stored decimal.Decimal, storedUnit, displayUnit string) (decimal.Decimal, error) {
	return units.Convert(stored, storedUnit, displayUnit)
}

// StoredValue is the inverse of DisplayValue.
func (s *Service) StoredValue(display decimal.Decimal, displayUnit, storedUnit string) (decimal.Decimal, error) {
	return units.Convert(display, displayUnit, storedUnit)
}

// ConvertCurve rewrites every point of curve from old to next units.
// It does nothing in display mode.
func (s *Service) ConvertCurve(curve *motors.Curve, old, next units.Settings) error {
	if !s.convertStoredData || curve == nil {
		return nil
	}
	plan, err := newPlan(old, next)
	if err != nil {
		return s.observe(err)
	}
	plan.curve(curve)
	return s.observe(nil)
}

// ConvertVoltage rewrites a voltage configuration and its curves.
// It does nothing in display mode.
func (s *Service) ConvertVoltage(voltage *motors.VoltageConfiguration, old, next units.Settings) error {
	if !s.convertStoredData || voltage == nil {
		return nil
	}
	plan, err := newPlan(old, next)
	if err != nil {
		return s.observe(err)
	}
	plan.voltage(voltage)
	return s.observe(nil)
}

// ConvertMotor rewrites every field of every changed dimension across the
// whole document and records next as the motor's units. It does nothing in
// display mode. Symbols are validated before the first write, so an error
// leaves the motor untouched.
func (s *Service) ConvertMotor(motor *motors.MotorDefinition, next units.Settings) error {
	if !s.convertStoredData {
		return nil
	}
	if motor == nil {
		return motors.ErrNilMotor
	}
	plan, err := newPlan(motor.Units, next)
	if err != nil {
		return s.observe(err)
	}
	plan.motor(motor)
	motor.Units = next
	if s.logger != nil && len(plan.changed) > 0 {
		s.logger.Printf("units: converted stored data %v", plan.changed)
	}
	return s.observe(nil)
}

// ApplySettings moves a document to next units: stored mode rewrites the
// data, display mode only changes the presentation units.
func (s *Service) ApplySettings(motor *motors.MotorDefinition, next units.Settings) error {
	if s.convertStoredData {
		return s.ConvertMotor(motor, next)
	}
	return s.SetDisplayUnits(next)
}

func (s *Service) observe(err error) error {
	mode := metrics.ConversionModeDisplay
	if s.convertStoredData {
		mode = metrics.ConversionModeStored
	}
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.IncUnitConversion(mode, result)
	return err
}

type conversion struct {
	from, to units.Unit
}

// plan holds the validated from/to pair of every changed dimension.
type plan struct {
	changed []units.Dimension
	pairs   map[units.Dimension]conversion
}

func newPlan(old, next units.Settings) (*plan, error) {
	p := &plan{pairs: make(map[units.Dimension]conversion)}
	for _, d := range old.Changed(next) {
		from, err := lookupIn(d, old.Unit(d))
		if err != nil {
			return nil, fmt.Errorf("convert %s from: %w", d, err)
		}
		to, err := lookupIn(d, next.Unit(d))
		if err != nil {
			return nil, fmt.Errorf("convert %s to: %w", d, err)
		}
		p.changed = append(p.changed, d)
		p.pairs[d] = conversion{from: from, to: to}
	}
	return p, nil
}

func lookupIn(d units.Dimension, symbol string) (units.Unit, error) {
	if err := units.Check(d, symbol); err != nil {
		return units.Unit{}, err
	}
	return units.Lookup(symbol)
}

// apply converts *v in place when d changed, with the same arithmetic as units.Convert.
func (p *plan) apply(d units.Dimension, v *decimal.Decimal) {
	pair, ok := p.pairs[d]
	if !ok {
		return
	}
	*v = v.Mul(pair.from.Factor).Div(pair.to.Factor)
}

func (p *plan) curve(c *motors.Curve) {
	for i := range c.Points {
		p.apply(units.DimensionTorque, &c.Points[i].Torque)
		p.apply(units.DimensionSpeed, &c.Points[i].Speed)
	}
}

func (p *plan) voltage(v *motors.VoltageConfiguration) {
	p.apply(units.DimensionSpeed, &v.MaxSpeed)
	p.apply(units.DimensionSpeed, &v.RatedSpeed)
	p.apply(units.DimensionPower, &v.Power)
	p.apply(units.DimensionTorque, &v.RatedPeakTorque)
	p.apply(units.DimensionTorque, &v.RatedContinuousTorque)
	p.apply(units.DimensionCurrent, &v.PeakAmperage)
	p.apply(units.DimensionCurrent, &v.ContinuousAmperage)
	for _, c := range v.Curves {
		if c != nil {
			p.curve(c)
		}
	}
}

func (p *plan) motor(m *motors.MotorDefinition) {
	p.apply(units.DimensionSpeed, &m.MaxSpeed)
	p.apply(units.DimensionSpeed, &m.RatedSpeed)
	p.apply(units.DimensionTorque, &m.RatedPeakTorque)
	p.apply(units.DimensionTorque, &m.RatedContinuousTorque)
	p.apply(units.DimensionTorque, &m.BrakeTorque)
	p.apply(units.DimensionPower, &m.Power)
	p.apply(units.DimensionWeight, &m.Weight)
	p.apply(units.DimensionInertia, &m.RotorInertia)
	p.apply(units.DimensionCurrent, &m.BrakeAmperage)
	p.apply(units.DimensionResponseTime, &m.BrakeReleaseTime)
	p.apply(units.DimensionResponseTime, &m.BrakeEngageTimeDiode)
	p.apply(units.DimensionResponseTime, &m.BrakeEngageTimeMOV)
	p.apply(units.DimensionBacklash, &m.BrakeBacklash)
	for _, drive := range m.Drives {
		if drive == nil {
			continue
		}
		for _, v := range drive.Voltages {
			if v != nil {
				p.voltage(v)
			}
		}
	}
}
