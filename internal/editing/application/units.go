package application

import (
	"github.com/shopspring/decimal"

	units "motor-editor/internal/units/domain"
)

// ChangeUnits moves the document to next units. With stored-data
// conversion on, every stored value is rewritten, history is cleared and
// the document becomes dirty. Otherwise only the display units change.
// Dimensions left empty in next keep their current unit.
func (s *Session) ChangeUnits(next units.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.converter.ConvertsStoredData() {
		return s.converter.SetDisplayUnits(next.FillFrom(s.converter.DisplayUnits()))
	}
	motor, err := s.document()
	if err != nil {
		return err
	}
	next = next.FillFrom(motor.Units)
	changed := motor.Units.Changed(next)
	if err := s.converter.ConvertMotor(motor, next); err != nil {
		return err
	}
	if len(changed) == 0 {
		return nil
	}
	// Stored commands captured values in the old units.
	s.history.Clear()
	s.dirty = true
	s.logger.Printf("editing: motor %s stored units now %s", motor.ID, next)
	return nil
}

// SetConvertStoredData switches between display-only and stored-data
// unit changes. Leaving stored mode keeps the current units on display.
func (s *Session) SetConvertStoredData(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !enabled && s.converter.ConvertsStoredData() && s.motor != nil {
		if err := s.converter.SetDisplayUnits(s.motor.Units); err != nil {
			return err
		}
	}
	s.converter.SetConvertStoredData(enabled)
	return nil
}

// DisplayUnits are the units values are presented in.
func (s *Session) DisplayUnits() units.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayUnits()
}

// DisplayValue converts a stored value of dimension d to display units.
func (s *Session) DisplayValue(d units.Dimension, stored decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor, err := s.document()
	if err != nil {
		return decimal.Zero, err
	}
	return s.converter.DisplayValue(stored, motor.Units.Unit(d), s.displayUnits().Unit(d))
}

// StoredValue converts a display value of dimension d to stored units.
func (s *Session) StoredValue(d units.Dimension, display decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor, err := s.document()
	if err != nil {
		return decimal.Zero, err
	}
	return s.converter.StoredValue(display, s.displayUnits().Unit(d), motor.Units.Unit(d))
}
