package application

import (
	"fmt"

	"github.com/shopspring/decimal"

	commands "motor-editor/internal/commands/domain"
	"motor-editor/internal/curvegen"
	motors "motor-editor/internal/motors/domain"
)

// DriveInput describes a new drive.
type DriveInput struct {
	Name         string `json:"name"`
	PartNumber   string `json:"part_number"`
	Manufacturer string `json:"manufacturer"`
}

// VoltageRatings describes the ratings of a new voltage configuration.
type VoltageRatings struct {
	Voltage               decimal.Decimal `json:"voltage"`
	MaxSpeed              decimal.Decimal `json:"max_speed"`
	RatedSpeed            decimal.Decimal `json:"rated_speed"`
	Power                 decimal.Decimal `json:"power"`
	RatedPeakTorque       decimal.Decimal `json:"rated_peak_torque"`
	RatedContinuousTorque decimal.Decimal `json:"rated_continuous_torque"`
	PeakAmperage          decimal.Decimal `json:"peak_amperage"`
	ContinuousAmperage    decimal.Decimal `json:"continuous_amperage"`
}

func (v VoltageRatings) configuration() *motors.VoltageConfiguration {
	return &motors.VoltageConfiguration{
		Voltage:               v.Voltage,
		MaxSpeed:              v.MaxSpeed,
		RatedSpeed:            v.RatedSpeed,
		Power:                 v.Power,
		RatedPeakTorque:       v.RatedPeakTorque,
		RatedContinuousTorque: v.RatedContinuousTorque,
		PeakAmperage:          v.PeakAmperage,
		ContinuousAmperage:    v.ContinuousAmperage,
	}
}

// AddDrive appends a drive and returns its index.
func (s *Session) AddDrive(input DriveInput) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor, err := s.document()
	if err != nil {
		return 0, err
	}
	if input.Name == "" {
		return 0, motors.ErrEmptyName
	}
	drive := &motors.Drive{Name: input.Name, PartNumber: input.PartNumber, Manufacturer: input.Manufacturer}
	cmd := commands.NewInsertCommand("Add drive "+input.Name, &motor.Drives, -1, drive)
	if err := s.execute(cmd); err != nil {
		return 0, err
	}
	return cmd.Index(), nil
}

// RemoveDrive removes a drive with all its voltages and curves.
func (s *Session) RemoveDrive(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor, err := s.document()
	if err != nil {
		return err
	}
	drive, err := motor.Drive(index)
	if err != nil {
		return err
	}
	return s.execute(commands.NewRemoveCommand("Remove drive "+drive.Name, &motor.Drives, index))
}

// AddVoltage appends a voltage configuration to a drive, with generated
// peak and continuous curves, and returns its index.
func (s *Session) AddVoltage(driveIndex int, input VoltageRatings) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor, err := s.document()
	if err != nil {
		return 0, err
	}
	drive, err := motor.Drive(driveIndex)
	if err != nil {
		return 0, err
	}
	voltage := input.configuration()
	peak, err := curvegen.Generate(s.cfg.PeakCurveName, curvegen.PeakParameters(voltage))
	if err != nil {
		return 0, err
	}
	continuous, err := curvegen.Generate(s.cfg.ContinuousCurveName, curvegen.ContinuousParameters(voltage))
	if err != nil {
		return 0, err
	}
	voltage.Curves = []*motors.Curve{peak, continuous}
	if err := validateVoltage(voltage); err != nil {
		return 0, err
	}

	cmd := commands.NewInsertCommand(fmt.Sprintf("Add %s to %s", voltage.Label(), drive.Name), &drive.Voltages, -1, voltage)
	if err := s.execute(cmd); err != nil {
		return 0, err
	}
	return cmd.Index(), nil
}

// RemoveVoltage removes a voltage configuration with its curves.
func (s *Session) RemoveVoltage(addr VoltageAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor, err := s.document()
	if err != nil {
		return err
	}
	drive, err := motor.Drive(addr.Drive)
	if err != nil {
		return err
	}
	voltage, err := drive.Voltage(addr.Voltage)
	if err != nil {
		return err
	}
	desc := fmt.Sprintf("Remove %s from %s", voltage.Label(), drive.Name)
	return s.execute(commands.NewRemoveCommand(desc, &drive.Voltages, addr.Voltage))
}

// AddCurve appends a blank 101 point curve spanning the voltage max speed
// and returns its index.
func (s *Session) AddCurve(addr VoltageAddress, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return 0, motors.ErrEmptyName
	}
	voltage, err := s.voltage(addr)
	if err != nil {
		return 0, err
	}
	curve := motors.NewBlankCurve(name, voltage.MaxSpeed)
	cmd := commands.NewInsertCommand("Add curve "+name, &voltage.Curves, -1, curve)
	if err := s.execute(cmd); err != nil {
		return 0, err
	}
	return cmd.Index(), nil
}

// RemoveCurve removes a curve.
func (s *Session) RemoveCurve(addr CurveAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	voltage, err := s.voltage(addr.VoltageAddress())
	if err != nil {
		return err
	}
	curve, err := voltage.Curve(addr.Curve)
	if err != nil {
		return err
	}
	return s.execute(commands.NewRemoveCommand("Remove curve "+curve.Name, &voltage.Curves, addr.Curve))
}

func validateVoltage(v *motors.VoltageConfiguration) error {
	for name, value := range map[string]decimal.Decimal{
		"voltage":                 v.Voltage,
		"max_speed":               v.MaxSpeed,
		"rated_speed":             v.RatedSpeed,
		"power":                   v.Power,
		"rated_peak_torque":       v.RatedPeakTorque,
		"rated_continuous_torque": v.RatedContinuousTorque,
		"peak_amperage":           v.PeakAmperage,
		"continuous_amperage":     v.ContinuousAmperage,
	} {
		if value.IsNegative() {
			return fmt.Errorf("%w: %s %s", motors.ErrNegativeValue, name, value)
		}
	}
	return nil
}
