package motors

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	units "motor-editor/internal/units/domain"
)

// MotorDefinition is the aggregate root of an edited document.
// Every stored quantity is expressed in the units recorded in Units.
type MotorDefinition struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	PartNumber   string `json:"part_number"`

	MaxSpeed              decimal.Decimal `json:"max_speed"`
	RatedSpeed            decimal.Decimal `json:"rated_speed"`
	RatedPeakTorque       decimal.Decimal `json:"rated_peak_torque"`
	RatedContinuousTorque decimal.Decimal `json:"rated_continuous_torque"`
	Power                 decimal.Decimal `json:"power"`
	Weight                decimal.Decimal `json:"weight"`
	RotorInertia          decimal.Decimal `json:"rotor_inertia"`
	FeedbackPPR           int             `json:"feedback_ppr"`

	HasBrake             bool            `json:"has_brake"`
	BrakeTorque          decimal.Decimal `json:"brake_torque"`
	BrakeAmperage        decimal.Decimal `json:"brake_amperage"`
	BrakeVoltage         decimal.Decimal `json:"brake_voltage"`
	BrakeReleaseTime     decimal.Decimal `json:"brake_release_time"`
	BrakeEngageTimeDiode decimal.Decimal `json:"brake_engage_time_diode"`
	BrakeEngageTimeMOV   decimal.Decimal `json:"brake_engage_time_mov"`
	BrakeBacklash        decimal.Decimal `json:"brake_backlash"`

	Units     units.Settings `json:"units"`
	Drives    []*Drive       `json:"drives"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewMotorDefinition creates an empty motor with a fresh id and default units.
func NewMotorDefinition(name string) *MotorDefinition {
	return &MotorDefinition{
		ID:    uuid.NewString(),
		Name:  name,
		Units: units.DefaultSettings(),
	}
}

// Drive returns the drive at index i.
func (m *MotorDefinition) Drive(i int) (*Drive, error) {
	if m == nil {
		return nil, ErrNilMotor
	}
	if i < 0 || i >= len(m.Drives) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrDriveNotFound, i, len(m.Drives))
	}
	return m.Drives[i], nil
}

// Voltage returns voltage configuration v of drive d.
func (m *MotorDefinition) Voltage(d, v int) (*VoltageConfiguration, error) {
	drive, err := m.Drive(d)
	if err != nil {
		return nil, err
	}
	return drive.Voltage(v)
}

// Curve returns curve c of voltage v of drive d.
func (m *MotorDefinition) Curve(d, v, c int) (*Curve, error) {
	voltage, err := m.Voltage(d, v)
	if err != nil {
		return nil, err
	}
	return voltage.Curve(c)
}

// Voltages walks every voltage configuration of every drive.
func (m *MotorDefinition) Voltages() []*VoltageConfiguration {
	var all []*VoltageConfiguration
	for _, drive := range m.Drives {
		all = append(all, drive.Voltages...)
	}
	return all
}

// Curves walks every curve in the document.
func (m *MotorDefinition) Curves() []*Curve {
	var all []*Curve
	for _, voltage := range m.Voltages() {
		all = append(all, voltage.Curves...)
	}
	return all
}

// HasCurve reports whether c is owned by this motor.
func (m *MotorDefinition) HasCurve(c *Curve) bool {
	if m == nil || c == nil {
		return false
	}
	for _, owned := range m.Curves() {
		if owned == c {
			return true
		}
	}
	return false
}

// Clone deep copies the whole document.
func (m *MotorDefinition) Clone() *MotorDefinition {
	if m == nil {
		return nil
	}
	clone := *m
	clone.Drives = make([]*Drive, len(m.Drives))
	for i, d := range m.Drives {
		clone.Drives[i] = d.Clone()
	}
	return &clone
}
