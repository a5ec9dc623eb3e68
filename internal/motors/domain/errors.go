package motors

import "errors"

var (
	// ErrNilMotor is returned when a nil motor definition is provided.
	ErrNilMotor = errors.New("motors: nil motor definition")
	// ErrEmptyID is returned when a motor definition has no id.
	ErrEmptyID = errors.New("motors: empty id")
	// ErrMotorNotFound is returned when a motor definition cannot be found.
	ErrMotorNotFound = errors.New("motors: not found")
	// ErrDriveNotFound is returned when a drive index is out of range.
	ErrDriveNotFound = errors.New("motors: drive not found")
	// ErrVoltageNotFound is returned when a voltage configuration index is out of range.
	ErrVoltageNotFound = errors.New("motors: voltage configuration not found")
	// ErrCurveNotFound is returned when a curve index is out of range.
	ErrCurveNotFound = errors.New("motors: curve not found")
	// ErrNegativeValue is returned when a value that must be non-negative is negative.
	ErrNegativeValue = errors.New("motors: negative value")
	// ErrInvalidPercent is returned when a point percent is outside 0..100.
	ErrInvalidPercent = errors.New("motors: percent out of range")
	// ErrEmptyName is returned when a required name is empty.
	ErrEmptyName = errors.New("motors: empty name")
)
