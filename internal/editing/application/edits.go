package application

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	commands "motor-editor/internal/commands/domain"
	"motor-editor/internal/curvegen"
	editing "motor-editor/internal/editing/domain"
	motors "motor-editor/internal/motors/domain"
	"motor-editor/internal/observability/metrics"
)

type decimalField func(*motors.MotorDefinition) *decimal.Decimal

var motorDecimalFields = map[string]decimalField{
	"max_speed":               func(m *motors.MotorDefinition) *decimal.Decimal { return &m.MaxSpeed },
	"rated_speed":             func(m *motors.MotorDefinition) *decimal.Decimal { return &m.RatedSpeed },
	"rated_peak_torque":       func(m *motors.MotorDefinition) *decimal.Decimal { return &m.RatedPeakTorque },
	"rated_continuous_torque": func(m *motors.MotorDefinition) *decimal.Decimal { return &m.RatedContinuousTorque },
	"power":                   func(m *motors.MotorDefinition) *decimal.Decimal { return &m.Power },
	"weight":                  func(m *motors.MotorDefinition) *decimal.Decimal { return &m.Weight },
	"rotor_inertia":           func(m *motors.MotorDefinition) *decimal.Decimal { return &m.RotorInertia },
	"brake_torque":            func(m *motors.MotorDefinition) *decimal.Decimal { return &m.BrakeTorque },
	"brake_amperage":          func(m *motors.MotorDefinition) *decimal.Decimal { return &m.BrakeAmperage },
	"brake_voltage":           func(m *motors.MotorDefinition) *decimal.Decimal { return &m.BrakeVoltage },
	"brake_release_time":      func(m *motors.MotorDefinition) *decimal.Decimal { return &m.BrakeReleaseTime },
	"brake_engage_time_diode": func(m *motors.MotorDefinition) *decimal.Decimal { return &m.BrakeEngageTimeDiode },
	"brake_engage_time_mov":   func(m *motors.MotorDefinition) *decimal.Decimal { return &m.BrakeEngageTimeMOV },
	"brake_backlash":          func(m *motors.MotorDefinition) *decimal.Decimal { return &m.BrakeBacklash },
}

type textField func(*motors.MotorDefinition) *string

var motorTextFields = map[string]textField{
	"name":         func(m *motors.MotorDefinition) *string { return &m.Name },
	"manufacturer": func(m *motors.MotorDefinition) *string { return &m.Manufacturer },
	"part_number":  func(m *motors.MotorDefinition) *string { return &m.PartNumber },
}

type voltageField func(*motors.VoltageConfiguration) *decimal.Decimal

var voltageDecimalFields = map[string]voltageField{
	"voltage":                 func(v *motors.VoltageConfiguration) *decimal.Decimal { return &v.Voltage },
	"max_speed":               func(v *motors.VoltageConfiguration) *decimal.Decimal { return &v.MaxSpeed },
	"rated_speed":             func(v *motors.VoltageConfiguration) *decimal.Decimal { return &v.RatedSpeed },
	"power":                   func(v *motors.VoltageConfiguration) *decimal.Decimal { return &v.Power },
	"rated_peak_torque":       func(v *motors.VoltageConfiguration) *decimal.Decimal { return &v.RatedPeakTorque },
	"rated_continuous_torque": func(v *motors.VoltageConfiguration) *decimal.Decimal { return &v.RatedContinuousTorque },
	"peak_amperage":           func(v *motors.VoltageConfiguration) *decimal.Decimal { return &v.PeakAmperage },
	"continuous_amperage":     func(v *motors.VoltageConfiguration) *decimal.Decimal { return &v.ContinuousAmperage },
}

// EditPoint changes one data point of an unlocked curve.
func (s *Session) EditPoint(addr PointAddress, edit commands.PointEdit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkEdit(edit); err != nil {
		return err
	}
	curve, err := s.editableCurve(addr.CurveAddress)
	if err != nil {
		return err
	}
	return s.execute(commands.NewEditPointCommand(curve, addr.Index, edit))
}

// EditSelection applies edit to every selected point as one undoable step.
func (s *Session) EditSelection(edit commands.PointEdit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkEdit(edit); err != nil {
		return err
	}
	if _, err := s.document(); err != nil {
		return err
	}
	s.pruneSelection()
	refs := s.selection.CurrentSelection()
	if len(refs) == 0 {
		return ErrEmptySelection
	}
	sort.Slice(refs, func(i, j int) bool {
		a, _ := s.addressOf(refs[i])
		b, _ := s.addressOf(refs[j])
		return a.Less(b)
	})
	cmds := make([]commands.Command, 0, len(refs))
	for _, ref := range refs {
		if ref.Curve.Locked {
			return fmt.Errorf("%w: %s", ErrCurveLocked, ref.Curve.Name)
		}
		cmds = append(cmds, commands.NewEditPointCommand(ref.Curve, ref.Index, edit))
	}
	if len(cmds) == 1 {
		return s.execute(cmds[0])
	}
	return s.execute(commands.NewBatch(fmt.Sprintf("Edit %d points", len(cmds)), cmds...))
}

// GenerateCurve replaces the points of an unlocked curve with a generated
// torque/speed curve.
func (s *Session) GenerateCurve(addr CurveAddress, params curvegen.Parameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generate(addr, params)
}

// GenerateFromRatings regenerates a curve from its voltage ratings, using
// the continuous torque rating for curves named like the configured
// continuous curve and the peak rating otherwise.
func (s *Session) GenerateFromRatings(addr CurveAddress) error {
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
	params := curvegen.PeakParameters(voltage)
	if curve.Name == s.cfg.ContinuousCurveName {
		params = curvegen.ContinuousParameters(voltage)
	}
	return s.generate(addr, params)
}

func (s *Session) generate(addr CurveAddress, params curvegen.Parameters) error {
	curve, err := s.editableCurve(addr)
	if err != nil {
		return err
	}
	start := time.Now()
	points, err := curvegen.Interpolate(params.MaxSpeed, params.MaxTorque, params.MaxPower)
	metrics.ObserveCurveGenerate(metrics.Result(err), time.Since(start))
	if err != nil {
		return err
	}
	return s.execute(commands.NewReplacePointsCommand(curve, points))
}

// SetCurveLocked locks or unlocks a curve. Locking is itself undoable.
func (s *Session) SetCurveLocked(addr CurveAddress, locked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	curve, err := s.curve(addr)
	if err != nil {
		return err
	}
	desc := "Unlock " + curve.Name
	if locked {
		desc = "Lock " + curve.Name
	}
	return s.execute(commands.NewPropertyCommand(desc,
		func() bool { return curve.Locked },
		func(v bool) { curve.Locked = v },
		locked))
}

// RenameCurve changes a curve name.
func (s *Session) RenameCurve(addr CurveAddress, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return motors.ErrEmptyName
	}
	curve, err := s.curve(addr)
	if err != nil {
		return err
	}
	return s.execute(commands.NewPropertyCommand("Rename "+curve.Name,
		func() string { return curve.Name },
		func(v string) { curve.Name = v },
		name))
}

// SetMotorField sets a numeric motor rating by its json field name.
func (s *Session) SetMotorField(field string, value decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor, err := s.document()
	if err != nil {
		return err
	}
	accessor, ok := motorDecimalFields[field]
	if !ok {
		return fmt.Errorf("%w: motor %s", ErrUnknownField, field)
	}
	if value.IsNegative() {
		return fmt.Errorf("%w: %s %s", motors.ErrNegativeValue, field, value)
	}
	target := accessor(motor)
	return s.execute(commands.NewPropertyCommand("Set "+field,
		func() decimal.Decimal { return *target },
		func(v decimal.Decimal) { *target = v },
		value))
}

// SetMotorInfo sets a descriptive motor field (name, manufacturer, part_number).
func (s *Session) SetMotorInfo(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor, err := s.document()
	if err != nil {
		return err
	}
	accessor, ok := motorTextFields[field]
	if !ok {
		return fmt.Errorf("%w: motor %s", ErrUnknownField, field)
	}
	if field == "name" && value == "" {
		return motors.ErrEmptyName
	}
	target := accessor(motor)
	return s.execute(commands.NewPropertyCommand("Set "+field,
		func() string { return *target },
		func(v string) { *target = v },
		value))
}

// SetFeedbackPPR sets the encoder resolution.
func (s *Session) SetFeedbackPPR(ppr int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor, err := s.document()
	if err != nil {
		return err
	}
	if ppr < 0 {
		return fmt.Errorf("%w: feedback_ppr %d", motors.ErrNegativeValue, ppr)
	}
	return s.execute(commands.NewPropertyCommand("Set feedback_ppr",
		func() int { return motor.FeedbackPPR },
		func(v int) { motor.FeedbackPPR = v },
		ppr))
}

// SetHasBrake toggles the brake option.
func (s *Session) SetHasBrake(hasBrake bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor, err := s.document()
	if err != nil {
		return err
	}
	return s.execute(commands.NewPropertyCommand("Set has_brake",
		func() bool { return motor.HasBrake },
		func(v bool) { motor.HasBrake = v },
		hasBrake))
}

// SetVoltageField sets a numeric voltage rating by its json field name.
func (s *Session) SetVoltageField(addr VoltageAddress, field string, value decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	voltage, err := s.voltage(addr)
	if err != nil {
		return err
	}
	accessor, ok := voltageDecimalFields[field]
	if !ok {
		return fmt.Errorf("%w: voltage %s", ErrUnknownField, field)
	}
	if value.IsNegative() {
		return fmt.Errorf("%w: %s %s", motors.ErrNegativeValue, field, value)
	}
	target := accessor(voltage)
	return s.execute(commands.NewPropertyCommand(fmt.Sprintf("Set %s %s", voltage.Label(), field),
		func() decimal.Decimal { return *target },
		func(v decimal.Decimal) { *target = v },
		value))
}

func checkEdit(edit commands.PointEdit) error {
	if edit.IsEmpty() {
		return ErrEmptyEdit
	}
	if edit.Percent != nil && (*edit.Percent < 0 || *edit.Percent > 100) {
		return fmt.Errorf("%w: percent %d", ErrInvalidEdit, *edit.Percent)
	}
	if edit.Speed != nil && edit.Speed.IsNegative() {
		return fmt.Errorf("%w: speed %s", ErrInvalidEdit, edit.Speed)
	}
	return nil
}

func (s *Session) voltage(addr VoltageAddress) (*motors.VoltageConfiguration, error) {
	motor, err := s.document()
	if err != nil {
		return nil, err
	}
	return motor.Voltage(addr.Drive, addr.Voltage)
}

func (s *Session) curve(addr CurveAddress) (*motors.Curve, error) {
	motor, err := s.document()
	if err != nil {
		return nil, err
	}
	return motor.Curve(addr.Drive, addr.Voltage, addr.Curve)
}

func (s *Session) editableCurve(addr CurveAddress) (*motors.Curve, error) {
	curve, err := s.curve(addr)
	if err != nil {
		return nil, err
	}
	if curve.Locked {
		return nil, fmt.Errorf("%w: %s", ErrCurveLocked, curve.Name)
	}
	return curve, nil
}

// addressOf locates a selection reference in the open document.
func (s *Session) addressOf(ref editing.PointRef) (PointAddress, bool) {
	if s.motor == nil {
		return PointAddress{}, false
	}
	for d, drive := range s.motor.Drives {
		if drive == nil {
			continue
		}
		for v, voltage := range drive.Voltages {
			if voltage == nil {
				continue
			}
			for c, curve := range voltage.Curves {
				if curve == ref.Curve {
					addr := PointAddress{CurveAddress: CurveAddress{Drive: d, Voltage: v, Curve: c}, Index: ref.Index}
					return addr, ref.Index >= 0 && ref.Index < len(curve.Points)
				}
			}
		}
	}
	return PointAddress{}, false
}
