package application

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	motors "motor-editor/internal/motors/domain"
	units "motor-editor/internal/units/domain"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func torqueMotor(points int) *motors.MotorDefinition {
	m := motors.NewMotorDefinition("M-200")
	m.RatedPeakTorque = d("12")
	m.RatedContinuousTorque = d("4.5")
	m.BrakeTorque = d("2")
	m.MaxSpeed = d("6000")
	m.Weight = d("1.8")
	curve := &motors.Curve{Name: "Peak"}
	for i := 0; i < points; i++ {
		curve.Points = append(curve.Points, motors.DataPoint{
			Percent: i,
			Speed:   decimal.NewFromInt(int64(i * 60)),
			Torque:  d("12").Sub(decimal.NewFromInt(int64(i)).Div(d("10"))),
		})
	}
	m.Drives = []*motors.Drive{{
		Name: "D1",
		Voltages: []*motors.VoltageConfiguration{{
			Voltage:               d("230"),
			MaxSpeed:              d("6000"),
			RatedPeakTorque:       d("12"),
			RatedContinuousTorque: d("4.5"),
			PeakAmperage:          d("9"),
			Curves:                []*motors.Curve{curve, curve.Clone()},
		}},
	}}
	return m
}

func expectConverted(t *testing.T, field string, before, after decimal.Decimal) {
	t.Helper()
	want, err := units.Convert(before, "Nm", "lbf-in")
	if err != nil {
		t.Fatalf("convert %s: %v", field, err)
	}
	if !after.Equal(want) {
		t.Fatalf("%s: expected %s, got %s", field, want, after)
	}
}

func TestConvertMotorStoredRewritesEveryTorqueField(t *testing.T) {
	m := torqueMotor(11)
	before := m.Clone()
	svc := NewService(true, nil)

	next := m.Units.With(units.DimensionTorque, "lbf-in")
	if err := svc.ConvertMotor(m, next); err != nil {
		t.Fatalf("convert motor: %v", err)
	}
	if m.Units.Torque != "lbf-in" {
		t.Fatalf("units not updated: %s", m.Units.Torque)
	}
	expectConverted(t, "motor peak", before.RatedPeakTorque, m.RatedPeakTorque)
	expectConverted(t, "motor continuous", before.RatedContinuousTorque, m.RatedContinuousTorque)
	expectConverted(t, "brake", before.BrakeTorque, m.BrakeTorque)
	bv, av := before.Drives[0].Voltages[0], m.Drives[0].Voltages[0]
	expectConverted(t, "voltage peak", bv.RatedPeakTorque, av.RatedPeakTorque)
	expectConverted(t, "voltage continuous", bv.RatedContinuousTorque, av.RatedContinuousTorque)
	for c := range av.Curves {
		for i := range av.Curves[c].Points {
			expectConverted(t, "point torque", bv.Curves[c].Points[i].Torque, av.Curves[c].Points[i].Torque)
			if !av.Curves[c].Points[i].Speed.Equal(bv.Curves[c].Points[i].Speed) {
				t.Fatalf("speed changed on a torque-only conversion")
			}
		}
	}
	if !m.MaxSpeed.Equal(before.MaxSpeed) || !m.Weight.Equal(before.Weight) || !av.PeakAmperage.Equal(bv.PeakAmperage) {
		t.Fatalf("unrelated dimensions were rewritten")
	}
}

func TestConvertMotorDisplayModeLeavesDataUntouched(t *testing.T) {
	m := torqueMotor(11)
	before := m.Clone()
	svc := NewService(false, nil)

	next := m.Units.With(units.DimensionTorque, "lbf-in")
	if err := svc.ConvertMotor(m, next); err != nil {
		t.Fatalf("convert motor: %v", err)
	}
	if err := svc.ConvertCurve(m.Drives[0].Voltages[0].Curves[0], m.Units, next); err != nil {
		t.Fatalf("convert curve: %v", err)
	}
	if m.Units != before.Units {
		t.Fatalf("display mode changed stored units")
	}
	if m.RatedPeakTorque.String() != before.RatedPeakTorque.String() {
		t.Fatalf("display mode changed motor torque")
	}
	for c, curve := range m.Drives[0].Voltages[0].Curves {
		beforeCurve := before.Drives[0].Voltages[0].Curves[c]
		for i, p := range curve.Points {
			bp := beforeCurve.Points[i]
			if p.Torque.String() != bp.Torque.String() || p.Speed.String() != bp.Speed.String() {
				t.Fatalf("display mode changed point %d", i)
			}
		}
	}
}

func TestApplySettingsDisplayModeRecordsDisplayUnits(t *testing.T) {
	m := torqueMotor(3)
	svc := NewService(false, nil)
	next := m.Units.With(units.DimensionSpeed, "rad/s")
	if err := svc.ApplySettings(m, next); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if svc.DisplayUnits().Speed != "rad/s" {
		t.Fatalf("display units not recorded")
	}
	if m.Units.Speed != "rpm" {
		t.Fatalf("stored units changed in display mode")
	}
	shown, err := svc.DisplayValue(d("60"), m.Units.Speed, svc.DisplayUnits().Speed)
	if err != nil {
		t.Fatalf("display value: %v", err)
	}
	back, err := svc.StoredValue(shown, svc.DisplayUnits().Speed, m.Units.Speed)
	if err != nil {
		t.Fatalf("stored value: %v", err)
	}
	if back.Sub(d("60")).Abs().GreaterThan(d("0.000000001")) {
		t.Fatalf("display round trip drifted: %s", back)
	}
}

func TestConvertMotorRejectsUnsupportedWithoutPartialWrites(t *testing.T) {
	m := torqueMotor(5)
	before := m.Clone()
	svc := NewService(true, nil)

	next := m.Units.With(units.DimensionTorque, "lbf-in").With(units.DimensionInertia, "furlong^2")
	err := svc.ConvertMotor(m, next)
	if !errors.Is(err, units.ErrUnsupportedUnit) {
		t.Fatalf("expected ErrUnsupportedUnit, got %v", err)
	}
	if m.Units != before.Units || !m.RatedPeakTorque.Equal(before.RatedPeakTorque) {
		t.Fatalf("motor modified by failed conversion")
	}
	if !m.Drives[0].Voltages[0].Curves[0].PointsEqual(before.Drives[0].Voltages[0].Curves[0]) {
		t.Fatalf("points modified by failed conversion")
	}
}

func TestConvertMotorDimensionsAreIndependent(t *testing.T) {
	m := torqueMotor(3)
	svc := NewService(true, nil)
	next := m.Units.With(units.DimensionSpeed, "rps").With(units.DimensionWeight, "g")
	if err := svc.ConvertMotor(m, next); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !m.MaxSpeed.Equal(d("100")) {
		t.Fatalf("expected 100 rps, got %s", m.MaxSpeed)
	}
	if !m.Weight.Equal(d("1800")) {
		t.Fatalf("expected 1800 g, got %s", m.Weight)
	}
	if !m.RatedPeakTorque.Equal(d("12")) {
		t.Fatalf("torque changed: %s", m.RatedPeakTorque)
	}
	if !m.Drives[0].Voltages[0].Curves[0].Points[2].Speed.Equal(d("2")) {
		t.Fatalf("point speed not converted: %s", m.Drives[0].Voltages[0].Curves[0].Points[2].Speed)
	}
}

func TestConvertVoltageStored(t *testing.T) {
	m := torqueMotor(2)
	v := m.Drives[0].Voltages[0]
	svc := NewService(true, nil)
	next := m.Units.With(units.DimensionCurrent, "mA")
	if err := svc.ConvertVoltage(v, m.Units, next); err != nil {
		t.Fatalf("convert voltage: %v", err)
	}
	if !v.PeakAmperage.Equal(d("9000")) {
		t.Fatalf("expected 9000 mA, got %s", v.PeakAmperage)
	}
}

func TestSetDisplayUnitsValidates(t *testing.T) {
	svc := NewService(false, nil)
	err := svc.SetDisplayUnits(units.DefaultSettings().With(units.DimensionPower, "rpm"))
	if !errors.Is(err, units.ErrUnsupportedUnit) {
		t.Fatalf("expected ErrUnsupportedUnit, got %v", err)
	}
	if svc.DisplayUnits() != units.DefaultSettings() {
		t.Fatalf("display units changed by rejected settings")
	}
}
