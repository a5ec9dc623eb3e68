package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	motors "motor-editor/internal/motors/domain"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func sampleMotor() *motors.MotorDefinition {
	motor := motors.NewMotorDefinition("M-200")
	motor.PartNumber = "PN-200"
	motor.MaxSpeed = d("4500")
	motor.RotorInertia = d("1.25")
	motor.FeedbackPPR = 2048
	motor.HasBrake = true
	motor.BrakeTorque = d("3.5")
	motor.BrakeReleaseTime = d("40")
	motor.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	motor.Units.Torque = "lbf-in"
	curve := motors.NewBlankCurve("Peak", d("4500"))
	curve.Points[10].Torque = d("12.345")
	curve.Locked = true
	motor.Drives = []*motors.Drive{{
		Name: "D1",
		Voltages: []*motors.VoltageConfiguration{{
			Voltage:  d("230"),
			MaxSpeed: d("4500"),
			Power:    d("750.5"),
			Curves:   []*motors.Curve{curve, motors.NewBlankCurve("Continuous", d("4500"))},
		}},
	}}
	return motor
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	motor := sampleMotor()
	var buf bytes.Buffer
	if err := Encode(&buf, motor); err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := buf.String()
	if !strings.Contains(text, "power: 750.5") || !strings.Contains(text, "torque: lbf-in") {
		t.Fatalf("unexpected document:\n%s", text)
	}
	if strings.Contains(text, "!!") {
		t.Fatalf("numbers must be written as plain scalars:\n%s", text)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != motor.ID || decoded.Name != motor.Name || decoded.PartNumber != motor.PartNumber {
		t.Fatalf("identity mismatch: %+v", decoded)
	}
	if !decoded.RotorInertia.Equal(motor.RotorInertia) || decoded.FeedbackPPR != 2048 {
		t.Fatalf("ratings mismatch: %+v", decoded)
	}
	if !decoded.HasBrake || !decoded.BrakeTorque.Equal(d("3.5")) || !decoded.BrakeReleaseTime.Equal(d("40")) {
		t.Fatalf("brake mismatch: %+v", decoded)
	}
	if decoded.Units != motor.Units {
		t.Fatalf("units mismatch: %+v", decoded.Units)
	}
	if !decoded.UpdatedAt.Equal(motor.UpdatedAt) {
		t.Fatalf("updated_at mismatch: %v", decoded.UpdatedAt)
	}
	want := motor.Drives[0].Voltages[0]
	got := decoded.Drives[0].Voltages[0]
	if !got.Power.Equal(want.Power) || len(got.Curves) != 2 {
		t.Fatalf("voltage mismatch: %+v", got)
	}
	for i := range want.Curves {
		if !got.Curves[i].PointsEqual(want.Curves[i]) || got.Curves[i].Locked != want.Curves[i].Locked {
			t.Fatalf("curve %d mismatch", i)
		}
	}
}

func TestDisabledBrakeKeepsRatings(t *testing.T) {
	motor := sampleMotor()
	motor.HasBrake = false
	var buf bytes.Buffer
	if err := Encode(&buf, motor); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), "enabled: false") {
		t.Fatalf("expected disabled brake block:\n%s", buf.String())
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.HasBrake {
		t.Fatalf("expected brake disabled")
	}
	if !decoded.BrakeTorque.Equal(d("3.5")) || !decoded.BrakeReleaseTime.Equal(d("40")) {
		t.Fatalf("brake ratings lost: torque %s release %s", decoded.BrakeTorque, decoded.BrakeReleaseTime)
	}
}

func TestDecodeBrakeWithoutEnabledFlag(t *testing.T) {
	doc := `
version: 1
id: abc
name: Braked
max_speed: 3000
brake:
  torque: 2
drives: []
`
	motor, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !motor.HasBrake || !motor.BrakeTorque.Equal(d("2")) {
		t.Fatalf("expected enabled brake with torque 2, got %v %s", motor.HasBrake, motor.BrakeTorque)
	}
}

func TestDecodeWithoutBrakeOrUnits(t *testing.T) {
	doc := `
version: 1
id: abc
name: Bare
max_speed: 3000
drives: []
`
	motor, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if motor.HasBrake {
		t.Fatalf("expected no brake")
	}
	if motor.Units.Torque != "Nm" || motor.Units.Speed != "rpm" {
		t.Fatalf("expected default units, got %+v", motor.Units)
	}
	if !motor.MaxSpeed.Equal(d("3000")) {
		t.Fatalf("expected max speed 3000, got %s", motor.MaxSpeed)
	}
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"version":  "version: 9\nid: a\nname: x\n",
		"number":   "id: a\nname: x\nmax_speed: fast\n",
		"negative": "id: a\nname: x\nweight: -2\n",
		"no name":  "id: a\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDirRepository(t *testing.T) {
	repo, err := NewDirRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	ctx := context.Background()
	motor := sampleMotor()
	if err := repo.Save(ctx, motor); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := repo.Get(ctx, motor.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Name != motor.Name {
		t.Fatalf("unexpected name %q", loaded.Name)
	}
	rows, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != motor.ID || rows[0].PartNumber != "PN-200" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if err := repo.Delete(ctx, motor.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, motor.ID); !errors.Is(err, motors.ErrMotorNotFound) {
		t.Fatalf("expected ErrMotorNotFound, got %v", err)
	}
	if _, err := repo.Get(ctx, "../escape"); err == nil {
		t.Fatalf("expected invalid id error")
	}
}
