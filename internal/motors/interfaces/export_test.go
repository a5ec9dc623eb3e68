package interfaces

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	motors "motor-editor/internal/motors/domain"
	units "motor-editor/internal/units/domain"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func exportMotor() *motors.MotorDefinition {
	motor := motors.NewMotorDefinition("Export motor")
	motor.MaxSpeed = d("3000")
	motor.RatedPeakTorque = d("10")
	motor.HasBrake = true
	motor.BrakeTorque = d("2")
	curve := motors.NewBlankCurve("Peak", d("3000"))
	for i := range curve.Points {
		curve.Points[i].Torque = d("10")
	}
	motor.Drives = []*motors.Drive{{
		Name: "D1",
		Voltages: []*motors.VoltageConfiguration{{
			Voltage:  d("220"),
			MaxSpeed: d("3000"),
			Curves:   []*motors.Curve{curve, motors.NewBlankCurve("Peak", d("3000"))},
		}},
	}}
	return motor
}

func TestBuildCurvesXLSX(t *testing.T) {
	opts := ExportOptions{Units: units.DefaultSettings().With(units.DimensionSpeed, "rps").With(units.DimensionPower, "kW"), Places: 2}
	data, err := BuildCurvesXLSX(exportMotor(), opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 3 {
		t.Fatalf("expected 3 sheets, got %v", sheets)
	}
	if sheets[1] != "D1 220 V Peak" || sheets[2] != "D1 220 V Peak (2)" {
		t.Fatalf("unexpected curve sheet names: %v", sheets)
	}
	name, _ := f.GetCellValue("summary", "B1")
	if name != "Export motor" {
		t.Fatalf("unexpected motor name %q", name)
	}
	header, _ := f.GetCellValue(sheets[1], "B1")
	if header != "Speed (rps)" {
		t.Fatalf("unexpected speed header %q", header)
	}
	// percent 60: 1800 rpm = 30 rps, 10 Nm at 1800 rpm is 1.88 kW.
	speed, _ := f.GetCellValue(sheets[1], "B62")
	if speed != "30" {
		t.Fatalf("expected 30 rps, got %q", speed)
	}
	power, _ := f.GetCellValue(sheets[1], "D62")
	if power != "1.88" {
		t.Fatalf("expected 1.88 kW, got %q", power)
	}
}

func TestBuildCurvesXLSXRejectsInvalidUnits(t *testing.T) {
	opts := ExportOptions{Units: units.DefaultSettings().With(units.DimensionTorque, "furlong")}
	if _, err := BuildCurvesXLSX(exportMotor(), opts); err == nil {
		t.Fatalf("expected unit error")
	}
	if _, err := BuildCurvesXLSX(nil, opts); err == nil {
		t.Fatalf("expected nil motor error")
	}
}

func TestBuildDatasheetPDF(t *testing.T) {
	data, err := BuildDatasheetPDF(exportMotor(), ExportOptions{Units: units.DefaultSettings(), Places: 2})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a PDF document")
	}
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{"summary": true}
	if got := uniqueSheetName(used, "Summary"); got != "Summary (2)" {
		t.Fatalf("expected case-insensitive de-dup, got %q", got)
	}
	if got := uniqueSheetName(used, "a/b:c"); got != "a_b_c" {
		t.Fatalf("expected sanitized name, got %q", got)
	}
	long := uniqueSheetName(used, "0123456789012345678901234567890123456789")
	if len(long) != maxSheetName {
		t.Fatalf("expected %d chars, got %d", maxSheetName, len(long))
	}
}
