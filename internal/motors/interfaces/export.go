package interfaces

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	motors "motor-editor/internal/motors/domain"
	units "motor-editor/internal/units/domain"
)

const (
	summarySheet  = "summary"
	maxSheetName  = 31
	datasheetStep = 10
)

// ExportOptions selects the presentation of exported values.
type ExportOptions struct {
	Units  units.Settings
	Places int32
}

// presenter converts stored values to the export units.
type presenter struct {
	stored  units.Settings
	display units.Settings
	places  int32
}

func newPresenter(motor *motors.MotorDefinition, opts ExportOptions) (presenter, error) {
	display := opts.Units.FillDefaults()
	if err := display.Validate(); err != nil {
		return presenter{}, err
	}
	return presenter{stored: motor.Units, display: display, places: opts.Places}, nil
}

func (p presenter) value(d units.Dimension, v decimal.Decimal) (decimal.Decimal, error) {
	converted, err := units.ConvertIn(d, v, p.stored.Unit(d), p.display.Unit(d))
	if err != nil {
		return decimal.Zero, err
	}
	return converted.Round(p.places), nil
}

func (p presenter) text(d units.Dimension, v decimal.Decimal) (string, error) {
	converted, err := p.value(d, v)
	if err != nil {
		return "", err
	}
	return units.Format(converted, p.display.Unit(d), p.places), nil
}

// power is torque × speed in W, then shown in the display power unit.
func (p presenter) power(point motors.DataPoint) (decimal.Decimal, error) {
	torque, err := units.ConvertIn(units.DimensionTorque, point.Torque, p.stored.Torque, "Nm")
	if err != nil {
		return decimal.Zero, err
	}
	speed, err := units.ConvertIn(units.DimensionSpeed, point.Speed, p.stored.Speed, "rpm")
	if err != nil {
		return decimal.Zero, err
	}
	watts := motors.DataPoint{Torque: torque, Speed: speed}.Power()
	shown, err := units.ConvertIn(units.DimensionPower, watts, "W", p.display.Power)
	if err != nil {
		return decimal.Zero, err
	}
	return shown.Round(p.places), nil
}

type ratingRow struct {
	label     string
	dimension units.Dimension
	value     decimal.Decimal
}

func motorRatings(m *motors.MotorDefinition) []ratingRow {
	rows := []ratingRow{
		{"Max speed", units.DimensionSpeed, m.MaxSpeed},
		{"Rated speed", units.DimensionSpeed, m.RatedSpeed},
		{"Rated peak torque", units.DimensionTorque, m.RatedPeakTorque},
		{"Rated continuous torque", units.DimensionTorque, m.RatedContinuousTorque},
		{"Power", units.DimensionPower, m.Power},
		{"Weight", units.DimensionWeight, m.Weight},
		{"Rotor inertia", units.DimensionInertia, m.RotorInertia},
	}
	if m.HasBrake {
		rows = append(rows,
			ratingRow{"Brake torque", units.DimensionTorque, m.BrakeTorque},
			ratingRow{"Brake amperage", units.DimensionCurrent, m.BrakeAmperage},
			ratingRow{"Brake release time", units.DimensionResponseTime, m.BrakeReleaseTime},
			ratingRow{"Brake engage time (diode)", units.DimensionResponseTime, m.BrakeEngageTimeDiode},
			ratingRow{"Brake engage time (MOV)", units.DimensionResponseTime, m.BrakeEngageTimeMOV},
			ratingRow{"Brake backlash", units.DimensionBacklash, m.BrakeBacklash},
		)
	}
	return rows
}

func voltageRatings(v *motors.VoltageConfiguration) []ratingRow {
	return []ratingRow{
		{"Max speed", units.DimensionSpeed, v.MaxSpeed},
		{"Rated speed", units.DimensionSpeed, v.RatedSpeed},
		{"Power", units.DimensionPower, v.Power},
		{"Rated peak torque", units.DimensionTorque, v.RatedPeakTorque},
		{"Rated continuous torque", units.DimensionTorque, v.RatedContinuousTorque},
		{"Peak amperage", units.DimensionCurrent, v.PeakAmperage},
		{"Continuous amperage", units.DimensionCurrent, v.ContinuousAmperage},
	}
}

// BuildCurvesXLSX renders a workbook with a summary sheet and one sheet per curve.
func BuildCurvesXLSX(motor *motors.MotorDefinition, opts ExportOptions) ([]byte, error) {
	if motor == nil {
		return nil, motors.ErrNilMotor
	}
	p, err := newPresenter(motor, opts)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", summarySheet)

	_ = f.SetCellValue(summarySheet, "A1", "Motor")
	_ = f.SetCellValue(summarySheet, "B1", motor.Name)
	_ = f.SetCellValue(summarySheet, "A2", "Manufacturer")
	_ = f.SetCellValue(summarySheet, "B2", motor.Manufacturer)
	_ = f.SetCellValue(summarySheet, "A3", "Part number")
	_ = f.SetCellValue(summarySheet, "B3", motor.PartNumber)
	_ = f.SetCellValue(summarySheet, "A4", "Feedback PPR")
	_ = f.SetCellValue(summarySheet, "B4", motor.FeedbackPPR)

	row := 6
	for _, rating := range motorRatings(motor) {
		value, err := p.value(rating.dimension, rating.value)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), rating.label)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), value.InexactFloat64())
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), p.display.Unit(rating.dimension))
		row++
	}

	used := map[string]bool{summarySheet: true}
	row++
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Curves")
	row++
	for _, drive := range motor.Drives {
		for _, voltage := range drive.Voltages {
			for _, curve := range voltage.Curves {
				sheet := uniqueSheetName(used, fmt.Sprintf("%s %s %s", drive.Name, voltage.Label(), curve.Name))
				if _, err := f.NewSheet(sheet); err != nil {
					return nil, err
				}
				if err := writeCurveSheet(f, sheet, curve, p); err != nil {
					return nil, err
				}
				peak, err := p.value(units.DimensionTorque, curve.PeakTorque())
				if err != nil {
					return nil, err
				}
				_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), sheet)
				_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), peak.InexactFloat64())
				_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), p.display.Torque)
				row++
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCurveSheet(f *excelize.File, sheet string, curve *motors.Curve, p presenter) error {
	_ = f.SetCellValue(sheet, "A1", "Percent")
	_ = f.SetCellValue(sheet, "B1", fmt.Sprintf("Speed (%s)", p.display.Speed))
	_ = f.SetCellValue(sheet, "C1", fmt.Sprintf("Torque (%s)", p.display.Torque))
	_ = f.SetCellValue(sheet, "D1", fmt.Sprintf("Power (%s)", p.display.Power))
	for i, point := range curve.Points {
		row := i + 2
		speed, err := p.value(units.DimensionSpeed, point.Speed)
		if err != nil {
			return err
		}
		torque, err := p.value(units.DimensionTorque, point.Torque)
		if err != nil {
			return err
		}
		power, err := p.power(point)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), point.Percent)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), speed.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), torque.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), power.InexactFloat64())
	}
	return nil
}

// uniqueSheetName strips characters excel rejects, truncates and de-duplicates.
func uniqueSheetName(used map[string]bool, name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" {
		name = "curve"
	}
	base := truncate(name, maxSheetName)
	candidate := base
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// BuildDatasheetPDF renders a one-document datasheet: ratings and a
// sampled table of every curve.
func BuildDatasheetPDF(motor *motors.MotorDefinition, opts ExportOptions) ([]byte, error) {
	if motor == nil {
		return nil, motors.ErrNilMotor
	}
	p, err := newPresenter(motor, opts)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, fmt.Sprintf("Motor Datasheet: %s", motor.Name))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Manufacturer: %s", motor.Manufacturer))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Part number: %s", motor.PartNumber))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Feedback: %d PPR", motor.FeedbackPPR))
	pdf.Ln(8)

	if err := ratingsTable(pdf, p, motorRatings(motor)); err != nil {
		return nil, err
	}

	for _, drive := range motor.Drives {
		for _, voltage := range drive.Voltages {
			pdf.Ln(6)
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(0, 6, fmt.Sprintf("%s @ %s", drive.Name, voltage.Label()))
			pdf.Ln(7)
			pdf.SetFont("Arial", "", 10)
			if err := ratingsTable(pdf, p, voltageRatings(voltage)); err != nil {
				return nil, err
			}
			for _, curve := range voltage.Curves {
				pdf.Ln(4)
				if err := curveTable(pdf, p, curve); err != nil {
					return nil, err
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ratingsTable(pdf *gofpdf.Fpdf, p presenter, rows []ratingRow) error {
	for _, rating := range rows {
		text, err := p.text(rating.dimension, rating.value)
		if err != nil {
			return err
		}
		pdf.CellFormat(70, 6, rating.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, text, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	return nil
}

func curveTable(pdf *gofpdf.Fpdf, p presenter, curve *motors.Curve) error {
	title := curve.Name
	if curve.Locked {
		title += " (locked)"
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, title)
	pdf.Ln(6)
	pdf.CellFormat(25, 6, "Percent", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, fmt.Sprintf("Speed (%s)", p.display.Speed), "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, fmt.Sprintf("Torque (%s)", p.display.Torque), "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, fmt.Sprintf("Power (%s)", p.display.Power), "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, point := range curve.Points {
		if point.Percent%datasheetStep != 0 {
			continue
		}
		speed, err := p.value(units.DimensionSpeed, point.Speed)
		if err != nil {
			return err
		}
		torque, err := p.value(units.DimensionTorque, point.Torque)
		if err != nil {
			return err
		}
		power, err := p.power(point)
		if err != nil {
			return err
		}
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", point.Percent), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, speed.StringFixed(p.places), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, torque.StringFixed(p.places), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, power.StringFixed(p.places), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	return nil
}
