package yamlfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	motors "motor-editor/internal/motors/domain"
	units "motor-editor/internal/units/domain"
)

// formatVersion is written to every document.
const formatVersion = 1

var errUnsupportedVersion = errors.New("yamlfile: unsupported document version")

type motorDoc struct {
	Version      int    `yaml:"version"`
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Manufacturer string `yaml:"manufacturer,omitempty"`
	PartNumber   string `yaml:"part_number,omitempty"`

	MaxSpeed              number `yaml:"max_speed"`
	RatedSpeed            number `yaml:"rated_speed"`
	RatedPeakTorque       number `yaml:"rated_peak_torque"`
	RatedContinuousTorque number `yaml:"rated_continuous_torque"`
	Power                 number `yaml:"power"`
	Weight                number `yaml:"weight"`
	RotorInertia          number `yaml:"rotor_inertia"`
	FeedbackPPR           int    `yaml:"feedback_ppr"`

	Brake *brakeDoc `yaml:"brake,omitempty"`

	Units     units.Settings `yaml:"units"`
	Drives    []driveDoc     `yaml:"drives"`
	UpdatedAt time.Time      `yaml:"updated_at,omitempty"`
}

// brakeDoc is written whenever brake ratings exist. A block without
// enabled is an enabled brake.
type brakeDoc struct {
	Enabled         *bool  `yaml:"enabled,omitempty"`
	Torque          number `yaml:"torque"`
	Amperage        number `yaml:"amperage"`
	Voltage         number `yaml:"voltage"`
	ReleaseTime     number `yaml:"release_time"`
	EngageTimeDiode number `yaml:"engage_time_diode"`
	EngageTimeMOV   number `yaml:"engage_time_mov"`
	Backlash        number `yaml:"backlash"`
}

type driveDoc struct {
	Name         string       `yaml:"name"`
	PartNumber   string       `yaml:"part_number,omitempty"`
	Manufacturer string       `yaml:"manufacturer,omitempty"`
	Voltages     []voltageDoc `yaml:"voltages"`
}

type voltageDoc struct {
	Voltage               number     `yaml:"voltage"`
	MaxSpeed              number     `yaml:"max_speed"`
	RatedSpeed            number     `yaml:"rated_speed"`
	Power                 number     `yaml:"power"`
	RatedPeakTorque       number     `yaml:"rated_peak_torque"`
	RatedContinuousTorque number     `yaml:"rated_continuous_torque"`
	PeakAmperage          number     `yaml:"peak_amperage"`
	ContinuousAmperage    number     `yaml:"continuous_amperage"`
	Curves                []curveDoc `yaml:"curves"`
}

type curveDoc struct {
	Name   string     `yaml:"name"`
	Locked bool       `yaml:"locked,omitempty"`
	Points []pointDoc `yaml:"points"`
}

type pointDoc struct {
	Percent int    `yaml:"percent"`
	Speed   number `yaml:"speed"`
	Torque  number `yaml:"torque"`
}

// Encode writes motor as a YAML document.
func Encode(w io.Writer, motor *motors.MotorDefinition) error {
	if motor == nil {
		return motors.ErrNilMotor
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDoc(motor)); err != nil {
		return err
	}
	return enc.Close()
}

// Decode reads and validates a YAML motor document.
func Decode(r io.Reader) (*motors.MotorDefinition, error) {
	var doc motorDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Version > formatVersion {
		return nil, errUnsupportedVersion
	}
	motor := fromDoc(doc)
	if err := motor.Validate(); err != nil {
		return nil, err
	}
	return motor, nil
}

// ReadFile decodes the motor document at path.
func ReadFile(path string) (*motors.MotorDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile encodes motor to path, replacing it atomically.
func WriteFile(path string, motor *motors.MotorDefinition) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".motor-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := Encode(tmp, motor); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func toDoc(m *motors.MotorDefinition) motorDoc {
	doc := motorDoc{
		Version:               formatVersion,
		ID:                    m.ID,
		Name:                  m.Name,
		Manufacturer:          m.Manufacturer,
		PartNumber:            m.PartNumber,
		MaxSpeed:              number(m.MaxSpeed),
		RatedSpeed:            number(m.RatedSpeed),
		RatedPeakTorque:       number(m.RatedPeakTorque),
		RatedContinuousTorque: number(m.RatedContinuousTorque),
		Power:                 number(m.Power),
		Weight:                number(m.Weight),
		RotorInertia:          number(m.RotorInertia),
		FeedbackPPR:           m.FeedbackPPR,
		Units:                 m.Units,
		UpdatedAt:             m.UpdatedAt,
	}
	if m.HasBrake || hasBrakeRatings(m) {
		enabled := m.HasBrake
		doc.Brake = &brakeDoc{
			Enabled:         &enabled,
			Torque:          number(m.BrakeTorque),
			Amperage:        number(m.BrakeAmperage),
			Voltage:         number(m.BrakeVoltage),
			ReleaseTime:     number(m.BrakeReleaseTime),
			EngageTimeDiode: number(m.BrakeEngageTimeDiode),
			EngageTimeMOV:   number(m.BrakeEngageTimeMOV),
			Backlash:        number(m.BrakeBacklash),
		}
	}
	for _, drive := range m.Drives {
		if drive == nil {
			continue
		}
		dd := driveDoc{Name: drive.Name, PartNumber: drive.PartNumber, Manufacturer: drive.Manufacturer}
		for _, v := range drive.Voltages {
			if v == nil {
				continue
			}
			vd := voltageDoc{
				Voltage:               number(v.Voltage),
				MaxSpeed:              number(v.MaxSpeed),
				RatedSpeed:            number(v.RatedSpeed),
				Power:                 number(v.Power),
				RatedPeakTorque:       number(v.RatedPeakTorque),
				RatedContinuousTorque: number(v.RatedContinuousTorque),
				PeakAmperage:          number(v.PeakAmperage),
				ContinuousAmperage:    number(v.ContinuousAmperage),
			}
			for _, c := range v.Curves {
				if c == nil {
					continue
				}
				cd := curveDoc{Name: c.Name, Locked: c.Locked, Points: make([]pointDoc, len(c.Points))}
				for i, p := range c.Points {
					cd.Points[i] = pointDoc{Percent: p.Percent, Speed: number(p.Speed), Torque: number(p.Torque)}
				}
				vd.Curves = append(vd.Curves, cd)
			}
			dd.Voltages = append(dd.Voltages, vd)
		}
		doc.Drives = append(doc.Drives, dd)
	}
	return doc
}

func hasBrakeRatings(m *motors.MotorDefinition) bool {
	for _, v := range []decimal.Decimal{
		m.BrakeTorque, m.BrakeAmperage, m.BrakeVoltage, m.BrakeReleaseTime,
		m.BrakeEngageTimeDiode, m.BrakeEngageTimeMOV, m.BrakeBacklash,
	} {
		if !v.IsZero() {
			return true
		}
	}
	return false
}

func fromDoc(doc motorDoc) *motors.MotorDefinition {
	m := &motors.MotorDefinition{
		ID:                    doc.ID,
		Name:                  doc.Name,
		Manufacturer:          doc.Manufacturer,
		PartNumber:            doc.PartNumber,
		MaxSpeed:              doc.MaxSpeed.value(),
		RatedSpeed:            doc.RatedSpeed.value(),
		RatedPeakTorque:       doc.RatedPeakTorque.value(),
		RatedContinuousTorque: doc.RatedContinuousTorque.value(),
		Power:                 doc.Power.value(),
		Weight:                doc.Weight.value(),
		RotorInertia:          doc.RotorInertia.value(),
		FeedbackPPR:           doc.FeedbackPPR,
		Units:                 doc.Units.FillDefaults(),
		UpdatedAt:             doc.UpdatedAt,
	}
	if b := doc.Brake; b != nil {
		m.HasBrake = b.Enabled == nil || *b.Enabled
		m.BrakeTorque = b.Torque.value()
		m.BrakeAmperage = b.Amperage.value()
		m.BrakeVoltage = b.Voltage.value()
		m.BrakeReleaseTime = b.ReleaseTime.value()
		m.BrakeEngageTimeDiode = b.EngageTimeDiode.value()
		m.BrakeEngageTimeMOV = b.EngageTimeMOV.value()
		m.BrakeBacklash = b.Backlash.value()
	}
	for _, dd := range doc.Drives {
		drive := &motors.Drive{Name: dd.Name, PartNumber: dd.PartNumber, Manufacturer: dd.Manufacturer}
		for _, vd := range dd.Voltages {
			v := &motors.VoltageConfiguration{
				Voltage:               vd.Voltage.value(),
				MaxSpeed:              vd.MaxSpeed.value(),
				RatedSpeed:            vd.RatedSpeed.value(),
				Power:                 vd.Power.value(),
				RatedPeakTorque:       vd.RatedPeakTorque.value(),
				RatedContinuousTorque: vd.RatedContinuousTorque.value(),
				PeakAmperage:          vd.PeakAmperage.value(),
				ContinuousAmperage:    vd.ContinuousAmperage.value(),
			}
			for _, cd := range vd.Curves {
				points := make([]motors.DataPoint, len(cd.Points))
				for i, p := range cd.Points {
					points[i] = motors.DataPoint{Percent: p.Percent, Speed: p.Speed.value(), Torque: p.Torque.value()}
				}
				curve := motors.NewCurve(cd.Name, points)
				curve.Locked = cd.Locked
				v.Curves = append(v.Curves, curve)
			}
			drive.Voltages = append(drive.Voltages, v)
		}
		m.Drives = append(m.Drives, drive)
	}
	return m
}
