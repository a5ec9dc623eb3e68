package units

import (
	"fmt"

	"go.uber.org/multierr"
)

// Settings records the unit symbol associated with each stored dimension.
type Settings struct {
	Torque       string `json:"torque" yaml:"torque"`
	Speed        string `json:"speed" yaml:"speed"`
	Power        string `json:"power" yaml:"power"`
	Weight       string `json:"weight" yaml:"weight"`
	Current      string `json:"current" yaml:"current"`
	ResponseTime string `json:"response_time" yaml:"response_time"`
	Backlash     string `json:"backlash" yaml:"backlash"`
	Inertia      string `json:"inertia" yaml:"inertia"`
}

// DefaultSettings returns the metric settings new documents start with.
func DefaultSettings() Settings {
	return Settings{
		Torque:       "Nm",
		Speed:        "rpm",
		Power:        "W",
		Weight:       "kg",
		Current:      "A",
		ResponseTime: "ms",
		Backlash:     "arcmin",
		Inertia:      "kg-cm^2",
	}
}

// Unit returns the symbol recorded for d.
func (s Settings) Unit(d Dimension) string {
	switch d {
	case DimensionTorque:
		return s.Torque
	case DimensionSpeed:
		return s.Speed
	case DimensionPower:
		return s.Power
	case DimensionWeight:
		return s.Weight
	case DimensionCurrent:
		return s.Current
	case DimensionResponseTime:
		return s.ResponseTime
	case DimensionBacklash:
		return s.Backlash
	case DimensionInertia:
		return s.Inertia
	}
	return ""
}

// With returns a copy of s with d set to symbol.
func (s Settings) With(d Dimension, symbol string) Settings {
	switch d {
	case DimensionTorque:
		s.Torque = symbol
	case DimensionSpeed:
		s.Speed = symbol
	case DimensionPower:
		s.Power = symbol
	case DimensionWeight:
		s.Weight = symbol
	case DimensionCurrent:
		s.Current = symbol
	case DimensionResponseTime:
		s.ResponseTime = symbol
	case DimensionBacklash:
		s.Backlash = symbol
	case DimensionInertia:
		s.Inertia = symbol
	}
	return s
}

// Validate reports every symbol that does not belong to its dimension.
func (s Settings) Validate() error {
	var err error
	for _, d := range Dimensions() {
		if checkErr := Check(d, s.Unit(d)); checkErr != nil {
			err = multierr.Append(err, checkErr)
		}
	}
	return err
}

// Changed lists the dimensions whose symbol differs between s and next.
func (s Settings) Changed(next Settings) []Dimension {
	var changed []Dimension
	for _, d := range Dimensions() {
		if s.Unit(d) != next.Unit(d) {
			changed = append(changed, d)
		}
	}
	return changed
}

// FillDefaults replaces empty symbols with the defaults.
func (s Settings) FillDefaults() Settings {
	defaults := DefaultSettings()
	for _, d := range Dimensions() {
		if s.Unit(d) == "" {
			s = s.With(d, defaults.Unit(d))
		}
	}
	return s
}

// FillFrom replaces empty symbols with the matching symbol of base.
func (s Settings) FillFrom(base Settings) Settings {
	for _, d := range Dimensions() {
		if s.Unit(d) == "" {
			s = s.With(d, base.Unit(d))
		}
	}
	return s
}

func (s Settings) String() string {
	return fmt.Sprintf("torque=%s speed=%s power=%s weight=%s current=%s response_time=%s backlash=%s inertia=%s",
		s.Torque, s.Speed, s.Power, s.Weight, s.Current, s.ResponseTime, s.Backlash, s.Inertia)
}
