package application

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	commands "motor-editor/internal/commands/domain"
	units "motor-editor/internal/units/domain"
)

// Config defines editing session configuration.
type Config struct {
	UndoCapacity        int            `yaml:"undo_capacity"`
	ConvertStoredData   bool           `yaml:"convert_stored_data"`
	DefaultUnits        units.Settings `yaml:"default_units"`
	DisplayPlaces       int32          `yaml:"display_places"`
	PeakCurveName       string         `yaml:"peak_curve_name"`
	ContinuousCurveName string         `yaml:"continuous_curve_name"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		UndoCapacity:        commands.DefaultCapacity,
		DefaultUnits:        units.DefaultSettings(),
		DisplayPlaces:       2,
		PeakCurveName:       "Peak",
		ContinuousCurveName: "Continuous",
	}
}

// LoadConfig loads config from yaml (EDITOR_CONFIG) and env.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("EDITOR_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := ParseConfig(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.UndoCapacity = getenvIntDefault("UNDO_CAPACITY", cfg.UndoCapacity)
	cfg.ConvertStoredData = getenvBoolDefault("CONVERT_STORED_DATA", cfg.ConvertStoredData)
	return cfg, cfg.Validate()
}

// ParseConfig overlays yaml data onto cfg.
func ParseConfig(data []byte, cfg *Config) error {
	if cfg == nil {
		return errors.New("editing config: nil config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	cfg.DefaultUnits = cfg.DefaultUnits.FillDefaults()
	if cfg.PeakCurveName == "" {
		cfg.PeakCurveName = "Peak"
	}
	if cfg.ContinuousCurveName == "" {
		cfg.ContinuousCurveName = "Continuous"
	}
	return nil
}

// Validate checks the configured units and limits.
func (c Config) Validate() error {
	if c.DisplayPlaces < 0 {
		return errors.New("editing config: display places must be >= 0")
	}
	return c.DefaultUnits.Validate()
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBoolDefault(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
