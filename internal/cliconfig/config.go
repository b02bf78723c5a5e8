package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/run"
	"github.com/bioprocesslab/mediaprep/internal/watch"
)

// DefaultOutputPath is where the picklist CSV is written.
const DefaultOutputPath = "transfer_plan.csv"

// Config holds CLI configuration for mediaprep. It wraps the engine's run
// configuration with the file-facing settings of the tool.
type Config struct {
	// InputDir is the directory holding the six input CSV tables.
	InputDir string

	// OutputPath is the picklist CSV destination.
	OutputPath string

	// DestPlate is the destination-plate tag written into the picklist.
	DestPlate string

	// AutoAck acknowledges the culture checkpoint without prompting.
	AutoAck bool

	// Debug enables debug-level logging.
	Debug bool

	// WatchDebounce is the quiet period before a watch-mode replan.
	WatchDebounce time.Duration

	// Run is the engine configuration (volumes, thresholds, channels,
	// per-component policies).
	Run run.Config
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		InputDir:      "csv_inputs",
		OutputPath:    DefaultOutputPath,
		DestPlate:     "destination",
		WatchDebounce: watch.DefaultDebounce,
		Run:           run.DefaultConfig(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("%w: input-dir is required", domain.ErrInvalidConfig)
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.WatchDebounce <= 0 {
		c.WatchDebounce = watch.DefaultDebounce
	}
	return c.Run.Validate()
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not
// changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if
// valid. Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
