package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/planner"
	"github.com/bioprocesslab/mediaprep/internal/transfer"
)

// FileConfig mirrors Config for TOML, with strings for durations and
// pointer booleans so absent keys are distinguishable from false.
type FileConfig struct {
	InputDir      string `toml:"input_dir"`
	OutputPath    string `toml:"output_path"`
	DestPlate     string `toml:"dest_plate"`
	WatchDebounce string `toml:"watch_debounce"`

	WellVolume            float64 `toml:"well_volume"`
	MinTransferVolume     float64 `toml:"min_transfer_volume"`
	CultureRatio          float64 `toml:"culture_ratio"`
	DeadVolume            float64 `toml:"dead_volume"`
	VolumeTolerance       float64 `toml:"volume_tolerance"`
	StrictValidation      *bool   `toml:"strict_validation"`
	RackCapacity          int     `toml:"rack_capacity"`
	WaterSourceWell       string  `toml:"water_source_well"`
	CultureLabel          string  `toml:"culture_label"`
	CultureMixRepetitions int     `toml:"culture_mix_repetitions"`
	CultureMixVolume      float64 `toml:"culture_mix_volume"`
	PauseMessage          string  `toml:"pause_message"`

	Channels []transfer.Channel    `toml:"channels"`
	Policies map[string]FilePolicy `toml:"policies"`
}

// FilePolicy is the TOML form of a per-component resolution policy.
type FilePolicy struct {
	Kind     string `toml:"kind"`
	LowWell  string `toml:"low_well"`
	HighWell string `toml:"high_well"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// ~/.mediaprep/config.toml, if the home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".mediaprep", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input-dir", fc.InputDir, &cfg.InputDir)
	s.setString("out", fc.OutputPath, &cfg.OutputPath)
	s.setString("dest-plate", fc.DestPlate, &cfg.DestPlate)
	if err := s.setDuration("debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setFloat("well-volume", fc.WellVolume, &cfg.Run.WellVolume)
	s.setFloat("min-volume", fc.MinTransferVolume, &cfg.Run.MinTransferVolume)
	s.setFloat("culture-ratio", fc.CultureRatio, &cfg.Run.CultureRatio)
	s.setFloat("dead-volume", fc.DeadVolume, &cfg.Run.DeadVolume)
	s.setFloat("tolerance", fc.VolumeTolerance, &cfg.Run.VolumeTolerance)
	s.setBool("strict", fc.StrictValidation, &cfg.Run.StrictValidation)
	s.setInt("rack-capacity", fc.RackCapacity, &cfg.Run.RackCapacity)

	if fc.WaterSourceWell != "" && !changed["water-well"] {
		cfg.Run.WaterSourceWell = domain.WellID(fc.WaterSourceWell)
	}
	if fc.CultureLabel != "" && !changed["culture-label"] {
		cfg.Run.CultureLabel = domain.ComponentID(fc.CultureLabel)
	}
	s.setInt("mix-repetitions", fc.CultureMixRepetitions, &cfg.Run.CultureMixRepetitions)
	s.setFloat("mix-volume", fc.CultureMixVolume, &cfg.Run.CultureMixVolume)
	s.setString("pause-message", fc.PauseMessage, &cfg.Run.PauseMessage)

	if len(fc.Channels) > 0 {
		cfg.Run.Channels = append([]transfer.Channel(nil), fc.Channels...)
	}
	if len(fc.Policies) > 0 {
		table, err := policiesFromFile(fc.Policies)
		if err != nil {
			return err
		}
		cfg.Run.Policies = table
	}

	return nil
}

// policiesFromFile converts TOML policies into the planner's table. File
// entries replace the defaults wholesale so a run's policy set is always
// explicit in one place.
func policiesFromFile(in map[string]FilePolicy) (planner.PolicyTable, error) {
	table := make(planner.PolicyTable, len(in))
	for name, fp := range in {
		pol := planner.Policy{
			LowWell:  domain.WellID(fp.LowWell),
			HighWell: domain.WellID(fp.HighWell),
		}
		switch fp.Kind {
		case string(planner.PolicyGeneric), "":
			pol.Kind = planner.PolicyGeneric
		case string(planner.PolicyFixedDose):
			pol.Kind = planner.PolicyFixedDose
		case string(planner.PolicyFixedSource):
			pol.Kind = planner.PolicyFixedSource
			if pol.LowWell == "" || pol.HighWell == "" {
				return nil, fmt.Errorf("%w: policy %q needs low_well and high_well", domain.ErrInvalidConfig, name)
			}
		default:
			return nil, fmt.Errorf("%w: policy %q has unknown kind %q", domain.ErrInvalidConfig, name, fp.Kind)
		}
		table[domain.ComponentID(name)] = pol
	}
	return table, nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
