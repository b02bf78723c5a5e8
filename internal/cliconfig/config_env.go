package cliconfig

import "os"

// Environment variable names recognized by mediaprep. Env values override
// the config file but are overridden by explicitly set flags.
const (
	EnvInputDir   = "MEDIAPREP_INPUT_DIR"
	EnvOutputPath = "MEDIAPREP_OUTPUT"
	EnvWellVolume = "MEDIAPREP_WELL_VOLUME"
	EnvMinVolume  = "MEDIAPREP_MIN_VOLUME"
	EnvStrict     = "MEDIAPREP_STRICT"
	EnvDeadVolume = "MEDIAPREP_DEAD_VOLUME"
)

// ApplyEnvConfig applies MEDIAPREP_* environment variables to the Config.
// Parse errors are ignored: a malformed env value never blocks startup.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("input-dir", os.Getenv(EnvInputDir), &cfg.InputDir)
	s.setString("out", os.Getenv(EnvOutputPath), &cfg.OutputPath)
	_ = s.setFloatFromString("well-volume", os.Getenv(EnvWellVolume), &cfg.Run.WellVolume)
	_ = s.setFloatFromString("min-volume", os.Getenv(EnvMinVolume), &cfg.Run.MinTransferVolume)
	_ = s.setFloatFromString("dead-volume", os.Getenv(EnvDeadVolume), &cfg.Run.DeadVolume)
	s.setBoolFromString("strict", os.Getenv(EnvStrict), &cfg.Run.StrictValidation)
}
