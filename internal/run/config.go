package run

import (
	"fmt"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/planner"
	"github.com/bioprocesslab/mediaprep/internal/transfer"
)

// DefaultPauseMessage is shown at the checkpoint before the culture stage.
const DefaultPauseMessage = "Replace plates with fresh culture if needed, then resume"

// Config holds the parameters of one planning run. The value is immutable
// once the run starts; use DefaultConfig() and adjust before Validate().
type Config struct {
	// WellVolume is the total volume each destination well reaches, in µL.
	WellVolume float64

	// MinTransferVolume is the smallest transferable volume, in µL.
	MinTransferVolume float64

	// CultureRatio is the culture dilution factor; every well receives
	// WellVolume/CultureRatio of culture.
	CultureRatio float64

	// DeadVolume is the reserved, undispensable residual added to every
	// nonzero source total, in µL.
	DeadVolume float64

	// VolumeTolerance is the accepted deviation of a well's row sum from
	// WellVolume, in µL. 0.01 µL catches arithmetic drift without tripping
	// on float noise.
	VolumeTolerance float64

	// StrictValidation aborts the run on a row-sum violation instead of
	// recording a warning and continuing degraded.
	StrictValidation bool

	// RackCapacity is the number of tips per rack.
	RackCapacity int

	// WaterSourceWell is the fixed reservoir well water is drawn from.
	WaterSourceWell domain.WellID

	// CultureLabel resolves the culture source on the fresh-stock plate.
	CultureLabel domain.ComponentID

	// CultureMixRepetitions and CultureMixVolume define the post-dispense
	// mix attached to every culture transfer.
	CultureMixRepetitions int
	CultureMixVolume      float64

	// PauseMessage is shown to the operator before the culture stage.
	PauseMessage string

	// Channels are the pipette channels available on the deck.
	Channels []transfer.Channel

	// Policies maps components to their resolution policies.
	Policies planner.PolicyTable
}

// DefaultConfig returns the standard media-prep parameters.
func DefaultConfig() Config {
	return Config{
		WellVolume:            1500,
		MinTransferVolume:     1,
		CultureRatio:          100,
		DeadVolume:            100,
		VolumeTolerance:       0.01,
		RackCapacity:          96,
		WaterSourceWell:       "A1",
		CultureLabel:          "Culture",
		CultureMixRepetitions: 3,
		CultureMixVolume:      10,
		PauseMessage:          DefaultPauseMessage,
		Channels:              transfer.DefaultChannels(),
		Policies:              planner.DefaultPolicies(),
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.WellVolume <= 0 {
		return fmt.Errorf("%w: well volume must be positive", domain.ErrInvalidConfig)
	}
	if c.MinTransferVolume < 0 {
		return fmt.Errorf("%w: minimum transfer volume must not be negative", domain.ErrInvalidConfig)
	}
	if c.CultureRatio <= 0 {
		return fmt.Errorf("%w: culture ratio must be positive", domain.ErrInvalidConfig)
	}
	if c.DeadVolume < 0 {
		return fmt.Errorf("%w: dead volume must not be negative", domain.ErrInvalidConfig)
	}
	if c.VolumeTolerance <= 0 {
		return fmt.Errorf("%w: volume tolerance must be positive", domain.ErrInvalidConfig)
	}
	if c.RackCapacity <= 0 {
		return fmt.Errorf("%w: rack capacity must be positive", domain.ErrInvalidConfig)
	}
	if c.WaterSourceWell == "" {
		return fmt.Errorf("%w: water source well is required", domain.ErrInvalidConfig)
	}
	if c.CultureLabel == "" {
		return fmt.Errorf("%w: culture label is required", domain.ErrInvalidConfig)
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("%w: at least one pipette channel is required", domain.ErrInvalidConfig)
	}
	return nil
}

// params projects the config onto the volume-planner parameters.
func (c Config) params() planner.Params {
	return planner.Params{
		WellVolume:   c.WellVolume,
		MinVolume:    c.MinTransferVolume,
		CultureRatio: c.CultureRatio,
		Tolerance:    c.VolumeTolerance,
		Strict:       c.StrictValidation,
	}
}

// options projects the config onto the plan-generator options.
func (c Config) options() transfer.Options {
	return transfer.Options{
		WaterSource:  c.WaterSourceWell,
		CultureLabel: c.CultureLabel,
		CultureMix:   domain.Mix{Repetitions: c.CultureMixRepetitions, Volume: c.CultureMixVolume},
		PauseMessage: c.PauseMessage,
	}
}
