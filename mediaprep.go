// Package mediaprep plans automated liquid-handling runs for
// media-optimization experiments.
//
// Given target chemical concentrations per destination well and the layout
// of the stock-reagent source plates, it computes how much of each reagent,
// water, and diluted culture to move into each well, expands the volumes
// into an ordered sequence of pipette-sized transfer instructions, and sums
// the source volumes and tip counts needed to provision the deck.
//
// Example usage:
//
//	cfg := mediaprep.DefaultConfig()
//	report, err := mediaprep.Plan(inputs, cfg, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = mediaprep.Execute(ctx, report.Plan, exec, logger)
//
// The mediaprep CLI assembles Inputs from a directory of CSV tables; library
// callers provide their own Inputs value.
package mediaprep

import (
	"context"

	"github.com/bioprocesslab/mediaprep/internal/ports"
	"github.com/bioprocesslab/mediaprep/internal/run"
	"github.com/bioprocesslab/mediaprep/internal/transfer"
	"github.com/bioprocesslab/mediaprep/pkg/log"
)

// Config holds the parameters of one planning run.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = run.Config

// Inputs bundles the parsed input tables of one planning run.
type Inputs = ports.Inputs

// Report is the complete result of one planning pass: matrices, plan,
// provisioning requirements, and the structured warning list.
type Report = run.Report

// Executor is the external collaborator that actually moves liquid.
type Executor = ports.Executor

// DefaultConfig returns the standard media-prep parameters.
func DefaultConfig() Config {
	return run.DefaultConfig()
}

// Plan executes one full planning pass over the given inputs. Fatal input
// and validation errors abort with no partial plan; recoverable problems
// are accumulated on the report's warning list.
func Plan(inputs Inputs, cfg Config, logger log.Logger) (*Report, error) {
	return run.Plan(inputs, cfg, logger)
}

// Execute plays a generated plan through the executor, strictly in order,
// blocking at the operator checkpoint before the culture stage.
func Execute(ctx context.Context, plan transfer.Plan, exec Executor, logger log.Logger) error {
	return run.Execute(ctx, plan, exec, logger)
}
