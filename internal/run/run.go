package run

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/planner"
	"github.com/bioprocesslab/mediaprep/internal/ports"
	"github.com/bioprocesslab/mediaprep/internal/resources"
	"github.com/bioprocesslab/mediaprep/internal/transfer"
	"github.com/bioprocesslab/mediaprep/pkg/log"
)

// Report is the complete result of one planning pass. All fields are
// read-only once the report is returned.
type Report struct {
	// RunID uniquely identifies this planning pass in logs and exports.
	RunID string

	// Degraded is set when soft validation recorded a volume mismatch.
	Degraded bool

	// Volumes is the well-by-column transfer-volume matrix, including the
	// synthetic Water and Culture columns.
	Volumes *domain.Matrix

	// Levels records the stock level chosen per (well, component).
	Levels *domain.LevelMatrix

	// Plan is the ordered instruction sequence.
	Plan transfer.Plan

	// Requirements is the provisioning summary for the plan.
	Requirements resources.Requirements

	// Warnings lists every recoverable problem, in plan order. No transfer
	// is ever skipped without an entry here.
	Warnings []domain.Warning
}

// Plan executes one full planning pass over the given inputs. Fatal input
// and validation errors abort with no partial plan; recoverable problems are
// accumulated on the report.
func Plan(inputs ports.Inputs, cfg Config, logger log.Logger) (*Report, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if inputs.Stock == nil || inputs.Targets == nil {
		return nil, fmt.Errorf("inputs: %w", domain.ErrMissingTable)
	}

	runID := uuid.NewString()
	logger.Info("planning run",
		log.String("run_id", runID),
		log.Int("wells", len(inputs.Targets.Wells())),
		log.Int("components", inputs.Stock.Len()))

	volumes, levels, volWarnings, err := planner.ComputeMatrix(inputs.Stock, inputs.Targets, cfg.Policies, cfg.params())
	if err != nil {
		return nil, fmt.Errorf("compute volumes: %w", err)
	}

	alloc, err := transfer.NewAllocator(cfg.Channels, cfg.MinTransferVolume)
	if err != nil {
		return nil, err
	}
	gen := transfer.NewGenerator(alloc, inputs.Layouts, cfg.Policies, cfg.options())
	plan, genWarnings := gen.Generate(volumes, levels)

	req := resources.Summarize(plan, cfg.DeadVolume, cfg.RackCapacity)

	report := &Report{
		RunID:        runID,
		Volumes:      volumes,
		Levels:       levels,
		Plan:         plan,
		Requirements: req,
		Warnings:     append(volWarnings, genWarnings...),
	}
	for _, w := range report.Warnings {
		if w.Kind == domain.WarnVolumeMismatch {
			report.Degraded = true
		}
		logger.Warn("planning warning", log.String("run_id", runID), log.String("warning", w.String()))
	}

	logger.Info("plan ready",
		log.String("run_id", runID),
		log.Int("transfers", req.TotalTransfers()),
		log.Int("warnings", len(report.Warnings)),
		log.Bool("degraded", report.Degraded))
	logResources(logger, runID, req)

	return report, nil
}

// Execute plays a plan through the executor, strictly in order. The pause
// step blocks until the executor's acknowledgment returns; no later step
// runs before it.
func Execute(ctx context.Context, plan transfer.Plan, exec ports.Executor, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch step.Kind {
		case domain.StepPause:
			logger.Info("pausing for operator", log.String("message", step.Message))
			if err := exec.Pause(ctx, step.Message); err != nil {
				return fmt.Errorf("pause at step %d: %w", i, err)
			}
		case domain.StepTransfer:
			if err := exec.Dispense(ctx, step.Transfer); err != nil {
				return fmt.Errorf("dispense at step %d: %w", i, err)
			}
		}
	}
	return nil
}

// logResources reports the provisioning summary the way operators load the
// deck: sources first, then tip consumption per channel.
func logResources(logger log.Logger, runID string, req resources.Requirements) {
	for _, key := range req.SourceOrder {
		logger.Info("source requirement",
			log.String("run_id", runID),
			log.String("plate", string(key.Plate)),
			log.String("well", string(key.Well)),
			log.String("component", string(key.Component)),
			log.Float64("volume_ul", req.SourceVolumes[key]))
	}
	for _, name := range req.ChannelOrder {
		u := req.Channels[name]
		logger.Info("channel requirement",
			log.String("run_id", runID),
			log.String("channel", name),
			log.Int("transfers", u.Transfers),
			log.Int("tips", u.Tips),
			log.Int("racks", u.Racks))
	}
}
