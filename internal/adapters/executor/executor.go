// Package executor provides the logging executor adapter: it plays a plan
// by logging every dispense and delegating pause acknowledgment to an
// injectable callback. It stands in for the robot runtime in dry runs and
// tests.
package executor

import (
	"context"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/pkg/log"
)

// AckFunc blocks until the operator acknowledges a pause message. The CLI
// wires a stdin prompt; tests wire an immediate acknowledgment.
type AckFunc func(ctx context.Context, message string) error

// LogExecutor implements ports.Executor by logging each call.
type LogExecutor struct {
	logger log.Logger
	ack    AckFunc
}

// NewLogExecutor creates a logging executor. A nil ack acknowledges pauses
// immediately.
func NewLogExecutor(logger log.Logger, ack AckFunc) *LogExecutor {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &LogExecutor{logger: logger, ack: ack}
}

// Dispense logs one transfer.
func (e *LogExecutor) Dispense(ctx context.Context, ti domain.TransferInstruction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields := []log.Field{
		log.String("category", string(ti.Category)),
		log.String("source_plate", string(ti.SourcePlate)),
		log.String("source_well", string(ti.SourceWell)),
		log.String("dest_well", string(ti.DestWell)),
		log.String("component", string(ti.Component)),
		log.Float64("volume_ul", ti.Volume),
		log.String("channel", ti.Channel),
	}
	if ti.Mix != nil {
		fields = append(fields,
			log.Int("mix_repetitions", ti.Mix.Repetitions),
			log.Float64("mix_volume_ul", ti.Mix.Volume))
	}
	e.logger.Info("dispense", fields...)
	return nil
}

// Pause logs the checkpoint and blocks on the acknowledgment callback.
func (e *LogExecutor) Pause(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.logger.Warn("operator checkpoint", log.String("message", message))
	if e.ack == nil {
		return nil
	}
	return e.ack(ctx, message)
}
