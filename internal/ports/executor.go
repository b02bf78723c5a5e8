package ports

import (
	"context"

	"github.com/bioprocesslab/mediaprep/internal/domain"
)

// Executor is the external collaborator that actually moves liquid. The
// core treats both calls as opaque, ordered side effects: it observes
// nothing beyond success, and it never reorders calls around a pause.
type Executor interface {
	// Dispense performs one transfer with a fresh tip, including the
	// instruction's optional post-dispense mix.
	Dispense(ctx context.Context, ti domain.TransferInstruction) error

	// Pause blocks until the operator acknowledges the message. No work
	// after the pause may execute before it returns.
	Pause(ctx context.Context, message string) error
}
