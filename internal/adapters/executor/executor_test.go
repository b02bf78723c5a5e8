package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/ports"
)

var _ ports.Executor = (*LogExecutor)(nil)

func TestLogExecutor_Pause(t *testing.T) {
	t.Run("nil ack acknowledges immediately", func(t *testing.T) {
		e := NewLogExecutor(nil, nil)
		if err := e.Pause(context.Background(), "swap plates"); err != nil {
			t.Errorf("Pause() error = %v", err)
		}
	})

	t.Run("ack receives the message", func(t *testing.T) {
		var got string
		e := NewLogExecutor(nil, func(ctx context.Context, message string) error {
			got = message
			return nil
		})
		if err := e.Pause(context.Background(), "swap plates"); err != nil {
			t.Fatalf("Pause() error = %v", err)
		}
		if got != "swap plates" {
			t.Errorf("ack message = %q", got)
		}
	})

	t.Run("ack error propagates", func(t *testing.T) {
		want := errors.New("operator declined")
		e := NewLogExecutor(nil, func(ctx context.Context, message string) error {
			return want
		})
		if err := e.Pause(context.Background(), "swap plates"); !errors.Is(err, want) {
			t.Errorf("Pause() error = %v, want %v", err, want)
		}
	})
}

func TestLogExecutor_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewLogExecutor(nil, nil)
	if err := e.Dispense(ctx, domain.TransferInstruction{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Dispense() error = %v, want context.Canceled", err)
	}
	if err := e.Pause(ctx, "swap plates"); !errors.Is(err, context.Canceled) {
		t.Errorf("Pause() error = %v, want context.Canceled", err)
	}
}
