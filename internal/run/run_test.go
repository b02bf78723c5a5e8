package run

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/ports"
	"github.com/bioprocesslab/mediaprep/internal/transfer"
)

func testInputs() ports.Inputs {
	stock := domain.NewStockTable()
	stock.Add("Glc", domain.Stock{High: 100, Low: 10})
	stock.Add("Kan", domain.Stock{High: 300, Low: 300})

	targets := domain.NewMatrix([]domain.WellID{"D1", "D2"}, stock.Components())
	targets.Set("D1", "Glc", 1)
	targets.Set("D1", "Kan", 1)
	targets.Set("D2", "Glc", 0.5)
	targets.Set("D2", "Kan", 1)

	layouts := transfer.Layouts{
		High: domain.NewPlateLayout(domain.PlateHigh, []domain.LayoutEntry{
			{Well: "A1", Label: "Kan"},
			{Well: "A2", Label: "Glc"},
		}),
		Low: domain.NewPlateLayout(domain.PlateLow, []domain.LayoutEntry{
			{Well: "B2", Label: "Glc"},
		}),
		Fresh: domain.NewPlateLayout(domain.PlateFresh, []domain.LayoutEntry{
			{Well: "A1", Label: "Culture"},
		}),
	}

	return ports.Inputs{Stock: stock, Targets: targets, Layouts: layouts}
}

func TestPlan(t *testing.T) {
	report, err := Plan(testInputs(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if report.RunID == "" {
		t.Error("report has no run ID")
	}
	if report.Degraded {
		t.Errorf("report degraded, warnings: %v", report.Warnings)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", report.Warnings)
	}

	// Per well: water (1465 and 1472.5 µL, five p300 sub-transfers each),
	// one Kan, one Glc, one culture.
	if got := len(report.Plan.Transfers()); got != 16 {
		t.Errorf("transfers = %d, want 16", got)
	}

	var pauses int
	for _, s := range report.Plan.Steps {
		if s.Kind == domain.StepPause {
			pauses++
		}
	}
	if pauses != 1 {
		t.Errorf("pauses = %d, want 1", pauses)
	}

	if report.Requirements.TotalTransfers() != 16 {
		t.Errorf("requirement transfers = %d, want 16", report.Requirements.TotalTransfers())
	}
}

func TestPlan_ConfigAndInputErrors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.WellVolume = 0
		if _, err := Plan(testInputs(), cfg, nil); !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("missing inputs", func(t *testing.T) {
		if _, err := Plan(ports.Inputs{}, DefaultConfig(), nil); !errors.Is(err, domain.ErrMissingTable) {
			t.Errorf("error = %v, want ErrMissingTable", err)
		}
	})

	t.Run("strict validation aborts", func(t *testing.T) {
		inputs := testInputs()
		inputs.Targets.Set("D1", "Glc", 1000) // overfills the well
		cfg := DefaultConfig()
		cfg.StrictValidation = true
		_, err := Plan(inputs, cfg, nil)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})
}

// recordingExecutor captures the executed sequence.
type recordingExecutor struct {
	events   []string
	pauseErr error
}

func (r *recordingExecutor) Dispense(ctx context.Context, ti domain.TransferInstruction) error {
	r.events = append(r.events, fmt.Sprintf("dispense %s %s", ti.Category, ti.DestWell))
	return nil
}

func (r *recordingExecutor) Pause(ctx context.Context, message string) error {
	r.events = append(r.events, "pause")
	return r.pauseErr
}

func TestExecute(t *testing.T) {
	report, err := Plan(testInputs(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	exec := &recordingExecutor{}
	if err := Execute(context.Background(), report.Plan, exec, nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(exec.events) != len(report.Plan.Steps) {
		t.Fatalf("events = %d, want %d", len(exec.events), len(report.Plan.Steps))
	}

	// Nothing after the pause may run before it: all culture dispenses
	// follow the pause event.
	pauseAt := -1
	for i, e := range exec.events {
		if e == "pause" {
			pauseAt = i
		}
	}
	if pauseAt == -1 {
		t.Fatal("no pause event")
	}
	for i, e := range exec.events {
		if i > pauseAt && e == "pause" {
			t.Error("multiple pause events")
		}
		if i < pauseAt && e == fmt.Sprintf("dispense %s D1", domain.CategoryCulture) {
			t.Error("culture dispensed before the checkpoint")
		}
	}
	for _, e := range exec.events[pauseAt+1:] {
		if e != fmt.Sprintf("dispense %s D1", domain.CategoryCulture) && e != fmt.Sprintf("dispense %s D2", domain.CategoryCulture) {
			t.Errorf("non-culture event after pause: %s", e)
		}
	}
}

func TestExecute_PauseFailureStops(t *testing.T) {
	report, err := Plan(testInputs(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	exec := &recordingExecutor{pauseErr: errors.New("operator aborted")}
	if err := Execute(context.Background(), report.Plan, exec, nil); err == nil {
		t.Fatal("Execute() succeeded, want pause error")
	}

	if exec.events[len(exec.events)-1] != "pause" {
		t.Errorf("last event = %s, want pause", exec.events[len(exec.events)-1])
	}
}

func TestExecute_ContextCanceled(t *testing.T) {
	report, err := Plan(testInputs(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &recordingExecutor{}
	if err := Execute(ctx, report.Plan, exec, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
	if len(exec.events) != 0 {
		t.Errorf("events = %v, want none", exec.events)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero well volume", func(c *Config) { c.WellVolume = 0 }, true},
		{"negative min volume", func(c *Config) { c.MinTransferVolume = -1 }, true},
		{"zero culture ratio", func(c *Config) { c.CultureRatio = 0 }, true},
		{"negative dead volume", func(c *Config) { c.DeadVolume = -1 }, true},
		{"zero tolerance", func(c *Config) { c.VolumeTolerance = 0 }, true},
		{"zero rack capacity", func(c *Config) { c.RackCapacity = 0 }, true},
		{"no water well", func(c *Config) { c.WaterSourceWell = "" }, true},
		{"no culture label", func(c *Config) { c.CultureLabel = "" }, true},
		{"no channels", func(c *Config) { c.Channels = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
