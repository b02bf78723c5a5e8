package planfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/transfer"
)

func testPlan() transfer.Plan {
	return transfer.Plan{Steps: []domain.Step{
		domain.TransferStep(domain.TransferInstruction{
			Category:    domain.CategoryWater,
			SourcePlate: domain.PlateReservoir,
			SourceWell:  "A1",
			DestWell:    "D1",
			Component:   domain.ComponentWater,
			Volume:      1385.5,
			Channel:     "p300",
		}),
		domain.PauseStep("swap plates"),
		domain.TransferStep(domain.TransferInstruction{
			Category:    domain.CategoryCulture,
			SourcePlate: domain.PlateFresh,
			SourceWell:  "A1",
			DestWell:    "D1",
			Component:   domain.ComponentCulture,
			Volume:      15,
			Channel:     "p20",
			Mix:         &domain.Mix{Repetitions: 3, Volume: 10},
		}),
	}}
}

func TestWrite(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, testPlan(), DefaultDestPlate); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "Source_Plate,Source_Well,Dest_Plate,Dest_Well,Transfer_Vol,Channel,Category\n" +
		"reservoir,A1,destination,D1,1385.5,p300,water\n" +
		"stock_fresh,A1,destination,D1,15,p20,culture\n"
	if got := sb.String(); got != want {
		t.Errorf("Write() =\n%s\nwant\n%s", got, want)
	}
}

func TestWrite_EmptyPlan(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, transfer.Plan{}, DefaultDestPlate); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := sb.String(); got != "Source_Plate,Source_Well,Dest_Plate,Dest_Well,Transfer_Vol,Channel,Category\n" {
		t.Errorf("Write() = %q, want header only", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.csv")
	if err := WriteFile(path, testPlan(), "dest_plate_1"); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if !strings.Contains(lines[1], "dest_plate_1") {
		t.Errorf("row missing destination plate: %s", lines[1])
	}
}
