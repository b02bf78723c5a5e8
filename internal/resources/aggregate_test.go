package resources

import (
	"math"
	"testing"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/transfer"
)

func ti(cat domain.Category, plate domain.PlateTag, src, dest domain.WellID, comp domain.ComponentID, vol float64, channel string) domain.Step {
	return domain.TransferStep(domain.TransferInstruction{
		Category:    cat,
		SourcePlate: plate,
		SourceWell:  src,
		DestWell:    dest,
		Component:   comp,
		Volume:      vol,
		Channel:     channel,
	})
}

func TestSummarize(t *testing.T) {
	plan := transfer.Plan{Steps: []domain.Step{
		ti(domain.CategoryWater, domain.PlateReservoir, "A1", "D1", domain.ComponentWater, 1400, "p300"),
		ti(domain.CategoryWater, domain.PlateReservoir, "A1", "D2", domain.ComponentWater, 1300, "p300"),
		ti(domain.CategoryComponent, domain.PlateHigh, "A2", "D1", "Glc", 15, "p20"),
		ti(domain.CategoryComponent, domain.PlateHigh, "A2", "D2", "Glc", 10, "p20"),
		domain.PauseStep("swap plates"),
		ti(domain.CategoryCulture, domain.PlateFresh, "A1", "D1", domain.ComponentCulture, 15, "p20"),
		ti(domain.CategoryCulture, domain.PlateFresh, "A1", "D2", domain.ComponentCulture, 15, "p20"),
	}}

	req := Summarize(plan, 100, 96)

	water := SourceKey{Plate: domain.PlateReservoir, Well: "A1", Component: domain.ComponentWater}
	if v := req.SourceVolumes[water]; math.Abs(v-2800) > 1e-9 {
		t.Errorf("water total = %v, want 2800 (2700 + dead volume)", v)
	}
	glc := SourceKey{Plate: domain.PlateHigh, Well: "A2", Component: "Glc"}
	if v := req.SourceVolumes[glc]; math.Abs(v-125) > 1e-9 {
		t.Errorf("Glc total = %v, want 125", v)
	}
	culture := SourceKey{Plate: domain.PlateFresh, Well: "A1", Component: domain.ComponentCulture}
	if v := req.SourceVolumes[culture]; math.Abs(v-130) > 1e-9 {
		t.Errorf("culture total = %v, want 130", v)
	}

	if len(req.SourceOrder) != 3 {
		t.Fatalf("source order = %v, want 3 sources", req.SourceOrder)
	}
	if req.SourceOrder[0] != water || req.SourceOrder[1] != glc || req.SourceOrder[2] != culture {
		t.Errorf("source order = %v, want first-use order", req.SourceOrder)
	}

	if u := req.Channels["p300"]; u.Transfers != 2 || u.Tips != 2 || u.Racks != 1 {
		t.Errorf("p300 usage = %+v", u)
	}
	if u := req.Channels["p20"]; u.Transfers != 4 || u.Tips != 4 || u.Racks != 1 {
		t.Errorf("p20 usage = %+v", u)
	}
	if req.TotalTransfers() != 6 {
		t.Errorf("total transfers = %d, want 6", req.TotalTransfers())
	}
}

func TestSummarize_RackCounts(t *testing.T) {
	var steps []domain.Step
	for i := 0; i < 97; i++ {
		steps = append(steps, ti(domain.CategoryWater, domain.PlateReservoir, "A1", "D1", domain.ComponentWater, 10, "p20"))
	}
	req := Summarize(transfer.Plan{Steps: steps}, 0, 96)

	if u := req.Channels["p20"]; u.Racks != 2 {
		t.Errorf("racks = %d, want 2 for 97 tips", u.Racks)
	}
}

func TestSummarize_EmptyPlan(t *testing.T) {
	req := Summarize(transfer.Plan{}, 100, 96)
	if len(req.SourceVolumes) != 0 || len(req.Channels) != 0 {
		t.Errorf("empty plan produced requirements: %+v", req)
	}
	if req.TotalTransfers() != 0 {
		t.Errorf("total transfers = %d, want 0", req.TotalTransfers())
	}
}
