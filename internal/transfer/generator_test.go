package transfer

import (
	"reflect"
	"testing"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/planner"
)

func testOptions() Options {
	return Options{
		WaterSource:  "A1",
		CultureLabel: "Culture",
		CultureMix:   domain.Mix{Repetitions: 3, Volume: 10},
		PauseMessage: "replace culture plate",
	}
}

func testLayouts() Layouts {
	return Layouts{
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
}

func testPolicies() planner.PolicyTable {
	return planner.PolicyTable{
		"Kan":   {Kind: planner.PolicyFixedDose},
		"FeSO4": {Kind: planner.PolicyFixedSource, LowWell: "B1", HighWell: "C1"},
	}
}

// testMatrices builds a two-well run over Glc (generic), Kan (fixed dose),
// and FeSO4 (fixed source).
func testMatrices() (*domain.Matrix, *domain.LevelMatrix) {
	wells := []domain.WellID{"D1", "D2"}
	comps := []domain.ComponentID{"Glc", "Kan", "FeSO4"}
	cols := append(append([]domain.ComponentID(nil), comps...), domain.ComponentWater, domain.ComponentCulture)

	volumes := domain.NewMatrix(wells, cols)
	levels := domain.NewLevelMatrix(wells, comps)

	volumes.Set("D1", "Glc", 10)
	levels.Set("D1", "Glc", domain.LevelHigh)
	volumes.Set("D2", "Glc", 5)
	levels.Set("D2", "Glc", domain.LevelLow)

	volumes.Set("D1", "Kan", 5)
	levels.Set("D1", "Kan", domain.LevelHigh)
	volumes.Set("D2", "Kan", 5)
	levels.Set("D2", "Kan", domain.LevelHigh)

	volumes.Set("D1", "FeSO4", 2)
	levels.Set("D1", "FeSO4", domain.LevelLow)
	volumes.Set("D2", "FeSO4", 3)
	levels.Set("D2", "FeSO4", domain.LevelHigh)

	volumes.Set("D1", domain.ComponentWater, 100)
	volumes.Set("D2", domain.ComponentWater, 100)
	volumes.Set("D1", domain.ComponentCulture, 15)
	volumes.Set("D2", domain.ComponentCulture, 15)

	return volumes, levels
}

func newTestGenerator(t *testing.T, layouts Layouts) *Generator {
	t.Helper()
	alloc, err := NewAllocator(DefaultChannels(), 1)
	if err != nil {
		t.Fatalf("NewAllocator() error = %v", err)
	}
	return NewGenerator(alloc, layouts, testPolicies(), testOptions())
}

func TestGenerator_Generate(t *testing.T) {
	gen := newTestGenerator(t, testLayouts())
	volumes, levels := testMatrices()

	plan, warnings := gen.Generate(volumes, levels)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}

	type key struct {
		cat   domain.Category
		plate domain.PlateTag
		src   domain.WellID
		dest  domain.WellID
	}
	var got []key
	pauseIdx := -1
	for i, s := range plan.Steps {
		if s.Kind == domain.StepPause {
			pauseIdx = i
			continue
		}
		ti := s.Transfer
		got = append(got, key{ti.Category, ti.SourcePlate, ti.SourceWell, ti.DestWell})
	}

	want := []key{
		{domain.CategoryWater, domain.PlateReservoir, "A1", "D1"},
		{domain.CategoryWater, domain.PlateReservoir, "A1", "D2"},
		{domain.CategoryFixedDose, domain.PlateHigh, "A1", "D1"},
		{domain.CategoryFixedDose, domain.PlateHigh, "A1", "D2"},
		{domain.CategoryComponent, domain.PlateHigh, "A2", "D1"},
		{domain.CategoryComponent, domain.PlateLow, "B2", "D2"},
		{domain.CategoryComponent, domain.PlateFresh, "B1", "D1"},
		{domain.CategoryComponent, domain.PlateFresh, "C1", "D2"},
		{domain.CategoryCulture, domain.PlateFresh, "A1", "D1"},
		{domain.CategoryCulture, domain.PlateFresh, "A1", "D2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("transfer order = %v, want %v", got, want)
	}

	// The pause sits between the last component transfer and the first
	// culture transfer.
	if pauseIdx != len(plan.Steps)-3 {
		t.Errorf("pause at step %d, want %d", pauseIdx, len(plan.Steps)-3)
	}
	if msg := plan.Steps[pauseIdx].Message; msg != "replace culture plate" {
		t.Errorf("pause message = %q", msg)
	}

	for _, ti := range plan.Transfers() {
		if ti.Category == domain.CategoryCulture {
			if ti.Mix == nil || ti.Mix.Repetitions != 3 || ti.Mix.Volume != 10 {
				t.Errorf("culture mix = %+v, want 3 x 10 µL", ti.Mix)
			}
		} else if ti.Mix != nil {
			t.Errorf("%s transfer carries a mix", ti.Category)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	gen := newTestGenerator(t, testLayouts())
	volumes, levels := testMatrices()

	plan1, _ := gen.Generate(volumes, levels)
	plan2, _ := gen.Generate(volumes, levels)
	if !reflect.DeepEqual(plan1, plan2) {
		t.Error("identical inputs produced different plans")
	}
}

func TestGenerator_MissingGenericSource(t *testing.T) {
	layouts := testLayouts()
	// Remove the low-level Glc source; D2's low-level transfer loses its well.
	layouts.Low = domain.NewPlateLayout(domain.PlateLow, nil)

	gen := newTestGenerator(t, layouts)
	volumes, levels := testMatrices()

	plan, warnings := gen.Generate(volumes, levels)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one", warnings)
	}
	w := warnings[0]
	if w.Kind != domain.WarnSourceMissing || w.Well != "D2" || w.Component != "Glc" {
		t.Errorf("warning = %+v", w)
	}

	// D1's high-level Glc transfer and everything else survives.
	var glcDests []domain.WellID
	for _, ti := range plan.Transfers() {
		if ti.Component == "Glc" {
			glcDests = append(glcDests, ti.DestWell)
		}
	}
	if !reflect.DeepEqual(glcDests, []domain.WellID{"D1"}) {
		t.Errorf("Glc destinations = %v, want [D1]", glcDests)
	}
}

func TestGenerator_FixedDoseCategorySkip(t *testing.T) {
	layouts := testLayouts()
	layouts.High = domain.NewPlateLayout(domain.PlateHigh, []domain.LayoutEntry{
		{Well: "A2", Label: "Glc"},
	})

	gen := newTestGenerator(t, layouts)
	volumes, levels := testMatrices()

	plan, warnings := gen.Generate(volumes, levels)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one", warnings)
	}
	if warnings[0].Kind != domain.WarnCategorySkipped || warnings[0].Component != "Kan" {
		t.Errorf("warning = %+v", warnings[0])
	}
	for _, ti := range plan.Transfers() {
		if ti.Category == domain.CategoryFixedDose {
			t.Errorf("unexpected fixed-dose transfer %+v", ti)
		}
	}
}

func TestGenerator_MissingCultureSource(t *testing.T) {
	layouts := testLayouts()
	layouts.Fresh = domain.NewPlateLayout(domain.PlateFresh, nil)

	gen := newTestGenerator(t, layouts)
	volumes, levels := testMatrices()

	plan, warnings := gen.Generate(volumes, levels)

	found := false
	for _, w := range warnings {
		if w.Kind == domain.WarnCategorySkipped && w.Component == domain.ComponentCulture {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want culture category skip", warnings)
	}

	// The checkpoint still fires even though the stage is skipped.
	if last := plan.Steps[len(plan.Steps)-1]; last.Kind != domain.StepPause {
		t.Errorf("last step = %+v, want pause", last)
	}
	for _, ti := range plan.Transfers() {
		if ti.Category == domain.CategoryCulture {
			t.Errorf("unexpected culture transfer %+v", ti)
		}
	}
}

func TestGenerator_SplitsOversizedWater(t *testing.T) {
	gen := newTestGenerator(t, testLayouts())

	wells := []domain.WellID{"D1"}
	cols := []domain.ComponentID{domain.ComponentWater, domain.ComponentCulture}
	volumes := domain.NewMatrix(wells, cols)
	volumes.Set("D1", domain.ComponentWater, 450)
	volumes.Set("D1", domain.ComponentCulture, 15)
	levels := domain.NewLevelMatrix(wells, nil)

	plan, _ := gen.Generate(volumes, levels)

	var water []domain.TransferInstruction
	for _, ti := range plan.Transfers() {
		if ti.Category == domain.CategoryWater {
			water = append(water, ti)
		}
	}
	if len(water) != 2 {
		t.Fatalf("water transfers = %d, want 2", len(water))
	}
	for _, ti := range water {
		if ti.Volume != 225 || ti.Channel != "p300" {
			t.Errorf("water transfer = %+v, want 225 µL on p300", ti)
		}
	}
}
