package transfer

import (
	"fmt"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/planner"
)

// Plan is the ordered instruction sequence for one run. Steps are executed
// strictly in order; the sequence is immutable once generated.
type Plan struct {
	Steps []domain.Step
}

// Transfers returns only the transfer instructions, in plan order.
func (p Plan) Transfers() []domain.TransferInstruction {
	out := make([]domain.TransferInstruction, 0, len(p.Steps))
	for _, s := range p.Steps {
		if s.Kind == domain.StepTransfer {
			out = append(out, s.Transfer)
		}
	}
	return out
}

// Layouts bundles the three source-plate layout tables.
type Layouts struct {
	High  domain.PlateLayout
	Low   domain.PlateLayout
	Fresh domain.PlateLayout
}

// Options configures plan generation.
type Options struct {
	// WaterSource is the fixed reservoir well water is drawn from.
	WaterSource domain.WellID

	// CultureLabel is the layout label that resolves the culture source on
	// the fresh-stock plate.
	CultureLabel domain.ComponentID

	// CultureMix is the post-dispense mix attached to every culture
	// transfer; culture must be re-suspended after dispensing.
	CultureMix domain.Mix

	// PauseMessage is shown to the operator at the checkpoint preceding the
	// culture stage.
	PauseMessage string
}

// Generator expands volume and level matrices into an ordered plan.
type Generator struct {
	alloc    *Allocator
	layouts  Layouts
	policies planner.PolicyTable
	opts     Options
}

// NewGenerator creates a plan generator.
func NewGenerator(alloc *Allocator, layouts Layouts, policies planner.PolicyTable, opts Options) *Generator {
	return &Generator{alloc: alloc, layouts: layouts, policies: policies, opts: opts}
}

// Generate produces the ordered plan for the given matrices. Recoverable
// resolution failures are returned as warnings alongside the partial plan;
// generation itself never fails.
func (g *Generator) Generate(volumes *domain.Matrix, levels *domain.LevelMatrix) (Plan, []domain.Warning) {
	var (
		plan     Plan
		warnings []domain.Warning
	)

	g.generateWater(volumes, &plan)
	g.generateFixedDose(volumes, &plan, &warnings)
	g.generateComponents(volumes, levels, &plan, &warnings)
	g.generateCulture(volumes, &plan, &warnings)

	return plan, warnings
}

// generateWater fills every destination well from the water reservoir.
func (g *Generator) generateWater(volumes *domain.Matrix, plan *Plan) {
	for _, w := range volumes.Wells() {
		g.appendTransfers(plan, domain.TransferInstruction{
			Category:    domain.CategoryWater,
			SourcePlate: domain.PlateReservoir,
			SourceWell:  g.opts.WaterSource,
			DestWell:    w,
			Component:   domain.ComponentWater,
		}, volumes.At(w, domain.ComponentWater), nil)
	}
}

// generateFixedDose doses each fixed-dose component from its high-stock
// source well, resolved once per component. An unresolvable source skips the
// whole stage for that component with a category-level warning.
func (g *Generator) generateFixedDose(volumes *domain.Matrix, plan *Plan, warnings *[]domain.Warning) {
	for _, c := range g.fixedDoseComponents(volumes) {
		src, ok := g.layouts.High.FindFirst(c)
		if !ok {
			*warnings = append(*warnings, domain.Warning{
				Kind:      domain.WarnCategorySkipped,
				Component: c,
				Message:   "no source well on the high-stock plate, stage skipped",
			})
			continue
		}
		for _, w := range volumes.Wells() {
			g.appendTransfers(plan, domain.TransferInstruction{
				Category:    domain.CategoryFixedDose,
				SourcePlate: domain.PlateHigh,
				SourceWell:  src,
				DestWell:    w,
				Component:   c,
			}, volumes.At(w, c), nil)
		}
	}
}

// generateComponents transfers every generic component, iterating components
// in the volume matrix's (stock-declared) column order and wells in row
// order. A missing source skips only the affected cell.
func (g *Generator) generateComponents(volumes *domain.Matrix, levels *domain.LevelMatrix, plan *Plan, warnings *[]domain.Warning) {
	for _, c := range volumes.Columns() {
		if c == domain.ComponentWater || c == domain.ComponentCulture {
			continue
		}
		pol := g.policies.Get(c)
		if pol.Kind == planner.PolicyFixedDose {
			continue
		}

		for _, w := range volumes.Wells() {
			v := volumes.At(w, c)
			if v < g.alloc.minVolume {
				continue
			}
			level := levels.At(w, c)
			if level == domain.LevelNone {
				continue
			}

			var (
				plate domain.PlateTag
				src   domain.WellID
				ok    bool
			)
			if pol.Kind == planner.PolicyFixedSource {
				// Pre-diluted reagent at fixed fresh-plate positions; the
				// layout table is not consulted.
				plate = domain.PlateFresh
				if level == domain.LevelLow {
					src = pol.LowWell
				} else {
					src = pol.HighWell
				}
				ok = src != ""
			} else {
				layout := g.layouts.Low
				plate = domain.PlateLow
				if level == domain.LevelHigh {
					layout = g.layouts.High
					plate = domain.PlateHigh
				}
				src, ok = layout.FindFirst(c)
			}
			if !ok {
				*warnings = append(*warnings, domain.Warning{
					Kind:      domain.WarnSourceMissing,
					Well:      w,
					Component: c,
					Message:   fmt.Sprintf("no %s-level source well, transfer skipped", level),
				})
				continue
			}

			g.appendTransfers(plan, domain.TransferInstruction{
				Category:    domain.CategoryComponent,
				SourcePlate: plate,
				SourceWell:  src,
				DestWell:    w,
				Component:   c,
			}, v, nil)
		}
	}
}

// generateCulture inoculates every well from the fresh culture source. The
// stage is preceded by an operator checkpoint because culture is prepared
// immediately before use and the physical plate may need replacing.
func (g *Generator) generateCulture(volumes *domain.Matrix, plan *Plan, warnings *[]domain.Warning) {
	plan.Steps = append(plan.Steps, domain.PauseStep(g.opts.PauseMessage))

	src, ok := g.layouts.Fresh.FindFirst(g.opts.CultureLabel)
	if !ok {
		*warnings = append(*warnings, domain.Warning{
			Kind:      domain.WarnCategorySkipped,
			Component: domain.ComponentCulture,
			Message:   "no culture source well on the fresh-stock plate, stage skipped",
		})
		return
	}

	wells := volumes.Wells()
	if len(wells) == 0 {
		return
	}
	// Uniform by construction; read it off the first row.
	cultureVol := volumes.At(wells[0], domain.ComponentCulture)
	mix := g.opts.CultureMix

	for _, w := range wells {
		g.appendTransfers(plan, domain.TransferInstruction{
			Category:    domain.CategoryCulture,
			SourcePlate: domain.PlateFresh,
			SourceWell:  src,
			DestWell:    w,
			Component:   domain.ComponentCulture,
		}, cultureVol, &mix)
	}
}

// fixedDoseComponents returns the fixed-dose components present in the
// volume matrix, in column order.
func (g *Generator) fixedDoseComponents(volumes *domain.Matrix) []domain.ComponentID {
	var out []domain.ComponentID
	for _, c := range volumes.Columns() {
		if g.policies.Get(c).Kind == planner.PolicyFixedDose {
			out = append(out, c)
		}
	}
	return out
}

// appendTransfers allocates a channel for the logical transfer and appends
// one step per fresh-tip sub-transfer. Sub-threshold volumes append nothing.
func (g *Generator) appendTransfers(plan *Plan, proto domain.TransferInstruction, volume float64, mix *domain.Mix) {
	subs, err := g.alloc.Allocate(volume, "")
	if err != nil {
		// Only an unknown override can fail allocation, and the generator
		// never overrides.
		return
	}
	for _, sub := range subs {
		ti := proto
		ti.Volume = sub.Volume
		ti.Channel = sub.Channel
		ti.Mix = mix
		plan.Steps = append(plan.Steps, domain.TransferStep(ti))
	}
}
