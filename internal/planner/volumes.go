package planner

import (
	"fmt"
	"math"

	"github.com/bioprocesslab/mediaprep/internal/domain"
)

// Params are the numeric parameters of one planning run. The value is
// immutable for the duration of the run.
type Params struct {
	// WellVolume is the total volume each destination well must reach, in µL.
	WellVolume float64

	// MinVolume is the smallest transferable volume, in µL.
	MinVolume float64

	// CultureRatio is the culture dilution factor; the culture dose is
	// WellVolume/CultureRatio.
	CultureRatio float64

	// Tolerance is the maximum accepted deviation of a well's row sum from
	// WellVolume, in µL.
	Tolerance float64

	// Strict selects hard failure on a row-sum violation. When false the
	// violation is recorded as a warning and the run continues degraded.
	Strict bool
}

// CultureVolume returns the per-well culture dose.
func (p Params) CultureVolume() float64 {
	return p.WellVolume / p.CultureRatio
}

// ComputeCell converts one target concentration into a transfer volume and a
// chosen stock level.
//
// The generic policy tries the high stock first and accepts the volume when
// it falls within [MinVolume, WellVolume/CultureRatio], then the low stock
// under the same bound, and finally falls back to the high (preferred) or
// low stock with the bounds ignored. The acceptance ceiling deliberately
// equals the culture dose; see the package documentation.
func ComputeCell(stock domain.Stock, pol Policy, target float64, p Params) (float64, domain.Level) {
	if target == 0 {
		return 0, domain.LevelNone
	}

	if pol.Kind == PolicyFixedDose {
		if stock.High <= 0 {
			return 0, domain.LevelNone
		}
		return target * p.WellVolume / stock.High, domain.LevelHigh
	}

	ceiling := p.WellVolume / p.CultureRatio

	if stock.High > 0 {
		v := target * p.WellVolume / stock.High
		if v >= p.MinVolume && v <= ceiling {
			return v, domain.LevelHigh
		}
	}
	if stock.Low > 0 {
		v := target * p.WellVolume / stock.Low
		if v >= p.MinVolume && v <= ceiling {
			return v, domain.LevelLow
		}
	}

	// Neither level fits the bound: fall back to the high stock, then low,
	// with the bound ignored.
	if stock.High > 0 {
		return target * p.WellVolume / stock.High, domain.LevelHigh
	}
	if stock.Low > 0 {
		return target * p.WellVolume / stock.Low, domain.LevelLow
	}
	return 0, domain.LevelNone
}

// ComputeMatrix applies ComputeCell to every (well, component) pair of the
// target matrix and appends the synthetic Water and Culture columns.
//
// Wells are visited in the target matrix's row order and components in the
// stock table's declared order, so identical inputs produce identical
// matrices. The returned volume matrix's columns are the stock components
// followed by Water and Culture; the level matrix covers the stock
// components only.
//
// Every target column must have a stock entry with at least one level; a
// missing entry is a fatal input error. Row sums are validated against
// WellVolume within Tolerance, and a negative water fill (components exceed
// the well volume) counts as a violation: Strict aborts with a
// ValidationError, otherwise a warning is recorded per offending well.
func ComputeMatrix(stock *domain.StockTable, targets *domain.Matrix, pols PolicyTable, p Params) (*domain.Matrix, *domain.LevelMatrix, []domain.Warning, error) {
	if stock == nil || stock.Len() == 0 {
		return nil, nil, nil, fmt.Errorf("stock table: %w", domain.ErrMissingTable)
	}
	if targets == nil || len(targets.Wells()) == 0 {
		return nil, nil, nil, fmt.Errorf("target matrix: %w", domain.ErrMissingTable)
	}
	for _, c := range targets.Columns() {
		s, ok := stock.Get(c)
		if !ok {
			return nil, nil, nil, fmt.Errorf("target column %q: %w", c, domain.ErrUnknownComponent)
		}
		if !s.HasAny() {
			return nil, nil, nil, fmt.Errorf("component %q: %w", c, domain.ErrNoStock)
		}
	}

	comps := stock.Components()
	volCols := make([]domain.ComponentID, 0, len(comps)+2)
	volCols = append(volCols, comps...)
	volCols = append(volCols, domain.ComponentWater, domain.ComponentCulture)

	volumes := domain.NewMatrix(targets.Wells(), volCols)
	levels := domain.NewLevelMatrix(targets.Wells(), comps)

	cultureVol := p.CultureVolume()
	var warnings []domain.Warning

	for _, w := range targets.Wells() {
		var total float64
		for _, c := range comps {
			s, _ := stock.Get(c)
			v, l := ComputeCell(s, pols.Get(c), targets.At(w, c), p)
			volumes.Set(w, c, v)
			levels.Set(w, c, l)
			total += v
		}

		water := p.WellVolume - total - cultureVol
		volumes.Set(w, domain.ComponentWater, water)
		volumes.Set(w, domain.ComponentCulture, cultureVol)

		rowSum := volumes.RowSum(w)
		if math.Abs(rowSum-p.WellVolume) > p.Tolerance || water < 0 {
			if water < 0 {
				// The row still sums to WellVolume by construction, but a
				// negative fill is physically impossible.
				rowSum = p.WellVolume - water
			}
			if p.Strict {
				return nil, nil, nil, &domain.ValidationError{Well: w, Total: rowSum, Want: p.WellVolume}
			}
			warnings = append(warnings, domain.Warning{
				Kind:    domain.WarnVolumeMismatch,
				Well:    w,
				Message: fmt.Sprintf("row volume %.3f µL deviates from %.3f µL", rowSum, p.WellVolume),
			})
		}
	}

	return volumes, levels, warnings, nil
}
