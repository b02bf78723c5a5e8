package domain

// ComponentID identifies a media component (e.g. "Glucose", "Kan").
type ComponentID string

// WellID identifies a well on a plate (e.g. "A1", "C4").
type WellID string

// Synthetic volume-matrix columns appended after the stock components.
const (
	// ComponentWater is the fill column that absorbs all slack so every
	// destination well totals exactly the configured well volume.
	ComponentWater ComponentID = "Water"

	// ComponentCulture is the inoculation column, a fixed fraction of the
	// well volume, identical across all wells in a run.
	ComponentCulture ComponentID = "Culture"
)

// Level is the stock concentration a transfer draws from.
type Level string

const (
	// LevelNone means no transfer (zero target or no stock available).
	LevelNone Level = "none"

	// LevelHigh draws from the high-concentration stock plate.
	LevelHigh Level = "high"

	// LevelLow draws from the low-concentration stock plate.
	LevelLow Level = "low"
)

// PlateTag identifies a logical source of liquid on the deck.
type PlateTag string

const (
	// PlateHigh is the high-concentration stock plate.
	PlateHigh PlateTag = "stock_high"

	// PlateLow is the low-concentration stock plate.
	PlateLow PlateTag = "stock_low"

	// PlateFresh is the fresh-stock plate (pre-diluted reagents and culture).
	PlateFresh PlateTag = "stock_fresh"

	// PlateReservoir is the water reservoir.
	PlateReservoir PlateTag = "reservoir"
)

// Stock holds the concentrations a component is stocked at.
// A zero value means that level is not stocked.
type Stock struct {
	// High is the high-stock concentration (concentration per volume).
	High float64

	// Low is the low-stock concentration (concentration per volume).
	Low float64
}

// HasAny reports whether at least one stock level exists.
func (s Stock) HasAny() bool {
	return s.High > 0 || s.Low > 0
}

// StockTable maps components to their stock concentrations while preserving
// the declaration order. The order is the authoritative column order for
// every matrix derived from the table.
type StockTable struct {
	order  []ComponentID
	stocks map[ComponentID]Stock
}

// NewStockTable creates an empty stock table.
func NewStockTable() *StockTable {
	return &StockTable{stocks: make(map[ComponentID]Stock)}
}

// Add appends a component with its stock concentrations. Re-adding an
// existing component overwrites its concentrations without changing order.
func (t *StockTable) Add(id ComponentID, s Stock) {
	if _, ok := t.stocks[id]; !ok {
		t.order = append(t.order, id)
	}
	t.stocks[id] = s
}

// Get returns the stock entry for a component.
func (t *StockTable) Get(id ComponentID) (Stock, bool) {
	s, ok := t.stocks[id]
	return s, ok
}

// Components returns the component IDs in declaration order.
// The returned slice must not be modified.
func (t *StockTable) Components() []ComponentID {
	return t.order
}

// Len returns the number of components in the table.
func (t *StockTable) Len() int {
	return len(t.order)
}
