package ports

import (
	"context"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/transfer"
)

// Inputs bundles the parsed input tables of one planning run. All tables are
// caller-owned and read-only once handed to the planner.
type Inputs struct {
	// Stock holds the per-component high/low stock concentrations.
	Stock *domain.StockTable

	// Targets is the destination-well target-concentration matrix, with the
	// standard-recipe components already injected and the columns in stock
	// order.
	Targets *domain.Matrix

	// Layouts are the high, low, and fresh source-plate layout tables.
	Layouts transfer.Layouts
}

// TableSource loads the input tables of a run. Implementations handle file
// formats and schema validation; the core only sees typed tables.
type TableSource interface {
	// Load reads and validates all input tables.
	Load(ctx context.Context) (Inputs, error)
}
