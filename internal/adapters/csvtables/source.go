package csvtables

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/ports"
	"github.com/bioprocesslab/mediaprep/internal/transfer"
)

// Input file names, as produced by the lab's spreadsheet exports.
const (
	StockFile      = "stock_concentrations.csv"
	StandardFile   = "standard_recipe_concentrations.csv"
	TargetFile     = "target_concentrations.csv"
	PlateHighFile  = "24-well_stock_plate_high.csv"
	PlateLowFile   = "24-well_stock_plate_low.csv"
	PlateFreshFile = "24-well_stock_plate_fresh.csv"
)

// Source loads the input tables from a directory of CSV files.
// It implements ports.TableSource.
type Source struct {
	dir string

	// fixedDefaults supplies stock concentrations for components whose
	// stock row is incomplete. Kanamycin is stocked at a known 300 on both
	// plates and its row is routinely left blank in the export.
	fixedDefaults map[domain.ComponentID]domain.Stock
}

// New creates a CSV table source over the given directory.
func New(dir string) *Source {
	return &Source{
		dir: dir,
		fixedDefaults: map[domain.ComponentID]domain.Stock{
			"Kan": {High: 300, Low: 300},
		},
	}
}

// Load reads and validates all six tables.
func (s *Source) Load(ctx context.Context) (ports.Inputs, error) {
	if err := ctx.Err(); err != nil {
		return ports.Inputs{}, err
	}

	stock, err := s.loadStock()
	if err != nil {
		return ports.Inputs{}, fmt.Errorf("%s: %w", StockFile, err)
	}
	standard, standardOrder, err := s.loadStandard()
	if err != nil {
		return ports.Inputs{}, fmt.Errorf("%s: %w", StandardFile, err)
	}
	targets, err := s.loadTargets(stock, standard, standardOrder)
	if err != nil {
		return ports.Inputs{}, fmt.Errorf("%s: %w", TargetFile, err)
	}

	layouts := transfer.Layouts{}
	if layouts.High, err = s.loadLayout(PlateHighFile, domain.PlateHigh); err != nil {
		return ports.Inputs{}, fmt.Errorf("%s: %w", PlateHighFile, err)
	}
	if layouts.Low, err = s.loadLayout(PlateLowFile, domain.PlateLow); err != nil {
		return ports.Inputs{}, fmt.Errorf("%s: %w", PlateLowFile, err)
	}
	if layouts.Fresh, err = s.loadLayout(PlateFreshFile, domain.PlateFresh); err != nil {
		return ports.Inputs{}, fmt.Errorf("%s: %w", PlateFreshFile, err)
	}

	return ports.Inputs{Stock: stock, Targets: targets, Layouts: layouts}, nil
}

// loadStock parses the stock-concentration table and applies the fixed-dose
// defaults to incomplete rows.
func (s *Source) loadStock() (*domain.StockTable, error) {
	header, rows, err := s.readTable(StockFile)
	if err != nil {
		return nil, err
	}
	compCol, err := columnIndex(header, "Component")
	if err != nil {
		return nil, err
	}
	highCol, err := columnIndex(header, "High Concentration")
	if err != nil {
		return nil, err
	}
	lowCol, err := columnIndex(header, "Low Concentration")
	if err != nil {
		return nil, err
	}

	table := domain.NewStockTable()
	for _, row := range rows {
		id := domain.ComponentID(strings.TrimSpace(row[compCol]))
		if id == "" {
			continue
		}
		high, err := parseFloat(row[highCol])
		if err != nil {
			return nil, fmt.Errorf("component %q high concentration: %w", id, err)
		}
		low, err := parseFloat(row[lowCol])
		if err != nil {
			return nil, fmt.Errorf("component %q low concentration: %w", id, err)
		}
		st := domain.Stock{High: high, Low: low}
		if def, ok := s.fixedDefaults[id]; ok && st.High <= 0 {
			st = def
		}
		table.Add(id, st)
	}
	if table.Len() == 0 {
		return nil, domain.ErrMissingTable
	}
	return table, nil
}

// loadStandard parses the base-recipe table into component order and values.
func (s *Source) loadStandard() (map[domain.ComponentID]float64, []domain.ComponentID, error) {
	header, rows, err := s.readTable(StandardFile)
	if err != nil {
		return nil, nil, err
	}
	compCol, err := columnIndex(header, "Component")
	if err != nil {
		return nil, nil, err
	}
	concCol, err := columnIndex(header, "Concentration[mM]")
	if err != nil {
		return nil, nil, err
	}

	concs := make(map[domain.ComponentID]float64)
	var order []domain.ComponentID
	for _, row := range rows {
		id := domain.ComponentID(strings.TrimSpace(row[compCol]))
		if id == "" {
			continue
		}
		v, err := parseFloat(row[concCol])
		if err != nil {
			return nil, nil, fmt.Errorf("component %q concentration: %w", id, err)
		}
		if _, seen := concs[id]; !seen {
			order = append(order, id)
		}
		concs[id] = v
	}
	return concs, order, nil
}

// loadTargets parses the target matrix, injects the standard-recipe
// components every well must receive, and reorders columns to the stock
// table's declared order. After injection the column set must match the
// stock component set exactly.
func (s *Source) loadTargets(stock *domain.StockTable, standard map[domain.ComponentID]float64, standardOrder []domain.ComponentID) (*domain.Matrix, error) {
	header, rows, err := s.readTable(TargetFile)
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: target matrix needs a well column and at least one component", domain.ErrMissingTable)
	}

	// First column is the destination well, whatever its header says.
	targeted := make(map[domain.ComponentID]bool, len(header)-1)
	cols := make([]domain.ComponentID, 0, len(header)-1)
	for _, h := range header[1:] {
		id := domain.ComponentID(strings.TrimSpace(h))
		if id == "" {
			return nil, fmt.Errorf("%w: empty target column name", domain.ErrMissingTable)
		}
		targeted[id] = true
		cols = append(cols, id)
	}

	var wells []domain.WellID
	values := make(map[domain.WellID]map[domain.ComponentID]float64, len(rows))
	for _, row := range rows {
		w := domain.WellID(strings.TrimSpace(row[0]))
		if w == "" {
			continue
		}
		wells = append(wells, w)
		rowVals := make(map[domain.ComponentID]float64, len(cols))
		for i, c := range cols {
			v, err := parseFloat(row[i+1])
			if err != nil {
				return nil, fmt.Errorf("well %s component %q: %w", w, c, err)
			}
			rowVals[c] = v
		}
		values[w] = rowVals
	}
	if len(wells) == 0 {
		return nil, domain.ErrMissingTable
	}

	// Inject fixed components from the standard recipe unless already targeted.
	injected := make(map[domain.ComponentID]float64)
	for _, id := range standardOrder {
		if !targeted[id] {
			injected[id] = standard[id]
		}
	}

	for _, c := range cols {
		if _, ok := stock.Get(c); !ok {
			return nil, fmt.Errorf("target column %q: %w", c, domain.ErrUnknownComponent)
		}
	}
	for _, c := range stock.Components() {
		if !targeted[c] {
			if _, ok := injected[c]; !ok {
				return nil, fmt.Errorf("%w: component %q has neither a target nor a standard concentration", domain.ErrMissingTable, c)
			}
		}
	}

	// Columns in stock-declared order.
	m := domain.NewMatrix(wells, stock.Components())
	for _, w := range wells {
		for _, c := range stock.Components() {
			if targeted[c] {
				m.Set(w, c, values[w][c])
			} else {
				m.Set(w, c, injected[c])
			}
		}
	}
	return m, nil
}

// loadLayout parses one plate-layout table in row order.
func (s *Source) loadLayout(file string, plate domain.PlateTag) (domain.PlateLayout, error) {
	header, rows, err := s.readTable(file)
	if err != nil {
		return domain.PlateLayout{}, err
	}
	wellCol, err := columnIndex(header, "Well")
	if err != nil {
		return domain.PlateLayout{}, err
	}
	compCol, err := columnIndex(header, "Component")
	if err != nil {
		return domain.PlateLayout{}, err
	}

	var entries []domain.LayoutEntry
	for _, row := range rows {
		well := domain.WellID(strings.TrimSpace(row[wellCol]))
		label := domain.ComponentID(strings.TrimSpace(row[compCol]))
		if well == "" || label == "" {
			continue
		}
		entries = append(entries, domain.LayoutEntry{Well: well, Label: label})
	}
	return domain.NewPlateLayout(plate, entries), nil
}

// readTable reads a CSV file into a header row and data rows.
func (s *Source) readTable(file string) ([]string, [][]string, error) {
	f, err := os.Open(filepath.Join(s.dir, file))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrMissingTable, file)
		}
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%w: %s has no data rows", domain.ErrMissingTable, file)
	}
	return records[0], records[1:], nil
}

// columnIndex finds a header column by name.
func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: column %q", domain.ErrMissingTable, name)
}

// parseFloat parses a table cell, treating blanks as zero.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
