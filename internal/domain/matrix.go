package domain

// Matrix is a well-by-component table of float values. It is used both for
// target concentrations (input) and transfer volumes (output). Rows and
// columns keep their declared order; iteration over Wells and Columns is the
// deterministic traversal order for the whole planning run.
type Matrix struct {
	wells   []WellID
	columns []ComponentID
	cells   map[WellID]map[ComponentID]float64
}

// NewMatrix creates a zero-filled matrix with the given row and column order.
func NewMatrix(wells []WellID, columns []ComponentID) *Matrix {
	m := &Matrix{
		wells:   append([]WellID(nil), wells...),
		columns: append([]ComponentID(nil), columns...),
		cells:   make(map[WellID]map[ComponentID]float64, len(wells)),
	}
	for _, w := range m.wells {
		m.cells[w] = make(map[ComponentID]float64, len(m.columns))
	}
	return m
}

// Wells returns the row order. The returned slice must not be modified.
func (m *Matrix) Wells() []WellID {
	return m.wells
}

// Columns returns the column order. The returned slice must not be modified.
func (m *Matrix) Columns() []ComponentID {
	return m.columns
}

// HasColumn reports whether the matrix declares the given column.
func (m *Matrix) HasColumn(c ComponentID) bool {
	for _, col := range m.columns {
		if col == c {
			return true
		}
	}
	return false
}

// Set assigns a cell value. Setting an undeclared well is a no-op on
// iteration but tolerated, so callers construct matrices without guards.
func (m *Matrix) Set(w WellID, c ComponentID, v float64) {
	row, ok := m.cells[w]
	if !ok {
		row = make(map[ComponentID]float64)
		m.cells[w] = row
		m.wells = append(m.wells, w)
	}
	row[c] = v
}

// At returns a cell value, zero if unset.
func (m *Matrix) At(w WellID, c ComponentID) float64 {
	return m.cells[w][c]
}

// RowSum returns the sum of all declared columns for a well.
func (m *Matrix) RowSum(w WellID) float64 {
	var sum float64
	for _, c := range m.columns {
		sum += m.cells[w][c]
	}
	return sum
}

// LevelMatrix records the stock level chosen for each (well, component)
// cell, parallel to the volume matrix but without the synthetic Water and
// Culture columns.
type LevelMatrix struct {
	wells   []WellID
	columns []ComponentID
	cells   map[WellID]map[ComponentID]Level
}

// NewLevelMatrix creates a LevelNone-filled level matrix.
func NewLevelMatrix(wells []WellID, columns []ComponentID) *LevelMatrix {
	m := &LevelMatrix{
		wells:   append([]WellID(nil), wells...),
		columns: append([]ComponentID(nil), columns...),
		cells:   make(map[WellID]map[ComponentID]Level, len(wells)),
	}
	for _, w := range m.wells {
		m.cells[w] = make(map[ComponentID]Level, len(m.columns))
	}
	return m
}

// Wells returns the row order. The returned slice must not be modified.
func (m *LevelMatrix) Wells() []WellID {
	return m.wells
}

// Columns returns the column order. The returned slice must not be modified.
func (m *LevelMatrix) Columns() []ComponentID {
	return m.columns
}

// Set assigns a cell level.
func (m *LevelMatrix) Set(w WellID, c ComponentID, l Level) {
	row, ok := m.cells[w]
	if !ok {
		row = make(map[ComponentID]Level)
		m.cells[w] = row
		m.wells = append(m.wells, w)
	}
	row[c] = l
}

// At returns a cell level, LevelNone if unset.
func (m *LevelMatrix) At(w WellID, c ComponentID) Level {
	if l, ok := m.cells[w][c]; ok {
		return l
	}
	return LevelNone
}
