package domain

// LayoutEntry is one well of a source-plate layout.
type LayoutEntry struct {
	// Well is the plate position (e.g. "A1").
	Well WellID

	// Label is the component occupying the well.
	Label ComponentID
}

// PlateLayout maps the wells of a source plate to the component each one
// holds. Multiple wells may hold the same component; FindFirst resolves to
// the first match in layout order, which is the order the table was declared
// in.
type PlateLayout struct {
	// Plate tags which deck plate this layout describes.
	Plate PlateTag

	entries []LayoutEntry
}

// NewPlateLayout creates a layout from ordered entries.
func NewPlateLayout(plate PlateTag, entries []LayoutEntry) PlateLayout {
	return PlateLayout{
		Plate:   plate,
		entries: append([]LayoutEntry(nil), entries...),
	}
}

// FindFirst returns the first well holding the given component label.
func (l PlateLayout) FindFirst(label ComponentID) (WellID, bool) {
	for _, e := range l.entries {
		if e.Label == label {
			return e.Well, true
		}
	}
	return "", false
}

// Entries returns the layout in declaration order.
// The returned slice must not be modified.
func (l PlateLayout) Entries() []LayoutEntry {
	return l.entries
}

// Len returns the number of occupied wells in the layout.
func (l PlateLayout) Len() int {
	return len(l.entries)
}
