// Package csvtables loads the six CSV input tables of a planning run and
// turns them into the typed tables the engine consumes.
//
// Beyond parsing, the loader performs the input normalization the protocol
// expects: fixed components from the standard recipe are injected into every
// destination well unless the targets already specify them, target columns
// are reordered to the stock table's declared order, and fixed-dose
// components missing a stock entry receive their documented defaults.
package csvtables
