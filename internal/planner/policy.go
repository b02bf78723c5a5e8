package planner

import "github.com/bioprocesslab/mediaprep/internal/domain"

// PolicyKind discriminates per-component resolution policies.
type PolicyKind string

const (
	// PolicyGeneric uses the bounded high-then-low volume search with the
	// unconditional high-preferred fallback.
	PolicyGeneric PolicyKind = "generic"

	// PolicyFixedDose always computes the volume from the high stock,
	// bypassing bound checks and the fallback branch. Used for antibiotics
	// dosed at a fixed concentration.
	PolicyFixedDose PolicyKind = "fixed_dose"

	// PolicyFixedSource computes volumes generically but draws from a
	// hardcoded well on the fresh-stock plate, chosen by level. Used for
	// reagents stored pre-diluted at fixed positions.
	PolicyFixedSource PolicyKind = "fixed_source"
)

// Policy is the resolution policy for one component.
type Policy struct {
	Kind PolicyKind

	// LowWell and HighWell are the fixed fresh-plate source wells for
	// PolicyFixedSource, selected by the chosen stock level.
	LowWell  domain.WellID
	HighWell domain.WellID
}

// PolicyTable maps components to their resolution policies. Components
// without an entry use PolicyGeneric.
type PolicyTable map[domain.ComponentID]Policy

// Get returns the policy for a component, defaulting to PolicyGeneric.
func (t PolicyTable) Get(id domain.ComponentID) Policy {
	if t != nil {
		if p, ok := t[id]; ok {
			return p
		}
	}
	return Policy{Kind: PolicyGeneric}
}

// DefaultPolicies returns the stock policy table for the media-prep
// protocol: kanamycin is fixed-dose, iron sulfate is drawn from fixed
// fresh-plate wells because it oxidizes in long-term storage.
func DefaultPolicies() PolicyTable {
	return PolicyTable{
		"Kan":   {Kind: PolicyFixedDose},
		"FeSO4": {Kind: PolicyFixedSource, LowWell: "B1", HighWell: "C1"},
	}
}
