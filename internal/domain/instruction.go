package domain

// Category groups instructions by the fixed processing stage that produced
// them. The stage order (water, fixed dose, components, culture) is a
// correctness requirement of the plan, not an optimization.
type Category string

const (
	// CategoryWater fills wells from the water reservoir.
	CategoryWater Category = "water"

	// CategoryFixedDose doses the fixed-dose component (e.g. an antibiotic).
	CategoryFixedDose Category = "fixed_dose"

	// CategoryComponent transfers the generic media components.
	CategoryComponent Category = "component"

	// CategoryCulture inoculates every well from the fresh culture source.
	CategoryCulture Category = "culture"
)

// Mix is a post-dispense mix action: aspirate and dispense Volume in place,
// Repetitions times, to re-suspend the dispensed liquid.
type Mix struct {
	Repetitions int
	Volume      float64
}

// TransferInstruction is one atomic pipetting move. Instructions are value
// types and never mutated after creation; every instruction uses a fresh tip.
type TransferInstruction struct {
	// Category is the processing stage that produced the instruction.
	Category Category

	// SourcePlate is the deck plate the liquid is drawn from.
	SourcePlate PlateTag

	// SourceWell is the well on the source plate.
	SourceWell WellID

	// DestWell is the destination well on the media plate.
	DestWell WellID

	// Component is the reagent being moved (or Water/Culture).
	Component ComponentID

	// Volume is the transfer volume in microliters.
	Volume float64

	// Channel is the pipette channel assigned by the allocator.
	Channel string

	// Mix is the optional post-dispense mix action.
	Mix *Mix
}

// StepKind discriminates plan steps.
type StepKind int

const (
	// StepTransfer moves liquid per the embedded instruction.
	StepTransfer StepKind = iota

	// StepPause blocks the run until an operator acknowledges the message.
	StepPause
)

// Step is one element of the ordered plan: a transfer or an operator pause.
// The only pause in a standard run precedes the culture stage, because
// culture is prepared immediately before use and the physical plate may need
// replacing.
type Step struct {
	Kind     StepKind
	Transfer TransferInstruction
	Message  string
}

// TransferStep wraps an instruction as a plan step.
func TransferStep(ti TransferInstruction) Step {
	return Step{Kind: StepTransfer, Transfer: ti}
}

// PauseStep creates an operator checkpoint carrying the given message.
func PauseStep(message string) Step {
	return Step{Kind: StepPause, Message: message}
}
