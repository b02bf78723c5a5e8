package domain

import "fmt"

// WarningKind classifies recoverable planning problems.
type WarningKind string

const (
	// WarnSourceMissing means no source well matched a component/level pair;
	// only the affected (well, component) transfer was skipped.
	WarnSourceMissing WarningKind = "source_missing"

	// WarnCategorySkipped means an entire stage was skipped because its
	// source could not be resolved at all.
	WarnCategorySkipped WarningKind = "category_skipped"

	// WarnVolumeMismatch means a destination well's total volume deviates
	// from the configured well volume beyond tolerance (soft-validation
	// mode only; strict mode aborts instead).
	WarnVolumeMismatch WarningKind = "volume_mismatch"
)

// Warning records one recoverable problem encountered while planning.
// Warnings are accumulated in plan order and surfaced together with the
// (possibly partial) plan; no transfer is ever dropped without one.
type Warning struct {
	// Kind classifies the problem.
	Kind WarningKind

	// Well is the affected destination well, empty for category-level warnings.
	Well WellID

	// Component is the affected component, empty when not applicable.
	Component ComponentID

	// Message is a human-readable description.
	Message string
}

// String renders the warning for logs and reports.
func (w Warning) String() string {
	switch {
	case w.Well != "" && w.Component != "":
		return fmt.Sprintf("%s: well %s, component %s: %s", w.Kind, w.Well, w.Component, w.Message)
	case w.Component != "":
		return fmt.Sprintf("%s: component %s: %s", w.Kind, w.Component, w.Message)
	case w.Well != "":
		return fmt.Sprintf("%s: well %s: %s", w.Kind, w.Well, w.Message)
	default:
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
}
