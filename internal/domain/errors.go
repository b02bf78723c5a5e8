package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent fatal error conditions in the mediaprep domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrMissingTable is returned when a required input table is absent or empty.
	ErrMissingTable = errors.New("mediaprep: missing input table")

	// ErrUnknownComponent is returned when the target matrix references a
	// component absent from the stock table.
	ErrUnknownComponent = errors.New("mediaprep: unknown component")

	// ErrNoStock is returned when a targeted component has neither a high
	// nor a low stock concentration.
	ErrNoStock = errors.New("mediaprep: no stock concentration")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("mediaprep: invalid configuration")
)

// ValidationError reports a destination well whose total volume deviates
// from the configured well volume beyond tolerance. It aborts the run only
// when strict validation is selected.
type ValidationError struct {
	// Well is the offending destination well.
	Well WellID

	// Total is the computed row sum in microliters.
	Total float64

	// Want is the configured well volume in microliters.
	Want float64
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("mediaprep: well %s volume %.3f µL deviates from %.3f µL", e.Well, e.Total, e.Want)
}
