// Package run orchestrates one planning pass: volumes, plan, resources,
// and the structured warning report, then optionally plays the plan through
// an executor port.
//
// Planning is a pure, single-threaded batch computation over immutable
// tables; identical inputs always yield an identical plan. The only
// suspension point during execution is the operator checkpoint preceding
// the culture stage.
package run
