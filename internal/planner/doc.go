// Package planner converts target concentrations into transfer volumes.
//
// For every (well, component) cell of the target matrix it picks a stock
// level (high or low) and a volume per that component's resolution policy,
// then derives the synthetic Water and Culture columns so each destination
// well sums exactly to the configured well volume. Water absorbs all slack;
// culture is a fixed fraction 1/culture_ratio of the well volume, identical
// across all wells in a run.
package planner
