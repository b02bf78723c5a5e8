// Package domain contains the core domain entities and value objects for
// mediaprep.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (CSV files, logging, the robot
// executor) and contains only the vocabulary of a planning run.
//
// # Entities
//
//   - [StockTable]: per-component high/low stock concentrations, in declared order
//   - [Matrix]: a well-by-component table of target concentrations or volumes
//   - [LevelMatrix]: the stock level chosen for each (well, component) cell
//   - [PlateLayout]: which component occupies each well of a source plate
//   - [TransferInstruction]: one atomic pipetting move
//   - [Step]: an ordered plan element, either a transfer or an operator pause
//   - [Warning]: a recoverable planning problem, accumulated and reported
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
