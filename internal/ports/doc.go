// Package ports defines the interfaces that connect the planning core to
// infrastructure adapters.
//
// Ports are the boundaries between the core and the outside world: they
// state what the planner needs from external systems without specifying how
// those needs are fulfilled.
//
// # Port Interfaces
//
//   - [Executor]: plays an ordered plan on a liquid-handling robot
//   - [TableSource]: loads the six input tables of a run
//
// The engine packages depend only on these interfaces; adapters under
// internal/adapters implement them (CSV files, logging executor). This keeps
// the core testable with in-memory fakes and free of hardware or file I/O.
package ports
