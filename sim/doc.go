// Package sim provides the discrete-event simulation engine for a five-stage
// bottling line: Mixing, Filling, Capping, Labeling and Packaging.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - order.go: Order lifecycle (arrived → waiting/active per stage → departed)
//   - event.go: Events that drive the simulation (spawn, arrival, grant, completion)
//   - simulator.go: The event queue, Schedule and the Run loop
//   - station.go: N-server stations with a FIFO wait queue
//
// # Execution model
//
// Control is cooperative and single-threaded within a Simulator: exactly one
// event executes at a time and an order suspends only by scheduling a future
// event (a processing timeout) or by queueing a grant at a station. Events at the
// same simulated instant run in insertion order, so a fixed seed replays a run
// bit-for-bit.
//
// A Simulator is the whole run context. Independent runs share nothing and can
// execute on separate goroutines; see sim/sweep.
//
// # Sub-packages
//   - sim/trace/: per-stage pass records and departures
//   - sim/sweep/: concurrent Monte Carlo runs over consecutive seeds
//   - sim/report/: textual end-of-run report and wait-time histogram
//   - sim/export/: xlsx workbook and Prometheus textfile exports
package sim
