// Package sim provides the discrete-event simulation engine for multi-server
// queueing systems with Poisson arrivals and exponential service.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: the Schedulable interface, the Arrival and Departure variants,
//     and the fixed event registry (one arrival slot + one departure per server)
//   - simulator.go: the clock, next-event selection, the advance/fire loop,
//     server selection, and the two transition handlers
//   - experiment.go: the replication driver that averages per-server reports
//     across N independent replications
//
// # Architecture
//
// The engine advances one event at a time: select the enabled event with the
// minimum scheduled time, move the clock, fire the handler. Handlers mutate
// exactly one server's state and reschedule events; all time-weighted
// statistics are accumulated inside them, crediting each elapsed interval at
// the state that held before the transition. Supporting sub-packages:
//   - sim/analytic/: closed-form M/M/1 and M/M/c steady-state references
//   - sim/trace/: in-memory event recording for offline verification
//
// # Randomness
//
// All randomness flows through the VariateGenerator interface. The production
// ExpGenerator wraps a *rand.Rand; PartitionedRNG derives an isolated,
// deterministic sub-stream per replication from one master seed, so a whole
// study reproduces from a single integer while replications stay independent.
package sim
