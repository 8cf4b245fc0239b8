// Package sim estimates, by Monte Carlo simulation, how a random upgrade
// operation changes the total bonus of a small set of items.
//
// # Reading Guide
//
//   - quality.go: Quality levels, the fixed bonus table and QualityVector
//   - operation.go: the Operation enum and its one-time input validation
//   - transition.go: the two transition rules, driven by an injected Source
//   - aggregate.go: Tally accumulation and the derived Result statistics
//   - simulator.go: Config, sequential and sharded runs
//
// # Reproducibility
//
// Randomness never comes from a global generator. Simulator derives its
// generators from a seed through PartitionedRNG: a sequential run uses the
// seed directly, a sharded run gives every worker its own subsystem RNG.
// The same seed and worker count always produce the same Result.
package sim
