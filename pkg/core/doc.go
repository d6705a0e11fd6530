// Package core provides the resource model for the placement problem.
//
// The package contains the domain entities shared by the solver and the
// run orchestration:
//
//   - VMSpec: a virtual machine demand unit (CPU, RAM, bandwidth, workload
//     length, completion deadline)
//   - HostSpec: a capacity-bounded placement target
//   - Landscape: the capacity tier hosts are generated from
//
// Populations of both entities are produced by seed-reproducible
// generators; the same seed always yields the same problem instance.
//
// Example usage:
//
//	rng := rand.New(rand.NewSource(seed))
//	vms := core.GenerateVMs(60, rng)
//	hosts := core.GenerateHosts(10, core.LandscapeLarge, rng)
//
// The core package is designed to be:
//   - Immutable: specs are plain values, never mutated after generation
//   - Deterministic: generation is a pure function of count and seed
//   - Independent: no knowledge of the solver or any output format
package core
