// Package solver implements the placement core: a discrete particle-swarm
// walk that assigns VMs to capacity-bounded hosts.
//
// Key Components:
//
//   - Assignment: a complete VM-index → host-index mapping
//   - Evaluate: pure cost function (makespan + SLA penalty + load imbalance)
//   - Repair: restores the capacity invariant or reports infeasibility
//   - Optimizer: maintains the swarm and runs the iteration budget
//   - DecodePlacement: extracts the VM-ID → host mapping from the best result
//
// Optimization Loop:
//
//  1. Seed the swarm with uniformly random assignments, repair and score each
//  2. Per iteration, resample each particle's per-VM choices toward the
//     global best or its personal best, else uniformly at random
//  3. Repair and re-score the particle; update bests on strict improvement
//  4. After the iteration budget, return the global best snapshot
//
// Example usage:
//
//	opt, err := solver.New(cfg, vms, hosts)
//	if err != nil {
//	    return err
//	}
//	result, err := opt.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	placement := solver.DecodePlacement(result.Assignment, vms)
//
// Unlike continuous-velocity particle-swarm formulations, each VM's host
// choice is resampled independently per iteration with no velocity or
// momentum state.
//
// The solver is designed to be:
//   - Deterministic: same seed and parameters produce the same result
//   - Self-contained: all swarm state is owned by the Run call frame
//   - Observable: optional Recorder hook and logr progress logging
package solver
