// Package config provides configuration management for placement runs.
//
// A RunConfig carries every tunable of a run: problem size (VM and host
// counts, landscape), swarm parameters (size, iteration budget,
// cognitive/social coefficients, inertia weight), cost weights (execution
// scaling factor, SLA cost factor, load-balance weight), the random seed,
// and output settings.
//
// Configuration Sources (highest priority first):
//
//  1. Command-line flags bound by the caller
//  2. SLAPSO_* environment variables
//  3. A yaml configuration file
//  4. Default values
//
// Example usage:
//
//	cfg, err := config.Load(viper.New(), "run.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// Configuration Validation:
//
// Validate enforces the fatal-before-run error class: non-positive counts,
// an empty host set, an invalid landscape, a zero-length iteration budget,
// negative weights, and degenerate coefficient combinations are all
// rejected before any optimization work begins.
package config
