// Package runner wires the resource model, optimizer, decoder, and
// exporters into a single placement run.
package runner

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/Phil254/cloud-resource-management-thesis/internal/export"
	"github.com/Phil254/cloud-resource-management-thesis/internal/logging"
	"github.com/Phil254/cloud-resource-management-thesis/internal/metrics"
	"github.com/Phil254/cloud-resource-management-thesis/pkg/config"
	"github.com/Phil254/cloud-resource-management-thesis/pkg/core"
	"github.com/Phil254/cloud-resource-management-thesis/pkg/solver"
)

// Report summarizes one placement run.
type Report struct {
	// Placement maps each VM identifier to its host index.
	Placement map[int]int
	// Fitness is the cost of the chosen assignment.
	Fitness float64

	VMs   []core.VMSpec
	Hosts []core.HostSpec

	// CPUUtilization is the per-host fraction of compute capacity used
	// by the placement.
	CPUUtilization     []float64
	MeanCPUUtilization float64

	// PredictedViolations counts VMs whose predicted execution time
	// exceeds their deadline under the chosen placement.
	PredictedViolations int

	// DemandCSV and PlacementCSV are the paths actually written, empty
	// when the corresponding export was disabled.
	DemandCSV    string
	PlacementCSV string

	Seed    int64
	Elapsed time.Duration
}

// Run executes one placement run described by cfg: generate the problem
// instance, optimize, decode the placement, summarize, and export. The
// recorder may be nil.
func Run(ctx context.Context, cfg config.RunConfig, rec *metrics.Recorder) (*Report, error) {
	log := logging.FromContext(ctx)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run configuration: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	start := time.Now()

	rng := rand.New(rand.NewSource(seed))
	vms := core.GenerateVMs(cfg.NumVMs, rng)
	hosts := core.GenerateHosts(cfg.NumHosts, cfg.Landscape, rng)
	log.Info("generated placement problem",
		"vms", len(vms), "hosts", len(hosts),
		"landscape", cfg.Landscape.String(), "seed", seed)

	scfg := cfg.SolverConfig()
	scfg.Seed = seed
	if rec != nil {
		scfg.Recorder = rec
	}
	opt, err := solver.New(scfg, vms, hosts)
	if err != nil {
		return nil, err
	}
	result, err := opt.Run(ctx)
	if err != nil {
		return nil, err
	}
	if result.Fitness >= solver.InfeasiblePenalty {
		return nil, fmt.Errorf("no feasible placement found for %d VMs on %d hosts", len(vms), len(hosts))
	}

	report := &Report{
		Placement: solver.DecodePlacement(result.Assignment, vms),
		Fitness:   result.Fitness,
		VMs:       vms,
		Hosts:     hosts,
		Seed:      seed,
	}
	summarize(report, result.Assignment, cfg.ScalingFactor)

	if cfg.DemandCSV != "" {
		path, err := export.WriteDemand(cfg.DemandCSV, vms)
		if err != nil {
			return nil, err
		}
		report.DemandCSV = path
		log.Info("exported demand characteristics", "path", path)
	}
	if cfg.PlacementCSV != "" {
		path, err := export.WritePlacement(cfg.PlacementCSV, report.Placement, vms, hosts, cfg.ScalingFactor)
		if err != nil {
			return nil, err
		}
		report.PlacementCSV = path
		log.Info("exported placement", "path", path)
	}

	report.Elapsed = time.Since(start)
	if rec != nil {
		rec.ObserveRunDuration(report.Elapsed)
	}
	log.Info("placement run complete",
		"fitness", report.Fitness,
		"predictedViolations", report.PredictedViolations,
		"meanCPUUtilization", report.MeanCPUUtilization,
		"elapsed", report.Elapsed.String())
	return report, nil
}

// summarize fills the report's utilization and deadline figures from the
// chosen assignment.
func summarize(r *Report, a solver.Assignment, scalingFactor float64) {
	used := make([]float64, len(r.Hosts))
	for i, vm := range r.VMs {
		used[a[i]] += vm.CPU
		if vm.Length/r.Hosts[a[i]].CPU*scalingFactor > vm.Deadline {
			r.PredictedViolations++
		}
	}
	r.CPUUtilization = make([]float64, len(r.Hosts))
	for h := range r.Hosts {
		r.CPUUtilization[h] = used[h] / r.Hosts[h].CPU
	}
	r.MeanCPUUtilization = stat.Mean(r.CPUUtilization, nil)
}

// WriteSummary prints the per-host utilization table and run totals.
func (r *Report) WriteSummary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HOST\tCPU_CAP\tRAM_CAP\tBW_CAP\tCPU_UTIL\tVMS")
	counts := make([]int, len(r.Hosts))
	for _, h := range r.Placement {
		counts[h]++
	}
	for h, host := range r.Hosts {
		fmt.Fprintf(tw, "%d\t%.0f\t%.0f\t%.0f\t%.1f%%\t%d\n",
			h, host.CPU, host.RAM, host.Bandwidth, 100*r.CPUUtilization[h], counts[h])
	}
	fmt.Fprintf(tw, "\nfitness\t%.4f\n", r.Fitness)
	fmt.Fprintf(tw, "predicted deadline violations\t%d/%d\n", r.PredictedViolations, len(r.VMs))
	fmt.Fprintf(tw, "mean CPU utilization\t%.1f%%\n", 100*r.MeanCPUUtilization)
	fmt.Fprintf(tw, "seed\t%d\n", r.Seed)
	fmt.Fprintf(tw, "elapsed\t%s\n", r.Elapsed)
	return tw.Flush()
}
