package solver

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Phil254/cloud-resource-management-thesis/pkg/core"
)

// Weights are the tunable scalars of the placement cost function.
type Weights struct {
	// ScalingFactor multiplies the predicted execution time of every VM.
	ScalingFactor float64
	// SLACostFactor is the cost per second of predicted deadline overrun.
	SLACostFactor float64
	// LoadBalance weighs the utilization variance across hosts.
	LoadBalance float64
}

// Evaluate scores an assignment; lower is better. The cost is the sum of
// the predicted makespan, a linear uncapped penalty for every VM whose
// predicted execution time exceeds its deadline, and a load-balance
// penalty proportional to the population variance of per-host utilization
// on each of the three resource dimensions. Evaluate is pure: identical
// inputs always produce identical output, and nothing is mutated.
func Evaluate(a Assignment, vms []core.VMSpec, hosts []core.HostSpec, w Weights) float64 {
	hostTime := make([]float64, len(hosts))
	var slaPenalty float64
	for i, vm := range vms {
		h := a[i]
		execTime := vm.Length / hosts[h].CPU * w.ScalingFactor
		hostTime[h] += execTime
		if execTime > vm.Deadline {
			slaPenalty += w.SLACostFactor * (execTime - vm.Deadline)
		}
	}
	makespan := floats.Max(hostTime)

	u := usageOf(a, vms, len(hosts))
	cpuUtil := make([]float64, len(hosts))
	ramUtil := make([]float64, len(hosts))
	bwUtil := make([]float64, len(hosts))
	for h, host := range hosts {
		cpuUtil[h] = u.cpu[h] / host.CPU
		ramUtil[h] = u.ram[h] / host.RAM
		bwUtil[h] = u.bw[h] / host.Bandwidth
	}
	variance := stat.PopVariance(cpuUtil, nil) +
		stat.PopVariance(ramUtil, nil) +
		stat.PopVariance(bwUtil, nil)

	return makespan + slaPenalty + w.LoadBalance*variance
}
