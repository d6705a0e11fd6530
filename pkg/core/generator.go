package core

import (
	"fmt"
	"math/rand"
)

// Landscape selects the capacity tier hosts are generated from.
type Landscape int

const (
	LandscapeSmall Landscape = iota + 1
	LandscapeMedium
	LandscapeLarge
	// LandscapeMixed draws a tier independently for every host.
	LandscapeMixed
)

// String returns the landscape's name for logging and reports.
func (l Landscape) String() string {
	switch l {
	case LandscapeSmall:
		return "small"
	case LandscapeMedium:
		return "medium"
	case LandscapeLarge:
		return "large"
	case LandscapeMixed:
		return "mixed"
	default:
		return fmt.Sprintf("landscape(%d)", int(l))
	}
}

// Valid reports whether l is one of the defined landscapes.
func (l Landscape) Valid() bool {
	return l >= LandscapeSmall && l <= LandscapeMixed
}

// tier is a base host capacity before per-host scaling.
type tier struct {
	cpu, ram, bw float64
}

var tiers = []tier{
	{cpu: 3000, ram: 4096, bw: 3000},
	{cpu: 4000, ram: 8192, bw: 4000},
	{cpu: 6000, ram: 16384, bw: 6000},
}

// highDemandProbability is the fraction of generated VMs that carry a
// long workload with a tight deadline.
const highDemandProbability = 0.3

// GenerateVMs produces n VM specs with demand drawn uniformly from
// moderate ranges. With probability 0.3 a VM is high-demand (workload
// length in [4000, 10000], deadline in [8, 10] seconds); otherwise it is
// lenient (length in [1000, 4000], deadline in [15, 25] seconds).
// Identical seeds yield identical populations.
func GenerateVMs(n int, rng *rand.Rand) []VMSpec {
	vms := make([]VMSpec, n)
	for i := range vms {
		vm := VMSpec{
			ID:        i,
			CPU:       1000 + 2000*rng.Float64(),
			RAM:       1024 + 7168*rng.Float64(),
			Bandwidth: 500 + 2500*rng.Float64(),
		}
		if rng.Float64() < highDemandProbability {
			vm.Length = 4000 + 6000*rng.Float64()
			vm.Deadline = 8 + 2*rng.Float64()
		} else {
			vm.Length = 1000 + 3000*rng.Float64()
			vm.Deadline = 15 + 10*rng.Float64()
		}
		vms[i] = vm
	}
	return vms
}

// GenerateHosts produces n host specs from the selected landscape. All
// three capacities of a host share one scale factor drawn from
// [0.9, 1.0], modeling hardware heterogeneity within a tier.
func GenerateHosts(n int, landscape Landscape, rng *rand.Rand) []HostSpec {
	hosts := make([]HostSpec, n)
	for i := range hosts {
		t := tiers[0]
		switch landscape {
		case LandscapeSmall, LandscapeMedium, LandscapeLarge:
			t = tiers[landscape-1]
		case LandscapeMixed:
			t = tiers[rng.Intn(len(tiers))]
		}
		scale := 0.9 + 0.1*rng.Float64()
		hosts[i] = HostSpec{
			CPU:       t.cpu * scale,
			RAM:       t.ram * scale,
			Bandwidth: t.bw * scale,
		}
	}
	return hosts
}
