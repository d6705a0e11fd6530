package solver

import (
	"github.com/Phil254/cloud-resource-management-thesis/pkg/core"
)

// Assignment maps each VM index to the index of the host it is placed on.
// Its length equals the number of VMs being placed.
type Assignment []int

// Clone returns an independent copy of a.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	copy(out, a)
	return out
}

// hostUsage tracks the summed demand placed on every host across the
// three resource dimensions.
type hostUsage struct {
	cpu, ram, bw []float64
}

// usageOf accumulates the per-host demand of a.
func usageOf(a Assignment, vms []core.VMSpec, numHosts int) hostUsage {
	u := hostUsage{
		cpu: make([]float64, numHosts),
		ram: make([]float64, numHosts),
		bw:  make([]float64, numHosts),
	}
	for i, vm := range vms {
		u.add(a[i], vm)
	}
	return u
}

func (u hostUsage) add(h int, vm core.VMSpec) {
	u.cpu[h] += vm.CPU
	u.ram[h] += vm.RAM
	u.bw[h] += vm.Bandwidth
}

func (u hostUsage) remove(h int, vm core.VMSpec) {
	u.cpu[h] -= vm.CPU
	u.ram[h] -= vm.RAM
	u.bw[h] -= vm.Bandwidth
}

// over reports whether host h exceeds its capacity on any dimension.
func (u hostUsage) over(h int, host core.HostSpec) bool {
	return u.cpu[h] > host.CPU || u.ram[h] > host.RAM || u.bw[h] > host.Bandwidth
}

// fits reports whether host h can take vm on top of its current usage.
func (u hostUsage) fits(h int, vm core.VMSpec, host core.HostSpec) bool {
	return u.cpu[h]+vm.CPU <= host.CPU &&
		u.ram[h]+vm.RAM <= host.RAM &&
		u.bw[h]+vm.Bandwidth <= host.Bandwidth
}

// Feasible reports whether a keeps every host within capacity on all
// three resource dimensions.
func Feasible(a Assignment, vms []core.VMSpec, hosts []core.HostSpec) bool {
	u := usageOf(a, vms, len(hosts))
	for h := range hosts {
		if u.over(h, hosts[h]) {
			return false
		}
	}
	return true
}
