package solver

import (
	"github.com/Phil254/cloud-resource-management-thesis/pkg/core"
)

// Outcome reports the result of repairing an assignment.
type Outcome struct {
	// Feasible is true when every host is within capacity on all three
	// dimensions after repair.
	Feasible bool
	// ViolatingVM is the index of a VM that could not be placed when
	// Feasible is false, and -1 otherwise.
	ViolatingVM int
}

// Repair moves VMs off over-capacity hosts until the assignment is
// feasible, mutating it in place. Within a pass, every VM whose host is
// over capacity on any dimension is moved to the first host (ascending
// index) that can take it, with running per-host totals updated
// incrementally. Passes repeat until a fixed point or until the pass
// budget — proportional to the VM count — is exhausted. A VM no host can
// take, or budget exhaustion, yields Feasible=false with the violating VM
// index; Repair never spins forever and never reports a still-violating
// assignment as repaired.
//
// Repair is idempotent on a feasible assignment: it is returned unchanged.
func Repair(a Assignment, vms []core.VMSpec, hosts []core.HostSpec) Outcome {
	maxPasses := 2*len(vms) + 8
	for pass := 0; pass < maxPasses; pass++ {
		u := usageOf(a, vms, len(hosts))
		moved := false
		for i, vm := range vms {
			h := a[i]
			if !u.over(h, hosts[h]) {
				continue
			}
			dst := -1
			for j := range hosts {
				if u.fits(j, vm, hosts[j]) {
					dst = j
					break
				}
			}
			if dst < 0 {
				return Outcome{Feasible: false, ViolatingVM: i}
			}
			u.remove(h, vm)
			a[i] = dst
			u.add(dst, vm)
			moved = true
		}
		if !moved {
			return Outcome{Feasible: true, ViolatingVM: -1}
		}
	}
	return Outcome{Feasible: false, ViolatingVM: firstViolating(a, vms, hosts)}
}

// firstViolating returns the lowest VM index placed on an over-capacity
// host, or -1 if the assignment is feasible.
func firstViolating(a Assignment, vms []core.VMSpec, hosts []core.HostSpec) int {
	u := usageOf(a, vms, len(hosts))
	for i := range vms {
		if u.over(a[i], hosts[a[i]]) {
			return i
		}
	}
	return -1
}
