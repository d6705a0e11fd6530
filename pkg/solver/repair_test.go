package solver

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Phil254/cloud-resource-management-thesis/pkg/core"
)

func TestRepairRestoresFeasibility(t *testing.T) {
	vm := core.VMSpec{CPU: 1000, RAM: 1024, Bandwidth: 500, Length: 1000, Deadline: 20}
	vms := []core.VMSpec{vm, vm, vm, vm, vm, vm}
	host := core.HostSpec{CPU: 2500, RAM: 4096, Bandwidth: 2000}
	hosts := []core.HostSpec{host, host, host}

	// Everything piled onto host 0: 6000 MIPS demand against 2500.
	a := Assignment{0, 0, 0, 0, 0, 0}
	out := Repair(a, vms, hosts)

	if !out.Feasible {
		t.Fatalf("Repair() = %+v, want feasible", out)
	}
	if out.ViolatingVM != -1 {
		t.Errorf("feasible outcome should carry ViolatingVM -1, got %d", out.ViolatingVM)
	}
	if !Feasible(a, vms, hosts) {
		t.Errorf("post-condition violated: assignment %v exceeds capacity", a)
	}
}

func TestRepairFeasibilityInvariantRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	vms := core.GenerateVMs(40, rng)
	hosts := core.GenerateHosts(8, core.LandscapeLarge, rng)

	for trial := 0; trial < 50; trial++ {
		a := make(Assignment, len(vms))
		for i := range a {
			a[i] = rng.Intn(len(hosts))
		}
		out := Repair(a, vms, hosts)
		if out.Feasible && !Feasible(a, vms, hosts) {
			t.Fatalf("trial %d: Repair reported feasible but assignment violates capacity", trial)
		}
	}
}

func TestRepairIdempotentOnFeasible(t *testing.T) {
	vm := core.VMSpec{CPU: 1000, RAM: 1024, Bandwidth: 500, Length: 1000, Deadline: 20}
	vms := []core.VMSpec{vm, vm, vm}
	host := core.HostSpec{CPU: 2500, RAM: 4096, Bandwidth: 2000}
	hosts := []core.HostSpec{host, host, host}

	a := Assignment{0, 1, 2}
	before := a.Clone()
	out := Repair(a, vms, hosts)

	if !out.Feasible {
		t.Fatalf("Repair() = %+v, want feasible", out)
	}
	if diff := cmp.Diff(before, a); diff != "" {
		t.Errorf("Repair changed an already-feasible assignment:\n%s", diff)
	}
}

// A single host whose capacity exactly equals the summed demand is
// feasible; shaving any dimension below that sum must surface an
// explicit infeasibility signal rather than a silent violation.
func TestRepairExactCapacityBoundary(t *testing.T) {
	vms := []core.VMSpec{
		{ID: 0, CPU: 1000, RAM: 1000, Bandwidth: 1000, Length: 1000, Deadline: 20},
		{ID: 1, CPU: 2000, RAM: 2000, Bandwidth: 2000, Length: 2000, Deadline: 20},
	}

	exact := []core.HostSpec{{CPU: 3000, RAM: 3000, Bandwidth: 3000}}
	a := Assignment{0, 0}
	if out := Repair(a, vms, exact); !out.Feasible {
		t.Errorf("Repair() = %+v, want feasible at exact capacity", out)
	}

	short := []core.HostSpec{{CPU: 2999, RAM: 3000, Bandwidth: 3000}}
	a = Assignment{0, 0}
	out := Repair(a, vms, short)
	if out.Feasible {
		t.Fatalf("Repair() = %+v, want infeasible below exact capacity", out)
	}
	if out.ViolatingVM < 0 || out.ViolatingVM >= len(vms) {
		t.Errorf("infeasible outcome should name a violating VM, got %d", out.ViolatingVM)
	}
}

func TestRepairMovesToLowestIndexedHost(t *testing.T) {
	vms := []core.VMSpec{
		{ID: 0, CPU: 2000, RAM: 1000, Bandwidth: 1000, Length: 1000, Deadline: 20},
		{ID: 1, CPU: 2000, RAM: 1000, Bandwidth: 1000, Length: 1000, Deadline: 20},
	}
	hosts := []core.HostSpec{
		{CPU: 2500, RAM: 4096, Bandwidth: 4000},
		{CPU: 2500, RAM: 4096, Bandwidth: 4000},
		{CPU: 2500, RAM: 4096, Bandwidth: 4000},
	}

	// Both VMs on host 2; the first over-capacity VM moves to host 0,
	// the lowest index with room.
	a := Assignment{2, 2}
	out := Repair(a, vms, hosts)
	if !out.Feasible {
		t.Fatalf("Repair() = %+v, want feasible", out)
	}
	if a[0] != 0 {
		t.Errorf("expected VM 0 moved to host 0, got assignment %v", a)
	}
}
