package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateVMsRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vms := GenerateVMs(500, rng)
	if len(vms) != 500 {
		t.Fatalf("expected 500 VMs, got %d", len(vms))
	}

	var highDemand, lenient int
	for i, vm := range vms {
		if vm.ID != i {
			t.Errorf("VM %d has ID %d, want %d", i, vm.ID, i)
		}
		if vm.CPU < 1000 || vm.CPU > 3000 {
			t.Errorf("VM %d CPU %.2f out of [1000, 3000]", i, vm.CPU)
		}
		if vm.RAM < 1024 || vm.RAM > 8192 {
			t.Errorf("VM %d RAM %.2f out of [1024, 8192]", i, vm.RAM)
		}
		if vm.Bandwidth < 500 || vm.Bandwidth > 3000 {
			t.Errorf("VM %d bandwidth %.2f out of [500, 3000]", i, vm.Bandwidth)
		}
		switch {
		case vm.Deadline >= 8 && vm.Deadline <= 10:
			highDemand++
			if vm.Length < 4000 || vm.Length > 10000 {
				t.Errorf("high-demand VM %d length %.2f out of [4000, 10000]", i, vm.Length)
			}
		case vm.Deadline >= 15 && vm.Deadline <= 25:
			lenient++
			if vm.Length < 1000 || vm.Length > 4000 {
				t.Errorf("lenient VM %d length %.2f out of [1000, 4000]", i, vm.Length)
			}
		default:
			t.Errorf("VM %d deadline %.2f outside both classes", i, vm.Deadline)
		}
	}
	if highDemand == 0 || lenient == 0 {
		t.Errorf("expected both VM classes in 500 samples, got %d high-demand and %d lenient",
			highDemand, lenient)
	}
}

func TestGenerateVMsReproducible(t *testing.T) {
	a := GenerateVMs(50, rand.New(rand.NewSource(42)))
	b := GenerateVMs(50, rand.New(rand.NewSource(42)))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different populations (-a +b):\n%s", diff)
	}
}

func TestGenerateHostsTiers(t *testing.T) {
	tests := []struct {
		name      string
		landscape Landscape
		cpu, ram  float64
		bw        float64
	}{
		{name: "small", landscape: LandscapeSmall, cpu: 3000, ram: 4096, bw: 3000},
		{name: "medium", landscape: LandscapeMedium, cpu: 4000, ram: 8192, bw: 4000},
		{name: "large", landscape: LandscapeLarge, cpu: 6000, ram: 16384, bw: 6000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(11))
			hosts := GenerateHosts(20, tt.landscape, rng)
			for i, h := range hosts {
				if h.CPU < 0.9*tt.cpu || h.CPU > tt.cpu {
					t.Errorf("host %d CPU %.2f out of [%.0f, %.0f]", i, h.CPU, 0.9*tt.cpu, tt.cpu)
				}
				// One shared scale factor per host.
				scale := h.CPU / tt.cpu
				if math.Abs(h.RAM/tt.ram-scale) > 1e-9 || math.Abs(h.Bandwidth/tt.bw-scale) > 1e-9 {
					t.Errorf("host %d dimensions not scaled by a shared factor: cpu=%.6f ram=%.6f bw=%.6f",
						i, scale, h.RAM/tt.ram, h.Bandwidth/tt.bw)
				}
			}
		})
	}
}

func TestGenerateHostsMixed(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	hosts := GenerateHosts(100, LandscapeMixed, rng)

	seen := map[string]bool{}
	for i, h := range hosts {
		switch {
		case h.CPU >= 0.9*3000 && h.CPU <= 3000 && h.RAM <= 4096:
			seen["small"] = true
		case h.CPU >= 0.9*4000 && h.CPU <= 4000 && h.RAM <= 8192:
			seen["medium"] = true
		case h.CPU >= 0.9*6000 && h.CPU <= 6000 && h.RAM <= 16384:
			seen["large"] = true
		default:
			t.Errorf("host %d %+v matches no tier", i, h)
		}
	}
	if len(seen) < 2 {
		t.Errorf("expected at least two tiers among 100 mixed hosts, saw %v", seen)
	}
}

func TestLandscapeValid(t *testing.T) {
	tests := []struct {
		landscape Landscape
		want      bool
	}{
		{LandscapeSmall, true},
		{LandscapeMedium, true},
		{LandscapeLarge, true},
		{LandscapeMixed, true},
		{Landscape(0), false},
		{Landscape(5), false},
		{Landscape(-1), false},
	}
	for _, tt := range tests {
		if got := tt.landscape.Valid(); got != tt.want {
			t.Errorf("Landscape(%d).Valid() = %v, want %v", tt.landscape, got, tt.want)
		}
	}
}
