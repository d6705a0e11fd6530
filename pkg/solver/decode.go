package solver

import (
	"github.com/Phil254/cloud-resource-management-thesis/pkg/core"
)

// DecodePlacement converts an assignment into a map from VM identifier
// to host index for consumption by downstream collaborators.
func DecodePlacement(a Assignment, vms []core.VMSpec) map[int]int {
	placement := make(map[int]int, len(vms))
	for i, vm := range vms {
		placement[vm.ID] = a[i]
	}
	return placement
}
