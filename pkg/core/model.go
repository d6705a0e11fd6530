// Package core defines the resource model for the placement problem:
// virtual machine demand specs and host capacity specs, plus their
// seed-reproducible generators.
package core

// VMSpec describes a virtual machine placement request: the resources it
// demands, the length of the work it carries, and the deadline by which
// that work must complete. Specs are immutable once generated.
type VMSpec struct {
	// ID is the VM's external identifier, unique and stable for a run.
	ID int

	// CPU is the required compute rate (MIPS).
	CPU float64
	// RAM is the required memory (MB).
	RAM float64
	// Bandwidth is the required network bandwidth (Mbps).
	Bandwidth float64

	// Length is the workload length (MI) to execute on the VM.
	Length float64
	// Deadline is the completion deadline in seconds.
	Deadline float64
}

// HostSpec describes the effective capacity of a single host. Hosts are
// identified by their index in the generated slice.
type HostSpec struct {
	// CPU is the compute-rate capacity (MIPS).
	CPU float64
	// RAM is the memory capacity (MB).
	RAM float64
	// Bandwidth is the network bandwidth capacity (Mbps).
	Bandwidth float64
}
