// Package solomon parses Solomon-format VRPTW benchmark files and
// derives the distance/travel-time matrices and arc-filtered
// problem.Data the CORE pricing and column-generation packages consume.
// None of this package is part of the CORE; it is the external
// collaborator spec.md treats only at its interface.
package solomon

// Instance is a parsed Solomon benchmark file: vehicle parameters plus
// per-node attributes for the depot (index 0), the first NumCustomers
// customer rows (indices 1..NumCustomers), and a synthetic duplicate
// depot appended at index NumCustomers+1.
type Instance struct {
	NumVehicles  int
	Capacity     float64
	NumCustomers int

	X, Y        []float64
	Demand      []float64
	ReadyTime   []float64
	DueDate     []float64
	ServiceTime []float64
}

// NumNodes returns NumCustomers+2 (start depot, customers, end depot).
func (inst *Instance) NumNodes() int {
	return inst.NumCustomers + 2
}
