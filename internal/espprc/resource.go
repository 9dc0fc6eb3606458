package espprc

import "github.com/OR-toolkit/vrptw/internal/problem"

// Resource holds the value of one tracked resource on a Label. Scalar
// resources (reduced_cost, time, load) use Scalar; the visited resource
// uses Bits, a length-NumNodes() membership vector. A Resource never uses
// both fields at once.
type Resource struct {
	Scalar float64
	Bits   []bool
}

// resourceKind distinguishes how a Resource component is compared for
// dominance: scalar values use epsilon-tolerant ordering, bit vectors use
// exact componentwise subset comparison.
type resourceKind int

const (
	kindScalar resourceKind = iota
	kindBits
)

// Fixed resource slot indices. Labels index into a [4]Resource array by
// these constants rather than looking resources up by name on the hot
// path.
const (
	resourceReducedCost = 0
	resourceTime        = 1
	resourceLoad        = 2
	resourceVisited     = 3
)

var resourceKinds = [4]resourceKind{kindScalar, kindScalar, kindScalar, kindBits}

// ResourceDef declaratively describes one resource: its extension function
// and optional per-node feasibility bounds (nil means unbounded). Bounds
// apply only to scalar resources; the visited resource's feasibility is
// elementarity, checked explicitly in Model.Extend rather than via bounds.
type ResourceDef struct {
	Name string

	// Extend computes the resource value at j after traversing arc (i,j)
	// from a label currently carrying Resource cur at node i. It must be a
	// deterministic, side-effect-free function of its arguments.
	Extend func(cur Resource, i, j int, pd *problem.Data) Resource

	LowerBound []float64 // indexed by node; nil means no lower bound
	UpperBound []float64 // indexed by node; nil means no upper bound
}
