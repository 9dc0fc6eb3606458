// Package problem defines the value object for a VRPTW instance after arc
// filtering: the directed graph over depot and customer nodes, arc costs and
// travel times, per-node demand and time windows, and the reduced-cost shadow
// map rewritten once per column-generation iteration.
package problem

import (
	"fmt"
	"sort"

	"github.com/OR-toolkit/vrptw/pkg/apperror"
)

// Arc identifies a directed edge (From, To) in the node graph. Node 0 is the
// start depot, node N+1 is the end depot, and nodes 1..N are customers.
type Arc struct {
	From int
	To   int
}

// Window is an inclusive time window [Lower, Upper] for a node.
type Window struct {
	Lower float64
	Upper float64
}

// Data is the immutable description of a VRPTW instance, except for
// AdjustedCost which is rewritten once per pricing iteration by
// espprc.Model.AdjustCosts and nowhere else.
type Data struct {
	NumCustomers int // N
	Capacity     float64

	// Graph is the adjacency list over [0, N+1]; Graph[i] lists feasible
	// successors of i after arc filtering.
	Graph map[int][]int

	Cost       map[Arc]float64 // c(i,j), true cost
	TravelTime map[Arc]float64 // tau(i,j)

	Demand map[int]float64 // d(i)
	Window map[int]Window  // [a(i), b(i)]

	// AdjustedCost holds c~(i,j) = c(i,j) - pi(i); rewritten in place by
	// AdjustCosts between pricing calls, never during a labeling search.
	AdjustedCost map[Arc]float64
}

// EndDepot returns the synthetic end-depot node index N+1.
func (d *Data) EndDepot() int {
	return d.NumCustomers + 1
}

// NumNodes returns the node count, N+2 (start depot, N customers, end depot).
func (d *Data) NumNodes() int {
	return d.NumCustomers + 2
}

// New validates and constructs a Data instance. It asserts the invariant
// spec.md leaves as an open question: every arc kept in the adjacency list
// must have a corresponding Cost and TravelTime entry, since PricingModel's
// REFs assume the lookup always succeeds.
func New(numCustomers int, capacity float64, graph map[int][]int, cost, travelTime map[Arc]float64, demand map[int]float64, window map[int]Window) (*Data, error) {
	if numCustomers < 0 {
		return nil, apperror.New(apperror.CodeInputMalformed, "num_customers must be non-negative").WithField("num_customers")
	}
	if graph == nil {
		return nil, apperror.ErrNilProblemData.WithField("graph")
	}

	d := &Data{
		NumCustomers: numCustomers,
		Capacity:     capacity,
		Graph:        graph,
		Cost:         cost,
		TravelTime:   travelTime,
		Demand:       demand,
		Window:       window,
		AdjustedCost: make(map[Arc]float64, len(cost)),
	}

	for i, adj := range d.Graph {
		for _, j := range adj {
			a := Arc{From: i, To: j}
			if _, ok := d.Cost[a]; !ok {
				return nil, apperror.New(apperror.CodeInputMalformed,
					fmt.Sprintf("missing cost entry for adjacency arc (%d,%d)", i, j)).WithField("cost")
			}
			if _, ok := d.TravelTime[a]; !ok {
				return nil, apperror.New(apperror.CodeInputMalformed,
					fmt.Sprintf("missing travel_time entry for adjacency arc (%d,%d)", i, j)).WithField("travel_time")
			}
			d.AdjustedCost[a] = d.Cost[a]
		}
	}

	return d, nil
}

// SortedNodes returns node indices 0..NumNodes()-1 in ascending order.
func (d *Data) SortedNodes() []int {
	nodes := make([]int, 0, d.NumNodes())
	for i := 0; i < d.NumNodes(); i++ {
		nodes = append(nodes, i)
	}
	sort.Ints(nodes)
	return nodes
}
