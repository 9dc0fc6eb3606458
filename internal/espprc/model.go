package espprc

import (
	"github.com/OR-toolkit/vrptw/internal/problem"
	"github.com/OR-toolkit/vrptw/pkg/domain"
)

// Model is the ESPPTWC pricing model: the four standard resources
// (reduced_cost, time, load, visited) bound to one problem instance.
type Model struct {
	Data      *problem.Data
	resources [4]ResourceDef
}

// NewModel builds the standard ESPPTWC resource set for pd: reduced_cost
// accumulates the adjusted arc cost, time applies "wait until window
// opens" via max() and is bounded by each node's time window, load
// accumulates demand and is capped at vehicle capacity, and visited is
// tracked as a bitmap with elementarity enforced in Extend rather than
// via a bound.
func NewModel(pd *problem.Data) *Model {
	n := pd.NumNodes()
	timeLower := make([]float64, n)
	timeUpper := make([]float64, n)
	loadUpper := make([]float64, n)
	for i := 0; i < n; i++ {
		w := pd.Window[i]
		timeLower[i] = w.Lower
		timeUpper[i] = w.Upper
		loadUpper[i] = pd.Capacity
	}

	return &Model{
		Data: pd,
		resources: [4]ResourceDef{
			resourceReducedCost: {
				Name: "reduced_cost",
				Extend: func(cur Resource, i, j int, pd *problem.Data) Resource {
					return Resource{Scalar: cur.Scalar + pd.AdjustedCost[problem.Arc{From: i, To: j}]}
				},
			},
			resourceTime: {
				Name: "time",
				Extend: func(cur Resource, i, j int, pd *problem.Data) Resource {
					tt := pd.TravelTime[problem.Arc{From: i, To: j}]
					return Resource{Scalar: domain.Max(cur.Scalar+tt, pd.Window[j].Lower)}
				},
				LowerBound: timeLower,
				UpperBound: timeUpper,
			},
			resourceLoad: {
				Name: "load",
				Extend: func(cur Resource, i, j int, pd *problem.Data) Resource {
					return Resource{Scalar: cur.Scalar + pd.Demand[j]}
				},
				UpperBound: loadUpper,
			},
			resourceVisited: {
				Name: "visited",
				Extend: func(cur Resource, i, j int, pd *problem.Data) Resource {
					bits := make([]bool, len(cur.Bits))
					copy(bits, cur.Bits)
					bits[j] = true
					return Resource{Bits: bits}
				},
			},
		},
	}
}

// AdjustCosts rewrites pd.AdjustedCost in place: c̃(i,j) = c(i,j) -
// duals[i], duals omitted from the map default to 0 via Go's zero value.
// This is the one sanctioned mutation point on Data after construction,
// and must run to completion before any concurrent labeling search.
func (m *Model) AdjustCosts(duals map[int]float64) {
	for arc, cost := range m.Data.Cost {
		m.Data.AdjustedCost[arc] = cost - duals[arc.From]
	}
}

// InitialLabel returns the label seeded at the start depot: path [0],
// reduced_cost 0, time a(0), load 0, visited = {0}.
func (m *Model) InitialLabel() *Label {
	bits := make([]bool, m.Data.NumNodes())
	bits[0] = true
	return &Label{
		Node: 0,
		Path: []int{0},
		Resources: [4]Resource{
			resourceReducedCost: {Scalar: 0},
			resourceTime:        {Scalar: m.Data.Window[0].Lower},
			resourceLoad:        {Scalar: 0},
			resourceVisited:     {Bits: bits},
		},
	}
}

// Extend builds the label reached by traversing arc (l.Node, j), applying
// every resource's Extend function in fixed order. It returns (nil, false)
// if j is already in l.Path: elementarity is enforced here explicitly,
// not by inspecting the post-extension visited bitmap, since checking the
// bitmap bound alone only catches visited[j] > 1 and never catches
// revisiting a node that is merely already marked.
func (m *Model) Extend(l *Label, j int) (*Label, bool) {
	for _, v := range l.Path {
		if v == j {
			return nil, false
		}
	}

	newPath := make([]int, len(l.Path)+1)
	copy(newPath, l.Path)
	newPath[len(l.Path)] = j

	var newRes [4]Resource
	for r, def := range m.resources {
		newRes[r] = def.Extend(l.Resources[r], l.Node, j, m.Data)
	}

	return &Label{Node: j, Path: newPath, Resources: newRes}, true
}

// Feasible reports whether every bounded resource on l respects its
// bound at l.Node. Resources with a nil bound (reduced_cost, visited) are
// skipped.
func (m *Model) Feasible(l *Label) bool {
	for r := 0; r < 4; r++ {
		def := m.resources[r]
		v := l.Resources[r].Scalar
		if def.LowerBound != nil && domain.FloatLess(v, def.LowerBound[l.Node]) {
			return false
		}
		if def.UpperBound != nil && domain.FloatGreater(v, def.UpperBound[l.Node]) {
			return false
		}
	}
	return true
}

// PathCost returns the true (non-reduced) cost of a path: sum of c(i,j)
// over consecutive arcs.
func (m *Model) PathCost(path []int) float64 {
	var total float64
	for k := 0; k < len(path)-1; k++ {
		total += m.Data.Cost[problem.Arc{From: path[k], To: path[k+1]}]
	}
	return total
}
