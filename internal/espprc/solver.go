package espprc

import "github.com/OR-toolkit/vrptw/pkg/domain"

// Selector picks the next open label to process.
type Selector int

const (
	// SelectorFIFO processes open labels in the order they were inserted.
	SelectorFIFO Selector = iota
	// SelectorLIFO processes the most recently inserted open label first.
	SelectorLIFO
	// SelectorMinReducedCost always processes the open label with the
	// globally smallest reduced_cost value; this is what the orchestrator
	// uses, since it wants the cheapest partial path explored first.
	SelectorMinReducedCost
)

// Solution is one minimum-reduced-cost elementary path from the start
// depot to the end depot.
type Solution struct {
	Path        []int
	ReducedCost float64
}

// LabelingSolver runs the bucket-per-node resource-extended labeling
// algorithm with dominance over one Model. It is not safe for concurrent
// use; each Solve call owns its own arena and buckets for its duration,
// matching the single-threaded, single-owner resource model.
type LabelingSolver struct {
	model    *Model
	selector Selector
}

// NewLabelingSolver builds a solver over model using the given label
// selection strategy.
func NewLabelingSolver(model *Model, selector Selector) *LabelingSolver {
	return &LabelingSolver{model: model, selector: selector}
}

// Solve runs the labeling algorithm to completion and returns every label
// settled at the end depot achieving the minimum reduced cost there,
// along with that minimum value. An empty Solution slice means no
// feasible path exists from the start depot to the end depot.
func (s *LabelingSolver) Solve() ([]Solution, float64) {
	arena := newLabelArena()
	settled := make(map[int][]labelHandle)
	open := make(map[int][]labelHandle)
	var openOrder []labelHandle

	insert := func(node int, h labelHandle) {
		settled[node] = append(settled[node], h)
		open[node] = append(open[node], h)
		openOrder = append(openOrder, h)
	}

	initial := arena.alloc(*s.model.InitialLabel())
	insert(0, initial)

	for len(openOrder) > 0 {
		h, idx := s.selectNext(arena, openOrder)
		openOrder = removeAt(openOrder, idx)
		L := arena.get(h)
		removeFromBucket(open, L.Node, h)

		for _, j := range s.model.Data.Graph[L.Node] {
			Lp, ok := s.model.Extend(L, j)
			if !ok {
				continue
			}
			if !s.model.Feasible(Lp) {
				continue
			}

			dominatedByExisting := false
			var toRemove []labelHandle
			for _, mh := range settled[j] {
				M := arena.get(mh)
				if dominates(M, Lp) {
					dominatedByExisting = true
					break
				}
				if dominates(Lp, M) {
					toRemove = append(toRemove, mh)
				}
			}
			if dominatedByExisting {
				continue
			}

			for _, mh := range toRemove {
				removeFromBucket(settled, j, mh)
				if removeFromBucket(open, j, mh) {
					openOrder = removeHandle(openOrder, mh)
				}
				arena.release(mh)
			}

			h2 := arena.alloc(*Lp)
			insert(j, h2)
		}
	}

	end := s.model.Data.EndDepot()
	endHandles := settled[end]
	if len(endHandles) == 0 {
		return nil, 0
	}

	minRC := arena.get(endHandles[0]).reducedCost()
	for _, h := range endHandles[1:] {
		if rc := arena.get(h).reducedCost(); domain.FloatLess(rc, minRC) {
			minRC = rc
		}
	}

	var best []Solution
	for _, h := range endHandles {
		L := arena.get(h)
		if domain.FloatEquals(L.reducedCost(), minRC) {
			path := make([]int, len(L.Path))
			copy(path, L.Path)
			best = append(best, Solution{Path: path, ReducedCost: minRC})
		}
	}

	return best, minRC
}

// selectNext picks the next label handle to process per s.selector and
// returns it together with its index in openOrder.
func (s *LabelingSolver) selectNext(arena *labelArena, openOrder []labelHandle) (labelHandle, int) {
	switch s.selector {
	case SelectorLIFO:
		last := len(openOrder) - 1
		return openOrder[last], last
	case SelectorMinReducedCost:
		bestIdx := 0
		bestRC := arena.get(openOrder[0]).reducedCost()
		for i := 1; i < len(openOrder); i++ {
			if rc := arena.get(openOrder[i]).reducedCost(); domain.FloatLess(rc, bestRC) {
				bestRC = rc
				bestIdx = i
			}
		}
		return openOrder[bestIdx], bestIdx
	default: // SelectorFIFO
		return openOrder[0], 0
	}
}

// removeAt removes the element at idx from s, preserving relative order
// (selection is rare enough relative to bucket scans that a stable
// removal here is not a hot-path concern).
func removeAt(s []labelHandle, idx int) []labelHandle {
	return append(s[:idx], s[idx+1:]...)
}

// removeHandle removes the first occurrence of h from s, if present.
func removeHandle(s []labelHandle, h labelHandle) []labelHandle {
	for i, v := range s {
		if v == h {
			return removeAt(s, i)
		}
	}
	return s
}

// removeFromBucket removes h from buckets[node] via swap-with-last,
// reporting whether it was found.
func removeFromBucket(buckets map[int][]labelHandle, node int, h labelHandle) bool {
	bucket := buckets[node]
	for i, v := range bucket {
		if v == h {
			last := len(bucket) - 1
			bucket[i] = bucket[last]
			buckets[node] = bucket[:last]
			return true
		}
	}
	return false
}
