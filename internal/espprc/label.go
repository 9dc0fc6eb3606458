package espprc

import "github.com/OR-toolkit/vrptw/pkg/domain"

// Label is a partial elementary path ending at Node, carrying its resource
// vector and the full sequence of nodes visited so far (Path[0] == 0).
type Label struct {
	Node      int
	Path      []int
	Resources [4]Resource
}

// reducedCost returns the label's reduced-cost resource value, the
// quantity the orchestrator minimizes over.
func (l *Label) reducedCost() float64 {
	return l.Resources[resourceReducedCost].Scalar
}

// dominates reports whether l ≼ other: same node, componentwise ≤ on
// every resource (bit vectors compared as subset-or-equal), with ties on
// every component still counting as domination so pruning is
// deterministic.
func dominates(l, other *Label) bool {
	if l.Node != other.Node {
		return false
	}
	for r := 0; r < 4; r++ {
		switch resourceKinds[r] {
		case kindScalar:
			lv, ov := l.Resources[r].Scalar, other.Resources[r].Scalar
			if domain.FloatGreater(lv, ov) {
				return false
			}
		case kindBits:
			lb, ob := l.Resources[r].Bits, other.Resources[r].Bits
			for k := range lb {
				if lb[k] && !ob[k] {
					return false
				}
			}
		}
	}
	return true
}

// labelHandle addresses a Label inside a labelArena by integer index,
// avoiding value-equality scans when removing dominated labels.
type labelHandle int

// labelArena is a slice-backed pool of labels scoped to a single
// LabelingSolver.Solve call, generalizing the teacher's sync.Pool-backed
// GraphPool to a single-goroutine arena: no cross-call or cross-goroutine
// sharing happens here, so no pool synchronization is needed.
type labelArena struct {
	labels []Label
	free   []labelHandle
}

func newLabelArena() *labelArena {
	return &labelArena{}
}

// alloc stores l in the arena, reusing a freed slot when available, and
// returns its handle.
func (a *labelArena) alloc(l Label) labelHandle {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.labels[h] = l
		return h
	}
	a.labels = append(a.labels, l)
	return labelHandle(len(a.labels) - 1)
}

// get returns a pointer to the label addressed by h.
func (a *labelArena) get(h labelHandle) *Label {
	return &a.labels[h]
}

// release marks h's slot free for reuse.
func (a *labelArena) release(h labelHandle) {
	a.free = append(a.free, h)
}
