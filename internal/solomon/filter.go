package solomon

import (
	"github.com/OR-toolkit/vrptw/internal/problem"
)

// FilterArcs applies the pre-filtering policy to every ordered pair of
// distinct nodes over inst and builds the resulting problem.Data: an arc
// (i,j) is dropped when i==j, j is the start depot, i is the end depot,
// the combined demand exceeds capacity, or the earliest possible arrival
// a(i)+tau(i,j) already misses j's window close b(j). filteredRatio is
// the fraction of candidate arcs removed by the policy, reported for
// logging/diagnostics only.
func FilterArcs(inst *Instance, cost, travelTime map[problem.Arc]float64, capacity float64) (*problem.Data, float64, error) {
	n := inst.NumNodes()
	end := inst.NumCustomers + 1

	graph := make(map[int][]int, n)
	for i := 0; i < n; i++ {
		graph[i] = nil
	}

	demand := make(map[int]float64, n)
	window := make(map[int]problem.Window, n)
	for i := 0; i < n; i++ {
		demand[i] = inst.Demand[i]
		window[i] = problem.Window{Lower: inst.ReadyTime[i], Upper: inst.DueDate[i]}
	}

	var total, kept int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			total++

			if j == 0 || i == end {
				continue
			}
			if inst.Demand[i]+inst.Demand[j] > capacity {
				continue
			}
			a := problem.Arc{From: i, To: j}
			tt, ok := travelTime[a]
			if !ok {
				continue
			}
			if inst.ReadyTime[i]+tt > inst.DueDate[j] {
				continue
			}

			graph[i] = append(graph[i], j)
			kept++
		}
	}

	var filteredRatio float64
	if total > 0 {
		filteredRatio = 1 - float64(kept)/float64(total)
	}

	pd, err := problem.New(inst.NumCustomers, capacity, graph, cost, travelTime, demand, window)
	if err != nil {
		return nil, 0, err
	}
	return pd, filteredRatio, nil
}
