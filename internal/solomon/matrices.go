package solomon

import (
	"math"

	"github.com/OR-toolkit/vrptw/internal/problem"
)

// Matrices derives the Euclidean-distance cost matrix c(i,j) and the
// service-time-adjusted travel-time matrix tau(i,j) = c(i,j) +
// service_time(i) for every ordered pair i != j over inst's nodes.
func Matrices(inst *Instance) (cost, travelTime map[problem.Arc]float64) {
	n := inst.NumNodes()
	cost = make(map[problem.Arc]float64, n*(n-1))
	travelTime = make(map[problem.Arc]float64, n*(n-1))

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dx := inst.X[i] - inst.X[j]
			dy := inst.Y[i] - inst.Y[j]
			d := math.Sqrt(dx*dx + dy*dy)

			a := problem.Arc{From: i, To: j}
			cost[a] = d
			travelTime[a] = d + inst.ServiceTime[i]
		}
	}
	return cost, travelTime
}
