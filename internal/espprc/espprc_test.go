package espprc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OR-toolkit/vrptw/internal/problem"
)

// newScenarioAData builds the fixture grounded on
// original_source/src/test_data_instances.py's espptwc_test_1: N=3, Q=10,
// single-customer routes 0->j->4 costing 11, 9, 9, and combined customer
// demand (4+7+3=14) exceeding capacity.
func newScenarioAData(t *testing.T) *problem.Data {
	t.Helper()

	graph := map[int][]int{
		0: {1, 2, 3},
		1: {4},
		2: {4},
		3: {4},
		4: {},
	}
	cost := map[problem.Arc]float64{
		{From: 0, To: 1}: 5, {From: 1, To: 4}: 6,
		{From: 0, To: 2}: 4, {From: 2, To: 4}: 5,
		{From: 0, To: 3}: 4, {From: 3, To: 4}: 5,
	}
	travelTime := map[problem.Arc]float64{}
	for a, c := range cost {
		travelTime[a] = c
	}
	demand := map[int]float64{0: 0, 1: 4, 2: 7, 3: 3, 4: 0}
	window := map[int]problem.Window{
		0: {Lower: 0, Upper: 100},
		1: {Lower: 0, Upper: 20},
		2: {Lower: 0, Upper: 25},
		3: {Lower: 0, Upper: 40},
		4: {Lower: 0, Upper: 100},
	}

	pd, err := problem.New(3, 10, graph, cost, travelTime, demand, window)
	require.NoError(t, err)
	return pd
}

func TestLabelingSolver_ScenarioA_TieOnMinimumCostRoutes(t *testing.T) {
	pd := newScenarioAData(t)
	model := NewModel(pd)
	model.AdjustCosts(nil)

	solver := NewLabelingSolver(model, SelectorMinReducedCost)
	solutions, minRC := solver.Solve()

	assert.Equal(t, 9.0, minRC)
	require.Len(t, solutions, 2, "routes through customer 2 and customer 3 tie at cost 9")

	gotPaths := map[[3]int]bool{}
	for _, s := range solutions {
		require.Len(t, s.Path, 3)
		gotPaths[[3]int{s.Path[0], s.Path[1], s.Path[2]}] = true
	}
	assert.True(t, gotPaths[[3]int{0, 2, 4}])
	assert.True(t, gotPaths[[3]int{0, 3, 4}])
}

func TestLabelingSolver_FIFOAndLIFOAgreeOnOptimum(t *testing.T) {
	pd := newScenarioAData(t)

	for _, sel := range []Selector{SelectorFIFO, SelectorLIFO, SelectorMinReducedCost} {
		model := NewModel(pd)
		model.AdjustCosts(nil)
		_, minRC := NewLabelingSolver(model, sel).Solve()
		assert.Equal(t, 9.0, minRC, "selector %v should find the same optimum", sel)
	}
}

// TestExtend_ElementarityRejectsRevisit is Scenario D: a label at node 1
// with path [0,2,1] must be rejected when extended to node 2, since 2 is
// already in the path.
func TestExtend_ElementarityRejectsRevisit(t *testing.T) {
	graph := map[int][]int{
		0: {2}, 2: {1}, 1: {2},
	}
	cost := map[problem.Arc]float64{
		{From: 0, To: 2}: 1, {From: 2, To: 1}: 1, {From: 1, To: 2}: 1,
	}
	travelTime := map[problem.Arc]float64{
		{From: 0, To: 2}: 1, {From: 2, To: 1}: 1, {From: 1, To: 2}: 1,
	}
	demand := map[int]float64{0: 0, 1: 1, 2: 1}
	window := map[int]problem.Window{
		0: {Lower: 0, Upper: 100},
		1: {Lower: 0, Upper: 100},
		2: {Lower: 0, Upper: 100},
	}
	pd, err := problem.New(1, 100, graph, cost, travelTime, demand, window)
	require.NoError(t, err)

	model := NewModel(pd)
	model.AdjustCosts(nil)

	label := &Label{
		Node: 1,
		Path: []int{0, 2, 1},
		Resources: [4]Resource{
			resourceReducedCost: {Scalar: 2},
			resourceTime:        {Scalar: 2},
			resourceLoad:        {Scalar: 1},
			resourceVisited:     {Bits: []bool{true, true, true}},
		},
	}

	_, ok := model.Extend(label, 2)
	assert.False(t, ok, "extending to an already-visited node must be rejected")
}

// TestExtend_TimeWindowWaiting is Scenario E: arc tau(0,1)=6, a(1)=10; the
// time resource after extension must be 10 (waiting for the window to
// open), not 6.
func TestExtend_TimeWindowWaiting(t *testing.T) {
	graph := map[int][]int{0: {1}, 1: {}}
	cost := map[problem.Arc]float64{{From: 0, To: 1}: 6}
	travelTime := map[problem.Arc]float64{{From: 0, To: 1}: 6}
	demand := map[int]float64{0: 0, 1: 0}
	window := map[int]problem.Window{
		0: {Lower: 0, Upper: 100},
		1: {Lower: 10, Upper: 100},
	}
	pd, err := problem.New(0, 100, graph, cost, travelTime, demand, window)
	require.NoError(t, err)

	model := NewModel(pd)
	model.AdjustCosts(nil)

	initial := model.InitialLabel()
	extended, ok := model.Extend(initial, 1)
	require.True(t, ok)
	assert.True(t, model.Feasible(extended))
	assert.Equal(t, 10.0, extended.Resources[resourceTime].Scalar)
}

func TestDominates_EqualLabelsDominateForTieBreak(t *testing.T) {
	bits := []bool{true, false}
	a := &Label{Node: 1, Resources: [4]Resource{
		{Scalar: 1}, {Scalar: 2}, {Scalar: 3}, {Bits: bits},
	}}
	b := &Label{Node: 1, Resources: [4]Resource{
		{Scalar: 1}, {Scalar: 2}, {Scalar: 3}, {Bits: bits},
	}}
	assert.True(t, dominates(a, b))
	assert.True(t, dominates(b, a))
}

func TestDominates_StrictlyBetterDominatesStrictlyWorse(t *testing.T) {
	better := &Label{Node: 1, Resources: [4]Resource{
		{Scalar: 1}, {Scalar: 2}, {Scalar: 3}, {Bits: []bool{true, false}},
	}}
	worse := &Label{Node: 1, Resources: [4]Resource{
		{Scalar: 2}, {Scalar: 2}, {Scalar: 3}, {Bits: []bool{true, true}},
	}}
	assert.True(t, dominates(better, worse))
	assert.False(t, dominates(worse, better))
}

func TestDominates_DifferentNodesNeverDominate(t *testing.T) {
	a := &Label{Node: 1}
	b := &Label{Node: 2}
	assert.False(t, dominates(a, b))
}

// TestFeasible_RejectsCapacityAndWindowViolations covers property 2:
// surviving labels must respect load <= Q and time <= b(node).
func TestFeasible_RejectsCapacityAndWindowViolations(t *testing.T) {
	pd := newScenarioAData(t)
	model := NewModel(pd)
	model.AdjustCosts(nil)

	overCapacity := &Label{Node: 1, Resources: [4]Resource{
		{Scalar: 0}, {Scalar: 5}, {Scalar: 11}, {Bits: make([]bool, pd.NumNodes())},
	}}
	assert.False(t, model.Feasible(overCapacity))

	lateArrival := &Label{Node: 1, Resources: [4]Resource{
		{Scalar: 0}, {Scalar: 25}, {Scalar: 4}, {Bits: make([]bool, pd.NumNodes())},
	}}
	assert.False(t, model.Feasible(lateArrival))

	onTime := &Label{Node: 1, Resources: [4]Resource{
		{Scalar: 0}, {Scalar: 5}, {Scalar: 4}, {Bits: make([]bool, pd.NumNodes())},
	}}
	assert.True(t, model.Feasible(onTime))
}

func TestAdjustCosts_DefaultsMissingDualsToZero(t *testing.T) {
	pd := newScenarioAData(t)
	model := NewModel(pd)

	model.AdjustCosts(map[int]float64{0: 3})

	assert.Equal(t, 5.0-3, pd.AdjustedCost[problem.Arc{From: 0, To: 1}])
	assert.Equal(t, 6.0-0, pd.AdjustedCost[problem.Arc{From: 1, To: 4}])
}

func TestPathCost_SumsTrueCostNotReducedCost(t *testing.T) {
	pd := newScenarioAData(t)
	model := NewModel(pd)
	model.AdjustCosts(map[int]float64{0: 100}) // reduced cost would go deeply negative

	got := model.PathCost([]int{0, 2, 4})
	assert.Equal(t, 9.0, got)
}

func TestLabelArena_ReusesReleasedSlots(t *testing.T) {
	arena := newLabelArena()
	h1 := arena.alloc(Label{Node: 1})
	h2 := arena.alloc(Label{Node: 2})
	arena.release(h1)
	h3 := arena.alloc(Label{Node: 3})

	assert.Equal(t, h1, h3, "a released slot should be reused rather than growing the arena")
	assert.Equal(t, 2, arena.get(h2).Node)
	assert.Equal(t, 3, arena.get(h3).Node)
}
