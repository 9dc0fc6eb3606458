// Package orchestrator implements the column-generation master loop: it
// solves the restricted master problem, translates duals into the
// pricing model's reduced costs, calls the labeling solver, and either
// adds the discovered column or declares convergence.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/OR-toolkit/vrptw/internal/espprc"
	"github.com/OR-toolkit/vrptw/internal/problem"
	"github.com/OR-toolkit/vrptw/internal/rmp"
	"github.com/OR-toolkit/vrptw/pkg/apperror"
	"github.com/OR-toolkit/vrptw/pkg/logger"
)

// ColumnResult is one non-negligible RMP variable in the final solution:
// its LP value and the elementary path it represents.
type ColumnResult struct {
	Value float64
	Path  []int
}

// Result is what Run returns: the RMP's final objective, the retained
// columns with value above the reporting threshold, and whether the
// iteration cap cut the search short of a certified LP optimum.
type Result struct {
	Objective           float64
	Columns             map[string]ColumnResult
	IterationCapReached bool
}

// Orchestrator couples one ESPPTWC pricing model to one restricted master
// problem, keeping the abstract rmp.Model and the LP backend adapter in
// sync as columns are added.
type Orchestrator struct {
	data    *problem.Data
	pricing *espprc.Model
	model   *rmp.Model
	adapter rmp.LPAdapter

	paths                [][]int       // paths[i] is the path for RMP variable "p_i"
	constraintToCustomer map[string]int
}

// New builds an Orchestrator over pd and seeds the restricted master
// problem with one ">= 1" cover constraint per customer and one trivial
// single-customer route "p_0".."p_{N-1}" wherever the direct
// depot -> customer -> depot arcs survived arc filtering.
func New(pd *problem.Data, adapter rmp.LPAdapter) (*Orchestrator, error) {
	if pd == nil {
		return nil, apperror.ErrNilProblemData
	}

	o := &Orchestrator{
		data:                 pd,
		pricing:              espprc.NewModel(pd),
		model:                rmp.NewModel(),
		adapter:              adapter,
		constraintToCustomer: make(map[string]int),
	}

	if err := o.seedSetCovering(); err != nil {
		return nil, err
	}
	return o, nil
}

// seedSetCovering is the Set-Covering Builder: one cover constraint per
// customer (always added, regardless of whether a trivial route exists
// for it — pricing may later discover a longer route), plus one trivial
// route variable per customer whose direct depot legs survived arc
// filtering.
func (o *Orchestrator) seedSetCovering() error {
	n := o.data.NumCustomers
	end := o.data.EndDepot()

	for j := 1; j <= n; j++ {
		name := fmt.Sprintf("cover_element_%d", j)
		constraint := rmp.Constraint{Name: name, Sense: rmp.SenseGE, RHS: 1}
		if err := o.model.AddConstraint(constraint); err != nil {
			return err
		}
		if err := o.adapter.AddConstraint(constraint); err != nil {
			return err
		}
		o.constraintToCustomer[name] = j
	}

	for j := 1; j <= n; j++ {
		toCustomer := problem.Arc{From: 0, To: j}
		toDepot := problem.Arc{From: j, To: end}
		if _, ok := o.data.Cost[toCustomer]; !ok {
			continue
		}
		if _, ok := o.data.Cost[toDepot]; !ok {
			continue
		}

		path := []int{0, j, end}
		if err := o.addColumn(path, o.pricing.PathCost(path)); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the CG loop for at most maxIterations iterations, stopping
// early once pricing finds no column with reduced cost below -tol. ctx is
// checked once per iteration, before the (synchronous, opaque) RMP solve.
func (o *Orchestrator) Run(ctx context.Context, maxIterations int, tol float64) (*Result, error) {
	var lastObjective float64
	var lastPrimal map[string]float64
	converged := false

	for iter := 0; iter < maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		objective, primal, dual, err := o.adapter.Solve()
		if err != nil {
			return nil, err
		}
		lastObjective, lastPrimal = objective, primal

		o.pricing.AdjustCosts(o.translateDuals(dual))

		solutions, minRC := espprc.NewLabelingSolver(o.pricing, espprc.SelectorMinReducedCost).Solve()
		if len(solutions) == 0 {
			return nil, apperror.ErrPricingInfeasible
		}

		if minRC >= -tol {
			converged = true
			logger.Info("column generation converged", "iteration", iter, "objective", objective, "min_reduced_cost", minRC)
			break
		}

		path := solutions[0].Path
		cost := o.pricing.PathCost(path)
		if err := o.addColumn(path, cost); err != nil {
			return nil, err
		}
		logger.Debug("added column", "iteration", iter, "name", fmt.Sprintf("p_%d", len(o.paths)-1), "reduced_cost", minRC, "true_cost", cost)
	}

	if !converged {
		logger.Warn("iteration cap reached before convergence", "max_iterations", maxIterations)
		objective, primal, _, err := o.adapter.Solve()
		if err != nil {
			return nil, err
		}
		lastObjective, lastPrimal = objective, primal
	}

	result := &Result{
		Objective:           lastObjective,
		IterationCapReached: !converged,
		Columns:             make(map[string]ColumnResult),
	}
	for name, value := range lastPrimal {
		if value > 1e-8 {
			idx, ok := o.model.VariableIndex(name)
			if !ok {
				continue
			}
			result.Columns[name] = ColumnResult{Value: value, Path: o.paths[idx]}
		}
	}
	return result, nil
}

// translateDuals rekeys the LP adapter's constraint-name dual map to a
// customer-index map. Customers with no entry in dual, and the depot
// (which never has a cover constraint), are simply absent from the
// result; Model.AdjustCosts treats a missing dual as 0.
func (o *Orchestrator) translateDuals(dual map[string]float64) map[int]float64 {
	byCustomer := make(map[int]float64, len(dual))
	for name, value := range dual {
		if customer, ok := o.constraintToCustomer[name]; ok {
			byCustomer[customer] = value
		}
	}
	return byCustomer
}

// translatePathToColumns builds the sparse column coefficients for path:
// a 1 in "cover_element_{j}" for every customer j on the path, excluding
// the start and end depot.
func (o *Orchestrator) translatePathToColumns(path []int) map[string]float64 {
	end := o.data.EndDepot()
	coeffs := make(map[string]float64)
	for _, node := range path {
		if node == 0 || node == end {
			continue
		}
		coeffs[fmt.Sprintf("cover_element_%d", node)] = 1
	}
	return coeffs
}

// addColumn registers path as a new RMP variable "p_{|paths|}" in both the
// abstract model and the LP backend, and records it for later path
// lookup.
func (o *Orchestrator) addColumn(path []int, cost float64) error {
	name := fmt.Sprintf("p_%d", len(o.paths))
	variable := rmp.Variable{Name: name, LB: 0, UB: 1, ObjCoeff: cost}
	coeffs := o.translatePathToColumns(path)

	if err := o.model.AddVariable(variable, coeffs); err != nil {
		return err
	}
	if err := o.adapter.AddVariable(variable, coeffs); err != nil {
		return err
	}
	o.paths = append(o.paths, path)
	return nil
}
