// Package lpsolver implements the LP backend behind the restricted master
// problem: a from-scratch two-phase dense-tableau simplex, the one
// hand-written numerical algorithm in this repository (see DESIGN.md for
// why no pack library covers an incremental, dual-returning simplex).
// Matrix/vector arithmetic for the tableau and the final dual recovery
// step both go through gonum.org/v1/gonum/mat rather than bare slices.
package lpsolver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/OR-toolkit/vrptw/internal/rmp"
	"github.com/OR-toolkit/vrptw/pkg/apperror"
)

// Solver is a standalone two-phase simplex LP backend satisfying
// rmp.LPAdapter. It keeps its own copy of the variable/constraint tables
// so it has no dependency on rmp.Model's internals; the orchestrator
// keeps both in sync by calling AddVariable/AddConstraint on each.
type Solver struct {
	variables   []rmp.Variable
	constraints []rmp.Constraint

	variableIndex   map[string]int
	constraintIndex map[string]int
}

// NewSolver returns an empty LP solver.
func NewSolver() *Solver {
	return &Solver{
		variableIndex:   make(map[string]int),
		constraintIndex: make(map[string]int),
	}
}

// AddConstraint adds one row. Constraint names must be unique.
func (s *Solver) AddConstraint(c rmp.Constraint) error {
	if _, exists := s.constraintIndex[c.Name]; exists {
		return apperror.New(apperror.CodeInvalidArgument, "duplicate constraint name: "+c.Name).WithField("name")
	}
	s.constraintIndex[c.Name] = len(s.constraints)
	s.constraints = append(s.constraints, c)
	return nil
}

// AddVariable adds one column. This solver only supports variables with
// lower bound 0, which is the only bound the column-generation relaxation
// ever uses (x_p ∈ [0,1]).
func (s *Solver) AddVariable(v rmp.Variable, colCoeffs map[string]float64) error {
	if _, exists := s.variableIndex[v.Name]; exists {
		return apperror.New(apperror.CodeInvalidArgument, "duplicate variable name: "+v.Name).WithField("name")
	}
	if v.LB != 0 {
		return apperror.New(apperror.CodeInvalidArgument, "lpsolver requires variable lower bound 0").WithField("lb")
	}

	s.variableIndex[v.Name] = len(s.variables)
	s.variables = append(s.variables, v)

	for name, coeff := range colCoeffs {
		idx, ok := s.constraintIndex[name]
		if !ok {
			return apperror.New(apperror.CodeInvalidArgument, "unknown constraint in column: "+name).WithField("constraint")
		}
		if s.constraints[idx].Coeffs == nil {
			s.constraints[idx].Coeffs = make(map[string]float64)
		}
		s.constraints[idx].Coeffs[v.Name] = coeff
	}
	return nil
}

// row is one simplex row: either a real named constraint, or a synthetic
// variable-upper-bound row (name == "") excluded from the returned dual
// map.
type row struct {
	name   string
	sense  rmp.Sense
	rhs    float64
	coeffs map[string]float64
}

// Solve runs phase 1 (feasibility, minimizing summed artificials) then
// phase 2 (the true objective) and recovers duals by solving B^T y = c_B
// against the optimal basis's original (pre-pivot) columns.
func (s *Solver) Solve() (objective float64, primal map[string]float64, dual map[string]float64, err error) {
	rows := s.buildRows()

	cols, colOfVar := s.buildStructuralColumns()
	rowExtra := make([][2]int, len(rows)) // [0]=extra col index (slack/surplus), [1]=artificial col index, -1 if absent

	for i, r := range rows {
		switch r.sense {
		case rmp.SenseLE:
			cols = append(cols, column{kind: colSlack, name: r.name, trueCost: 0})
			rowExtra[i] = [2]int{len(cols) - 1, -1}
		case rmp.SenseGE:
			cols = append(cols, column{kind: colSurplus, name: r.name, trueCost: 0})
			surplusIdx := len(cols) - 1
			cols = append(cols, column{kind: colArtificial, name: r.name, trueCost: 0})
			rowExtra[i] = [2]int{surplusIdx, len(cols) - 1}
		case rmp.SenseEQ:
			cols = append(cols, column{kind: colArtificial, name: r.name, trueCost: 0})
			rowExtra[i] = [2]int{-1, len(cols) - 1}
		}
	}

	tab := newTableau(len(rows), cols)
	for i, r := range rows {
		for name, coeff := range r.coeffs {
			if j, ok := colOfVar[name]; ok {
				tab.data.Set(i, j, coeff)
			}
		}
		tab.setRHS(i, r.rhs)

		extra := rowExtra[i]
		switch r.sense {
		case rmp.SenseLE:
			tab.data.Set(i, extra[0], 1)
			tab.basis[i] = extra[0]
		case rmp.SenseGE:
			tab.data.Set(i, extra[0], -1)
			tab.data.Set(i, extra[1], 1)
			tab.basis[i] = extra[1]
		case rmp.SenseEQ:
			tab.data.Set(i, extra[1], 1)
			tab.basis[i] = extra[1]
		}
	}

	original := mat.DenseCopyOf(tab.data)

	phase1Costs := make([]float64, tab.numCols)
	for j, c := range cols {
		if c.kind == colArtificial {
			phase1Costs[j] = 1
		}
	}

	if unbounded := runSimplex(tab, phase1Costs, nil); unbounded {
		return 0, nil, nil, apperror.ErrRMPInfeasible
	}

	phase1Obj := 0.0
	for i, b := range tab.basis {
		phase1Obj += phase1Costs[b] * tab.rhs(i)
	}
	if phase1Obj > 1e-6 {
		return 0, nil, nil, apperror.ErrRMPInfeasible
	}

	phase2Costs := make([]float64, tab.numCols)
	disallowed := make([]bool, tab.numCols)
	for j, c := range cols {
		phase2Costs[j] = c.trueCost
		if c.kind == colArtificial {
			disallowed[j] = true
		}
	}

	if unbounded := runSimplex(tab, phase2Costs, disallowed); unbounded {
		return 0, nil, nil, apperror.ErrRMPUnbounded
	}

	m := len(rows)
	B := mat.NewDense(m, m, nil)
	cB := make([]float64, m)
	for idx, basicCol := range tab.basis {
		for i := 0; i < m; i++ {
			B.Set(i, idx, original.At(i, basicCol))
		}
		cB[idx] = phase2Costs[basicCol]
	}

	var y mat.VecDense
	if err := y.SolveVec(B.T(), mat.NewVecDense(m, cB)); err != nil {
		return 0, nil, nil, apperror.Wrap(err, apperror.CodeInternal, "failed to recover dual values from optimal basis")
	}

	primal = make(map[string]float64, len(s.variables))
	for _, v := range s.variables {
		primal[v.Name] = 0
	}
	for idx, basicCol := range tab.basis {
		if cols[basicCol].kind == colStructural {
			primal[cols[basicCol].name] = tab.rhs(idx)
		}
	}

	dual = make(map[string]float64, len(s.constraints))
	for i, r := range rows {
		if r.name == "" {
			continue // synthetic variable-upper-bound row
		}
		dual[r.name] = y.AtVec(i)
	}

	objective = 0
	for idx, basicCol := range tab.basis {
		objective += phase2Costs[basicCol] * tab.rhs(idx)
	}

	return objective, primal, dual, nil
}

// buildRows concatenates the real constraint table with one synthetic
// "x <= UB" row per variable carrying a finite upper bound.
func (s *Solver) buildRows() []row {
	rows := make([]row, 0, len(s.constraints)+len(s.variables))
	for _, c := range s.constraints {
		rows = append(rows, row{name: c.Name, sense: c.Sense, rhs: c.RHS, coeffs: c.Coeffs})
	}
	for _, v := range s.variables {
		if v.UB < 1e300 {
			rows = append(rows, row{
				name:   "",
				sense:  rmp.SenseLE,
				rhs:    v.UB,
				coeffs: map[string]float64{v.Name: 1},
			})
		}
	}
	return rows
}

func (s *Solver) buildStructuralColumns() ([]column, map[string]int) {
	cols := make([]column, len(s.variables))
	index := make(map[string]int, len(s.variables))
	for i, v := range s.variables {
		cols[i] = column{kind: colStructural, name: v.Name, trueCost: v.ObjCoeff}
		index[v.Name] = i
	}
	return cols, index
}
