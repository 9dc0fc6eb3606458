// Package rmp models the restricted master problem as a generic linear
// program: an ordered variable table and an ordered constraint table, both
// also indexed by name for O(1) lookup, plus the incremental column-add
// operation column generation relies on.
package rmp

import (
	"github.com/OR-toolkit/vrptw/pkg/apperror"
)

// Sense is a constraint's relational operator.
type Sense int

const (
	SenseLE Sense = iota // <=
	SenseEQ              // =
	SenseGE              // >=
)

// Variable is one column of the LP: its bounds, integrality flag (always
// false for the CG relaxation), and objective coefficient.
type Variable struct {
	Name     string
	LB       float64
	UB       float64
	Integer  bool
	ObjCoeff float64
}

// Constraint is one row of the LP: its nonzero coefficients keyed by
// variable name, sense, and right-hand side.
type Constraint struct {
	Name   string
	Coeffs map[string]float64
	Sense  Sense
	RHS    float64
}

// Model is the abstract LP: ordered tables of variables and constraints,
// preserving insertion order for deterministic iteration while allowing
// O(1) name lookup.
type Model struct {
	Variables   []Variable
	Constraints []Constraint

	variableIndex   map[string]int
	constraintIndex map[string]int
}

// NewModel returns an empty LP model.
func NewModel() *Model {
	return &Model{
		variableIndex:   make(map[string]int),
		constraintIndex: make(map[string]int),
	}
}

// AddConstraint appends c to the constraint table. c's name must be
// unique within the model.
func (m *Model) AddConstraint(c Constraint) error {
	if _, exists := m.constraintIndex[c.Name]; exists {
		return apperror.New(apperror.CodeInvalidArgument, "duplicate constraint name: "+c.Name).WithField("name")
	}
	m.constraintIndex[c.Name] = len(m.Constraints)
	m.Constraints = append(m.Constraints, c)
	return nil
}

// AddVariable appends one column to the variable table, specified only
// by its nonzero coefficients per existing constraint (colCoeffs keyed
// by constraint name). Every constraint not mentioned in colCoeffs gets
// an implicit zero coefficient for this variable.
func (m *Model) AddVariable(v Variable, colCoeffs map[string]float64) error {
	if _, exists := m.variableIndex[v.Name]; exists {
		return apperror.New(apperror.CodeInvalidArgument, "duplicate variable name: "+v.Name).WithField("name")
	}
	for name := range colCoeffs {
		if _, ok := m.constraintIndex[name]; !ok {
			return apperror.New(apperror.CodeInvalidArgument, "unknown constraint in column: "+name).WithField("constraint")
		}
	}

	m.variableIndex[v.Name] = len(m.Variables)
	m.Variables = append(m.Variables, v)

	for name, coeff := range colCoeffs {
		idx := m.constraintIndex[name]
		if m.Constraints[idx].Coeffs == nil {
			m.Constraints[idx].Coeffs = make(map[string]float64)
		}
		m.Constraints[idx].Coeffs[v.Name] = coeff
	}
	return nil
}

// VariableIndex returns the position of a variable by name and whether it
// exists.
func (m *Model) VariableIndex(name string) (int, bool) {
	idx, ok := m.variableIndex[name]
	return idx, ok
}

// ConstraintIndex returns the position of a constraint by name and
// whether it exists.
func (m *Model) ConstraintIndex(name string) (int, bool) {
	idx, ok := m.constraintIndex[name]
	return idx, ok
}

// LPAdapter is the contract any LP backend must satisfy: build up a model
// incrementally and solve it for primal and dual values.
type LPAdapter interface {
	// AddVariable adds one column to the underlying solver state, mirroring
	// Model.AddVariable.
	AddVariable(v Variable, colCoeffs map[string]float64) error

	// AddConstraint adds one row to the underlying solver state.
	AddConstraint(c Constraint) error

	// Solve solves the current LP and returns its objective value, the
	// primal value of every variable by name, and the dual value of every
	// constraint by name.
	Solve() (objective float64, primal map[string]float64, dual map[string]float64, err error)
}
