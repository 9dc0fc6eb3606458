package rmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_AddConstraintThenVariable(t *testing.T) {
	m := NewModel()

	require.NoError(t, m.AddConstraint(Constraint{Name: "cover_element_1", Sense: SenseGE, RHS: 1}))
	require.NoError(t, m.AddConstraint(Constraint{Name: "cover_element_2", Sense: SenseGE, RHS: 1}))

	require.NoError(t, m.AddVariable(
		Variable{Name: "p_0", LB: 0, UB: 1, ObjCoeff: 11},
		map[string]float64{"cover_element_1": 1},
	))

	idx, ok := m.VariableIndex("p_0")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	cIdx, ok := m.ConstraintIndex("cover_element_1")
	require.True(t, ok)
	assert.Equal(t, 1.0, m.Constraints[cIdx].Coeffs["p_0"])
	assert.Zero(t, m.Constraints[1].Coeffs["p_0"], "variable absent from cover_element_2's column")
}

func TestModel_AddVariableRejectsUnknownConstraint(t *testing.T) {
	m := NewModel()
	err := m.AddVariable(Variable{Name: "p_0"}, map[string]float64{"nonexistent": 1})
	assert.Error(t, err)
}

func TestModel_AddVariableRejectsDuplicateName(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.AddVariable(Variable{Name: "p_0"}, nil))
	err := m.AddVariable(Variable{Name: "p_0"}, nil)
	assert.Error(t, err)
}

func TestModel_AddConstraintRejectsDuplicateName(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.AddConstraint(Constraint{Name: "c1", Sense: SenseGE, RHS: 1}))
	err := m.AddConstraint(Constraint{Name: "c1", Sense: SenseGE, RHS: 1})
	assert.Error(t, err)
}

func TestModel_PreservesInsertionOrder(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.AddConstraint(Constraint{Name: "cover_element_1", Sense: SenseGE, RHS: 1}))
	require.NoError(t, m.AddVariable(Variable{Name: "p_0"}, nil))
	require.NoError(t, m.AddVariable(Variable{Name: "p_1"}, nil))

	assert.Equal(t, []string{"p_0", "p_1"}, []string{m.Variables[0].Name, m.Variables[1].Name})
}
