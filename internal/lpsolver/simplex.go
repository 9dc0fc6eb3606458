package lpsolver

import "gonum.org/v1/gonum/mat"

// columnKind classifies a tableau column for dual/primal extraction once
// the simplex has converged.
type columnKind int

const (
	colStructural columnKind = iota
	colSlack
	colSurplus
	colArtificial
)

type column struct {
	kind  columnKind
	name  string // variable name for colStructural, constraint name otherwise
	trueCost float64
}

const pivotTolerance = 1e-9

// tableau is a dense two-phase simplex tableau: rows are constraints, the
// last column is the right-hand side, and the matrix is kept in canonical
// form (B^-1 A) after every pivot via elementary row operations.
type tableau struct {
	data    *mat.Dense // m x (numCols+1), last column is RHS
	cols    []column
	basis   []int // basis[i] = column index basic in row i
	numCols int
}

func newTableau(rows int, cols []column) *tableau {
	return &tableau{
		data:    mat.NewDense(rows, len(cols)+1, nil),
		cols:    cols,
		basis:   make([]int, rows),
		numCols: len(cols),
	}
}

func (t *tableau) rhs(row int) float64       { return t.data.At(row, t.numCols) }
func (t *tableau) setRHS(row int, v float64) { t.data.Set(row, t.numCols, v) }

// reducedCosts computes c_j - z_j for every column given the true/phase
// cost vector, reading z_j directly off the current (already
// row-reduced) tableau columns.
func (t *tableau) reducedCosts(costs []float64) []float64 {
	rows, _ := t.data.Dims()
	cB := make([]float64, rows)
	for i, b := range t.basis {
		cB[i] = costs[b]
	}
	reduced := make([]float64, t.numCols)
	for j := 0; j < t.numCols; j++ {
		var z float64
		for i := 0; i < rows; i++ {
			z += cB[i] * t.data.At(i, j)
		}
		reduced[j] = costs[j] - z
	}
	return reduced
}

// pivot performs Gauss-Jordan elimination around (row, col) and records
// col as the new basic column for row.
func (t *tableau) pivot(row, col int) {
	rows, totalCols := t.data.Dims()
	pv := t.data.At(row, col)
	for j := 0; j < totalCols; j++ {
		t.data.Set(row, j, t.data.At(row, j)/pv)
	}
	for i := 0; i < rows; i++ {
		if i == row {
			continue
		}
		factor := t.data.At(i, col)
		if factor == 0 {
			continue
		}
		for j := 0; j < totalCols; j++ {
			t.data.Set(i, j, t.data.At(i, j)-factor*t.data.At(row, j))
		}
	}
	t.basis[row] = col
}

// runSimplex drives the tableau to optimality against costs using Bland's
// rule for both entering and leaving variable selection, which guarantees
// termination without cycling. disallowed marks columns (artificials in
// phase 2) that must never re-enter the basis. It returns false once no
// entering column can improve the objective (optimal) and true when an
// entering column has no positive ratio-test candidate (unbounded).
func runSimplex(t *tableau, costs []float64, disallowed []bool) (unbounded bool) {
	for {
		reduced := t.reducedCosts(costs)

		enter := -1
		for j := 0; j < t.numCols; j++ {
			if disallowed != nil && disallowed[j] {
				continue
			}
			if reduced[j] < -pivotTolerance {
				enter = j
				break
			}
		}
		if enter == -1 {
			return false
		}

		rows, _ := t.data.Dims()
		leave := -1
		bestRatio := 0.0
		for i := 0; i < rows; i++ {
			a := t.data.At(i, enter)
			if a <= pivotTolerance {
				continue
			}
			ratio := t.rhs(i) / a
			if leave == -1 || ratio < bestRatio-pivotTolerance ||
				(ratio < bestRatio+pivotTolerance && t.basis[i] < t.basis[leave]) {
				leave = i
				bestRatio = ratio
			}
		}
		if leave == -1 {
			return true
		}

		t.pivot(leave, enter)
	}
}
