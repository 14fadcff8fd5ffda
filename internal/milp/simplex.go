package milp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// bounds holds the current per-variable [lo, hi] box for one search node.
// The root node's bounds are [0, Problem.Upper] for every variable; each
// branching step tightens exactly one variable's lo or hi.
type bounds struct {
	lo []float64
	hi []float64
}

func rootBounds(p Problem) bounds {
	lo := make([]float64, p.NumVars())
	hi := make([]float64, p.NumVars())
	copy(hi, p.Upper)
	return bounds{lo: lo, hi: hi}
}

func (b bounds) clone() bounds {
	lo := append([]float64(nil), b.lo...)
	hi := append([]float64(nil), b.hi...)
	return bounds{lo: lo, hi: hi}
}

// relaxation is the outcome of solving one node's LP relaxation.
type relaxation struct {
	feasible  bool
	unbounded bool
	x         []float64 // length p.NumVars(), the relaxed (possibly fractional) solution
	obj       float64   // maximized objective value
}

// solveRelaxation builds the simplex standard form for the equality
// constraints plus the node's box bounds, and solves it.
//
// gonum's lp.Simplex solves min c'x s.t. A x = b, x >= 0. Upper bounds and
// nonzero lower bounds are not natively supported, so each bound is folded in
// as an extra equality row with a slack variable: x_i + s = hi_i enforces
// x_i <= hi_i, and x_i - s = lo_i enforces x_i >= lo_i (both with s >= 0).
// The equality rows inherited from Problem.Eq are left untouched; only rows
// and columns for the active bounds are appended, rebuilt fresh for every
// node rather than incrementally patched, since nodes vary only in which
// bounds are tightened, not in the original constraint structure.
func solveRelaxation(p Problem, b bounds) relaxation {
	n := p.NumVars()
	m, _ := p.Eq.Dims()

	type boundRow struct {
		varIdx int
		rhs    float64
		isUpper bool
	}
	var extra []boundRow
	for i := 0; i < n; i++ {
		if !math.IsInf(b.hi[i], 1) {
			extra = append(extra, boundRow{varIdx: i, rhs: b.hi[i], isUpper: true})
		}
		if b.lo[i] > 0 {
			extra = append(extra, boundRow{varIdx: i, rhs: b.lo[i], isUpper: false})
		}
	}

	rows := m + len(extra)
	cols := n + len(extra)

	A := mat.NewDense(rows, cols, nil)
	rhs := make([]float64, rows)
	c := make([]float64, cols)

	for i := 0; i < n; i++ {
		c[i] = -p.Obj[i] // minimize the negated objective == maximize Obj
	}

	for r := 0; r < m; r++ {
		for col := 0; col < n; col++ {
			A.Set(r, col, p.Eq.At(r, col))
		}
		rhs[r] = p.Rhs[r]
	}

	for k, row := range extra {
		r := m + k
		slackCol := n + k
		A.Set(r, row.varIdx, 1)
		if row.isUpper {
			A.Set(r, slackCol, 1)
		} else {
			A.Set(r, slackCol, -1)
		}
		rhs[r] = row.rhs
	}

	minVal, x, err := lp.Simplex(c, A, rhs, 0, nil)
	if err != nil {
		if errors.Is(err, lp.ErrUnbounded) {
			return relaxation{unbounded: true}
		}
		return relaxation{feasible: false}
	}
	return relaxation{
		feasible: true,
		x:        x[:n],
		obj:      -minVal,
	}
}
