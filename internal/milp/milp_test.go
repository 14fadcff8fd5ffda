package milp

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestGonumBackend_SimpleEquality(t *testing.T) {
	// maximize x0 + x1 subject to x0 + 2*x1 = 3, 0 <= x0,x1 <= 3, integer.
	// x0=3,x1=0 gives objective 3 and is optimal.
	p := Problem{
		Obj:     []float64{1, 1},
		Eq:      mat.NewDense(1, 2, []float64{1, 2}),
		Rhs:     []float64{3},
		Upper:   []float64{3, 3},
		Integer: []bool{true, true},
	}

	backend := &GonumBackend{Workers: 2}
	sol, err := backend.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("expected StatusOptimal, got %v", sol.Status)
	}
	if sol.Objective != 3 {
		t.Fatalf("expected objective 3, got %v (x=%v)", sol.Objective, sol.X)
	}
}

func TestGonumBackend_Infeasible(t *testing.T) {
	// x0 = 5 but Upper caps x0 at 3: infeasible.
	p := Problem{
		Obj:     []float64{1},
		Eq:      mat.NewDense(1, 1, []float64{1}),
		Rhs:     []float64{5},
		Upper:   []float64{3},
		Integer: []bool{true},
	}

	backend := &GonumBackend{Workers: 1}
	sol, err := backend.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if sol.Status != StatusInfeasible {
		t.Fatalf("expected StatusInfeasible, got %v", sol.Status)
	}
}

func TestGonumBackend_Unbounded(t *testing.T) {
	// maximize x0 s.t. x0 - x1 = 0 with no upper bounds: x0 = x1 can grow
	// without limit, so the status must be unbounded, not infeasible.
	p := Problem{
		Obj:     []float64{1, 0},
		Eq:      mat.NewDense(1, 2, []float64{1, -1}),
		Rhs:     []float64{0},
		Upper:   []float64{math.Inf(1), math.Inf(1)},
		Integer: []bool{true, true},
	}

	backend := &GonumBackend{Workers: 1}
	sol, err := backend.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if sol.Status != StatusUnbounded {
		t.Fatalf("expected StatusUnbounded, got %v", sol.Status)
	}
}

func TestGonumBackend_RequiresBranching(t *testing.T) {
	// maximize x0 + x1 s.t. 2*x0 + 2*x1 = 5 has a fractional-only LP
	// relaxation optimum (x0+x1=2.5); no integer point satisfies the
	// equality exactly, so this must be reported infeasible rather than
	// silently rounded.
	p := Problem{
		Obj:     []float64{1, 1},
		Eq:      mat.NewDense(1, 2, []float64{2, 2}),
		Rhs:     []float64{5},
		Upper:   []float64{4, 4},
		Integer: []bool{true, true},
	}

	backend := &GonumBackend{Workers: 1}
	sol, err := backend.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if sol.Status != StatusInfeasible {
		t.Fatalf("expected StatusInfeasible for an unsatisfiable equality, got %v", sol.Status)
	}
}
