package milp

import (
	"context"
	"runtime"
)

// Backend is the single capability the solver core needs from a MILP
// implementation: given parameters, constraints, and an objective (all
// bundled in Problem), return optimal variable values or a distinct
// infeasible/unbounded status. Callers depend on this interface, never on
// GonumBackend directly, so another backend can be substituted.
type Backend interface {
	Solve(ctx context.Context, p Problem) (Solution, error)
}

// GonumBackend solves Problem via branch-and-bound over LP relaxations,
// each relaxation solved with gonum's simplex method.
type GonumBackend struct {
	// Workers bounds how many LP relaxations are solved concurrently.
	// Zero selects GOMAXPROCS.
	Workers int
}

// NewGonumBackend returns a GonumBackend sized to the available CPUs.
func NewGonumBackend() *GonumBackend {
	return &GonumBackend{Workers: runtime.GOMAXPROCS(0)}
}

// Solve implements Backend.
func (g *GonumBackend) Solve(ctx context.Context, p Problem) (Solution, error) {
	workers := g.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return branchAndBound(ctx, p, workers), nil
}
