// Package milp implements a small mixed-integer linear programming backend,
// exposing the single capability the solver core needs: given a maximization
// problem over non-negative bounded integer variables with linear equality
// constraints, return an optimal solution or report infeasibility.
//
// The solver is a branch-and-bound over LP relaxations: a root relaxation
// solved via a simplex method, an enumeration of subproblems produced by
// branching on a fractional integer variable, and worker-parallel traversal
// of that enumeration, specialized to this engine's equality+box-constrained
// problem shape.
package milp

import "gonum.org/v1/gonum/mat"

// Problem is a maximization MILP in the shape the Rummikub solver core
// always produces: maximize Obj . x subject to Eq . x = Rhs, 0 <= x <= Upper,
// with every variable marked integral in Integer.
type Problem struct {
	// Obj has one entry per variable; Solve maximizes Obj . x.
	Obj []float64
	// Eq is an m x n constraint matrix; Rhs has length m.
	Eq  *mat.Dense
	Rhs []float64
	// Upper is the per-variable upper bound (inclusive); lower bound is
	// always 0.
	Upper []float64
	// Integer marks which variables are constrained to integer values.
	// All Rummikub solver variables are integral, but the field is kept
	// general so a non-integral slack could be added without reshaping
	// the type.
	Integer []bool
}

// NumVars returns the number of decision variables in the problem.
func (p Problem) NumVars() int {
	return len(p.Obj)
}

// Status reports the outcome of a Solve call.
type Status int

const (
	// StatusOptimal means X holds an optimal solution.
	StatusOptimal Status = iota
	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible
	// StatusUnbounded means the objective is unbounded over the feasible
	// region. Not expected for the solver core's problems: their only
	// variable without a finite upper bound, the initial-meld slack, has a
	// zero objective coefficient. Reported distinctly from infeasibility.
	StatusUnbounded
)

// Solution is the outcome of solving a Problem.
type Solution struct {
	Status    Status
	X         []float64 // variable values, valid only when Status == StatusOptimal
	Objective float64    // valid only when Status == StatusOptimal
}
