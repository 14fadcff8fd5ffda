package milp

import (
	"context"
	"math"
	"runtime"
	"sync"
)

const integerTol = 1e-6

// node is one subproblem in the branch-and-bound enumeration: the root
// problem with a tightened variable box.
type node struct {
	bounds bounds
}

// searchState is shared across worker goroutines traversing the enumeration
// tree. frontier is a LIFO stack (depth-first keeps memory bounded); active
// counts goroutines currently solving a node, used for termination detection
// on an otherwise-empty frontier shared by multiple workers.
type searchState struct {
	mu       sync.Mutex
	frontier []node
	active   int

	bestObj   float64
	bestX     []float64
	found     bool
	unbounded bool
}

func (s *searchState) pop() (node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frontier) == 0 {
		return node{}, false
	}
	n := s.frontier[len(s.frontier)-1]
	s.frontier = s.frontier[:len(s.frontier)-1]
	s.active++
	return n, true
}

func (s *searchState) push(ns ...node) {
	if len(ns) == 0 {
		return
	}
	s.mu.Lock()
	s.frontier = append(s.frontier, ns...)
	s.mu.Unlock()
}

func (s *searchState) doneWithNode() {
	s.mu.Lock()
	s.active--
	s.mu.Unlock()
}

// idle reports whether the frontier is empty and no worker currently holds a
// node, meaning the search is complete.
func (s *searchState) idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frontier) == 0 && s.active == 0
}

// incumbentBound returns the best integer-feasible objective found so far,
// or -Inf if none.
func (s *searchState) incumbentBound() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.found {
		return math.Inf(-1)
	}
	return s.bestObj
}

func (s *searchState) considerIncumbent(obj float64, x []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.found || obj > s.bestObj {
		s.found = true
		s.bestObj = obj
		s.bestX = append([]float64(nil), x...)
	}
}

// branchAndBound runs a depth-first, best-effort-parallel branch-and-bound
// search over p's LP relaxations. workers controls how many goroutines solve
// relaxations concurrently, bounding space (and simplex) usage; each worker
// is a potentially concurrent LP solve.
func branchAndBound(ctx context.Context, p Problem, workers int) Solution {
	if workers < 1 {
		workers = 1
	}

	state := &searchState{}
	state.push(node{bounds: rootBounds(p)})

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				n, ok := state.pop()
				if !ok {
					if state.idle() {
						return
					}
					// another worker may still push children; yield and retry.
					runtime.Gosched()
					continue
				}
				processNode(p, n, state)
				state.doneWithNode()
			}
		}()
	}
	wg.Wait()

	if state.unbounded {
		return Solution{Status: StatusUnbounded}
	}
	if !state.found {
		return Solution{Status: StatusInfeasible}
	}
	return Solution{Status: StatusOptimal, X: state.bestX, Objective: state.bestObj}
}

func processNode(p Problem, n node, state *searchState) {
	rel := solveRelaxation(p, n.bounds)
	if rel.unbounded {
		// An unbounded relaxation means the objective has an unbounded ray
		// over this node's box; it can only arise from a caller-supplied
		// infinite upper bound on a variable the objective rewards.
		state.mu.Lock()
		state.unbounded = true
		state.mu.Unlock()
		return
	}
	if !rel.feasible {
		return
	}
	// Bound: if even the (fractional) relaxation can't beat the best
	// integer solution found so far, prune. Objective coefficients here
	// are always integers, so no incumbent can be beaten by a relaxation
	// within integerTol of it either.
	if rel.obj <= state.incumbentBound()+integerTol {
		return
	}

	branchVar, frac := firstFractional(p, rel.x)
	if branchVar < 0 {
		state.considerIncumbent(rel.obj, rel.x)
		return
	}

	floorVal := math.Floor(frac)
	ceilVal := math.Ceil(frac)

	down := n.bounds.clone()
	down.hi[branchVar] = floorVal
	up := n.bounds.clone()
	up.lo[branchVar] = ceilVal

	if down.lo[branchVar] <= down.hi[branchVar] {
		state.push(node{bounds: down})
	}
	if up.lo[branchVar] <= up.hi[branchVar] {
		state.push(node{bounds: up})
	}
}

// firstFractional returns the index of the first integer-constrained
// variable whose relaxed value is not (within tolerance) an integer, and
// that value. Returns -1 if the relaxation is already integer-feasible.
func firstFractional(p Problem, x []float64) (int, float64) {
	for i, isInt := range p.Integer {
		if !isInt {
			continue
		}
		v := x[i]
		if math.Abs(v-math.Round(v)) > integerTol {
			return i, v
		}
	}
	return -1, 0
}
