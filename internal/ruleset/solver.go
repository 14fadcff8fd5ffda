package ruleset

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"rummikub-lite/internal/milp"
	"rummikub-lite/internal/tile"
)

// Mode selects the objective the solver core optimizes.
type Mode int

const (
	// ModeTileCount maximizes the number of tiles placed from the rack.
	ModeTileCount Mode = iota
	// ModeTotalValue maximizes the summed face value of tiles placed.
	ModeTotalValue
	// ModeInitial maximizes non-joker tiles placed subject to the placed
	// sets scoring at least the configured minimum initial value, and
	// never reuses table tiles.
	ModeInitial
)

// SolverSolution is the raw result of one solverCore.solve call: tile
// identifiers to place (each repeated by count) and the indices into
// RuleSet.Sets making up the decomposition.
type SolverSolution struct {
	Tiles      []tile.Tile
	SetIndices []int
}

// solverCore constructs the tile x set incidence matrix once and reuses it
// (and the enumerated sets/values) across every solve call; only the
// per-call objective, equality right-hand side, and variable upper bounds
// vary with the caller's rack/table/mode. The expensive artifact is the
// incidence matrix over up to hundreds of thousands of candidate sets, so
// that is what is kept, while each call assembles its own Problem around it.
type solverCore struct {
	cfg       Config
	jokerID   int // 0 if the ruleset has no jokers
	tileCount int
	sets      []rawSet
	setValues []int
	incidence *mat.Dense // tileCount x len(sets)
	backend   milp.Backend
}

func newSolverCore(cfg Config, jokerID, tileCount int, sets []rawSet, setValues []int, backend milp.Backend) *solverCore {
	incidence := mat.NewDense(tileCount, len(sets), nil)
	for s, set := range sets {
		for _, t := range set {
			row := t - 1
			incidence.Set(row, s, incidence.At(row, s)+1)
		}
	}
	return &solverCore{
		cfg:       cfg,
		jokerID:   jokerID,
		tileCount: tileCount,
		sets:      sets,
		setValues: setValues,
		incidence: incidence,
		backend:   backend,
	}
}

// solve binds rack/table parameters for the chosen mode, invokes the
// backend, and decodes the integer solution into
// concrete tile and set multiplicities. The returned bool is false only
// when the backend reports infeasible or unbounded, and true for any
// optimal solution, including a trivial all-zero one. ArrangeTable treats
// both a false result and an empty set decomposition as "no decomposition
// at this joker count".
func (c *solverCore) solve(ctx context.Context, mode Mode, state *GameState) (SolverSolution, bool, error) {
	rack := state.RackArray()
	var table []int
	if mode == ModeInitial {
		table = make([]int, c.tileCount)
	} else {
		table = state.TableArray()
	}

	problem := c.buildProblem(mode, rack, table)
	sol, err := c.backend.Solve(ctx, problem)
	if err != nil {
		return SolverSolution{}, false, err
	}
	if sol.Status != milp.StatusOptimal {
		return SolverSolution{}, false, nil
	}
	return c.decode(sol), true, nil
}

func (c *solverCore) numSets() int { return len(c.sets) }

func (c *solverCore) buildProblem(mode Mode, rack, table []int) milp.Problem {
	numSets := c.numSets()
	T := c.tileCount
	extra := 0
	if mode == ModeInitial {
		extra = 1
	}
	nVars := numSets + T + extra

	obj := make([]float64, nVars)
	switch mode {
	case ModeTileCount:
		for i := 0; i < T; i++ {
			obj[numSets+i] = 1
		}
	case ModeTotalValue:
		for i := 0; i < T; i++ {
			if c.jokerID != 0 && i+1 == c.jokerID {
				continue
			}
			obj[numSets+i] = float64(i%c.cfg.Numbers + 1)
		}
	case ModeInitial:
		for i := 0; i < T; i++ {
			if c.jokerID != 0 && i+1 == c.jokerID {
				continue
			}
			obj[numSets+i] = 1
		}
	}

	rows := T + extra
	eq := mat.NewDense(rows, nVars, nil)
	rhs := make([]float64, rows)

	for row := 0; row < T; row++ {
		for s := 0; s < numSets; s++ {
			if v := c.incidence.At(row, s); v != 0 {
				eq.Set(row, s, v)
			}
		}
		eq.Set(row, numSets+row, -1)
		rhs[row] = float64(table[row])
	}

	if mode == ModeInitial {
		row := T
		for s, sv := range c.setValues {
			eq.Set(row, s, float64(sv))
		}
		slackCol := numSets + T
		eq.Set(row, slackCol, -1)
		rhs[row] = float64(c.cfg.MinInitialValue)
	}

	upper := make([]float64, nVars)
	for s := 0; s < numSets; s++ {
		upper[s] = float64(c.cfg.Repeats)
	}
	for i := 0; i < T; i++ {
		cap := c.cfg.Repeats
		if c.jokerID != 0 && i+1 == c.jokerID {
			cap = c.cfg.Jokers
		}
		u := cap
		if rack[i] < u {
			u = rack[i]
		}
		upper[numSets+i] = float64(u)
	}
	if extra == 1 {
		upper[numSets+T] = math.Inf(1)
	}

	integer := make([]bool, nVars)
	for i := range integer {
		integer[i] = true
	}

	return milp.Problem{Obj: obj, Eq: eq, Rhs: rhs, Upper: upper, Integer: integer}
}

func (c *solverCore) decode(sol milp.Solution) SolverSolution {
	numSets := c.numSets()

	var tiles []tile.Tile
	for i := 0; i < c.tileCount; i++ {
		n := roundNonNeg(sol.X[numSets+i])
		for k := 0; k < n; k++ {
			tiles = append(tiles, tile.Tile(i+1))
		}
	}

	var setIndices []int
	for s := 0; s < numSets; s++ {
		n := roundNonNeg(sol.X[s])
		for k := 0; k < n; k++ {
			setIndices = append(setIndices, s)
		}
	}

	return SolverSolution{Tiles: tiles, SetIndices: setIndices}
}

func roundNonNeg(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	return n
}
