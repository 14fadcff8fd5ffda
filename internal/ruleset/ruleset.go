package ruleset

import (
	"context"

	"rummikub-lite/internal/milp"
	"rummikub-lite/internal/tile"
)

// ProposedSolution is the result of RuleSet.Solve: tile identifiers to move
// from rack to table, and the full set decomposition the table ends up in.
type ProposedSolution struct {
	Tiles tile.List
	Sets  []tile.List
}

// TableArrangement is the result of RuleSet.ArrangeTable.
type TableArrangement struct {
	Sets       []tile.List
	FreeJokers int
}

// RuleSet is the public entry point of the engine: it owns the enumerated
// tile universe, the candidate sets, their values, and the single solver
// core instance built from them.
type RuleSet struct {
	cfg          Config
	tileCount    int
	jokerID      int
	sets         []rawSet
	setValues    []int
	core         *solverCore
	gameStateKey string
}

// NewRuleSet builds a RuleSet for the given configuration and MILP backend.
// Construction eagerly enumerates every candidate set and builds the
// incidence matrix once — this is the expensive step internal/ruleengine's
// cache exists to amortize across repeated calls with the same rule shape.
func NewRuleSet(cfg Config, backend milp.Backend) (*RuleSet, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, ErrBackendUnavailable
	}

	tileCount := cfg.Numbers * cfg.Colours
	jokerID := 0
	if cfg.Jokers > 0 {
		tileCount++
		jokerID = tileCount
	}

	sets := enumerateSets(cfg, jokerID)
	rlmax := runLengthValues(cfg.Numbers, cfg.MinLen)
	setValues := make([]int, len(sets))
	for i, s := range sets {
		setValues[i] = setValue(s, cfg.Numbers, jokerID, rlmax)
	}

	core := newSolverCore(cfg, jokerID, tileCount, sets, setValues, backend)

	return &RuleSet{
		cfg:          cfg,
		tileCount:    tileCount,
		jokerID:      jokerID,
		sets:         sets,
		setValues:    setValues,
		core:         core,
		gameStateKey: GameStateKeyFor(cfg),
	}, nil
}

// NewGame returns an empty GameState sized to this RuleSet's tile universe.
func (r *RuleSet) NewGame() *GameState { return NewGameState(r.tileCount) }

// Tiles returns the full tile universe, ascending by identifier.
func (r *RuleSet) Tiles() tile.List {
	out := make(tile.List, r.tileCount)
	for i := range out {
		out[i] = tile.Tile(i + 1)
	}
	return out
}

// Sets returns every enumerated candidate set, in the same order as the
// incidence matrix columns.
func (r *RuleSet) Sets() []tile.List { return r.setsFor(allIndices(len(r.sets))) }

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (r *RuleSet) setsFor(indices []int) []tile.List {
	out := make([]tile.List, len(indices))
	for i, idx := range indices {
		s := r.sets[idx]
		list := make(tile.List, len(s))
		for j, t := range s {
			list[j] = tile.Tile(t)
		}
		out[i] = list
	}
	return out
}

func (r *RuleSet) GameStateKey() string { return r.gameStateKey }
func (r *RuleSet) Colours() int         { return r.cfg.Colours }
func (r *RuleSet) Numbers() int         { return r.cfg.Numbers }
func (r *RuleSet) Repeats() int         { return r.cfg.Repeats }
func (r *RuleSet) Jokers() int          { return r.cfg.Jokers }

// JokerID returns the joker's tile identifier, or 0 if this RuleSet has no
// jokers.
func (r *RuleSet) JokerID() tile.Tile { return tile.Tile(r.jokerID) }

// Solve computes the optimal next move for state. A nil mode picks
// ModeInitial when state.Initial is set, else ModeTileCount. When the
// opening meld succeeds against a non-empty table, a second tile-count
// solve runs on the moved state so the player keeps placing tiles once the
// threshold is met. Returns (nil, nil) when no solution exists — absence of
// a move is not an error.
func (r *RuleSet) Solve(ctx context.Context, state *GameState, mode *Mode) (*ProposedSolution, error) {
	m := ModeTileCount
	switch {
	case mode != nil:
		m = *mode
	case state.Initial:
		m = ModeInitial
	}

	sol, _, err := r.core.solve(ctx, m, state)
	if err != nil {
		return nil, err
	}
	if len(sol.Tiles) == 0 {
		return nil, nil
	}

	tiles := sol.Tiles
	setIndices := sol.SetIndices

	if m == ModeInitial && len(state.SortedTable()) > 0 {
		moved := state.WithMove(tiles)
		extSol, _, err := r.core.solve(ctx, ModeTileCount, moved)
		if err != nil {
			return nil, err
		}
		if len(extSol.Tiles) > 0 {
			combined := append(append(tile.List(nil), tiles...), extSol.Tiles...)
			tiles = combined.Sorted()
			setIndices = extSol.SetIndices
		}
	}

	return &ProposedSolution{Tiles: tiles, Sets: r.setsFor(setIndices)}, nil
}

// ArrangeTable checks whether the table alone can be decomposed into valid
// sets and reports free (removable) jokers: the smallest joker count k that
// admits a decomposition identifies jc-k free jokers. Returns (nil, nil) if
// no k works.
func (r *RuleSet) ArrangeTable(ctx context.Context, state *GameState) (*TableArrangement, error) {
	trial := state.TableOnly()

	jc := 0
	if r.jokerID != 0 {
		jc = trial.TableArray()[r.jokerID-1]
		jokers := make([]tile.Tile, jc)
		for i := range jokers {
			jokers[i] = tile.Tile(r.jokerID)
		}
		trial.RemoveTable(jokers)
	}

	for k := 0; k <= jc; k++ {
		if k > 0 {
			trial.AddTable([]tile.Tile{tile.Tile(r.jokerID)})
		}
		sol, ok, err := r.core.solve(ctx, ModeTileCount, trial)
		if err != nil {
			return nil, err
		}
		if ok && len(sol.SetIndices) > 0 {
			return &TableArrangement{Sets: r.setsFor(sol.SetIndices), FreeJokers: jc - k}, nil
		}
	}
	return nil, nil
}
