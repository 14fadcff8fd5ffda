package ruleset

import (
	"context"
	"testing"

	"rummikub-lite/internal/tile"
)

func tileCounts(tiles tile.List) map[tile.Tile]int {
	m := make(map[tile.Tile]int)
	for _, t := range tiles {
		m[t]++
	}
	return m
}

// Incidence matrix column sums must equal the length of the corresponding
// set: each column is exactly the per-tile multiplicity vector of one set.
func TestIncidence_ColumnSumsEqualSetLengths(t *testing.T) {
	rs := newTestRuleSet(t)
	core := rs.core

	for s, set := range core.sets {
		sum := 0.0
		for row := 0; row < core.tileCount; row++ {
			sum += core.incidence.At(row, s)
		}
		if int(sum) != len(set) {
			t.Fatalf("column %d sums to %v, want set length %d (%v)", s, sum, len(set), set)
		}
	}
}

// Every tile returned by a solve must have been on the rack, count-wise.
func TestSolve_TilesDrawnFromRack(t *testing.T) {
	rs := newTestRuleSet(t)
	rack := tile.List{5, 9, 10, 11, 12, 13, 26, 39}
	state := rackState(rs, rack)

	sol, err := rs.Solve(context.Background(), state, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol == nil {
		t.Fatalf("expected a solution, got none")
	}

	rackCounts := tileCounts(rack)
	for tl, n := range tileCounts(sol.Tiles) {
		if n > rackCounts[tl] {
			t.Fatalf("placed %d copies of tile %v but rack holds %d", n, tl, rackCounts[tl])
		}
	}
}

// In non-initial modes, the returned set decomposition must account for
// exactly the table tiles plus the placed tiles, as a multiset.
func TestSolve_DecompositionMatchesTablePlusPlaced(t *testing.T) {
	rs := newTestRuleSet(t)
	state := rs.NewGame()
	state.Initial = false
	state.AddTable([]tile.Tile{1, 2, 3})
	state.AddRack([]tile.Tile{4})

	sol, err := rs.Solve(context.Background(), state, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol == nil {
		t.Fatalf("expected a solution, got none")
	}

	var decomposed tile.List
	for _, s := range sol.Sets {
		decomposed = append(decomposed, s...)
	}
	want := tileCounts(append(append(tile.List(nil), state.SortedTable()...), sol.Tiles...))
	got := tileCounts(decomposed)
	if len(got) != len(want) {
		t.Fatalf("decomposition covers %d distinct tiles, want %d", len(got), len(want))
	}
	for tl, n := range want {
		if got[tl] != n {
			t.Fatalf("decomposition has %d copies of tile %v, want %d", got[tl], tl, n)
		}
	}
}

// In initial mode, the chosen sets must score at least the configured
// minimum initial value.
func TestSolve_InitialMeetsValueThreshold(t *testing.T) {
	rs := newTestRuleSet(t)
	state := rackState(rs, []tile.Tile{9, 10, 11})

	sol, ok, err := rs.core.solve(context.Background(), ModeInitial, state)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !ok || len(sol.Tiles) == 0 {
		t.Fatalf("expected an initial-meld solution")
	}

	total := 0
	for _, idx := range sol.SetIndices {
		total += rs.setValues[idx]
	}
	if total < rs.cfg.MinInitialValue {
		t.Fatalf("initial meld scored %d, below threshold %d", total, rs.cfg.MinInitialValue)
	}
}

// Tile-count solves are optimal: a rack forming one full-length run must be
// placed in its entirety.
func TestSolve_TileCountOptimal(t *testing.T) {
	rs := newTestRuleSet(t)
	state := rs.NewGame()
	state.Initial = false
	state.AddRack([]tile.Tile{1, 2, 3, 4, 5})

	sol, err := rs.Solve(context.Background(), state, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol == nil {
		t.Fatalf("expected a solution, got none")
	}
	if len(sol.Tiles) != 5 {
		t.Fatalf("expected all 5 tiles placed, got %v", sol.Tiles)
	}
}

// Applying a returned move leaves a state the solver has nothing further to
// add to: a second solve on the moved state places no tiles.
func TestSolve_AppliedMoveIsStable(t *testing.T) {
	rs := newTestRuleSet(t)
	state := rs.NewGame()
	state.Initial = false
	state.AddTable([]tile.Tile{1, 2, 3})
	state.AddRack([]tile.Tile{4})

	sol, err := rs.Solve(context.Background(), state, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol == nil {
		t.Fatalf("expected a solution, got none")
	}

	moved := state.WithMove(sol.Tiles)
	again, err := rs.Solve(context.Background(), moved, nil)
	if err != nil {
		t.Fatalf("Solve (moved): %v", err)
	}
	if again != nil {
		t.Fatalf("expected no further move from an emptied rack, got %+v", again)
	}
}

// The total-value objective places the full rack when every tile fits, same
// as tile count, but is driven by face values: the joker contributes nothing.
func TestSolve_TotalValueMode(t *testing.T) {
	rs := newTestRuleSet(t)
	state := rs.NewGame()
	state.Initial = false
	state.AddRack([]tile.Tile{11, 12, 13})

	mode := ModeTotalValue
	sol, err := rs.Solve(context.Background(), state, &mode)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol == nil {
		t.Fatalf("expected a solution, got none")
	}
	if len(sol.Tiles) != 3 {
		t.Fatalf("expected all 3 tiles placed, got %v", sol.Tiles)
	}
}
