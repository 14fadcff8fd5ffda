package ruleset

import "rummikub-lite/internal/tile"

// GameState is a per-player mutable snapshot of one game: a multiset of
// rack tiles, a multiset of table tiles, and whether the player has yet to
// satisfy the initial-meld requirement.
//
// The count map is the source of truth; the dense vectors RackArray and
// TableArray are derived on demand, never stored, so the two views cannot
// drift apart.
type GameState struct {
	tileCount int
	rack      map[tile.Tile]int
	table     map[tile.Tile]int
	Initial   bool
}

// NewGameState creates an empty game state for a universe of tileCount
// distinct tile identifiers, with Initial set to true.
func NewGameState(tileCount int) *GameState {
	return &GameState{
		tileCount: tileCount,
		rack:      make(map[tile.Tile]int),
		table:     make(map[tile.Tile]int),
		Initial:   true,
	}
}

// Reset clears both multisets and marks the state as not yet having placed
// an opening meld.
func (g *GameState) Reset() {
	g.rack = make(map[tile.Tile]int)
	g.table = make(map[tile.Tile]int)
	g.Initial = true
}

func addTiles(m map[tile.Tile]int, tiles []tile.Tile) {
	for _, t := range tiles {
		m[t]++
	}
}

// removeTiles saturates at zero: removing a tile not present (or removing
// more copies than present) never errors.
func removeTiles(m map[tile.Tile]int, tiles []tile.Tile) {
	for _, t := range tiles {
		if m[t] <= 1 {
			delete(m, t)
		} else {
			m[t]--
		}
	}
}

func (g *GameState) AddRack(tiles []tile.Tile)    { addTiles(g.rack, tiles) }
func (g *GameState) RemoveRack(tiles []tile.Tile) { removeTiles(g.rack, tiles) }
func (g *GameState) AddTable(tiles []tile.Tile)    { addTiles(g.table, tiles) }
func (g *GameState) RemoveTable(tiles []tile.Tile) { removeTiles(g.table, tiles) }

// SortedRack returns the rack tiles as a sorted list, each tile repeated
// once per copy held.
func (g *GameState) SortedRack() tile.List { return sortedElements(g.rack) }

// SortedTable returns the table tiles as a sorted list.
func (g *GameState) SortedTable() tile.List { return sortedElements(g.table) }

func sortedElements(m map[tile.Tile]int) tile.List {
	var out tile.List
	for t, n := range m {
		for i := 0; i < n; i++ {
			out = append(out, t)
		}
	}
	return out.Sorted()
}

// RackArray returns a dense length-tileCount vector of per-tile rack counts,
// indexed by tile-1, in the shape the solver core binds as its rack
// parameter.
func (g *GameState) RackArray() []int { return denseArray(g.rack, g.tileCount) }

// TableArray returns the analogous dense vector for the table.
func (g *GameState) TableArray() []int { return denseArray(g.table, g.tileCount) }

func denseArray(m map[tile.Tile]int, tileCount int) []int {
	arr := make([]int, tileCount)
	for t, n := range m {
		if idx := int(t) - 1; idx >= 0 && idx < tileCount {
			arr[idx] = n
		}
	}
	return arr
}

// WithMove returns a new state with the given tiles moved from rack to
// table, without mutating the receiver. Moving tiles not actually present
// on the rack does not error: the result's rack counts saturate at zero.
// Callers wanting strict validation check the rack counts first.
func (g *GameState) WithMove(tiles []tile.Tile) *GameState {
	next := &GameState{
		tileCount: g.tileCount,
		rack:      cloneCounts(g.rack),
		table:     cloneCounts(g.table),
		Initial:   g.Initial,
	}
	next.RemoveRack(tiles)
	next.AddTable(tiles)
	return next
}

// TableOnly returns a new state containing only the receiver's table
// tiles (rack empty, Initial true), used by RuleSet.ArrangeTable.
func (g *GameState) TableOnly() *GameState {
	next := NewGameState(g.tileCount)
	next.table = cloneCounts(g.table)
	return next
}

// GameStateSnapshot is a read-only, serializable view of a GameState,
// sufficient to reconstruct its multisets and initial flag.
type GameStateSnapshot struct {
	Rack    []tile.Tile
	Table   []tile.Tile
	Initial bool
}

// Snapshot returns a read-only copy of the receiver's state.
func (g *GameState) Snapshot() GameStateSnapshot {
	return GameStateSnapshot{
		Rack:    append(tile.List(nil), g.SortedRack()...),
		Table:   append(tile.List(nil), g.SortedTable()...),
		Initial: g.Initial,
	}
}

// RestoreGameState reconstructs a GameState from a snapshot for a universe
// of tileCount distinct tile identifiers. The caller is responsible for
// checking the snapshot's originating game_state_key against the RuleSet it
// is being restored into.
func RestoreGameState(tileCount int, snap GameStateSnapshot) *GameState {
	g := NewGameState(tileCount)
	g.AddRack(snap.Rack)
	g.AddTable(snap.Table)
	g.Initial = snap.Initial
	return g
}

func cloneCounts(m map[tile.Tile]int) map[tile.Tile]int {
	out := make(map[tile.Tile]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
