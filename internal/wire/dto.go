// Package wire implements the JSON mirror structs that cross the gateway's
// WebSocket boundary: a plain struct with json tags plus a To.../From...
// converter pair, rather than exposing the engine's internal types directly
// over the wire.
package wire

import (
	"rummikub-lite/internal/ruleset"
	"rummikub-lite/internal/tile"
)

// GameStateDTO mirrors ruleset.GameStateSnapshot for JSON transport. Tiles
// are transmitted as raw integer identifiers, never rendered names.
type GameStateDTO struct {
	Rack    []int `json:"rack"`
	Table   []int `json:"table"`
	Initial bool  `json:"initial"`
}

// ToSnapshot converts the wire representation into a GameStateSnapshot.
func (d GameStateDTO) ToSnapshot() ruleset.GameStateSnapshot {
	return ruleset.GameStateSnapshot{
		Rack:    intsToTiles(d.Rack),
		Table:   intsToTiles(d.Table),
		Initial: d.Initial,
	}
}

// FromSnapshot builds the wire representation of a GameStateSnapshot.
func FromSnapshot(snap ruleset.GameStateSnapshot) GameStateDTO {
	return GameStateDTO{
		Rack:    tilesToInts(snap.Rack),
		Table:   tilesToInts(snap.Table),
		Initial: snap.Initial,
	}
}

// ProposedSolutionDTO mirrors ruleset.ProposedSolution for JSON transport.
type ProposedSolutionDTO struct {
	Tiles []int   `json:"tiles"`
	Sets  [][]int `json:"sets"`
}

// FromProposedSolution converts a ProposedSolution into its wire form, or
// returns nil unchanged ("no solution" is an absent value, not an error).
func FromProposedSolution(sol *ruleset.ProposedSolution) *ProposedSolutionDTO {
	if sol == nil {
		return nil
	}
	out := &ProposedSolutionDTO{
		Tiles: tilesToInts(sol.Tiles),
		Sets:  make([][]int, len(sol.Sets)),
	}
	for i, s := range sol.Sets {
		out.Sets[i] = tilesToInts(s)
	}
	return out
}

// TableArrangementDTO mirrors ruleset.TableArrangement for JSON transport.
type TableArrangementDTO struct {
	Sets       [][]int `json:"sets"`
	FreeJokers int     `json:"freeJokers"`
}

// FromTableArrangement converts a TableArrangement into its wire form, or
// returns nil unchanged if no arrangement exists.
func FromTableArrangement(arr *ruleset.TableArrangement) *TableArrangementDTO {
	if arr == nil {
		return nil
	}
	out := &TableArrangementDTO{
		Sets:       make([][]int, len(arr.Sets)),
		FreeJokers: arr.FreeJokers,
	}
	for i, s := range arr.Sets {
		out.Sets[i] = tilesToInts(s)
	}
	return out
}

func intsToTiles(xs []int) tile.List {
	out := make(tile.List, len(xs))
	for i, x := range xs {
		out[i] = tile.Tile(x)
	}
	return out
}

func tilesToInts(xs tile.List) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[i] = int(x)
	}
	return out
}
