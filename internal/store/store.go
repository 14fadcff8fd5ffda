// Package store persists GameState snapshots: one small interface, an
// in-memory default plus two real backends (SQLite, Postgres), selected at
// runtime by an env var. A snapshot carries everything needed to
// reconstruct a game's multisets and initial flag.
package store

import (
	"context"
	"encoding/json"
	"time"

	"rummikub-lite/internal/ruleset"
	"rummikub-lite/internal/tile"
)

// Record is a persisted GameState snapshot plus the game_state_key of the
// RuleSet it was produced under; a snapshot may be restored into any
// RuleSet with the same key.
type Record struct {
	ID           string
	GameStateKey string
	Snapshot     ruleset.GameStateSnapshot
	CreatedAt    time.Time
}

// Store saves and loads GameState snapshots by an opaque ID assigned at
// save time.
type Store interface {
	Save(ctx context.Context, gameStateKey string, snap ruleset.GameStateSnapshot) (id string, err error)
	Load(ctx context.Context, id string) (Record, error)
	Close() error
}

// wireSnapshot is the JSON-on-disk encoding of a GameStateSnapshot, shared
// by both SQL backends so the schema stays a single TEXT column
// rather than a normalized tile table — the snapshot is small (a handful of
// tile identifiers) and always read/written whole.
type wireSnapshot struct {
	Rack    []int `json:"rack"`
	Table   []int `json:"table"`
	Initial bool  `json:"initial"`
}

func encodeSnapshot(snap ruleset.GameStateSnapshot) ([]byte, error) {
	w := wireSnapshot{Initial: snap.Initial}
	for _, t := range snap.Rack {
		w.Rack = append(w.Rack, int(t))
	}
	for _, t := range snap.Table {
		w.Table = append(w.Table, int(t))
	}
	return json.Marshal(w)
}

func decodeSnapshot(data []byte) (ruleset.GameStateSnapshot, error) {
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return ruleset.GameStateSnapshot{}, err
	}
	snap := ruleset.GameStateSnapshot{Initial: w.Initial}
	for _, n := range w.Rack {
		snap.Rack = append(snap.Rack, tile.Tile(n))
	}
	for _, n := range w.Table {
		snap.Table = append(snap.Table, tile.Tile(n))
	}
	return snap, nil
}
