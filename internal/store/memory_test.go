package store

import (
	"context"
	"testing"

	"rummikub-lite/internal/ruleset"
	"rummikub-lite/internal/tile"
)

func TestMemoryStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	snap := ruleset.GameStateSnapshot{
		Rack:    tile.List{9, 10, 11},
		Table:   tile.List{5, 6, 7},
		Initial: true,
	}

	id, err := s.Save(context.Background(), "n13r2c4j2", snap)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	rec, err := s.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.GameStateKey != "n13r2c4j2" {
		t.Fatalf("expected game_state_key n13r2c4j2, got %q", rec.GameStateKey)
	}
	if len(rec.Snapshot.Rack) != 3 || len(rec.Snapshot.Table) != 3 {
		t.Fatalf("expected round-tripped rack/table of length 3 each, got %+v", rec.Snapshot)
	}
	if !rec.Snapshot.Initial {
		t.Fatalf("expected Initial to survive the round trip")
	}
}

func TestMemoryStore_LoadUnknownID(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Load(context.Background(), "does-not-exist"); err == nil {
		t.Fatalf("expected an error loading an unknown id")
	}
}
