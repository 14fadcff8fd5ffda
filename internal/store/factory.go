package store

import (
	"fmt"
	"os"
	"strings"
)

const (
	ModeMemory = "memory"
	ModeLocal  = "sqlite"
	ModeDB     = "postgres"
)

func modeFromEnv() string {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_MODE")))
	switch raw {
	case "", ModeMemory, "mem":
		return ModeMemory
	case ModeLocal, "local":
		return ModeLocal
	case ModeDB, "db":
		return ModeDB
	default:
		return raw
	}
}

// NewFromEnv builds a Store selected by the STORE_MODE env var ("memory",
// the default; "sqlite"; or "postgres").
func NewFromEnv() (Store, string, error) {
	mode := modeFromEnv()
	switch mode {
	case ModeMemory:
		return NewMemoryStore(), mode, nil
	case ModeLocal:
		s, err := NewSQLiteStoreFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return s, mode, nil
	case ModeDB:
		s, err := NewPostgresStoreFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return s, mode, nil
	default:
		return nil, mode, fmt.Errorf("invalid STORE_MODE %q (supported: %s, %s, %s)", mode, ModeMemory, ModeLocal, ModeDB)
	}
}
