package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"rummikub-lite/internal/ruleset"
)

const defaultLocalDBName = "rummikub_lite.db"

// SQLiteStore persists GameState snapshots to a local pure-Go sqlite
// database: PRAGMA busy_timeout/journal_mode=WAL setup, a single shared
// connection (sqlite serializes writers anyway), schema created on first
// open.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStoreFromEnv builds a SQLiteStore using STORE_LOCAL_DATABASE_PATH,
// falling back to the OS user config directory.
func NewSQLiteStoreFromEnv() (*SQLiteStore, error) {
	path, err := localDatabasePathFromEnv()
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(path)
}

// NewSQLiteStore opens (creating if necessary) a sqlite database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS game_states (
    id TEXT PRIMARY KEY,
    game_state_key TEXT NOT NULL,
    snapshot_json TEXT NOT NULL,
    created_at_ms INTEGER NOT NULL
)`)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, gameStateKey string, snap ruleset.GameStateSnapshot) (string, error) {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
INSERT INTO game_states (id, game_state_key, snapshot_json, created_at_ms)
VALUES (?, ?, ?, ?)
`, id, gameStateKey, string(data), time.Now().UTC().UnixMilli())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLiteStore) Load(ctx context.Context, id string) (Record, error) {
	var (
		gameStateKey string
		snapshotJSON string
		createdAtMs  int64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT game_state_key, snapshot_json, created_at_ms
FROM game_states
WHERE id = ?
`, id).Scan(&gameStateKey, &snapshotJSON, &createdAtMs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("store: no record with id %q", id)
		}
		return Record{}, err
	}
	snap, err := decodeSnapshot([]byte(snapshotJSON))
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:           id,
		GameStateKey: gameStateKey,
		Snapshot:     snap,
		CreatedAt:    time.UnixMilli(createdAtMs).UTC(),
	}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func localDatabasePathFromEnv() (string, error) {
	if v := strings.TrimSpace(os.Getenv("STORE_LOCAL_DATABASE_PATH")); v != "" {
		return filepath.Clean(v), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rummikub-lite", defaultLocalDBName), nil
}
