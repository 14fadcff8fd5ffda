// Package gateway exposes the engine over a JSON-framed WebSocket protocol.
// The engine computes one optimal move per call and holds no turn or seat
// state, so there is no lobby, broadcast, or multi-player coordination here:
// each request is a single, stateless round trip into ruleengine.Engine plus
// an optional internal/store load/save — no per-connection state beyond the
// TCP connection itself.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"rummikub-lite/internal/ruleengine"
	"rummikub-lite/internal/ruleset"
	"rummikub-lite/internal/store"
	"rummikub-lite/internal/wire"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to configured origins in production
	},
}

const (
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second
)

// Gateway wires ruleengine.Engine and internal/store behind a WebSocket
// handler. A nil tokenHash disables the bearer-token check entirely (useful
// for local development).
type Gateway struct {
	engine    *ruleengine.Engine
	store     store.Store
	tokenHash []byte
}

// New returns a Gateway. tokenHash, if non-nil, is a bcrypt hash that
// incoming requests' "token" field must match for mutating request types
// (new_game, save_game).
func New(engine *ruleengine.Engine, st store.Store, tokenHash []byte) *Gateway {
	return &Gateway{engine: engine, store: st, tokenHash: tokenHash}
}

// request is the single envelope shape for every request type this gateway
// accepts; unused fields are ignored per request type.
type request struct {
	Type       string             `json:"type"`
	RequestID  string             `json:"requestId"`
	Token      string             `json:"token"`
	Config     *configDTO         `json:"config,omitempty"`
	Mode       string             `json:"mode,omitempty"`
	State      *wire.GameStateDTO `json:"state,omitempty"`
	SnapshotID string             `json:"snapshotId,omitempty"`
}

type configDTO struct {
	Numbers         int `json:"numbers"`
	Repeats         int `json:"repeats"`
	Colours         int `json:"colours"`
	Jokers          int `json:"jokers"`
	MinLen          int `json:"minLen"`
	MinInitialValue int `json:"minInitialValue"`
}

func (c *configDTO) toConfig() ruleset.Config {
	if c == nil {
		return ruleset.DefaultConfig()
	}
	return ruleset.Config{
		Numbers:         c.Numbers,
		Repeats:         c.Repeats,
		Colours:         c.Colours,
		Jokers:          c.Jokers,
		MinLen:          c.MinLen,
		MinInitialValue: c.MinInitialValue,
	}
}

type response struct {
	RequestID   string                    `json:"requestId"`
	OK          bool                      `json:"ok"`
	Error       string                    `json:"error,omitempty"`
	Solution    *wire.ProposedSolutionDTO `json:"solution,omitempty"`
	Arrangement *wire.TableArrangementDTO `json:"arrangement,omitempty"`
	State       *wire.GameStateDTO        `json:"state,omitempty"`
	SnapshotID  string                    `json:"snapshotId,omitempty"`
}

// mutatingTypes require a valid bearer token when the gateway has one
// configured.
var mutatingTypes = map[string]bool{
	"new_game":  true,
	"save_game": true,
}

// HandleWebSocket upgrades the connection and serves requests until the
// client disconnects or a read error occurs.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] upgrade error: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go g.pingLoop(conn, done)
	defer close(done)

	for {
		var req request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] read error: %v", err)
			}
			return
		}

		resp := g.handle(r.Context(), req)
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("[Gateway] write error: %v", err)
			return
		}
	}
}

func (g *Gateway) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) handle(ctx context.Context, req request) response {
	resp := response{RequestID: req.RequestID}

	if mutatingTypes[req.Type] && !g.authorize(req.Token) {
		resp.Error = "unauthorized"
		return resp
	}

	switch req.Type {
	case "new_game":
		rs, err := g.engine.Get(req.Config.toConfig())
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.OK = true
		snap := rs.NewGame().Snapshot()
		dto := wire.FromSnapshot(snap)
		resp.State = &dto
		return resp

	case "solve":
		rs, err := g.engine.Get(req.Config.toConfig())
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		if req.State == nil {
			resp.Error = "missing state"
			return resp
		}
		state := ruleset.RestoreGameState(len(rs.Tiles()), req.State.ToSnapshot())

		var mode *ruleset.Mode
		if m, ok := parseMode(req.Mode); ok {
			mode = &m
		}

		sol, err := rs.Solve(ctx, state, mode)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.OK = true
		resp.Solution = wire.FromProposedSolution(sol)
		return resp

	case "arrange_table":
		rs, err := g.engine.Get(req.Config.toConfig())
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		if req.State == nil {
			resp.Error = "missing state"
			return resp
		}
		state := ruleset.RestoreGameState(len(rs.Tiles()), req.State.ToSnapshot())

		arr, err := rs.ArrangeTable(ctx, state)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.OK = true
		resp.Arrangement = wire.FromTableArrangement(arr)
		return resp

	case "save_game":
		if req.State == nil {
			resp.Error = "missing state"
			return resp
		}
		rs, err := g.engine.Get(req.Config.toConfig())
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		state := ruleset.RestoreGameState(len(rs.Tiles()), req.State.ToSnapshot())
		id, err := g.store.Save(ctx, rs.GameStateKey(), state.Snapshot())
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.OK = true
		resp.SnapshotID = id
		return resp

	case "load_game":
		rec, err := g.store.Load(ctx, req.SnapshotID)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		dto := wire.FromSnapshot(rec.Snapshot)
		resp.OK = true
		resp.State = &dto
		return resp

	default:
		resp.Error = fmt.Sprintf("unknown request type %q", req.Type)
		return resp
	}
}

func parseMode(s string) (ruleset.Mode, bool) {
	switch s {
	case "tile_count":
		return ruleset.ModeTileCount, true
	case "total_value":
		return ruleset.ModeTotalValue, true
	case "initial":
		return ruleset.ModeInitial, true
	default:
		return 0, false
	}
}

// authorize reports whether token matches the configured bcrypt hash. When
// the gateway has no hash configured, every request is authorized (local
// development mode).
func (g *Gateway) authorize(token string) bool {
	if g.tokenHash == nil {
		return true
	}
	if token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.tokenHash, []byte(token)) == nil
}

// DefaultConfigJSON renders ruleset.DefaultConfig as the wire configDTO
// JSON, used by cmd/server to surface the effective default config in its
// startup log.
func DefaultConfigJSON() string {
	cfg := ruleset.DefaultConfig()
	data, _ := json.Marshal(configDTO{
		Numbers:         cfg.Numbers,
		Repeats:         cfg.Repeats,
		Colours:         cfg.Colours,
		Jokers:          cfg.Jokers,
		MinLen:          cfg.MinLen,
		MinInitialValue: cfg.MinInitialValue,
	})
	return string(data)
}
