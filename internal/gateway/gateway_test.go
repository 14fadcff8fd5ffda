package gateway

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"rummikub-lite/internal/milp"
	"rummikub-lite/internal/ruleengine"
	"rummikub-lite/internal/store"
	"rummikub-lite/internal/wire"
)

func newTestServer(t *testing.T, tokenHash []byte) (*httptest.Server, *Gateway) {
	t.Helper()
	engine, err := ruleengine.New(milp.NewGonumBackend())
	if err != nil {
		t.Fatalf("ruleengine.New: %v", err)
	}
	gw := New(engine, store.NewMemoryStore(), tokenHash)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	srv := httptest.NewServer(mux)
	return srv, gw
}

func dial(t *testing.T, srv *httptest.Server) *ws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func roundTrip(t *testing.T, conn *ws.Conn, req request) response {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var resp response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return resp
}

func TestGateway_SolveOpeningRun(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	resp := roundTrip(t, conn, request{
		Type:      "solve",
		RequestID: "r1",
		State:     &wire.GameStateDTO{Rack: []int{9, 10, 11}, Initial: true},
	})
	if !resp.OK || resp.Solution == nil {
		t.Fatalf("expected an OK response with a solution, got %+v", resp)
	}
	if len(resp.Solution.Tiles) != 3 {
		t.Fatalf("expected 3 tiles placed, got %v", resp.Solution.Tiles)
	}
}

func TestGateway_SaveAndLoadGame(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	saveResp := roundTrip(t, conn, request{
		Type:      "save_game",
		RequestID: "r1",
		State:     &wire.GameStateDTO{Rack: []int{9, 10, 11}, Initial: true},
	})
	if !saveResp.OK || saveResp.SnapshotID == "" {
		t.Fatalf("expected a saved snapshot id, got %+v", saveResp)
	}

	loadResp := roundTrip(t, conn, request{
		Type:       "load_game",
		RequestID:  "r2",
		SnapshotID: saveResp.SnapshotID,
	})
	if !loadResp.OK || loadResp.State == nil {
		t.Fatalf("expected a loaded state, got %+v", loadResp)
	}
	if len(loadResp.State.Rack) != 3 {
		t.Fatalf("expected 3 rack tiles restored, got %v", loadResp.State.Rack)
	}
}

func TestGateway_NewGameRequiresTokenWhenConfigured(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	srv, _ := newTestServer(t, hash)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	resp := roundTrip(t, conn, request{Type: "new_game", RequestID: "r1"})
	if resp.OK || resp.Error != "unauthorized" {
		t.Fatalf("expected an unauthorized error, got %+v", resp)
	}

	authed := roundTrip(t, conn, request{Type: "new_game", RequestID: "r2", Token: "secret"})
	if !authed.OK || authed.State == nil {
		t.Fatalf("expected an authorized new_game response, got %+v", authed)
	}
}
