// Command server wires the engine (internal/ruleengine), the persistence
// backend (internal/store), and the WebSocket gateway (internal/gateway)
// together behind a single http.ServeMux, with the listen address and store
// selection taken from the environment.
package main

import (
	"encoding/base64"
	"log"
	"net/http"
	"os"
	"strings"

	"rummikub-lite/internal/gateway"
	"rummikub-lite/internal/milp"
	"rummikub-lite/internal/ruleengine"
	"rummikub-lite/internal/store"
)

func main() {
	st, storeMode, err := store.NewFromEnv()
	if err != nil {
		log.Fatalf("[Server] failed to init store: %v", err)
	}
	defer st.Close()

	engine, err := ruleengine.New(milp.NewGonumBackend())
	if err != nil {
		log.Fatalf("[Server] failed to init rule engine: %v", err)
	}

	tokenHash := tokenHashFromEnv()
	gw := gateway.New(engine, st, tokenHash)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := strings.TrimSpace(os.Getenv("SERVER_ADDR"))
	if addr == "" {
		addr = ":18080"
	}
	log.Printf("[Server] Store mode: %s", storeMode)
	log.Printf("[Server] Default rule config: %s", gateway.DefaultConfigJSON())
	log.Printf("[Server] Starting WebSocket server on %s", addr)
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil {
		log.Fatalf("[Server] failed to start: %v", err)
	}
}

// tokenHashFromEnv decodes GATEWAY_TOKEN_HASH (a base64-encoded bcrypt
// hash) if set, disabling the gateway's auth check otherwise.
func tokenHashFromEnv() []byte {
	raw := strings.TrimSpace(os.Getenv("GATEWAY_TOKEN_HASH"))
	if raw == "" {
		return nil
	}
	hash, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		log.Fatalf("[Server] invalid GATEWAY_TOKEN_HASH: %v", err)
	}
	return hash
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
