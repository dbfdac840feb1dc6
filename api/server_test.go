package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-gridmint/api"
	"github.com/pflow-xyz/go-gridmint/journal"
	"github.com/pflow-xyz/go-gridmint/mint"
	"github.com/pflow-xyz/go-gridmint/proof"
)

func newTestServer(t *testing.T) (*api.Server, *mint.Minter, journal.Store) {
	t.Helper()

	proofs := proof.NewMemoryStore()
	registry := proof.NewMemoryRegistry()
	registry.Register("alice")

	if err := proofs.Add(&proof.Proof{
		ID:           "proof-1",
		ProducerID:   "alice",
		ExcessOutput: uint256.NewInt(1000),
		AttestedAt:   0,
	}); err != nil {
		t.Fatalf("add proof: %v", err)
	}

	store := journal.NewMemoryStore()
	m := mint.New("owner", proofs, registry, mint.WithJournal(store))

	if _, err := m.Mint("alice", uint256.NewInt(1000), "proof-1"); err != nil {
		t.Fatalf("mint: %v", err)
	}

	srv := api.NewServer(m,
		api.WithJournal(store),
		api.WithPollInterval(10*time.Millisecond),
	)
	return srv, m, store
}

func getJSON(t *testing.T, mux *http.ServeMux, path string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d, body %s", path, rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("GET %s: decode: %v", path, err)
	}
	return out
}

func TestTokenEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	mux := srv.Mux()

	got := getJSON(t, mux, "/token")
	if got["symbol"] != "GWC" {
		t.Errorf("expected symbol GWC, got %v", got["symbol"])
	}
	if got["decimals"] != float64(6) {
		t.Errorf("expected 6 decimals, got %v", got["decimals"])
	}
}

func TestSupplyEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	mux := srv.Mux()

	got := getJSON(t, mux, "/supply")
	if got["totalSupply"] != "990" {
		t.Errorf("expected totalSupply 990, got %v", got["totalSupply"])
	}
	if got["totalMinted"] != "990" {
		t.Errorf("expected totalMinted 990, got %v", got["totalMinted"])
	}
}

func TestBalanceEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	mux := srv.Mux()

	got := getJSON(t, mux, "/balance?account=alice")
	if got["balance"] != "990" {
		t.Errorf("expected balance 990, got %v", got["balance"])
	}

	got = getJSON(t, mux, "/balance?account=nobody")
	if got["balance"] != "0" {
		t.Errorf("expected balance 0 for unknown account, got %v", got["balance"])
	}

	req := httptest.NewRequest(http.MethodGet, "/balance", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing account, got %d", rec.Code)
	}
}

func TestMintableEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	mux := srv.Mux()

	got := getJSON(t, mux, "/mintable?proof=proof-1")
	if got["mintable"] != "10" {
		t.Errorf("expected remaining capacity 10, got %v", got["mintable"])
	}

	req := httptest.NewRequest(http.MethodGet, "/mintable?proof=missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown proof, got %d", rec.Code)
	}
}

func TestRecordEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	mux := srv.Mux()

	got := getJSON(t, mux, "/record?proof=proof-1")
	if got["minted"] != true {
		t.Errorf("expected minted=true, got %v", got["minted"])
	}
	if got["cumulativeMinted"] != "990" {
		t.Errorf("expected cumulativeMinted 990, got %v", got["cumulativeMinted"])
	}

	got = getJSON(t, mux, "/record?proof=unseen")
	if got["minted"] != false {
		t.Errorf("expected minted=false for unseen proof, got %v", got["minted"])
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	mux := srv.Mux()

	got := getJSON(t, mux, "/history?account=alice")
	proofs, ok := got["proofs"].([]any)
	if !ok || len(proofs) != 1 || proofs[0] != "proof-1" {
		t.Errorf("expected history [proof-1], got %v", got["proofs"])
	}

	got = getJSON(t, mux, "/history?account=nobody")
	proofs, ok = got["proofs"].([]any)
	if !ok || len(proofs) != 0 {
		t.Errorf("expected empty history, got %v", got["proofs"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv, m, _ := newTestServer(t)
	mux := srv.Mux()

	got := getJSON(t, mux, "/status")
	if got["paused"] != false {
		t.Errorf("expected paused=false, got %v", got["paused"])
	}
	if got["owner"] != "owner" {
		t.Errorf("expected owner, got %v", got["owner"])
	}

	if _, err := m.Pause("owner"); err != nil {
		t.Fatalf("pause: %v", err)
	}
	got = getJSON(t, mux, "/status")
	if got["paused"] != true {
		t.Errorf("expected paused=true after pause, got %v", got["paused"])
	}
}

func TestEventFeed(t *testing.T) {
	srv, _, _ := newTestServer(t)

	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev journal.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != "mint" {
		t.Errorf("expected mint event, got %q", ev.Type)
	}
	if ev.Version != 0 {
		t.Errorf("expected version 0, got %d", ev.Version)
	}

	var payload map[string]string
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["net"] != "990" {
		t.Errorf("expected net 990, got %q", payload["net"])
	}
}

func TestEventFeedNotConfigured(t *testing.T) {
	proofs := proof.NewMemoryStore()
	registry := proof.NewMemoryRegistry()
	srv := api.NewServer(mint.New("owner", proofs, registry))

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without a journal, got %d", rec.Code)
	}
}
