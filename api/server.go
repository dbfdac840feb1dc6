// Package api exposes the token ledger's read accessors over HTTP and
// streams journal events over WebSocket. Mutating operations stay with the
// host ordering layer; this surface exists for wallets and indexers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pflow-xyz/go-gridmint/journal"
	"github.com/pflow-xyz/go-gridmint/mint"
)

// Server serves read accessors and the event feed.
type Server struct {
	minter       *mint.Minter
	journal      journal.Store
	stream       string
	pollInterval time.Duration
	upgrader     websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithJournal attaches the journal backing the /events feed.
func WithJournal(store journal.Store) Option {
	return func(s *Server) {
		s.journal = store
	}
}

// WithStream overrides the journal stream name (default "token").
func WithStream(stream string) Option {
	return func(s *Server) {
		s.stream = stream
	}
}

// WithPollInterval overrides how often the feed polls the journal.
func WithPollInterval(d time.Duration) Option {
	return func(s *Server) {
		s.pollInterval = d
	}
}

// NewServer creates a server for a minter.
func NewServer(m *mint.Minter, opts ...Option) *Server {
	s := &Server{
		minter:       m,
		stream:       "token",
		pollInterval: 500 * time.Millisecond,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mux returns an http.ServeMux with all routes configured.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /token", s.handleToken)
	mux.HandleFunc("GET /supply", s.handleSupply)
	mux.HandleFunc("GET /balance", s.handleBalance)
	mux.HandleFunc("GET /mintable", s.handleMintable)
	mux.HandleFunc("GET /record", s.handleRecord)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /events", s.handleEvents)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":      s.minter.Name(),
		"symbol":    s.minter.Symbol(),
		"decimals":  s.minter.Decimals(),
		"uri":       s.minter.URI(),
		"maxSupply": s.minter.MaxSupply().Dec(),
	})
}

func (s *Server) handleSupply(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"totalSupply": s.minter.TotalSupply().Dec(),
		"totalMinted": s.minter.TotalMinted().Dec(),
	})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("account")
	if account == "" {
		http.Error(w, "missing account parameter", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"account": account,
		"balance": s.minter.Balance(account).Dec(),
	})
}

func (s *Server) handleMintable(w http.ResponseWriter, r *http.Request) {
	proofID := r.URL.Query().Get("proof")
	if proofID == "" {
		http.Error(w, "missing proof parameter", http.StatusBadRequest)
		return
	}
	mintable, err := s.minter.MintableAmount(proofID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"proof":    proofID,
		"mintable": mintable.Dec(),
	})
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	proofID := r.URL.Query().Get("proof")
	if proofID == "" {
		http.Error(w, "missing proof parameter", http.StatusBadRequest)
		return
	}
	rec, ok := s.minter.MintRecord(proofID)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{
			"proof":  proofID,
			"minted": false,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"proof":            proofID,
		"minted":           true,
		"cumulativeMinted": rec.CumulativeMinted.Dec(),
		"lastMintHeight":   rec.LastMintHeight,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("account")
	if account == "" {
		http.Error(w, "missing account parameter", http.StatusBadRequest)
		return
	}
	history := s.minter.MintHistory(account)
	if history == nil {
		history = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"account": account,
		"proofs":  history,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	cfg := s.minter.Config()
	writeJSON(w, http.StatusOK, map[string]any{
		"paused":        cfg.Paused,
		"owner":         cfg.Owner,
		"feeRecipient":  cfg.FeeRecipient,
		"attester":      cfg.Attester,
		"registry":      cfg.Registry,
		"configVersion": cfg.Version,
		"height":        s.minter.Height(),
	})
}
