package api

import (
	"net/http"
	"strconv"
	"time"
)

// handleEvents upgrades to WebSocket and streams journal events as JSON.
// Clients may pass ?from=N to resume from a version; the default replays
// the stream from the start. The feed polls the journal, so delivery lags
// a write by at most the poll interval.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		http.Error(w, "event feed not configured", http.StatusNotFound)
		return
	}

	cursor := 0
	if from := r.URL.Query().Get("from"); from != "" {
		n, err := strconv.Atoi(from)
		if err != nil || n < 0 {
			http.Error(w, "invalid from parameter", http.StatusBadRequest)
			return
		}
		cursor = n
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		events, err := s.journal.Read(ctx, s.stream, cursor)
		if err != nil {
			return
		}
		for _, ev := range events {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
			cursor = ev.Version + 1
		}

		select {
		case <-ctx.Done():
			return
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}
