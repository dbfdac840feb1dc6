// Package journal provides the append-only event journal backing the token
// ledger: every mint, burn, transfer and configuration change is recorded as
// an event on a stream. The journal is the authoritative audit trail; the
// in-core bounded mint history is only a convenience view over it.
package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is a single journal entry. Version is assigned by the store on
// append and is contiguous per stream starting at 0.
type Event struct {
	ID        string          `json:"id"`
	Stream    string          `json:"stream"`
	Type      string          `json:"type"`
	Version   int             `json:"version"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent creates an event with a fresh ID and the payload marshaled to
// JSON. Version is set when the event is appended.
func NewEvent(stream, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return &Event{
		ID:        uuid.New().String(),
		Stream:    stream,
		Type:      eventType,
		Version:   -1,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the event payload into v.
func (e *Event) Decode(v any) error {
	if e.Data == nil {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}
