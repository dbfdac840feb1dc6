package journal

import (
	"bytes"
	"strings"
	"testing"
)

func TestJSONLRoundTrip(t *testing.T) {
	e1, _ := NewEvent("token", "mint", map[string]string{"minter": "alice"})
	e1.Version = 0
	e2, _ := NewEvent("token", "burn", map[string]string{"burner": "alice"})
	e2.Version = 1

	var buf bytes.Buffer
	if err := WriteJSONL(&buf, []*Event{e1, e2}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	events, err := ReadJSONL(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != e1.ID || events[0].Type != "mint" {
		t.Errorf("first event mismatch: %+v", events[0])
	}
	if events[1].Version != 1 {
		t.Errorf("expected version 1, got %d", events[1].Version)
	}

	var payload map[string]string
	if err := events[0].Decode(&payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload["minter"] != "alice" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestReadJSONLSkipsEmptyLines(t *testing.T) {
	input := `{"id":"a","stream":"token","type":"mint","version":0,"timestamp":"2026-01-01T00:00:00Z"}

{"id":"b","stream":"token","type":"burn","version":1,"timestamp":"2026-01-01T00:00:01Z"}
`
	events, err := ReadJSONL(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events, got %d", len(events))
	}
}

func TestReadJSONLInvalidLine(t *testing.T) {
	if _, err := ReadJSONL(strings.NewReader("not json\n")); err == nil {
		t.Error("expected error for invalid JSON line")
	}
}
