package journal

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrVersionConflict means the expected version did not match the
	// stream head; the caller raced another writer.
	ErrVersionConflict = errors.New("journal: version conflict")
)

// Store persists events per stream with optimistic concurrency.
type Store interface {
	// Append adds events to a stream. expectedVersion is the version of
	// the current stream head (-1 for a new stream). Returns the version
	// of the last appended event.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns events for a stream starting at fromVersion.
	Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error)

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store for tests and embedded use.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append adds events to a stream.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if len(events) == 0 {
		return expectedVersion, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.streams[stream]
	head := len(existing) - 1
	if expectedVersion != head {
		return head, ErrVersionConflict
	}

	version := head
	for _, e := range events {
		version++
		stored := *e
		stored.Version = version
		stored.Stream = stream
		s.streams[stream] = append(s.streams[stream], &stored)
	}
	return version, nil
}

// Read returns events for a stream starting at fromVersion.
func (s *MemoryStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing := s.streams[stream]
	var out []*Event
	for _, e := range existing {
		if e.Version >= fromVersion {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
