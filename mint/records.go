package mint

import "github.com/holiman/uint256"

// Record tracks cumulative issuance against one proof. Created lazily on the
// first successful mint, updated on every later mint, never deleted.
type Record struct {
	CumulativeMinted *uint256.Int
	LastMintHeight   uint64
}

func (r *Record) clone() Record {
	return Record{
		CumulativeMinted: r.CumulativeMinted.Clone(),
		LastMintHeight:   r.LastMintHeight,
	}
}

// history is a bounded, ordered record of proof ids consumed by one account.
// On overflow the oldest entry is dropped; the journal keeps the full trail.
type history struct {
	cap     int
	entries []string
}

func (h *history) append(proofID string) {
	h.entries = append(h.entries, proofID)
	if len(h.entries) > h.cap {
		h.entries = h.entries[len(h.entries)-h.cap:]
	}
}

func (h *history) snapshot() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
