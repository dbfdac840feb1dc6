// Package proof models externally attested production claims and the
// membership registry for producers allowed to mint against them.
//
// The core ledger consumes the Store and Registry interfaces and takes their
// answers at face value. The in-memory implementations here verify attester
// signatures at ingestion, so everything a Store hands out is already
// attested.
package proof

import (
	"errors"
	"sync"

	"github.com/holiman/uint256"
)

var (
	ErrUnattested = errors.New("proof: attestation signature invalid")
	ErrDuplicate  = errors.New("proof: duplicate proof id")
)

// Proof is an attested claim that a producer generated a given amount of
// excess output at a given block height. Immutable once attested.
type Proof struct {
	ID           string
	ProducerID   string
	ExcessOutput *uint256.Int
	AttestedAt   uint64
	Signature    []byte
}

// Clone returns a deep copy of the proof.
func (p *Proof) Clone() *Proof {
	c := *p
	if p.ExcessOutput != nil {
		c.ExcessOutput = p.ExcessOutput.Clone()
	}
	if p.Signature != nil {
		c.Signature = append([]byte(nil), p.Signature...)
	}
	return &c
}

// Store returns attested claims by identifier.
type Store interface {
	Get(id string) (*Proof, bool)
}

// Registry answers whether an account may mint.
type Registry interface {
	IsRegistered(account string) bool
}

// MemoryStore is an in-memory proof store. When constructed with an attester
// public key it rejects proofs whose signature does not verify.
type MemoryStore struct {
	mu        sync.RWMutex
	proofs    map[string]*Proof
	verifyKey []byte
}

// NewMemoryStore creates a store that accepts any proof.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{proofs: make(map[string]*Proof)}
}

// NewVerifiedStore creates a store that only accepts proofs signed by the
// attester with the given public key.
func NewVerifiedStore(attesterKey []byte) *MemoryStore {
	return &MemoryStore{
		proofs:    make(map[string]*Proof),
		verifyKey: append([]byte(nil), attesterKey...),
	}
}

// Add ingests a proof. Proofs are immutable: re-adding an existing id fails.
func (s *MemoryStore) Add(p *Proof) error {
	if s.verifyKey != nil {
		ok, err := Verify(s.verifyKey, p)
		if err != nil || !ok {
			return ErrUnattested
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.proofs[p.ID]; exists {
		return ErrDuplicate
	}
	s.proofs[p.ID] = p.Clone()
	return nil
}

// Get returns a copy of the proof with the given id.
func (s *MemoryStore) Get(id string) (*Proof, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proofs[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// MemoryRegistry is an in-memory producer membership set.
type MemoryRegistry struct {
	mu      sync.RWMutex
	members map[string]bool
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{members: make(map[string]bool)}
}

// Register adds an account to the registry.
func (r *MemoryRegistry) Register(account string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[account] = true
}

// Deregister removes an account from the registry.
func (r *MemoryRegistry) Deregister(account string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, account)
}

// IsRegistered reports whether an account may mint.
func (r *MemoryRegistry) IsRegistered(account string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.members[account]
}
