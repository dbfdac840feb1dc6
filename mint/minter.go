// Package mint implements the proof-gated issuance state machine for the
// Grid Watt Credit token. The Minter validates every balance-affecting
// operation against the pause flag, the producer registry, the proof store
// and the per-proof issuance records, then applies all effects atomically
// under a single writer lock.
package mint

import (
	"context"
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-gridmint/journal"
	"github.com/pflow-xyz/go-gridmint/ledger"
	"github.com/pflow-xyz/go-gridmint/proof"
)

// Minter orchestrates minting, burning, transfers and configuration for the
// token ledger. All mutating operations are serialized by an internal lock;
// validation and effects run in the same critical section, so a failed check
// leaves no partial state behind.
type Minter struct {
	mu sync.RWMutex

	cfg      Config
	ledger   *ledger.Ledger
	proofs   proof.Store
	registry proof.Registry

	records map[string]*Record
	history map[string]*history

	// totalMinted is gross issuance against the cap. Burns reduce the
	// total supply but never the minted total, so the cap is terminal.
	totalMinted *uint256.Int

	height uint64

	journal journal.Store
	stream  string
	version int

	maxSupply   *uint256.Int
	maxPerProof *uint256.Int
	feeBps      uint64
	proofExpiry uint64
	historyCap  int
	verify      bool
}

// New creates a Minter with the given owner, proof store and producer
// registry.
func New(owner string, proofs proof.Store, registry proof.Registry, opts ...Option) *Minter {
	m := &Minter{
		cfg: Config{
			Owner:        owner,
			FeeRecipient: owner,
		},
		ledger:      ledger.New(),
		proofs:      proofs,
		registry:    registry,
		records:     make(map[string]*Record),
		history:     make(map[string]*history),
		totalMinted: uint256.NewInt(0),
		stream:      "token",
		version:     -1,
		maxSupply:   defaultMaxSupply(),
		maxPerProof: defaultMaxPerProof(),
		feeBps:      DefaultFeeBps,
		proofExpiry: DefaultProofExpiry,
		historyCap:  DefaultHistoryCap,
		verify:      true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetHeight sets the current block height. The host ordering layer drives
// height; the Minter never advances it on its own.
func (m *Minter) SetHeight(height uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.height = height
}

// Height returns the current block height.
func (m *Minter) Height() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.height
}

// Mint issues tokens to caller against an attested proof. amount is the
// gross request; the issuance fee is skimmed and the net amount credited.
// Validation is ordered and fail-fast: the first failing check aborts with
// zero state change. Returns the net amount minted.
func (m *Minter) Mint(caller string, amount *uint256.Int, proofID string) (*uint256.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.Paused {
		return nil, ErrPaused
	}
	if !m.registry.IsRegistered(caller) {
		return nil, ErrNotRegistered
	}
	p, ok := m.proofs.Get(proofID)
	if !ok {
		return nil, ErrProofNotFound
	}

	if amount == nil {
		amount = uint256.NewInt(0)
	}
	fee, overflow := new(uint256.Int).MulOverflow(amount, uint256.NewInt(m.feeBps))
	if overflow {
		return nil, ErrInvalidAmount
	}
	fee.Div(fee, uint256.NewInt(FeeDenominator))
	if fee.Gt(amount) {
		fee = amount.Clone()
	}
	net := new(uint256.Int).Sub(amount, fee)

	if p.ProducerID != caller {
		return nil, ErrProofProducerMismatch
	}
	if net.IsZero() || net.Gt(m.maxPerProof) {
		return nil, ErrInsufficientProof
	}
	if m.height > p.AttestedAt && m.height-p.AttestedAt > m.proofExpiry {
		return nil, ErrProofExpired
	}
	if m.remainingCapacity(p, proofID).Lt(net) {
		return nil, ErrInsufficientProof
	}

	minted, overflow := new(uint256.Int).AddOverflow(m.totalMinted, net)
	if overflow || minted.Gt(m.maxSupply) {
		return nil, ErrMaxSupply
	}

	// All checks passed; apply effects.
	if err := m.ledger.Mint(caller, net); err != nil {
		return nil, err
	}
	m.totalMinted = minted

	rec, ok := m.records[proofID]
	if !ok {
		rec = &Record{CumulativeMinted: uint256.NewInt(0)}
		m.records[proofID] = rec
	}
	rec.CumulativeMinted.Add(rec.CumulativeMinted, net)
	rec.LastMintHeight = m.height

	h, ok := m.history[caller]
	if !ok {
		h = &history{cap: m.historyCap}
		m.history[caller] = h
	}
	h.append(proofID)

	m.emit("mint", map[string]any{
		"minter":       caller,
		"proofId":      proofID,
		"amount":       amount.Dec(),
		"fee":          fee.Dec(),
		"net":          net.Dec(),
		"feeRecipient": m.cfg.FeeRecipient,
		"height":       m.height,
	})

	if err := m.checkInvariants(); err != nil {
		return nil, err
	}
	return net.Clone(), nil
}

// remainingCapacity is excessOutput minus cumulative issuance against the
// proof, floored at zero.
func (m *Minter) remainingCapacity(p *proof.Proof, proofID string) *uint256.Int {
	excess := p.ExcessOutput
	if excess == nil {
		excess = uint256.NewInt(0)
	}
	rec, ok := m.records[proofID]
	if !ok {
		return excess.Clone()
	}
	if rec.CumulativeMinted.Gt(excess) {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Sub(excess, rec.CumulativeMinted)
}

// Burn destroys amount of the caller's balance and shrinks the total supply.
// Burning never frees proof capacity. Returns the burned amount.
func (m *Minter) Burn(caller string, amount *uint256.Int) (*uint256.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.Paused {
		return nil, ErrPaused
	}
	if amount == nil || amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	if m.ledger.Balance(caller).Lt(amount) {
		return nil, ErrInsufficientBalance
	}

	if err := m.ledger.Burn(caller, amount); err != nil {
		return nil, err
	}

	m.emit("burn", map[string]any{
		"burner": caller,
		"amount": amount.Dec(),
		"height": m.height,
	})

	if err := m.checkInvariants(); err != nil {
		return nil, err
	}
	return amount.Clone(), nil
}

// Transfer moves tokens from sender to recipient. Only the sender may move
// its own balance; there are no delegated allowances.
func (m *Minter) Transfer(caller, sender, recipient string, amount *uint256.Int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != sender {
		return false, ErrNotSender
	}
	if m.cfg.Paused {
		return false, ErrPaused
	}
	if amount == nil || amount.IsZero() {
		return false, ErrInvalidAmount
	}
	if recipient == sender {
		return false, ErrSelfTransfer
	}
	if m.ledger.Balance(sender).Lt(amount) {
		return false, ErrInsufficientBalance
	}

	if err := m.ledger.Transfer(sender, recipient, amount); err != nil {
		return false, err
	}

	m.emit("transfer", map[string]any{
		"from":   sender,
		"to":     recipient,
		"amount": amount.Dec(),
		"height": m.height,
	})

	if err := m.checkInvariants(); err != nil {
		return false, err
	}
	return true, nil
}

// checkInvariants is a tripwire run after every mutation: conservation,
// the supply cap and per-proof capacity must all hold.
func (m *Minter) checkInvariants() error {
	if !m.verify {
		return nil
	}
	if err := m.ledger.CheckConservation(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolated, err)
	}
	if m.ledger.TotalSupply().Gt(m.maxSupply) {
		return fmt.Errorf("%w: total supply above cap", ErrInvariantViolated)
	}
	for id, rec := range m.records {
		p, ok := m.proofs.Get(id)
		if !ok {
			continue
		}
		if p.ExcessOutput != nil && rec.CumulativeMinted.Gt(p.ExcessOutput) {
			return fmt.Errorf("%w: proof %s over-issued", ErrInvariantViolated, id)
		}
	}
	return nil
}

// emit appends an event to the journal. The journal is an indexing surface,
// not ledger state; append failures do not fail the operation.
func (m *Minter) emit(eventType string, payload map[string]any) {
	if m.journal == nil {
		return
	}
	e, err := journal.NewEvent(m.stream, eventType, payload)
	if err != nil {
		return
	}
	v, err := m.journal.Append(context.Background(), m.stream, m.version, []*journal.Event{e})
	if err != nil {
		return
	}
	m.version = v
}
