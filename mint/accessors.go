package mint

import (
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-gridmint/ledger"
)

// Read accessors. All are pure; MintableAmount is the only one that can
// fail (absent proof).

// Name returns the token name.
func (m *Minter) Name() string { return TokenName }

// Symbol returns the token symbol.
func (m *Minter) Symbol() string { return TokenSymbol }

// Decimals returns the token decimal places.
func (m *Minter) Decimals() int { return TokenDecimals }

// URI returns the token metadata URI.
func (m *Minter) URI() string { return TokenURI }

// LedgerSnapshot returns an independent copy of the ledger, suitable for
// auditing while minting continues.
func (m *Minter) LedgerSnapshot() *ledger.Ledger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.Clone()
}

// Balance returns the balance of an account.
func (m *Minter) Balance(account string) *uint256.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.Balance(account)
}

// TotalSupply returns the circulating supply (minted minus burned).
func (m *Minter) TotalSupply() *uint256.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.TotalSupply()
}

// TotalMinted returns gross issuance against the cap.
func (m *Minter) TotalMinted() *uint256.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalMinted.Clone()
}

// MaxSupply returns the issuance hard cap.
func (m *Minter) MaxSupply() *uint256.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxSupply.Clone()
}

// MintableAmount returns the remaining capacity of a proof:
// max(0, excessOutput - cumulativeMinted). Fails if the proof is absent.
func (m *Minter) MintableAmount(proofID string) (*uint256.Int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.proofs.Get(proofID)
	if !ok {
		return nil, ErrProofNotFound
	}
	return m.remainingCapacity(p, proofID), nil
}

// IsProofMinted reports whether any issuance has happened against a proof.
func (m *Minter) IsProofMinted(proofID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.records[proofID]
	return ok
}

// MintRecord returns the issuance record for a proof, if any.
func (m *Minter) MintRecord(proofID string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[proofID]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

// MintHistory returns the recent proof ids consumed by an account, oldest
// first, bounded by the history cap.
func (m *Minter) MintHistory(account string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.history[account]
	if !ok {
		return nil
	}
	return h.snapshot()
}

// Paused reports whether operations are paused.
func (m *Minter) Paused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Paused
}

// Owner returns the current owner account.
func (m *Minter) Owner() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Owner
}

// Config returns a copy of the configuration record.
func (m *Minter) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}
