package mint

import (
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-gridmint/journal"
)

// Token metadata.
const (
	TokenName     = "Grid Watt Credit"
	TokenSymbol   = "GWC"
	TokenDecimals = 6
	TokenURI      = "https://pflow.xyz/gridmint/gwc.json"
)

// Issuance parameters.
const (
	// FeeDenominator is the basis-point scale for the issuance fee.
	FeeDenominator = 10000

	// DefaultFeeBps is the default issuance fee: 1%.
	DefaultFeeBps = 100

	// DefaultProofExpiry is the default maximum proof age in blocks.
	DefaultProofExpiry = 4320

	// DefaultHistoryCap bounds the per-account mint history.
	DefaultHistoryCap = 100
)

// defaultMaxSupply is 1e15 base units: one billion GWC at 6 decimals.
func defaultMaxSupply() *uint256.Int {
	return uint256.NewInt(1_000_000_000_000_000)
}

// defaultMaxPerProof bounds the net amount of a single mint.
func defaultMaxPerProof() *uint256.Int {
	return uint256.NewInt(1_000_000_000_000)
}

// Config is the owner-mutable configuration record. Version increments on
// every write, so indexers can detect config churn from a snapshot alone.
type Config struct {
	Owner        string
	Paused       bool
	Attester     string
	Registry     string
	FeeRecipient string
	Version      uint64
}

// Option configures a Minter.
type Option func(*Minter)

// WithJournal attaches an event journal; mint, burn, transfer and config
// changes are appended to it.
func WithJournal(store journal.Store) Option {
	return func(m *Minter) {
		m.journal = store
	}
}

// WithStream overrides the journal stream name (default "token").
func WithStream(stream string) Option {
	return func(m *Minter) {
		m.stream = stream
	}
}

// WithMaxSupply overrides the issuance hard cap.
func WithMaxSupply(max *uint256.Int) Option {
	return func(m *Minter) {
		m.maxSupply = max.Clone()
	}
}

// WithMaxPerProof overrides the per-mint net amount bound.
func WithMaxPerProof(max *uint256.Int) Option {
	return func(m *Minter) {
		m.maxPerProof = max.Clone()
	}
}

// WithFeeBps overrides the issuance fee in basis points.
func WithFeeBps(bps uint64) Option {
	return func(m *Minter) {
		m.feeBps = bps
	}
}

// WithProofExpiry overrides the proof expiry window in blocks.
func WithProofExpiry(blocks uint64) Option {
	return func(m *Minter) {
		m.proofExpiry = blocks
	}
}

// WithHistoryCap overrides the per-account history bound.
func WithHistoryCap(cap int) Option {
	return func(m *Minter) {
		m.historyCap = cap
	}
}

// WithFeeRecipient sets the initial fee recipient (default: the owner).
func WithFeeRecipient(account string) Option {
	return func(m *Minter) {
		m.cfg.FeeRecipient = account
	}
}

// WithAttester sets the initial attester address.
func WithAttester(addr string) Option {
	return func(m *Minter) {
		m.cfg.Attester = addr
	}
}

// WithRegistryAddr sets the initial registry address.
func WithRegistryAddr(addr string) Option {
	return func(m *Minter) {
		m.cfg.Registry = addr
	}
}

// WithInvariantChecks toggles the post-operation invariant tripwire
// (default on).
func WithInvariantChecks(enabled bool) Option {
	return func(m *Minter) {
		m.verify = enabled
	}
}
