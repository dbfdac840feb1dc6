// Package ledger holds account balances and the total supply counter for a
// fungible token. It provides the raw balance-moving primitives; all policy
// (authorization, fees, caps, pause) lives with the caller.
package ledger

import (
	"errors"
	"sort"

	"github.com/holiman/uint256"
)

var (
	ErrInvalidAmount       = errors.New("ledger: amount must be positive")
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	ErrSupplyOverflow      = errors.New("ledger: total supply overflow")
	ErrConservation        = errors.New("ledger: balances do not sum to total supply")
)

// Ledger is the account-balance map plus the total-supply counter.
// It is not safe for concurrent use; the owning state machine serializes
// access.
type Ledger struct {
	balances    map[string]*uint256.Int
	totalSupply *uint256.Int
}

// New creates an empty ledger with zero supply.
func New() *Ledger {
	return &Ledger{
		balances:    make(map[string]*uint256.Int),
		totalSupply: uint256.NewInt(0),
	}
}

// Balance returns a copy of the balance for an account. Unknown accounts
// have a zero balance.
func (l *Ledger) Balance(account string) *uint256.Int {
	if b, ok := l.balances[account]; ok {
		return b.Clone()
	}
	return uint256.NewInt(0)
}

// TotalSupply returns a copy of the current total supply.
func (l *Ledger) TotalSupply() *uint256.Int {
	return l.totalSupply.Clone()
}

// Mint credits amount to an account and grows the total supply by the same
// amount.
func (l *Ledger) Mint(account string, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	supply, overflow := new(uint256.Int).AddOverflow(l.totalSupply, amount)
	if overflow {
		return ErrSupplyOverflow
	}
	l.credit(account, amount)
	l.totalSupply = supply
	return nil
}

// Burn debits amount from an account and shrinks the total supply by the
// same amount.
func (l *Ledger) Burn(account string, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	if err := l.debit(account, amount); err != nil {
		return err
	}
	l.totalSupply.Sub(l.totalSupply, amount)
	return nil
}

// Transfer moves amount from one account to another. The total supply is
// unchanged. Either both writes happen or neither does.
func (l *Ledger) Transfer(from, to string, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	if err := l.debit(from, amount); err != nil {
		return err
	}
	l.credit(to, amount)
	return nil
}

func (l *Ledger) credit(account string, amount *uint256.Int) {
	if b, ok := l.balances[account]; ok {
		b.Add(b, amount)
		return
	}
	l.balances[account] = amount.Clone()
}

func (l *Ledger) debit(account string, amount *uint256.Int) error {
	b, ok := l.balances[account]
	if !ok || b.Lt(amount) {
		return ErrInsufficientBalance
	}
	b.Sub(b, amount)
	return nil
}

// Accounts returns the accounts with a recorded balance, sorted for
// deterministic iteration.
func (l *Ledger) Accounts() []string {
	accounts := make([]string, 0, len(l.balances))
	for a := range l.balances {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)
	return accounts
}

// Balances returns a deep copy of the balance map.
func (l *Ledger) Balances() map[string]*uint256.Int {
	out := make(map[string]*uint256.Int, len(l.balances))
	for a, b := range l.balances {
		out[a] = b.Clone()
	}
	return out
}

// Clone creates a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{
		balances:    l.Balances(),
		totalSupply: l.totalSupply.Clone(),
	}
}

// CheckConservation verifies that the balances sum to the total supply.
func (l *Ledger) CheckConservation() error {
	sum := uint256.NewInt(0)
	for _, b := range l.balances {
		var overflow bool
		sum, overflow = new(uint256.Int).AddOverflow(sum, b)
		if overflow {
			return ErrConservation
		}
	}
	if !sum.Eq(l.totalSupply) {
		return ErrConservation
	}
	return nil
}
