package zkaudit

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	frmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-gridmint/ledger"
)

// Snapshot is a point-in-time view of the ledger prepared for auditing.
// Accounts are sorted so the balance vector is deterministic.
type Snapshot struct {
	Accounts    []string
	Balances    []*uint256.Int
	TotalSupply *uint256.Int
	MaxSupply   *uint256.Int
}

// SnapshotLedger captures the current ledger state.
func SnapshotLedger(l *ledger.Ledger, maxSupply *uint256.Int) *Snapshot {
	accounts := l.Accounts()
	balances := make([]*uint256.Int, len(accounts))
	for i, a := range accounts {
		balances[i] = l.Balance(a)
	}
	return &Snapshot{
		Accounts:    accounts,
		Balances:    balances,
		TotalSupply: l.TotalSupply(),
		MaxSupply:   maxSupply.Clone(),
	}
}

// Commitment computes the MiMC digest of the balance vector padded to width
// slots, followed by the total supply. It matches the in-circuit hash.
func (s *Snapshot) Commitment(slots int) []byte {
	h := frmimc.NewMiMC()
	for i := 0; i < slots; i++ {
		var e fr.Element
		if i < len(s.Balances) {
			e.SetBigInt(s.Balances[i].ToBig())
		}
		b := e.Bytes()
		h.Write(b[:])
	}
	var e fr.Element
	e.SetBigInt(s.TotalSupply.ToBig())
	b := e.Bytes()
	h.Write(b[:])
	return h.Sum(nil)
}
