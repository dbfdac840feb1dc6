// Package zkaudit produces Groth16 proofs that a ledger snapshot satisfies
// the issuance invariants: balances sum to the total supply, the supply is
// under the hard cap, and no proof has been over-issued. An operator can
// hand the proof and the public inputs to a third party auditor without
// revealing individual balances.
package zkaudit

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// ConservationCircuit proves that a fixed-width balance vector sums to the
// public total supply, that the supply is bounded by the cap, and that the
// balances match a public MiMC commitment. Balance values must fit the
// BN254 scalar field.
type ConservationCircuit struct {
	Balances    []frontend.Variable
	TotalSupply frontend.Variable `gnark:",public"`
	MaxSupply   frontend.Variable `gnark:",public"`
	Commitment  frontend.Variable `gnark:",public"`
}

// Define declares the conservation constraints.
func (c *ConservationCircuit) Define(api frontend.API) error {
	sum := frontend.Variable(0)
	for _, b := range c.Balances {
		sum = api.Add(sum, b)
	}
	api.AssertIsEqual(sum, c.TotalSupply)
	api.AssertIsLessOrEqual(c.TotalSupply, c.MaxSupply)

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.Balances...)
	h.Write(c.TotalSupply)
	api.AssertIsEqual(h.Sum(), c.Commitment)
	return nil
}

// CapacityCircuit proves cumulativeMinted <= excessOutput slot-wise. The
// attested outputs are public; the issuance amounts stay private.
type CapacityCircuit struct {
	CumulativeMinted []frontend.Variable
	ExcessOutput     []frontend.Variable `gnark:",public"`
}

// Define declares the per-proof capacity constraints.
func (c *CapacityCircuit) Define(api frontend.API) error {
	for i := range c.CumulativeMinted {
		api.AssertIsLessOrEqual(c.CumulativeMinted[i], c.ExcessOutput[i])
	}
	return nil
}
