package zkaudit

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/holiman/uint256"
)

var ErrTooManyAccounts = errors.New("zkaudit: snapshot exceeds circuit width")

// Auditor compiles the conservation circuit for a fixed account width and
// holds the Groth16 keys. Setup is expensive; reuse one Auditor for many
// snapshots.
type Auditor struct {
	slots int
	ccs   constraint.ConstraintSystem
	pk    groth16.ProvingKey
	vk    groth16.VerifyingKey
}

// NewAuditor compiles and sets up the conservation circuit for up to slots
// accounts.
func NewAuditor(slots int) (*Auditor, error) {
	circuit := &ConservationCircuit{Balances: make([]frontend.Variable, slots)}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, fmt.Errorf("compile circuit: %w", err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return &Auditor{slots: slots, ccs: ccs, pk: pk, vk: vk}, nil
}

// Slots returns the circuit's account width.
func (a *Auditor) Slots() int {
	return a.slots
}

// Prove generates a conservation proof for a snapshot. The snapshot is
// padded with zero balances up to the circuit width. Returns the proof and
// its public witness.
func (a *Auditor) Prove(snap *Snapshot) (groth16.Proof, witness.Witness, error) {
	if len(snap.Balances) > a.slots {
		return nil, nil, ErrTooManyAccounts
	}

	assignment := &ConservationCircuit{
		Balances:    make([]frontend.Variable, a.slots),
		TotalSupply: snap.TotalSupply.ToBig(),
		MaxSupply:   snap.MaxSupply.ToBig(),
		Commitment:  new(big.Int).SetBytes(snap.Commitment(a.slots)),
	}
	for i := 0; i < a.slots; i++ {
		if i < len(snap.Balances) {
			assignment.Balances[i] = snap.Balances[i].ToBig()
		} else {
			assignment.Balances[i] = 0
		}
	}

	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, fmt.Errorf("build witness: %w", err)
	}
	proof, err := groth16.Prove(a.ccs, a.pk, w)
	if err != nil {
		return nil, nil, fmt.Errorf("prove: %w", err)
	}
	pub, err := w.Public()
	if err != nil {
		return nil, nil, fmt.Errorf("public witness: %w", err)
	}
	return proof, pub, nil
}

// Verify checks a conservation proof against its public witness.
func (a *Auditor) Verify(proof groth16.Proof, pub witness.Witness) error {
	return groth16.Verify(proof, a.vk, pub)
}

// CapacityAuditor proves per-proof capacity compliance for a fixed number
// of issuance records.
type CapacityAuditor struct {
	slots int
	ccs   constraint.ConstraintSystem
	pk    groth16.ProvingKey
	vk    groth16.VerifyingKey
}

// NewCapacityAuditor compiles and sets up the capacity circuit.
func NewCapacityAuditor(slots int) (*CapacityAuditor, error) {
	circuit := &CapacityCircuit{
		CumulativeMinted: make([]frontend.Variable, slots),
		ExcessOutput:     make([]frontend.Variable, slots),
	}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, fmt.Errorf("compile circuit: %w", err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return &CapacityAuditor{slots: slots, ccs: ccs, pk: pk, vk: vk}, nil
}

// Prove generates a capacity proof for paired cumulative/excess values.
// Unused slots are padded with zero on both sides.
func (a *CapacityAuditor) Prove(cumulative, excess []*uint256.Int) (groth16.Proof, witness.Witness, error) {
	if len(cumulative) != len(excess) {
		return nil, nil, errors.New("zkaudit: mismatched record lengths")
	}
	if len(cumulative) > a.slots {
		return nil, nil, ErrTooManyAccounts
	}

	assignment := &CapacityCircuit{
		CumulativeMinted: make([]frontend.Variable, a.slots),
		ExcessOutput:     make([]frontend.Variable, a.slots),
	}
	for i := 0; i < a.slots; i++ {
		if i < len(cumulative) {
			assignment.CumulativeMinted[i] = cumulative[i].ToBig()
			assignment.ExcessOutput[i] = excess[i].ToBig()
		} else {
			assignment.CumulativeMinted[i] = 0
			assignment.ExcessOutput[i] = 0
		}
	}

	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, fmt.Errorf("build witness: %w", err)
	}
	proof, err := groth16.Prove(a.ccs, a.pk, w)
	if err != nil {
		return nil, nil, fmt.Errorf("prove: %w", err)
	}
	pub, err := w.Public()
	if err != nil {
		return nil, nil, fmt.Errorf("public witness: %w", err)
	}
	return proof, pub, nil
}

// Verify checks a capacity proof against its public witness.
func (a *CapacityAuditor) Verify(proof groth16.Proof, pub witness.Witness) error {
	return groth16.Verify(proof, a.vk, pub)
}
