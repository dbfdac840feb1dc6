package mint

import (
	"errors"

	"github.com/pflow-xyz/go-gridmint/ledger"
)

var (
	// Authorization errors
	ErrNotOwner      = errors.New("mint: caller is not the owner")
	ErrNotRegistered = errors.New("mint: caller is not a registered producer")
	ErrNotSender     = errors.New("mint: caller is not the sender")

	// Validation errors
	ErrInvalidAmount = errors.New("mint: amount must be positive")
	ErrSelfTransfer  = errors.New("mint: transfer to self")
	ErrSelfOwnership = errors.New("mint: ownership transfer to current owner")

	// Proof errors
	ErrProofNotFound         = errors.New("mint: proof not found")
	ErrProofExpired          = errors.New("mint: proof expired")
	ErrProofProducerMismatch = errors.New("mint: proof belongs to another producer")
	ErrInsufficientProof     = errors.New("mint: insufficient proof capacity")

	// Supply errors
	ErrMaxSupply = errors.New("mint: max supply exceeded")

	// State errors
	ErrPaused             = errors.New("mint: operations are paused")
	ErrInvariantViolated  = errors.New("mint: invariant violated")

	// Transfer errors
	ErrInsufficientBalance = ledger.ErrInsufficientBalance
)

// Class groups errors into the taxonomy callers branch on.
type Class int

const (
	ClassUnknown Class = iota
	ClassAuthorization
	ClassValidation
	ClassProof
	ClassSupply
	ClassState
	ClassTransfer
)

func (c Class) String() string {
	switch c {
	case ClassAuthorization:
		return "authorization"
	case ClassValidation:
		return "validation"
	case ClassProof:
		return "proof"
	case ClassSupply:
		return "supply"
	case ClassState:
		return "state"
	case ClassTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// ClassOf maps an error to its taxonomy class.
func ClassOf(err error) Class {
	switch {
	case errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrNotRegistered),
		errors.Is(err, ErrNotSender):
		return ClassAuthorization
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrSelfTransfer),
		errors.Is(err, ErrSelfOwnership),
		errors.Is(err, ledger.ErrInvalidAmount):
		return ClassValidation
	case errors.Is(err, ErrProofNotFound),
		errors.Is(err, ErrProofExpired),
		errors.Is(err, ErrProofProducerMismatch),
		errors.Is(err, ErrInsufficientProof):
		return ClassProof
	case errors.Is(err, ErrMaxSupply),
		errors.Is(err, ledger.ErrSupplyOverflow):
		return ClassSupply
	case errors.Is(err, ErrPaused),
		errors.Is(err, ErrInvariantViolated):
		return ClassState
	case errors.Is(err, ErrInsufficientBalance):
		return ClassTransfer
	default:
		return ClassUnknown
	}
}
