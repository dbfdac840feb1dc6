package proof

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func TestAttestAndVerify(t *testing.T) {
	attester, err := NewAttester()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	p := newProof("proof-1", "alice", 1000, 5)
	if err := attester.Attest(p); err != nil {
		t.Fatalf("attest failed: %v", err)
	}
	if len(p.Signature) == 0 {
		t.Fatal("expected signature to be set")
	}

	ok, err := Verify(attester.PublicKey(), p)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !ok {
		t.Error("expected signature to verify")
	}
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	attester, err := NewAttester()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	p := newProof("proof-1", "alice", 1000, 5)
	if err := attester.Attest(p); err != nil {
		t.Fatalf("attest failed: %v", err)
	}

	tampered := p.Clone()
	tampered.ExcessOutput = uint256.NewInt(2000)

	ok, err := Verify(attester.PublicKey(), tampered)
	if err != nil {
		t.Fatalf("verify errored: %v", err)
	}
	if ok {
		t.Error("expected tampered proof to fail verification")
	}
}

func TestVerifyRejectsWrongAttester(t *testing.T) {
	attester, _ := NewAttester()
	other, _ := NewAttester()

	p := newProof("proof-1", "alice", 1000, 5)
	if err := attester.Attest(p); err != nil {
		t.Fatalf("attest failed: %v", err)
	}

	ok, err := Verify(other.PublicKey(), p)
	if err != nil {
		t.Fatalf("verify errored: %v", err)
	}
	if ok {
		t.Error("expected signature from a different attester to fail")
	}
}

func TestVerifiedStoreRejectsUnattested(t *testing.T) {
	attester, _ := NewAttester()
	store := NewVerifiedStore(attester.PublicKey())

	// Unsigned proof
	if err := store.Add(newProof("p1", "alice", 100, 0)); !errors.Is(err, ErrUnattested) {
		t.Errorf("expected ErrUnattested, got %v", err)
	}

	// Properly signed proof
	p := newProof("p2", "alice", 100, 0)
	if err := attester.Attest(p); err != nil {
		t.Fatalf("attest failed: %v", err)
	}
	if err := store.Add(p); err != nil {
		t.Errorf("signed proof rejected: %v", err)
	}
	if _, ok := store.Get("p2"); !ok {
		t.Error("expected signed proof to be stored")
	}
}

func TestAttesterAddress(t *testing.T) {
	attester, _ := NewAttester()
	addr := attester.Address()
	if addr == "" {
		t.Fatal("expected non-empty address")
	}

	other, _ := NewAttester()
	if other.Address() == addr {
		t.Error("expected distinct attesters to have distinct addresses")
	}
}
