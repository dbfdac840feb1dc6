package mint_test

import (
	"errors"
	"testing"

	"github.com/pflow-xyz/go-gridmint/mint"
)

func TestAdminRequiresOwner(t *testing.T) {
	m, _, _ := newTestMinter(t)

	ops := map[string]func(caller string) (bool, error){
		"Pause":           func(c string) (bool, error) { return m.Pause(c) },
		"Unpause":         func(c string) (bool, error) { return m.Unpause(c) },
		"SetFeeRecipient": func(c string) (bool, error) { return m.SetFeeRecipient(c, "treasury") },
		"SetAttester":     func(c string) (bool, error) { return m.SetAttester(c, "attester-1") },
		"SetRegistry":     func(c string) (bool, error) { return m.SetRegistry(c, "registry-1") },
		"TransferOwnership": func(c string) (bool, error) {
			return m.TransferOwnership(c, "new-owner")
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if _, err := op("mallory"); !errors.Is(err, mint.ErrNotOwner) {
				t.Errorf("expected ErrNotOwner, got %v", err)
			}
			if ok, err := op(owner); err != nil || !ok {
				t.Errorf("owner call failed: ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestConfigWrites(t *testing.T) {
	m, _, _ := newTestMinter(t)

	if m.Config().FeeRecipient != owner {
		t.Errorf("expected fee recipient to default to owner")
	}

	m.SetFeeRecipient(owner, "treasury")
	m.SetAttester(owner, "attester-1")
	m.SetRegistry(owner, "registry-1")

	cfg := m.Config()
	if cfg.FeeRecipient != "treasury" {
		t.Errorf("fee recipient = %s", cfg.FeeRecipient)
	}
	if cfg.Attester != "attester-1" {
		t.Errorf("attester = %s", cfg.Attester)
	}
	if cfg.Registry != "registry-1" {
		t.Errorf("registry = %s", cfg.Registry)
	}
	if cfg.Version != 3 {
		t.Errorf("expected config version 3, got %d", cfg.Version)
	}
}

func TestTransferOwnership(t *testing.T) {
	m, _, _ := newTestMinter(t)

	// Self-transfer is always rejected.
	if _, err := m.TransferOwnership(owner, owner); !errors.Is(err, mint.ErrSelfOwnership) {
		t.Errorf("expected ErrSelfOwnership, got %v", err)
	}

	// Non-owner is always rejected.
	if _, err := m.TransferOwnership("mallory", "mallory"); !errors.Is(err, mint.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	// Owner transfer succeeds and moves the admin capability.
	if ok, err := m.TransferOwnership(owner, "new-owner"); err != nil || !ok {
		t.Fatalf("ownership transfer failed: ok=%v err=%v", ok, err)
	}
	if m.Owner() != "new-owner" {
		t.Errorf("owner = %s", m.Owner())
	}

	if _, err := m.Pause(owner); !errors.Is(err, mint.ErrNotOwner) {
		t.Errorf("old owner retained admin rights: %v", err)
	}
	if _, err := m.Pause("new-owner"); err != nil {
		t.Errorf("new owner pause failed: %v", err)
	}
}
