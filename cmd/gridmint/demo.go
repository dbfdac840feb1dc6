package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-gridmint/journal"
	"github.com/pflow-xyz/go-gridmint/mint"
	"github.com/pflow-xyz/go-gridmint/proof"
)

// seedDemo registers a producer and an attested proof so the API has
// something to show immediately after startup.
func seedDemo(m *mint.Minter, proofs *proof.MemoryStore, registry *proof.MemoryRegistry) error {
	registry.Register("alice")
	return proofs.Add(&proof.Proof{
		ID:           "demo-proof",
		ProducerID:   "alice",
		ExcessOutput: uint256.NewInt(1_000_000),
		AttestedAt:   0,
	})
}

func demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	db := fs.String("db", "", "SQLite journal path (in-memory if empty)")
	export := fs.String("export", "", "Export the journal to a JSONL file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gridmint demo [options]

Run an end-to-end issuance scenario: attest a proof, mint against it,
exhaust its capacity, transfer, burn, and pause.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openJournal(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	// The oracle signs attestations; the store rejects anything unsigned.
	attester, err := proof.NewAttester()
	if err != nil {
		return fmt.Errorf("create attester: %w", err)
	}
	proofs := proof.NewVerifiedStore(attester.PublicKey())
	registry := proof.NewMemoryRegistry()
	registry.Register("alice")
	registry.Register("bob")

	p := &proof.Proof{
		ID:           "meter-2026-08-25",
		ProducerID:   "alice",
		ExcessOutput: uint256.NewInt(1000),
		AttestedAt:   0,
	}
	if err := attester.Attest(p); err != nil {
		return fmt.Errorf("attest: %w", err)
	}
	if err := proofs.Add(p); err != nil {
		return fmt.Errorf("add proof: %w", err)
	}
	fmt.Printf("attested proof %s: producer=alice excess=%s\n", p.ID, p.ExcessOutput.Dec())

	m := mint.New("owner", proofs, registry,
		mint.WithJournal(store),
		mint.WithAttester(attester.Address()),
	)

	net, err := m.Mint("alice", uint256.NewInt(1000), p.ID)
	if err != nil {
		return fmt.Errorf("mint: %w", err)
	}
	fee := new(uint256.Int).Sub(uint256.NewInt(1000), net)
	fmt.Printf("minted 1000 against %s: net=%s fee=%s balance=%s\n",
		p.ID, net.Dec(), fee.Dec(), m.Balance("alice").Dec())

	// The proof is spent up to its attested output; a second draw fails.
	if _, err := m.Mint("alice", uint256.NewInt(500), p.ID); err != nil {
		fmt.Printf("second mint rejected as expected: %v\n", err)
	}

	if _, err := m.Transfer("alice", "alice", "bob", uint256.NewInt(200)); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	fmt.Printf("transferred 200 to bob: alice=%s bob=%s\n",
		m.Balance("alice").Dec(), m.Balance("bob").Dec())

	if _, err := m.Burn("bob", uint256.NewInt(50)); err != nil {
		return fmt.Errorf("burn: %w", err)
	}
	fmt.Printf("bob burned 50: bob=%s supply=%s\n",
		m.Balance("bob").Dec(), m.TotalSupply().Dec())

	if _, err := m.Pause("owner"); err != nil {
		return fmt.Errorf("pause: %w", err)
	}
	if _, err := m.Mint("alice", uint256.NewInt(1), p.ID); err != nil {
		fmt.Printf("mint while paused rejected: %v\n", err)
	}
	if _, err := m.Unpause("owner"); err != nil {
		return fmt.Errorf("unpause: %w", err)
	}

	if *export != "" {
		events, err := store.Read(context.Background(), "token", 0)
		if err != nil {
			return fmt.Errorf("read journal: %w", err)
		}
		f, err := os.Create(*export)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		if err := journal.WriteJSONL(f, events); err != nil {
			return fmt.Errorf("export journal: %w", err)
		}
		fmt.Printf("exported %d events to %s\n", len(events), *export)
	}

	fmt.Printf("final supply=%s minted=%s\n", m.TotalSupply().Dec(), m.TotalMinted().Dec())
	return nil
}
