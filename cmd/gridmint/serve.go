package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/pflow-xyz/go-gridmint/api"
	"github.com/pflow-xyz/go-gridmint/journal"
	"github.com/pflow-xyz/go-gridmint/mint"
	"github.com/pflow-xyz/go-gridmint/proof"
)

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	db := fs.String("db", "", "SQLite journal path (in-memory if empty)")
	owner := fs.String("owner", "owner", "Owner account")
	seed := fs.Bool("seed", true, "Seed a demo producer and proof")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gridmint serve [options]

Start the read-only HTTP API backed by an in-process ledger.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # In-memory journal on the default port
  gridmint serve

  # Persist events to disk
  gridmint serve --addr :9090 --db gridmint.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openJournal(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	proofs := proof.NewMemoryStore()
	registry := proof.NewMemoryRegistry()
	m := mint.New(*owner, proofs, registry, mint.WithJournal(store))

	if *seed {
		if err := seedDemo(m, proofs, registry); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	srv := api.NewServer(m, api.WithJournal(store))

	fmt.Printf("gridmint API listening on %s\n", *addr)
	fmt.Println("  GET /token /supply /balance /mintable /record /history /status")
	fmt.Println("  WS  /events")
	return http.ListenAndServe(*addr, srv.Mux())
}

func openJournal(path string) (journal.Store, error) {
	if path == "" {
		return journal.NewMemoryStore(), nil
	}
	store, err := journal.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	return store, nil
}
