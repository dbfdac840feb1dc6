package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pflow-xyz/go-gridmint/journal"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	stream := fs.String("stream", "token", "Journal stream to read")
	typeFilter := fs.String("type", "", "Filter by event type")
	from := fs.Int("from", 0, "Start version")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gridmint events <journal.db> [options]

Display the event journal recorded by a ledger.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Show all events
  gridmint events gridmint.db

  # Only mint events
  gridmint events gridmint.db --type mint
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("journal database required")
	}

	store, err := journal.NewSQLiteStore(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	all, err := store.Read(context.Background(), *stream, *from)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	var display []*journal.Event
	if *typeFilter != "" {
		for _, ev := range all {
			if ev.Type == *typeFilter {
				display = append(display, ev)
			}
		}
	} else {
		display = all
	}

	if len(display) == 0 {
		if *typeFilter != "" {
			fmt.Printf("No events of type '%s'\n", *typeFilter)
		} else {
			fmt.Println("No events recorded")
		}
		return nil
	}

	fmt.Printf("=== Event Journal (%d events) ===\n\n", len(display))

	for _, ev := range display {
		fmt.Printf("v=%-4d  %-10s  %s\n", ev.Version, strings.ToUpper(ev.Type), ev.Timestamp.Format(time.RFC3339))

		var data map[string]any
		if err := json.Unmarshal(ev.Data, &data); err == nil {
			for key, value := range data {
				fmt.Printf("        %s: %v\n", key, value)
			}
		}
	}

	return nil
}
