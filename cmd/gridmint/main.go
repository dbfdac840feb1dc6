package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "serve":
		if err := serve(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "demo":
		if err := demo(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "events":
		if err := events(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("gridmint version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gridmint - proof-gated renewable energy token ledger

Usage:
  gridmint <command> [options]

Commands:
  serve      Start the read-only HTTP API with a demo ledger
  demo       Run an issuance scenario and print each step
  events     Show the event journal from a SQLite database
  help       Show this help message
  version    Show version information

Examples:
  # Start the API on :8080 with journaling to disk
  gridmint serve --addr :8080 --db gridmint.db

  # Run the issuance walkthrough and persist the journal
  gridmint demo --db gridmint.db

  # Inspect the recorded events
  gridmint events gridmint.db --type mint

For command-specific help, run:
  gridmint <command> --help`)
}
