package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := NewRegistry(
		migrateCommand(),
		waitForDBCommand(),
		checkDBCommand(),
		initDBCommand(),
		validateCatalogCommand(),
		entrypointCommand(),
	)

	if len(os.Args) < 2 {
		registry.Usage(os.Stderr)
		os.Exit(1)
	}

	cmd, ok := registry.Lookup(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		registry.Usage(os.Stderr)
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		PrintError("%s: %v", cmd.Name, err)
		os.Exit(1)
	}
}
