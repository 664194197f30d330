package main

import (
	"github.com/undercity-game/undercity/internal/catalog"
)

func validateCatalogCommand() Command {
	return Command{
		Name:    "validate-catalog",
		Summary: "Parse and validate the item catalog file",
		Run:     runValidateCatalog,
	}
}

func runValidateCatalog(args []string) error {
	path := getEnv("CATALOG_PATH", "configs/catalog/items.json")
	if len(args) > 0 {
		path = args[0]
	}

	PrintHeader("Validating catalog: " + path)

	cfg, err := catalog.Load(path)
	if err != nil {
		return err
	}
	if err := catalog.Validate(cfg); err != nil {
		return err
	}

	// Building the lookup catches duplicate refs the same way the app does at boot.
	lookup, err := catalog.New(cfg)
	if err != nil {
		return err
	}

	PrintSuccess("Catalog version %s is valid (%d items)", cfg.Version, len(lookup.All()))
	return nil
}
