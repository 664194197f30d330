package main

import (
	"fmt"
)

func migrateCommand() Command {
	return Command{
		Name:    "migrate",
		Summary: "Manage database migrations (up, down, status, create)",
		Run:     runMigrate,
	}
}

func runMigrate(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, create")
	}
	subcmd := args[0]

	gooseArgs := []string{"run", "github.com/pressly/goose/v3/cmd/goose", "-dir", "migrations"}

	// create needs no DB connection
	if subcmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}

		migrationType := "sql"
		if len(args) > 2 {
			migrationType = args[2]
		}
		gooseArgs = append(gooseArgs, "create", args[1], migrationType)

		return runCommandVerbose("go", gooseArgs...)
	}

	gooseArgs = append(gooseArgs, "postgres", dbURL(), subcmd)
	if len(args) > 1 {
		gooseArgs = append(gooseArgs, args[1:]...)
	}

	return runCommandVerbose("go", gooseArgs...)
}
