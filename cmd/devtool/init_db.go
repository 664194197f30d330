package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/undercity-game/undercity/internal/database/schema"
)

func initDBCommand() Command {
	return Command{
		Name:    "init-db",
		Summary: "Apply the full schema directly (dev shortcut, bypasses goose)",
		Run:     runInitDB,
	}
}

func runInitDB([]string) error {
	PrintHeader("Initializing database schema...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dbURL())
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schema.SchemaSQL); err != nil {
		return err
	}

	PrintSuccess("Schema applied")
	return nil
}
