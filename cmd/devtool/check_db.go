package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

func checkDBCommand() Command {
	return Command{
		Name:    "check-db",
		Summary: "Check if database is running and ready",
		Run:     runCheckDB,
	}
}

func runCheckDB([]string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dbURL())
	if err != nil {
		PrintError("Database is not reachable: %v", err)
		return err
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		PrintError("Database ping failed: %v", err)
		return err
	}

	PrintSuccess("Database is up and accepting connections")
	return nil
}
