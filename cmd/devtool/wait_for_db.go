package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func waitForDBCommand() Command {
	return Command{
		Name:    "wait-for-db",
		Summary: "Wait for database to be ready (with retries)",
		Run:     runWaitForDB,
	}
}

func runWaitForDB([]string) error {
	PrintHeader("Waiting for database...")

	url := dbURL()
	maxRetries := 30
	retryInterval := 2 * time.Second

	var err error
	for i := 0; i < maxRetries; i++ {
		var db *sql.DB
		db, err = sql.Open("pgx", url)
		if err == nil {
			err = db.Ping()
			db.Close()
			if err == nil {
				PrintSuccess("Database is ready")
				return nil
			}
		}

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, maxRetries, err)
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("database not ready after %d attempts: %w", maxRetries, err)
}
