// Command reset drops and recreates the game database. Destructive;
// requires the -yes flag outside of dev environments.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	yes := flag.Bool("yes", false, "skip the confirmation check")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(*yes); err != nil {
		log.Fatal(err)
	}
}

func run(confirmed bool) error {
	dbName := envOr("DB_NAME", "undercity")
	env := envOr("ENVIRONMENT", "dev")

	if !confirmed && env != "dev" {
		return fmt.Errorf("refusing to reset %q in environment %q without -yes", dbName, env)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// A one-off admin connection to the postgres database; no pool
	// needed for three statements.
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
	)
	conn, err := pgx.Connect(ctx, adminDSN)
	if err != nil {
		return fmt.Errorf("connect to postgres server: %w", err)
	}
	defer conn.Close(ctx)

	// Open sessions block DROP DATABASE, so kick them first.
	log.Printf("Terminating connections to %s...", dbName)
	if _, err := conn.Exec(ctx,
		`SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()`,
		dbName,
	); err != nil {
		log.Printf("Warning: failed to terminate connections: %v", err)
	}

	ident := pgx.Identifier{dbName}.Sanitize()

	log.Printf("Dropping database %s...", dbName)
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}

	log.Printf("Creating database %s...", dbName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("create database: %w", err)
	}

	log.Println("Database reset complete.")
	log.Println("Next step: run 'devtool migrate up' to apply migrations")
	return nil
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
