package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

func entrypointCommand() Command {
	return Command{
		Name:    "entrypoint",
		Summary: "Container entrypoint (wait-for-db, migrate, exec)",
		Run:     runEntrypoint,
	}
}

func runEntrypoint(args []string) error {
	// Containers link the database as "db" unless told otherwise.
	if os.Getenv("DB_HOST") == "" {
		_ = os.Setenv("DB_HOST", "db")
	}

	if err := runWaitForDB(nil); err != nil {
		return fmt.Errorf("wait-for-db failed: %w", err)
	}

	if err := migrateWithRetries(); err != nil {
		return err
	}

	return execApp(args)
}

func migrateWithRetries() error {
	PrintHeader("Running migrations...")

	maxRetries := 3
	var err error
	for i := 0; i < maxRetries; i++ {
		err = runMigrate([]string{"up"})
		if err == nil {
			PrintSuccess("Migrations completed successfully")
			return nil
		}
		PrintWarning("Migration attempt %d failed: %v", i+1, err)
		if i < maxRetries-1 {
			PrintInfo("Retrying in 5 seconds...")
			time.Sleep(5 * time.Second)
		}
	}
	return fmt.Errorf("migrations failed after %d attempts: %w", maxRetries, err)
}

func execApp(args []string) error {
	execArgs := args
	if len(execArgs) > 0 && execArgs[0] == "--" {
		execArgs = execArgs[1:]
	}

	if len(execArgs) == 0 {
		return fmt.Errorf("no command to execute")
	}

	PrintHeader("Starting application...")
	cmdPath, err := exec.LookPath(execArgs[0])
	if err != nil {
		return fmt.Errorf("executable not found: %w", err)
	}

	// syscall.Exec replaces the current process
	if err := syscall.Exec(cmdPath, execArgs, os.Environ()); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}

	return nil
}
