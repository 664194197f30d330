package config

import "time"

const (
	DefaultServiceName = "undercity"
	DefaultPort        = 8080

	// DefaultLockTimeout bounds how long an operation waits on a
	// character row lock before failing with Busy.
	DefaultLockTimeout = 3 * time.Second

	// DefaultSweepInterval is the cadence of the contract expiration sweep.
	DefaultSweepInterval = 30 * time.Second

	DefaultWorkerCount     = 4
	DefaultWorkerQueueSize = 64

	// Configuration file paths
	ConfigPathCatalog = "configs/catalog/items.json"

	DefaultDeadLetterPath = "logs/dead_letter.jsonl"
)
