package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Retry configuration constants
const (
	// RetryInitialDelay is the initial retry backoff step
	RetryInitialDelaySeconds = 2

	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 5
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644
)

// Log message constants
const (
	LogMsgPublishFailed         = "Failed to publish event, initiating async retry"
	LogMsgRetrySucceeded        = "Successfully published event after retry"
	LogMsgRetryFailed           = "Retry failed"
	LogMsgDeadLetterOpenFailed  = "Failed to open dead letter file"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter file"
	LogMsgDeadLettered          = "Event written to dead letter queue"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
