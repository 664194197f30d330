package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameItemsBought        = "items_bought_total"
	MetricNameItemsSold          = "items_sold_total"
	MetricNameItemsEquipped      = "items_equipped_total"
	MetricNameTasksCompleted     = "tasks_completed_total"
	MetricNameRewardsClaimed     = "task_rewards_claimed_total"
	MetricNameContractsPosted    = "contracts_posted_total"
	MetricNameContractsFulfilled = "contracts_fulfilled_total"
	MetricNameContractsExpired   = "contracts_expired_total"
	MetricNameLevelUps           = "character_level_ups_total"
	MetricNameLockTimeouts       = "character_lock_timeouts_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextItemsBought        = "Total number of items bought from the shop"
	HelpTextItemsSold          = "Total number of items sold back to the shop"
	HelpTextItemsEquipped      = "Total number of equip operations"
	HelpTextTasksCompleted     = "Total number of tasks reaching their goal"
	HelpTextRewardsClaimed     = "Total number of task rewards claimed"
	HelpTextContractsPosted    = "Total number of contracts posted"
	HelpTextContractsFulfilled = "Total number of contracts fulfilled"
	HelpTextContractsExpired   = "Total number of contracts expired and refunded"
	HelpTextLevelUps           = "Total number of character level ups"
	HelpTextLockTimeouts       = "Total number of character row lock timeouts"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelItem   = "item"
	LabelTask   = "task"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected shape"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
