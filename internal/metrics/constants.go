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
	MetricNameKeysCreated     = "keys_created_total"
	MetricNameKeysDeleted     = "keys_deleted_total"
	MetricNameKeysTransferred = "keys_transferred_total"
	MetricNameKeySlotChanges  = "key_slot_changes_total"
	MetricNamePrizeUpdates    = "prize_updates_total"
	MetricNamePromptsOpened   = "prompts_opened_total"
	MetricNamePromptsAnswered = "prompts_answered_total"
	MetricNameCommandsRun     = "commands_run_total"
)

// Event stream metric names
const (
	MetricNameSSEClients       = "sse_clients_connected"
	MetricNameSSEEventsDropped = "sse_events_dropped_total"
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
	HelpTextEventsPublished    = "Total number of events published by type"
	HelpTextEventHandlerErrors = "Total number of event handler errors by type"
)

// Business metric help text
const (
	HelpTextKeysCreated     = "Total number of keys registered"
	HelpTextKeysDeleted     = "Total number of keys deleted"
	HelpTextKeysTransferred = "Total number of keys moved between players, by operation and key"
	HelpTextKeySlotChanges  = "Total number of key menu slot changes"
	HelpTextPrizeUpdates    = "Total number of prize edits by field"
	HelpTextPromptsOpened   = "Total number of quantity prompts opened by action"
	HelpTextPromptsAnswered = "Total number of quantity prompts answered by action and outcome"
	HelpTextCommandsRun     = "Total number of key commands run by subcommand"
)

// Event stream metric help text
const (
	HelpTextSSEClients       = "Current number of connected event stream clients"
	HelpTextSSEEventsDropped = "Total number of stream events dropped because a buffer was full"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelKey        = "key"
	LabelOperation  = "operation"
	LabelPhysical   = "physical"
	LabelField      = "field"
	LabelAction     = "action"
	LabelOutcome    = "outcome"
	LabelSubcommand = "subcommand"
)

// Prompt outcomes
const (
	OutcomeDone     = "done"
	OutcomeRejected = "rejected"
)

// HTTPLatencyBuckets are the histogram buckets for request latency, in seconds
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Log messages
const (
	LogMsgMetricsRecorded     = "Metrics recorded for event"
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
)
