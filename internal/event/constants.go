package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Metadata keys
const (
	MetadataSource = "source"

	SourceCommand = "command"
	SourcePrompt  = "prompt"
)

// Log message constants
const (
	LogMsgPublishFailed = "Failed to publish event"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
