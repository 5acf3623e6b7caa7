package prompt

import "time"

// Store defaults
const (
	DefaultTTL        = 60 * time.Second
	DefaultMemorySize = 1024
	RedisKeyPrefix    = "cratebot:prompt:"
)

// Log messages
const (
	LogMsgPromptOpened   = "Prompt opened"
	LogMsgPromptAnswered = "Prompt answered"
	LogMsgPublishFailed  = "Failed to publish prompt event"
)

// Error messages
const (
	ErrMsgEncodePrompt = "failed to encode prompt"
	ErrMsgDecodePrompt = "failed to decode prompt"
	ErrMsgStorePrompt  = "failed to store prompt"
	ErrMsgTakePrompt   = "failed to take prompt"
)
