package key

import "time"

// Cache settings
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgKeyCreated       = "Key created"
	LogMsgKeyDeleted       = "Key deleted"
	LogMsgKeySlotChanged   = "Key slot changed"
	LogMsgPublishFailed    = "Failed to publish key event"
	LogMsgBalanceLookupErr = "Failed to read balances for key menu"
)

// Error messages
const (
	ErrMsgListKeysFailed  = "failed to list keys"
	ErrMsgCountKeysFailed = "failed to count keys"
	ErrMsgCreateKeyFailed = "failed to create key"
	ErrMsgDeleteKeyFailed = "failed to delete key"
	ErrMsgCheckUsageFail  = "failed to check key usage"
	ErrMsgUpdateSlotFail  = "failed to update key slot"
)
