package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidSlotParam      = "Invalid slot parameter"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgPlayerNotFoundError     = "Player not found"
	ErrMsgPlayerNotRegisteredErr  = "Player is not registered"
	ErrMsgPlayerOfflineError      = "Player is not online"
	ErrMsgKeyNotFoundError        = "Key not found"
	ErrMsgKeyAlreadyRegisteredErr = "Key is already registered"
	ErrMsgKeyMenuFullError        = "Key menu is full"
	ErrMsgKeyUsedByCrateError     = "Key is used by a crate"
	ErrMsgInvalidSlotError        = "Invalid slot"
	ErrMsgCrateNotFoundError      = "Crate not found"
	ErrMsgPrizeNotFoundError      = "Prize not found"
	ErrMsgTagNotFoundError        = "Tag not found"
	ErrMsgInvalidChanceError      = "Chance must be between 0 and 100"
	ErrMsgInvalidAmountError      = "Invalid amount"
	ErrMsgBalanceLimitError       = "Key balance limit reached"
	ErrMsgInvalidInputError       = "Invalid input"
	ErrMsgNoPermissionError       = "You do not have permission"
	ErrMsgNoMenuOpenError         = "No menu open"
	ErrMsgUnknownCommandError     = "Unknown command"
	ErrMsgEmptyHandError          = "Main hand is empty"
)

// Log messages
const (
	LogMsgRequestDecoded  = "%s request decoded"
	LogMsgDecodeFailed    = "Failed to decode %s request"
	LogMsgServiceError    = "%s failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgMissingParam    = "Missing %s query parameter"
	LogMsgReadinessFailed = "Readiness check failed"
)
