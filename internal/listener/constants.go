package listener

import "time"

// Session settings
const (
	DefaultSessionCapacity = 1024
	DefaultSessionTTL      = 30 * time.Minute
)

// Log messages
const (
	LogMsgMenuOpened     = "Menu opened"
	LogMsgMenuClosed     = "Menu closed"
	LogMsgKeyMoved       = "Key moved in edit menu"
	LogMsgKeyMoveRefused = "Key move refused"
)
