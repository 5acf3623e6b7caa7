package player

import "time"

// PresenceCleanupInterval is how often expired players are dropped from the tracker
const PresenceCleanupInterval = time.Minute

// Log messages
const (
	LogMsgPlayerRegistered = "Player registered"
	LogMsgPlayerJoined     = "First join, player created"
	LogMsgInventorySynced  = "Player inventory synced"
	LogMsgKeysGiven        = "Physical keys given"
	LogMsgKeysOverflowed   = "Keys did not fit in inventory, added to balance"
	LogMsgKeysAdded        = "Virtual keys added"
	LogMsgKeysRemoved      = "Virtual keys removed"
	LogMsgKeysWithdrawn    = "Keys withdrawn to inventory"
	LogMsgKeysDeposited    = "Keys deposited from inventory"
)

// Error messages
const (
	ErrMsgGetPlayerFailed     = "failed to get player"
	ErrMsgUpsertPlayerFailed  = "failed to save player"
	ErrMsgGetBalancesFailed   = "failed to get key balances"
	ErrMsgUpdateBalanceFailed = "failed to update key balance"
)
