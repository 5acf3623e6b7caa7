package domain

// Event types published on the event bus, <entity>.<action>
const (
	EventTypeKeyCreated     = "key.created"
	EventTypeKeyDeleted     = "key.deleted"
	EventTypeKeyGiven       = "key.given"
	EventTypeKeyDeposited   = "key.deposited"
	EventTypeKeyWithdrawn   = "key.withdrawn"
	EventTypeKeySlotChanged = "key.slot_changed"
	EventTypePrizeUpdated   = "prize.updated"
)
