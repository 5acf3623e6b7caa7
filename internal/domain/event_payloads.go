package domain

// KeyPayload is the event payload for key.created and key.deleted events
type KeyPayload struct {
	KeyName   string `json:"key_name"`
	ActorID   string `json:"actor_id"`
	Timestamp int64  `json:"timestamp"`
}

// KeyTransferPayload is the event payload for key.given, key.deposited and key.withdrawn events.
// Physical is true when the keys moved as items rather than as a virtual balance.
type KeyTransferPayload struct {
	KeyName    string `json:"key_name"`
	ActorID    string `json:"actor_id"`
	ReceiverID string `json:"receiver_id"`
	Amount     int    `json:"amount"`
	Physical   bool   `json:"physical"`
	Timestamp  int64  `json:"timestamp"`
}

// KeySlotPayload is the event payload for key.slot_changed events
type KeySlotPayload struct {
	KeyName   string `json:"key_name"`
	Slot      int    `json:"slot"`
	Timestamp int64  `json:"timestamp"`
}

// PrizeUpdatedPayload is the event payload for prize.updated events
type PrizeUpdatedPayload struct {
	CrateName string `json:"crate_name"`
	Slot      int    `json:"slot"`
	Field     string `json:"field"` // "tags", "chance", "rarity" or "skin"
	Timestamp int64  `json:"timestamp"`
}
