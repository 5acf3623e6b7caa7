package prize

// Prize fields reported in prize.updated events
const (
	FieldTags   = "tags"
	FieldChance = "chance"
	FieldRarity = "rarity"
	FieldSkin   = "skin"
)

// Chance bounds, in percent
const (
	MinChance = 0.0
	MaxChance = 100.0
)

// Log messages
const (
	LogMsgPrizeUpdated  = "Prize updated"
	LogMsgPublishFailed = "Failed to publish prize event"
)

// Error messages
const (
	ErrMsgLoadCrateFailed   = "failed to load crate"
	ErrMsgUpdatePrizeFailed = "failed to update prize"
)
