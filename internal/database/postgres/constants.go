package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Player Operations
const (
	ErrMsgInvalidPlayerID            = "invalid player id"
	ErrMsgFailedToGetPlayer          = "failed to get player"
	ErrMsgFailedToUpsertPlayer       = "failed to upsert player"
	ErrMsgFailedToGetKeyBalances     = "failed to get key balances"
	ErrMsgFailedToGetKeyBalance      = "failed to get key balance"
	ErrMsgFailedToSetKeyBalance      = "failed to set key balance"
	ErrMsgFailedToGetInventory       = "failed to get inventory for update"
	ErrMsgFailedToUpdateInventory    = "failed to update inventory"
	ErrMsgFailedToMarshalInventory   = "failed to marshal inventory"
	ErrMsgFailedToUnmarshalInventory = "failed to unmarshal inventory"
)

// Error Messages - Key Operations
const (
	ErrMsgFailedToListKeys      = "failed to list keys"
	ErrMsgFailedToGetKey        = "failed to get key"
	ErrMsgFailedToCountKeys     = "failed to count keys"
	ErrMsgFailedToInsertKey     = "failed to insert key"
	ErrMsgFailedToDeleteKey     = "failed to delete key"
	ErrMsgFailedToUpdateKeySlot = "failed to update key slot"
	ErrMsgFailedToMarshalItem   = "failed to marshal item"
	ErrMsgFailedToUnmarshalItem = "failed to unmarshal item"
)

// Error Messages - Crate Operations
const (
	ErrMsgFailedToListCrates         = "failed to list crates"
	ErrMsgFailedToGetCrate           = "failed to get crate"
	ErrMsgFailedToCheckKeyUsage      = "failed to check key usage"
	ErrMsgFailedToUpsertCrate        = "failed to upsert crate"
	ErrMsgFailedToQueryPrizes        = "failed to query prizes"
	ErrMsgFailedToQueryPrizeTags     = "failed to query prize tags"
	ErrMsgFailedToUpsertPrize        = "failed to upsert prize"
	ErrMsgFailedToDeleteStalePrizes  = "failed to delete stale prizes"
	ErrMsgFailedToUpdatePrize        = "failed to update prize"
	ErrMsgFailedToClearPrizeTags     = "failed to clear prize tags"
	ErrMsgFailedToAssignPrizeTag     = "failed to assign prize tag"
	ErrMsgFailedToListTags           = "failed to list tags"
	ErrMsgFailedToGetTag             = "failed to get tag"
	ErrMsgFailedToUpsertTag          = "failed to upsert tag"
	ErrMsgFailedToGetSyncMetadata    = "failed to get sync metadata"
	ErrMsgFailedToUpsertSyncMetadata = "failed to upsert sync metadata"
)

// Inventory Constants
const (
	// EmptyInventoryJSON is the default JSON structure for a new/empty inventory
	EmptyInventoryJSON = `{"slots": [], "held_slot": 0}`
)
