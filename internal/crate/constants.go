package crate

// ConfigFileName identifies the crates config in sync metadata
const ConfigFileName = "crates.json"

// DefaultConfigPath is used when CRATES_FILE is unset
const DefaultConfigPath = "configs/crates.json"

// Error messages
const (
	ErrMsgReadConfigFileFailed  = "failed to read crates config: %w"
	ErrMsgParseConfigFailed     = "failed to parse crates config: %w"
	ErrMsgSchemaFailed          = "schema validation failed for %s: %w"
	ErrMsgConfigNil             = "config is nil"
	ErrMsgCheckFileChangeFailed = "failed to check crates config changes: %w"
	ErrMsgStatConfigFileFailed  = "failed to stat crates config: %w"
	ErrMsgUpsertTagFailed       = "failed to upsert tag %q: %w"
	ErrMsgUpsertCrateFailed     = "failed to upsert crate %q: %w"
	ErrMsgListCratesFailed      = "failed to list crates"
	ErrMsgCheckKeyUsageFailed   = "failed to check key usage"
)

// Validation error formats
const (
	ErrFmtCrateAtIndexEmpty = "%w: crate at index %d has an empty name"
	ErrFmtDuplicateSlot     = "%w: crate '%s' has two prizes in slot %d"
	ErrFmtSlotOutOfRange    = "%w: crate '%s' prize slot %d is outside size %d"
	ErrFmtUnknownTag        = "%w: crate '%s' prize slot %d references unknown tag '%s'"
	ErrFmtChanceOutOfRange  = "%w: crate '%s' prize slot %d has chance %v"
	ErrFmtDuplicateTag      = "%w: tag '%s' is defined twice"
)

// Log messages
const (
	LogMsgConfigUnchanged      = "Crates config unchanged since last sync, skipping"
	LogMsgSyncedCrate          = "Synced crate"
	LogMsgSyncCompleted        = "Crates sync completed"
	LogMsgUpdateMetadataFailed = "Failed to update crates sync metadata"
)
