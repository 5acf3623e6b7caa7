package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CrateBot_Go/internal/crate"
	"github.com/osse101/CrateBot_Go/internal/repository"
)

// SyncCrates loads, validates, and syncs the crates configuration to database.
// It handles the complete lifecycle: load JSON → validate → sync to DB → log results.
// The loader skips the sync when the file fingerprint is unchanged.
func SyncCrates(ctx context.Context, repo repository.Crate, path string) error {
	slog.Info(LogMsgSyncingCrates, "path", path)
	loader := crate.NewLoader()

	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadCrates, err)
	}

	if err := loader.Validate(cfg); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidCrates, err)
	}

	result, err := loader.SyncToDatabase(ctx, cfg, repo, path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncCrates, err)
	}

	if result.Skipped {
		slog.Info(LogMsgCratesUnchanged)
		return nil
	}
	slog.Info(LogMsgCratesSynced,
		"tags", result.TagsSynced,
		"crates", result.CratesSynced,
		"prizes", result.PrizesSynced)
	return nil
}
