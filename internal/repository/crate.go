package repository

import (
	"context"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// Crate defines the interface for crate, prize and tag persistence
type Crate interface {
	ListCrates(ctx context.Context) ([]domain.Crate, error)
	GetCrate(ctx context.Context, name string) (*domain.Crate, error)
	IsKeyUsed(ctx context.Context, keyName string) (bool, error)
	UpsertCrate(ctx context.Context, crate *domain.Crate) error
	UpdatePrize(ctx context.Context, crateName string, prize *domain.Prize) error

	ListTags(ctx context.Context) ([]domain.Tag, error)
	GetTag(ctx context.Context, name string) (*domain.Tag, error)
	UpsertTag(ctx context.Context, tag domain.Tag) error

	GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error)
	UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error
}
