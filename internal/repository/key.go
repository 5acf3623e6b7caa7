package repository

import (
	"context"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// Key defines the interface for key persistence
type Key interface {
	ListKeys(ctx context.Context) ([]domain.Key, error)
	GetKey(ctx context.Context, name string) (*domain.Key, error)
	CountKeys(ctx context.Context) (int, error)
	InsertKey(ctx context.Context, key *domain.Key) error
	DeleteKey(ctx context.Context, name string) error
	UpdateKeySlot(ctx context.Context, name string, slot int) error
}
