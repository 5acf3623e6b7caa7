package repository

import (
	"context"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// Player defines the interface for player persistence
type Player interface {
	GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*domain.Player, error)
	UpsertPlayer(ctx context.Context, player *domain.Player) error
	GetKeyBalances(ctx context.Context, playerID string) ([]domain.KeyBalance, error)

	BeginTx(ctx context.Context) (PlayerTx, error)
}

// PlayerTx defines the row-locking operations used when moving keys
type PlayerTx interface {
	Tx
	GetInventoryForUpdate(ctx context.Context, playerID string) (*domain.Inventory, error)
	UpdateInventory(ctx context.Context, playerID string, inventory domain.Inventory) error
	GetKeyBalanceForUpdate(ctx context.Context, playerID, keyName string) (int, error)
	SetKeyBalance(ctx context.Context, playerID, keyName string, quantity int) error
}
