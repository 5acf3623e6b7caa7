package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// parsePlayerUUID parses a player ID string to uuid.UUID with a consistent error message
func parsePlayerUUID(playerID string) (uuid.UUID, error) {
	u, err := uuid.Parse(playerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", ErrMsgInvalidPlayerID, err)
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

func marshalItem(item *domain.ItemStack) ([]byte, error) {
	if item == nil {
		item = domain.EmptyStack()
	}
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalItem, err)
	}
	return data, nil
}

func unmarshalItem(data []byte) (*domain.ItemStack, error) {
	var item domain.ItemStack
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalItem, err)
	}
	return &item, nil
}

func unmarshalInventory(data []byte) (*domain.Inventory, error) {
	inv := domain.NewInventory()
	if len(data) == 0 {
		return inv, nil
	}
	if err := json.Unmarshal(data, inv); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalInventory, err)
	}
	if len(inv.Slots) < domain.InventorySize {
		slots := make([]*domain.ItemStack, domain.InventorySize)
		copy(slots, inv.Slots)
		inv.Slots = slots
	}
	return inv, nil
}
