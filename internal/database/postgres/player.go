package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/repository"
)

const selectPlayer = `
	SELECT player_id, name, registered, permissions, inventory, created_at
	FROM players
`

// PlayerRepository implements repository.Player for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) repository.Player {
	return &PlayerRepository{db: db}
}

// GetPlayerByID retrieves a player by id
func (r *PlayerRepository) GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	id, err := parsePlayerUUID(playerID)
	if err != nil {
		return nil, err
	}
	return scanPlayer(r.db.QueryRow(ctx, selectPlayer+"WHERE player_id = $1", id))
}

// GetPlayerByName retrieves a player by name, case-insensitively
func (r *PlayerRepository) GetPlayerByName(ctx context.Context, name string) (*domain.Player, error) {
	return scanPlayer(r.db.QueryRow(ctx, selectPlayer+"WHERE LOWER(name) = LOWER($1)", name))
}

// UpsertPlayer inserts a new player or updates an existing one matched by name
func (r *PlayerRepository) UpsertPlayer(ctx context.Context, player *domain.Player) error {
	if player.Inventory == nil {
		player.Inventory = domain.NewInventory()
	}
	inv, err := json.Marshal(player.Inventory)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalInventory, err)
	}
	perms := player.Permissions
	if perms == nil {
		perms = []string{}
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, `
		INSERT INTO players (name, registered, permissions, inventory, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE
		SET registered = EXCLUDED.registered,
			permissions = EXCLUDED.permissions,
			inventory = EXCLUDED.inventory,
			updated_at = NOW()
		RETURNING player_id, created_at
	`, player.Name, player.Registered, perms, inv).Scan(&id, &player.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertPlayer, err)
	}
	player.ID = id.String()
	return nil
}

// GetKeyBalances returns every non-zero virtual key balance of a player
func (r *PlayerRepository) GetKeyBalances(ctx context.Context, playerID string) ([]domain.KeyBalance, error) {
	id, err := parsePlayerUUID(playerID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT key_name, quantity
		FROM player_keys
		WHERE player_id = $1 AND quantity > 0
		ORDER BY key_name
	`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetKeyBalances, err)
	}
	defer rows.Close()

	var balances []domain.KeyBalance
	for rows.Next() {
		var b domain.KeyBalance
		if err := rows.Scan(&b.KeyName, &b.Quantity); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetKeyBalances, err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetKeyBalances, err)
	}
	return balances, nil
}

// BeginTx starts a transaction and returns a PlayerTx
func (r *PlayerRepository) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &playerTx{tx: tx}, nil
}

// playerTx implements repository.PlayerTx
type playerTx struct {
	tx pgx.Tx
}

func (t *playerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *playerTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("%w: %w", repository.ErrTxClosed, err)
	}
	return err
}

// GetInventoryForUpdate locks the player row and returns the inventory
func (t *playerTx) GetInventoryForUpdate(ctx context.Context, playerID string) (*domain.Inventory, error) {
	id, err := parsePlayerUUID(playerID)
	if err != nil {
		return nil, err
	}
	var data []byte
	err = t.tx.QueryRow(ctx, "SELECT inventory FROM players WHERE player_id = $1 FOR UPDATE", id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return unmarshalInventory(data)
}

func (t *playerTx) UpdateInventory(ctx context.Context, playerID string, inventory domain.Inventory) error {
	id, err := parsePlayerUUID(playerID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(inventory)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalInventory, err)
	}
	if _, err := t.tx.Exec(ctx, "UPDATE players SET inventory = $2, updated_at = NOW() WHERE player_id = $1", id, data); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInventory, err)
	}
	return nil
}

// GetKeyBalanceForUpdate returns the virtual balance, 0 when the player never held the key
func (t *playerTx) GetKeyBalanceForUpdate(ctx context.Context, playerID, keyName string) (int, error) {
	id, err := parsePlayerUUID(playerID)
	if err != nil {
		return 0, err
	}
	var quantity int
	err = t.tx.QueryRow(ctx, `
		SELECT quantity FROM player_keys
		WHERE player_id = $1 AND key_name = $2
		FOR UPDATE
	`, id, keyName).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetKeyBalance, err)
	}
	return quantity, nil
}

func (t *playerTx) SetKeyBalance(ctx context.Context, playerID, keyName string, quantity int) error {
	id, err := parsePlayerUUID(playerID)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, `
		INSERT INTO player_keys (player_id, key_name, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, key_name) DO UPDATE
		SET quantity = EXCLUDED.quantity
	`, id, keyName, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetKeyBalance, err)
	}
	return nil
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var (
		p    domain.Player
		id   uuid.UUID
		data []byte
	)
	if err := row.Scan(&id, &p.Name, &p.Registered, &p.Permissions, &data, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlayer, err)
	}
	inv, err := unmarshalInventory(data)
	if err != nil {
		return nil, err
	}
	p.ID = id.String()
	p.Inventory = inv
	return &p, nil
}
