package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/repository"
)

// KeyRepository implements repository.Key for PostgreSQL
type KeyRepository struct {
	db *pgxpool.Pool
}

// NewKeyRepository creates a new KeyRepository
func NewKeyRepository(db *pgxpool.Pool) repository.Key {
	return &KeyRepository{db: db}
}

// ListKeys returns every registered key ordered by menu slot
func (r *KeyRepository) ListKeys(ctx context.Context) ([]domain.Key, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, item, slot, created_at
		FROM keys
		ORDER BY slot, name
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListKeys, err)
	}
	defer rows.Close()

	var keys []domain.Key
	for rows.Next() {
		key, err := scanKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, *key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListKeys, err)
	}
	return keys, nil
}

// GetKey retrieves a key by its exact name
func (r *KeyRepository) GetKey(ctx context.Context, name string) (*domain.Key, error) {
	row := r.db.QueryRow(ctx, `
		SELECT name, item, slot, created_at
		FROM keys
		WHERE name = $1
	`, name)
	key, err := scanKey(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return key, nil
}

// CountKeys returns the number of registered keys
func (r *KeyRepository) CountKeys(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM keys").Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountKeys, err)
	}
	return n, nil
}

// InsertKey registers a new key
func (r *KeyRepository) InsertKey(ctx context.Context, key *domain.Key) error {
	item, err := marshalItem(key.Item)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO keys (name, item, slot, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`, key.Name, item, key.Slot).Scan(&key.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrKeyAlreadyRegistered
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertKey, err)
	}
	return nil
}

// DeleteKey removes a key together with every virtual balance of it
func (r *KeyRepository) DeleteKey(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM keys WHERE name = $1", name)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteKey, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrKeyNotFound
	}
	return nil
}

// UpdateKeySlot moves a key to another menu slot
func (r *KeyRepository) UpdateKeySlot(ctx context.Context, name string, slot int) error {
	tag, err := r.db.Exec(ctx, "UPDATE keys SET slot = $2 WHERE name = $1", name, slot)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateKeySlot, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrKeyNotFound
	}
	return nil
}

func scanKey(row pgx.Row) (*domain.Key, error) {
	var (
		key  domain.Key
		item []byte
	)
	if err := row.Scan(&key.Name, &item, &key.Slot, &key.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetKey, err)
	}
	stack, err := unmarshalItem(item)
	if err != nil {
		return nil, err
	}
	key.Item = stack
	return &key, nil
}
