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

// CrateRepository implements repository.Crate for PostgreSQL
type CrateRepository struct {
	db *pgxpool.Pool
}

// NewCrateRepository creates a new CrateRepository
func NewCrateRepository(db *pgxpool.Pool) repository.Crate {
	return &CrateRepository{db: db}
}

// ListCrates returns every crate with its prizes ordered by slot
func (r *CrateRepository) ListCrates(ctx context.Context) ([]domain.Crate, error) {
	rows, err := r.db.Query(ctx, "SELECT name, key_name, size FROM crates ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCrates, err)
	}
	crates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Crate, error) {
		var c domain.Crate
		err := row.Scan(&c.Name, &c.KeyName, &c.Size)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCrates, err)
	}

	prizes, err := loadPrizes(ctx, r.db, "")
	if err != nil {
		return nil, err
	}
	for i := range crates {
		crates[i].Prizes = prizes[crates[i].Name]
		if crates[i].Prizes == nil {
			crates[i].Prizes = []*domain.Prize{}
		}
	}
	return crates, nil
}

// GetCrate retrieves a crate and its prizes by name
func (r *CrateRepository) GetCrate(ctx context.Context, name string) (*domain.Crate, error) {
	var c domain.Crate
	err := r.db.QueryRow(ctx, "SELECT name, key_name, size FROM crates WHERE name = $1", name).
		Scan(&c.Name, &c.KeyName, &c.Size)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCrateNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCrate, err)
	}

	prizes, err := loadPrizes(ctx, r.db, name)
	if err != nil {
		return nil, err
	}
	c.Prizes = prizes[name]
	if c.Prizes == nil {
		c.Prizes = []*domain.Prize{}
	}
	return &c, nil
}

// IsKeyUsed reports whether any crate is opened with the named key
func (r *CrateRepository) IsKeyUsed(ctx context.Context, keyName string) (bool, error) {
	var used bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM crates WHERE key_name = $1)", keyName).Scan(&used); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckKeyUsage, err)
	}
	return used, nil
}

// UpsertCrate writes a crate and replaces its prize set.
// Prizes are matched by slot; their IDs are filled in on return.
func (r *CrateRepository) UpsertCrate(ctx context.Context, crate *domain.Crate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO crates (name, key_name, size)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET key_name = EXCLUDED.key_name, size = EXCLUDED.size
	`, crate.Name, crate.KeyName, crate.Size)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertCrate, err)
	}

	slots := make([]int32, 0, len(crate.Prizes))
	for _, prize := range crate.Prizes {
		item, err := marshalItem(prize.Item)
		if err != nil {
			return err
		}
		skin, err := marshalItem(prize.Skin)
		if err != nil {
			return err
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO prizes (crate_name, item, skin, slot, chance, rarity)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (crate_name, slot) DO UPDATE
			SET item = EXCLUDED.item, skin = EXCLUDED.skin,
				chance = EXCLUDED.chance, rarity = EXCLUDED.rarity
			RETURNING prize_id
		`, crate.Name, item, skin, prize.Slot, prize.Chance, prize.Rarity).Scan(&prize.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertPrize, err)
		}
		if err := replacePrizeTags(ctx, tx, prize); err != nil {
			return err
		}
		slots = append(slots, int32(prize.Slot))
	}

	if _, err := tx.Exec(ctx, "DELETE FROM prizes WHERE crate_name = $1 AND NOT (slot = ANY($2))", crate.Name, slots); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteStalePrizes, err)
	}

	return tx.Commit(ctx)
}

// UpdatePrize persists the mutable attributes of a prize: skin, chance, rarity and tags
func (r *CrateRepository) UpdatePrize(ctx context.Context, crateName string, prize *domain.Prize) error {
	skin, err := marshalItem(prize.Skin)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE prizes SET skin = $3, chance = $4, rarity = $5
		WHERE prize_id = $1 AND crate_name = $2
	`, prize.ID, crateName, skin, prize.Chance, prize.Rarity)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdatePrize, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPrizeNotFound
	}
	if err := replacePrizeTags(ctx, tx, prize); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListTags returns every known tag
func (r *CrateRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.Query(ctx, "SELECT name, description FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTags, err)
	}
	tags, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Tag])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTags, err)
	}
	return tags, nil
}

// GetTag retrieves a tag by name
func (r *CrateRepository) GetTag(ctx context.Context, name string) (*domain.Tag, error) {
	var t domain.Tag
	if err := r.db.QueryRow(ctx, "SELECT name, description FROM tags WHERE name = $1", name).Scan(&t.Name, &t.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTag, err)
	}
	return &t, nil
}

// UpsertTag inserts a tag or updates its description
func (r *CrateRepository) UpsertTag(ctx context.Context, tag domain.Tag) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tags (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
	`, tag.Name, tag.Description)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertTag, err)
	}
	return nil
}

// GetSyncMetadata retrieves sync metadata for a config file, nil when it was never synced
func (r *CrateRepository) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	var m domain.SyncMetadata
	err := r.db.QueryRow(ctx, `
		SELECT config_name, last_sync_time, file_hash, file_mod_time
		FROM sync_metadata
		WHERE config_name = $1
	`, configName).Scan(&m.ConfigName, &m.LastSyncTime, &m.FileHash, &m.FileModTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSyncMetadata, err)
	}
	return &m, nil
}

// UpsertSyncMetadata inserts or updates sync metadata for a config file
func (r *CrateRepository) UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sync_metadata (config_name, last_sync_time, file_hash, file_mod_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (config_name) DO UPDATE
		SET last_sync_time = EXCLUDED.last_sync_time,
			file_hash = EXCLUDED.file_hash,
			file_mod_time = EXCLUDED.file_mod_time
	`, metadata.ConfigName, metadata.LastSyncTime, metadata.FileHash, metadata.FileModTime)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertSyncMetadata, err)
	}
	return nil
}

// loadPrizes returns prizes grouped by crate name. An empty crateName loads every crate.
func loadPrizes(ctx context.Context, q querier, crateName string) (map[string][]*domain.Prize, error) {
	rows, err := q.Query(ctx, `
		SELECT prize_id, crate_name, item, skin, slot, chance, rarity
		FROM prizes
		WHERE $1::text = '' OR crate_name = $1
		ORDER BY crate_name, slot
	`, crateName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPrizes, err)
	}
	defer rows.Close()

	byCrate := make(map[string][]*domain.Prize)
	byID := make(map[int]*domain.Prize)
	for rows.Next() {
		var (
			p          domain.Prize
			crate      string
			item, skin []byte
		)
		if err := rows.Scan(&p.ID, &crate, &item, &skin, &p.Slot, &p.Chance, &p.Rarity); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPrizes, err)
		}
		if p.Item, err = unmarshalItem(item); err != nil {
			return nil, err
		}
		if p.Skin, err = unmarshalItem(skin); err != nil {
			return nil, err
		}
		p.Tags = []domain.Tag{}
		byCrate[crate] = append(byCrate[crate], &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPrizes, err)
	}
	rows.Close()

	if len(byID) == 0 {
		return byCrate, nil
	}

	tagRows, err := q.Query(ctx, `
		SELECT pt.prize_id, t.name, t.description
		FROM prize_tags pt
		JOIN tags t ON t.name = pt.tag_name
		JOIN prizes p ON p.prize_id = pt.prize_id
		WHERE $1::text = '' OR p.crate_name = $1
		ORDER BY pt.prize_id, pt.position
	`, crateName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPrizeTags, err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var (
			prizeID int
			t       domain.Tag
		)
		if err := tagRows.Scan(&prizeID, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPrizeTags, err)
		}
		if p, ok := byID[prizeID]; ok {
			p.Tags = append(p.Tags, t)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPrizeTags, err)
	}
	return byCrate, nil
}

// replacePrizeTags rewrites the tag set of a prize keeping its order
func replacePrizeTags(ctx context.Context, q querier, prize *domain.Prize) error {
	if _, err := q.Exec(ctx, "DELETE FROM prize_tags WHERE prize_id = $1", prize.ID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToClearPrizeTags, err)
	}
	for i, t := range prize.Tags {
		_, err := q.Exec(ctx, `
			INSERT INTO prize_tags (prize_id, tag_name, position)
			VALUES ($1, $2, $3)
		`, prize.ID, t.Name, i)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToAssignPrizeTag, err)
		}
	}
	return nil
}
