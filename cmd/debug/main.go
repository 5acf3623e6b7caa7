package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CrateBot_Go/internal/config"
	"github.com/osse101/CrateBot_Go/internal/database"
)

// debug dumps the key and crate tables for a quick look at the stored state.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	dump(ctx, dbPool, "Players", `
		SELECT name, registered, array_to_string(permissions, ','), created_at
		FROM players ORDER BY name`,
		func(rows pgx.Rows) (string, error) {
			var name, perms string
			var registered bool
			var createdAt interface{}
			if err := rows.Scan(&name, &registered, &perms, &createdAt); err != nil {
				return "", err
			}
			return fmt.Sprintf("Name: %s, Registered: %t, Permissions: [%s], CreatedAt: %v", name, registered, perms, createdAt), nil
		})

	dump(ctx, dbPool, "Keys", "SELECT name, slot FROM keys ORDER BY slot",
		func(rows pgx.Rows) (string, error) {
			var name string
			var slot int
			if err := rows.Scan(&name, &slot); err != nil {
				return "", err
			}
			return fmt.Sprintf("Key: %s, Slot: %d", name, slot), nil
		})

	dump(ctx, dbPool, "Key Balances", `
		SELECT p.name, pk.key_name, pk.quantity
		FROM player_keys pk
		JOIN players p ON pk.player_id = p.player_id
		WHERE pk.quantity > 0
		ORDER BY p.name, pk.key_name`,
		func(rows pgx.Rows) (string, error) {
			var player, key string
			var quantity int
			if err := rows.Scan(&player, &key, &quantity); err != nil {
				return "", err
			}
			return fmt.Sprintf("Player: %s, Key: %s, Quantity: %d", player, key, quantity), nil
		})

	dump(ctx, dbPool, "Crates", `
		SELECT c.name, c.key_name, COUNT(p.prize_id)
		FROM crates c
		LEFT JOIN prizes p ON p.crate_name = c.name
		GROUP BY c.name, c.key_name
		ORDER BY c.name`,
		func(rows pgx.Rows) (string, error) {
			var name, key string
			var prizes int
			if err := rows.Scan(&name, &key, &prizes); err != nil {
				return "", err
			}
			return fmt.Sprintf("Crate: %s, Key: %s, Prizes: %d", name, key, prizes), nil
		})
}

func dump(ctx context.Context, pool *pgxpool.Pool, title, query string, line func(pgx.Rows) (string, error)) {
	fmt.Printf("\n--- %s ---\n", title)
	rows, err := pool.Query(ctx, query)
	if err != nil {
		log.Printf("Failed to query %s: %v", title, err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		s, err := line(rows)
		if err != nil {
			log.Printf("Failed to scan %s row: %v", title, err)
			continue
		}
		fmt.Println(s)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Failed to read %s: %v", title, err)
	}
}
