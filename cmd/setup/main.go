package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/CrateBot_Go/internal/bootstrap"
	"github.com/osse101/CrateBot_Go/internal/config"
	"github.com/osse101/CrateBot_Go/internal/database"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/migrations"
)

// setup prepares a database for the API: creates it (or recreates it with
// -reset), applies the embedded migrations and loads the crates file.
func main() {
	reset := flag.Bool("reset", false, "drop and recreate the database first")
	skipCrates := flag.Bool("skip-crates", false, "do not sync the crates file")
	flag.Parse()

	lcfg := logger.DefaultConfig()
	lcfg.ServiceName = "cratebot-setup"
	logger.InitLogger(lcfg)

	if err := run(context.Background(), *reset, *skipCrates); err != nil {
		slog.Error("Setup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Setup complete")
}

func run(ctx context.Context, reset, skipCrates bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := ensureDatabase(ctx, cfg, reset); err != nil {
		return err
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxConnLife)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.DBName, err)
	}
	defer pool.Close()

	slog.Info("Running migrations")
	if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if skipCrates {
		return nil
	}
	repos := bootstrap.InitializeRepositories(pool)
	return bootstrap.SyncCrates(ctx, repos.Crates, cfg.CratesFile)
}

// ensureDatabase connects to the server's maintenance database to create the target one
func ensureDatabase(ctx context.Context, cfg *config.Config, reset bool) error {
	serverConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)

	conn, err := pgx.Connect(ctx, serverConnString)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	ident := pgx.Identifier{cfg.DBName}.Sanitize()

	if reset {
		slog.Info("Terminating existing connections", "database", cfg.DBName)
		if _, err := conn.Exec(ctx, `
			SELECT pg_terminate_backend(pid)
			FROM pg_stat_activity
			WHERE datname = $1 AND pid <> pg_backend_pid()`, cfg.DBName); err != nil {
			slog.Warn("Failed to terminate connections", "error", err)
		}

		slog.Info("Dropping database", "database", cfg.DBName)
		if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}
	}

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		slog.Info("Database already exists", "database", cfg.DBName)
		return nil
	}

	slog.Info("Creating database", "database", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}
