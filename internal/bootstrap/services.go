package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/CrateBot_Go/internal/command"
	"github.com/osse101/CrateBot_Go/internal/config"
	"github.com/osse101/CrateBot_Go/internal/crate"
	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/key"
	"github.com/osse101/CrateBot_Go/internal/listener"
	"github.com/osse101/CrateBot_Go/internal/notification"
	"github.com/osse101/CrateBot_Go/internal/player"
	"github.com/osse101/CrateBot_Go/internal/prize"
	"github.com/osse101/CrateBot_Go/internal/prompt"
	"github.com/osse101/CrateBot_Go/internal/server"
	"github.com/osse101/CrateBot_Go/internal/sse"
)

// Application is the fully wired service graph
type Application struct {
	Services server.Services
	Keys     key.Service
	Events   *sse.Hub
	Redis    redis.UniversalClient
}

// prepared holds what the independent startup steps produce
type prepared struct {
	catalog *notification.Catalog
	store   prompt.Store
	redis   redis.UniversalClient
}

// InitializeServices runs the independent startup steps concurrently and wires
// the services on top of their results.
func InitializeServices(ctx context.Context, cfg *config.Config, repos *Repositories, bus event.Bus) (*Application, error) {
	var p prepared

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return SyncCrates(gctx, repos.Crates, cfg.CratesFile)
	})
	g.Go(func() error {
		catalog, err := LoadCatalog(cfg.LangFile)
		p.catalog = catalog
		return err
	})
	g.Go(func() error {
		store, client, err := NewPromptStore(gctx, cfg)
		p.store, p.redis = store, client
		return err
	})
	if err := g.Wait(); err != nil {
		if p.redis != nil {
			_ = p.redis.Close()
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedPrepareServices, err)
	}

	presence := player.NewPresenceTracker(cfg.PresenceTTL)
	players := player.NewService(repos.Players, presence)
	crates := crate.NewService(repos.Crates)
	keys := key.NewService(key.Config{
		Repo:     repos.Keys,
		Usage:    crates,
		Balances: players,
		Bus:      bus,
		Catalog:  p.catalog,
		MenuSize: cfg.KeyMenuSize,
		CacheTTL: KeyCacheTTL,
	})
	prompts := prompt.NewService(p.store, players, keys, bus, p.catalog)
	menus := listener.NewService(keys, players, prompts, p.catalog, MenuSessionTTL)

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()

	app := &Application{
		Services: server.Services{
			Players:  players,
			Commands: command.NewService(keys, players, menus, bus, p.catalog),
			Prompts:  prompts,
			Menus:    menus,
			Crates:   crates,
			Prizes:   prize.NewService(repos.Crates, bus, p.catalog),
			Events:   hub,
		},
		Keys:   keys,
		Events: hub,
		Redis:  p.redis,
	}
	slog.Info(LogMsgServicesInitialized, "menu_size", keys.MenuSize())
	return app, nil
}

// LoadCatalog reads the language file, or the embedded one when path is empty.
func LoadCatalog(path string) (*notification.Catalog, error) {
	if path == "" {
		slog.Info(LogMsgLanguageDefault)
		return notification.Default(), nil
	}
	catalog, err := notification.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadLanguage, err)
	}
	slog.Info(LogMsgLanguageLoaded, "path", path)
	return catalog, nil
}

// NewPromptStore picks the prompt store. With REDIS_ADDR set prompts live in
// Redis, shared between API instances; otherwise they live in process memory.
// The returned client is nil for the memory store.
func NewPromptStore(ctx context.Context, cfg *config.Config) (prompt.Store, redis.UniversalClient, error) {
	if !cfg.RedisEnabled() {
		slog.Info(LogMsgPromptStoreMemory, "ttl", cfg.PromptTTL)
		return prompt.NewMemoryStore(cfg.CacheSize, cfg.PromptTTL), nil, nil
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.RedisAddr},
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
	}

	slog.Info(LogMsgPromptStoreRedis, "addr", cfg.RedisAddr, "ttl", cfg.PromptTTL)
	return prompt.NewRedisStore(client, cfg.PromptTTL), client, nil
}
