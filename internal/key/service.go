package key

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/internal/notification"
	"github.com/osse101/CrateBot_Go/internal/repository"
)

// Service defines the interface for key registry operations
type Service interface {
	Create(ctx context.Context, actor *domain.Player, name string) (*domain.Key, error)
	Delete(ctx context.Context, actorID, name string) error
	Get(ctx context.Context, name string) (*domain.Key, error)
	GetByItem(ctx context.Context, item *domain.ItemStack) (*domain.Key, error)
	GetBySlot(ctx context.Context, slot int) (*domain.Key, error)
	List(ctx context.Context) ([]domain.Key, error)
	Names(ctx context.Context) ([]string, error)
	IsFull(ctx context.Context) (bool, error)
	IsRegistered(ctx context.Context, name string) (bool, error)
	IsUsed(ctx context.Context, name string) (bool, error)
	SetSlot(ctx context.Context, name string, slot int) error

	ShowMenu(ctx context.Context, owner *domain.Player) (*domain.MenuView, error)
	EditMenu(ctx context.Context) (*domain.MenuView, error)
	MenuSize() int
}

// UsageChecker reports whether a crate references a key
type UsageChecker interface {
	IsKeyUsed(ctx context.Context, keyName string) (bool, error)
}

// BalanceReader provides the virtual balances shown in the key menu
type BalanceReader interface {
	Balances(ctx context.Context, playerID string) (map[string]int, error)
}

// Config holds the key service dependencies
type Config struct {
	Repo     repository.Key
	Usage    UsageChecker
	Balances BalanceReader
	Bus      event.Bus
	Catalog  *notification.Catalog
	MenuSize int
	CacheTTL time.Duration
}

type service struct {
	repo     repository.Key
	usage    UsageChecker
	balances BalanceReader
	bus      event.Bus
	catalog  *notification.Catalog
	menuSize int
	cache    *keyCache
}

// NewService creates a new key service
func NewService(cfg Config) Service {
	size := cfg.MenuSize
	if size <= 0 {
		size = domain.DefaultKeyMenuSize
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = notification.Default()
	}
	return &service{
		repo:     cfg.Repo,
		usage:    cfg.Usage,
		balances: cfg.Balances,
		bus:      cfg.Bus,
		catalog:  catalog,
		menuSize: size,
		cache:    newKeyCache(DefaultCacheSize, ttl),
	}
}

func (s *service) MenuSize() int {
	return s.menuSize
}

// Create registers the item in the actor's main hand as a key in the first free menu slot
func (s *service) Create(ctx context.Context, actor *domain.Player, name string) (*domain.Key, error) {
	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) >= s.menuSize {
		return nil, domain.ErrKeyMenuFull
	}
	for _, k := range keys {
		if k.Name == name {
			return nil, domain.ErrKeyAlreadyRegistered
		}
	}

	var hand *domain.ItemStack
	if actor.Inventory != nil {
		hand = actor.Inventory.MainHand()
	}
	if hand == nil {
		return nil, domain.ErrEmptyHand
	}

	slot := firstFreeSlot(keys, s.menuSize)
	if slot < 0 {
		return nil, domain.ErrKeyMenuFull
	}

	k := &domain.Key{Name: name, Item: hand.Clone(1), Slot: slot}
	if err := s.repo.InsertKey(ctx, k); err != nil {
		if errors.Is(err, domain.ErrKeyAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateKeyFailed, err)
	}
	s.cache.Set(k)

	logger.FromContext(ctx).Info(LogMsgKeyCreated, "key", name, "slot", slot, "actor_id", actor.ID)
	s.publish(ctx, event.NewKeyCreatedEvent(name, actor.ID))
	return k, nil
}

// Delete removes a key that no crate references
func (s *service) Delete(ctx context.Context, actorID, name string) error {
	if _, err := s.Get(ctx, name); err != nil {
		return err
	}
	used, err := s.IsUsed(ctx, name)
	if err != nil {
		return err
	}
	if used {
		return domain.ErrKeyUsedByCrate
	}

	if err := s.repo.DeleteKey(ctx, name); err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return err
		}
		return fmt.Errorf("%s: %w", ErrMsgDeleteKeyFailed, err)
	}
	s.cache.Invalidate(name)

	logger.FromContext(ctx).Info(LogMsgKeyDeleted, "key", name, "actor_id", actorID)
	s.publish(ctx, event.NewKeyDeletedEvent(name, actorID))
	return nil
}

// Get looks a key up by its exact name
func (s *service) Get(ctx context.Context, name string) (*domain.Key, error) {
	if k, ok := s.cache.Get(name); ok {
		return k, nil
	}
	k, err := s.repo.GetKey(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(k)
	return k, nil
}

// GetByItem returns the key whose item is similar to item
func (s *service) GetByItem(ctx context.Context, item *domain.ItemStack) (*domain.Key, error) {
	if item.IsEmpty() {
		return nil, domain.ErrKeyNotFound
	}
	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range keys {
		if keys[i].Matches(item) {
			return &keys[i], nil
		}
	}
	return nil, domain.ErrKeyNotFound
}

// GetBySlot returns the key shown at a menu slot
func (s *service) GetBySlot(ctx context.Context, slot int) (*domain.Key, error) {
	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range keys {
		if keys[i].Slot == slot {
			return &keys[i], nil
		}
	}
	return nil, domain.ErrKeyNotFound
}

// List returns every key ordered by slot
func (s *service) List(ctx context.Context) ([]domain.Key, error) {
	keys, err := s.repo.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListKeysFailed, err)
	}
	return keys, nil
}

// Names returns every key name ordered by slot
func (s *service) Names(ctx context.Context) ([]string, error) {
	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name
	}
	return names, nil
}

// IsFull reports whether every menu slot holds a key
func (s *service) IsFull(ctx context.Context) (bool, error) {
	n, err := s.repo.CountKeys(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgCountKeysFailed, err)
	}
	return n >= s.menuSize, nil
}

func (s *service) IsRegistered(ctx context.Context, name string) (bool, error) {
	_, err := s.Get(ctx, name)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsUsed reports whether a crate is opened with the key
func (s *service) IsUsed(ctx context.Context, name string) (bool, error) {
	if s.usage == nil {
		return false, nil
	}
	used, err := s.usage.IsKeyUsed(ctx, name)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgCheckUsageFail, err)
	}
	return used, nil
}

// SetSlot moves a key to another menu slot. The target slot must be free.
func (s *service) SetSlot(ctx context.Context, name string, slot int) error {
	if slot < 0 || slot >= s.menuSize {
		return domain.ErrInvalidSlot
	}
	keys, err := s.List(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, k := range keys {
		if k.Name == name {
			found = true
			if k.Slot == slot {
				return nil
			}
			continue
		}
		if k.Slot == slot {
			return domain.ErrInvalidSlot
		}
	}
	if !found {
		return domain.ErrKeyNotFound
	}

	if err := s.repo.UpdateKeySlot(ctx, name, slot); err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return err
		}
		return fmt.Errorf("%s: %w", ErrMsgUpdateSlotFail, err)
	}
	s.cache.Invalidate(name)

	logger.FromContext(ctx).Info(LogMsgKeySlotChanged, "key", name, "slot", slot)
	s.publish(ctx, event.NewKeySlotChangedEvent(name, slot))
	return nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func firstFreeSlot(keys []domain.Key, size int) int {
	taken := make(map[int]bool, len(keys))
	for _, k := range keys {
		taken[k.Slot] = true
	}
	for slot := 0; slot < size; slot++ {
		if !taken[slot] {
			return slot
		}
	}
	return -1
}
