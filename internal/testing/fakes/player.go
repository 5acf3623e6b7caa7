// Package fakes provides in-memory repositories for service tests.
package fakes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/repository"
)

// PlayerRepository implements repository.Player in memory
type PlayerRepository struct {
	mu       sync.Mutex
	players  map[string]*domain.Player // keyed by id
	balances map[string]map[string]int // player id -> key name -> quantity

	// FailBegin makes BeginTx fail when set
	FailBegin error
}

// NewPlayerRepository creates an empty PlayerRepository
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		players:  make(map[string]*domain.Player),
		balances: make(map[string]map[string]int),
	}
}

// Add stores a player directly, assigning an id when missing
func (r *PlayerRepository) Add(p *domain.Player) *domain.Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Inventory == nil {
		p.Inventory = domain.NewInventory()
	}
	r.players[p.ID] = clonePlayer(p)
	return p
}

// SetBalance sets a virtual balance directly
func (r *PlayerRepository) SetBalance(playerID, keyName string, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.balances[playerID] == nil {
		r.balances[playerID] = make(map[string]int)
	}
	r.balances[playerID][keyName] = quantity
}

// BalanceOf reads a virtual balance directly
func (r *PlayerRepository) BalanceOf(playerID, keyName string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[playerID][keyName]
}

// InventoryOf returns a copy of the stored inventory
func (r *PlayerRepository) InventoryOf(playerID string) *domain.Inventory {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[playerID]; ok {
		return cloneInventory(p.Inventory)
	}
	return nil
}

func (r *PlayerRepository) GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.players[playerID]; ok {
		return clonePlayer(p), nil
	}
	return nil, domain.ErrPlayerNotFound
}

func (r *PlayerRepository) GetPlayerByName(ctx context.Context, name string) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return clonePlayer(p), nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

func (r *PlayerRepository) UpsertPlayer(ctx context.Context, player *domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.players {
		if p.Name == player.Name {
			player.ID = id
			player.CreatedAt = p.CreatedAt
		}
	}
	if player.ID == "" {
		player.ID = uuid.NewString()
		player.CreatedAt = time.Now()
	}
	if player.Inventory == nil {
		player.Inventory = domain.NewInventory()
	}
	r.players[player.ID] = clonePlayer(player)
	return nil
}

func (r *PlayerRepository) GetKeyBalances(ctx context.Context, playerID string) ([]domain.KeyBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.KeyBalance
	for name, q := range r.balances[playerID] {
		if q > 0 {
			out = append(out, domain.KeyBalance{KeyName: name, Quantity: q})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KeyName < out[j].KeyName })
	return out, nil
}

func (r *PlayerRepository) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	if r.FailBegin != nil {
		return nil, r.FailBegin
	}
	return &playerTx{
		repo:        r,
		inventories: make(map[string]*domain.Inventory),
		balances:    make(map[string]map[string]int),
	}, nil
}

// playerTx stages writes and applies them on Commit
type playerTx struct {
	repo        *PlayerRepository
	inventories map[string]*domain.Inventory
	balances    map[string]map[string]int
	closed      bool
}

func (t *playerTx) Commit(ctx context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	for id, inv := range t.inventories {
		if p, ok := t.repo.players[id]; ok {
			p.Inventory = inv
		}
	}
	for id, keys := range t.balances {
		if t.repo.balances[id] == nil {
			t.repo.balances[id] = make(map[string]int)
		}
		for name, q := range keys {
			t.repo.balances[id][name] = q
		}
	}
	return nil
}

func (t *playerTx) Rollback(ctx context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	return nil
}

func (t *playerTx) GetInventoryForUpdate(ctx context.Context, playerID string) (*domain.Inventory, error) {
	if inv, ok := t.inventories[playerID]; ok {
		return cloneInventory(inv), nil
	}
	inv := t.repo.InventoryOf(playerID)
	if inv == nil {
		return nil, domain.ErrPlayerNotFound
	}
	return inv, nil
}

func (t *playerTx) UpdateInventory(ctx context.Context, playerID string, inventory domain.Inventory) error {
	t.inventories[playerID] = cloneInventory(&inventory)
	return nil
}

func (t *playerTx) GetKeyBalanceForUpdate(ctx context.Context, playerID, keyName string) (int, error) {
	if q, ok := t.balances[playerID][keyName]; ok {
		return q, nil
	}
	return t.repo.BalanceOf(playerID, keyName), nil
}

func (t *playerTx) SetKeyBalance(ctx context.Context, playerID, keyName string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("negative balance for %s", keyName)
	}
	if t.balances[playerID] == nil {
		t.balances[playerID] = make(map[string]int)
	}
	t.balances[playerID][keyName] = quantity
	return nil
}

func clonePlayer(p *domain.Player) *domain.Player {
	c := *p
	c.Permissions = append([]string(nil), p.Permissions...)
	c.Inventory = cloneInventory(p.Inventory)
	return &c
}

func cloneInventory(inv *domain.Inventory) *domain.Inventory {
	if inv == nil {
		return domain.NewInventory()
	}
	c := &domain.Inventory{HeldSlot: inv.HeldSlot, Slots: make([]*domain.ItemStack, domain.InventorySize)}
	for i, s := range inv.Slots {
		if i < domain.InventorySize && s != nil {
			c.Slots[i] = s.Clone(s.Amount)
		}
	}
	return c
}
