package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/internal/repository"
)

// Service defines the interface for player operations
type Service interface {
	Register(ctx context.Context, name string, permissions []string) (*domain.Player, error)
	Get(ctx context.Context, name string) (*domain.Player, error)
	GetByID(ctx context.Context, playerID string) (*domain.Player, error)
	GetOnline(ctx context.Context, name string) (*domain.Player, error)
	SyncInventory(ctx context.Context, name string, inventory *domain.Inventory) (*domain.Player, error)
	IsRegistered(ctx context.Context, playerID string) (bool, error)

	// Presence
	Join(ctx context.Context, name string) (*domain.Player, error)
	SetOnline(name string, online bool)
	IsOnline(name string) bool
	OnlineNames() []string

	// Key balances
	Balance(ctx context.Context, playerID, keyName string) (int, error)
	Balances(ctx context.Context, playerID string) (map[string]int, error)
	PhysicalCount(ctx context.Context, playerID string, key *domain.Key) (int, error)
	CanWithdraw(ctx context.Context, playerID string, key *domain.Key, amount int) (bool, error)
	// GiveKeys, WithdrawKeys and DepositKeys return the rewritten inventory so the
	// host can apply it before its next inventory sync.
	GiveKeys(ctx context.Context, playerID string, key *domain.Key, amount int) (*domain.Inventory, error)
	AddKeys(ctx context.Context, playerID, keyName string, amount int) error
	RemoveKeys(ctx context.Context, playerID, keyName string, amount int) (int, error)
	WithdrawKeys(ctx context.Context, playerID string, key *domain.Key, amount int) (*domain.Inventory, error)
	DepositKeys(ctx context.Context, playerID string, key *domain.Key, amount int) (*domain.Inventory, error)

	Shutdown(ctx context.Context) error
}

type service struct {
	repo     repository.Player
	presence *PresenceTracker
}

// NewService creates a new player service
func NewService(repo repository.Player, presence *PresenceTracker) Service {
	return &service{
		repo:     repo,
		presence: presence,
	}
}

// Register creates the player if needed and marks them registered.
// A nil permissions slice keeps the current permissions.
func (s *service) Register(ctx context.Context, name string, permissions []string) (*domain.Player, error) {
	log := logger.FromContext(ctx)

	p, err := s.repo.GetPlayerByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		p = &domain.Player{Name: name, Inventory: domain.NewInventory(), Permissions: []string{}}
	case err != nil:
		return nil, fmt.Errorf("%s: %w", ErrMsgGetPlayerFailed, err)
	}

	p.Registered = true
	if permissions != nil {
		p.Permissions = permissions
	}
	if err := s.repo.UpsertPlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpsertPlayerFailed, err)
	}

	log.Info(LogMsgPlayerRegistered, "player", p.Name, "player_id", p.ID)
	return p, nil
}

// Get looks a player up by name
func (s *service) Get(ctx context.Context, name string) (*domain.Player, error) {
	return s.repo.GetPlayerByName(ctx, name)
}

// GetByID looks a player up by id
func (s *service) GetByID(ctx context.Context, playerID string) (*domain.Player, error) {
	return s.repo.GetPlayerByID(ctx, playerID)
}

// GetOnline returns the named player if they are online.
// Offline players yield ErrPlayerOffline even when they are known.
func (s *service) GetOnline(ctx context.Context, name string) (*domain.Player, error) {
	if !s.presence.IsOnline(name) {
		return nil, domain.ErrPlayerOffline
	}
	p, err := s.repo.GetPlayerByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SyncInventory replaces the stored inventory with the one the host reports
func (s *service) SyncInventory(ctx context.Context, name string, inventory *domain.Inventory) (*domain.Player, error) {
	p, err := s.repo.GetPlayerByName(ctx, name)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, func(tx repository.PlayerTx) error {
		if _, err := tx.GetInventoryForUpdate(ctx, p.ID); err != nil {
			return err
		}
		return tx.UpdateInventory(ctx, p.ID, *inventory)
	})
	if err != nil {
		return nil, err
	}

	p.Inventory = inventory
	logger.FromContext(ctx).Debug(LogMsgInventorySynced, "player", p.Name)
	return p, nil
}

// IsRegistered reports whether the player exists and has registered
func (s *service) IsRegistered(ctx context.Context, playerID string) (bool, error) {
	p, err := s.repo.GetPlayerByID(ctx, playerID)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgGetPlayerFailed, err)
	}
	return p.Registered, nil
}

// Join marks a player online, creating an unregistered record for players never seen before
func (s *service) Join(ctx context.Context, name string) (*domain.Player, error) {
	p, err := s.repo.GetPlayerByName(ctx, name)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		p = &domain.Player{Name: name, Inventory: domain.NewInventory(), Permissions: []string{}}
		if err := s.repo.UpsertPlayer(ctx, p); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgUpsertPlayerFailed, err)
		}
		logger.FromContext(ctx).Info(LogMsgPlayerJoined, "player", name, "player_id", p.ID)
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetPlayerFailed, err)
	}
	s.presence.Track(p.Name)
	return p, nil
}

func (s *service) SetOnline(name string, online bool) {
	if online {
		s.presence.Track(name)
	} else {
		s.presence.Remove(name)
	}
}

func (s *service) IsOnline(name string) bool {
	return s.presence.IsOnline(name)
}

func (s *service) OnlineNames() []string {
	return s.presence.Names()
}

// Balance returns how many virtual keys of keyName the player holds
func (s *service) Balance(ctx context.Context, playerID, keyName string) (int, error) {
	balances, err := s.Balances(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return balances[keyName], nil
}

// Balances returns every virtual key balance of a player keyed by key name
func (s *service) Balances(ctx context.Context, playerID string) (map[string]int, error) {
	rows, err := s.repo.GetKeyBalances(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetBalancesFailed, err)
	}
	balances := make(map[string]int, len(rows))
	for _, b := range rows {
		balances[b.KeyName] = b.Quantity
	}
	return balances, nil
}

// PhysicalCount returns how many copies of the key item sit in the player's inventory
func (s *service) PhysicalCount(ctx context.Context, playerID string, key *domain.Key) (int, error) {
	p, err := s.repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return p.Inventory.Count(key.Item), nil
}

// CanWithdraw reports whether amount key items fit in the player's inventory
func (s *service) CanWithdraw(ctx context.Context, playerID string, key *domain.Key, amount int) (bool, error) {
	p, err := s.repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return false, err
	}
	return p.Inventory.SpaceFor(key.Item) >= amount, nil
}

// GiveKeys puts amount key items into the player's inventory.
// Whatever does not fit is credited to the virtual balance so nothing is lost.
func (s *service) GiveKeys(ctx context.Context, playerID string, key *domain.Key, amount int) (*domain.Inventory, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	var updated *domain.Inventory
	err := s.withTx(ctx, func(tx repository.PlayerTx) error {
		inv, err := tx.GetInventoryForUpdate(ctx, playerID)
		if err != nil {
			return err
		}
		leftover := inv.Add(key.Item, amount)
		if leftover > 0 {
			balance, err := tx.GetKeyBalanceForUpdate(ctx, playerID, key.Name)
			if err != nil {
				return err
			}
			if err := fitsBalance(balance, leftover); err != nil {
				return err
			}
			if err := tx.SetKeyBalance(ctx, playerID, key.Name, balance+leftover); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgUpdateBalanceFailed, err)
			}
			log.Info(LogMsgKeysOverflowed, "player_id", playerID, "key", key.Name, "amount", leftover)
		}
		if err := tx.UpdateInventory(ctx, playerID, *inv); err != nil {
			return err
		}
		updated = inv
		log.Info(LogMsgKeysGiven, "player_id", playerID, "key", key.Name, "amount", amount-leftover)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AddKeys credits amount virtual keys
func (s *service) AddKeys(ctx context.Context, playerID, keyName string, amount int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx repository.PlayerTx) error {
		if _, err := tx.GetInventoryForUpdate(ctx, playerID); err != nil {
			return err
		}
		balance, err := tx.GetKeyBalanceForUpdate(ctx, playerID, keyName)
		if err != nil {
			return err
		}
		if err := fitsBalance(balance, amount); err != nil {
			return err
		}
		if err := tx.SetKeyBalance(ctx, playerID, keyName, balance+amount); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgUpdateBalanceFailed, err)
		}
		logger.FromContext(ctx).Info(LogMsgKeysAdded, "player_id", playerID, "key", keyName, "amount", amount)
		return nil
	})
}

// RemoveKeys debits up to amount virtual keys, never going below zero.
// It returns how many keys were actually removed.
func (s *service) RemoveKeys(ctx context.Context, playerID, keyName string, amount int) (int, error) {
	if err := validAmount(amount); err != nil {
		return 0, err
	}
	removed := 0
	err := s.withTx(ctx, func(tx repository.PlayerTx) error {
		if _, err := tx.GetInventoryForUpdate(ctx, playerID); err != nil {
			return err
		}
		balance, err := tx.GetKeyBalanceForUpdate(ctx, playerID, keyName)
		if err != nil {
			return err
		}
		removed = min(balance, amount)
		if err := tx.SetKeyBalance(ctx, playerID, keyName, balance-removed); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgUpdateBalanceFailed, err)
		}
		logger.FromContext(ctx).Info(LogMsgKeysRemoved, "player_id", playerID, "key", keyName, "amount", removed)
		return nil
	})
	return removed, err
}

// WithdrawKeys moves amount keys from the virtual balance into the inventory
func (s *service) WithdrawKeys(ctx context.Context, playerID string, key *domain.Key, amount int) (*domain.Inventory, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	var updated *domain.Inventory
	err := s.withTx(ctx, func(tx repository.PlayerTx) error {
		inv, err := tx.GetInventoryForUpdate(ctx, playerID)
		if err != nil {
			return err
		}
		balance, err := tx.GetKeyBalanceForUpdate(ctx, playerID, key.Name)
		if err != nil {
			return err
		}
		if balance < amount {
			return domain.ErrInsufficientKeys
		}
		if inv.SpaceFor(key.Item) < amount {
			return domain.ErrInventoryFull
		}
		inv.Add(key.Item, amount)
		if err := tx.UpdateInventory(ctx, playerID, *inv); err != nil {
			return err
		}
		if err := tx.SetKeyBalance(ctx, playerID, key.Name, balance-amount); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgUpdateBalanceFailed, err)
		}
		updated = inv
		logger.FromContext(ctx).Info(LogMsgKeysWithdrawn, "player_id", playerID, "key", key.Name, "amount", amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DepositKeys moves amount key items from the inventory into the virtual balance
func (s *service) DepositKeys(ctx context.Context, playerID string, key *domain.Key, amount int) (*domain.Inventory, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	var updated *domain.Inventory
	err := s.withTx(ctx, func(tx repository.PlayerTx) error {
		inv, err := tx.GetInventoryForUpdate(ctx, playerID)
		if err != nil {
			return err
		}
		if inv.Count(key.Item) < amount {
			return domain.ErrInsufficientKeys
		}
		balance, err := tx.GetKeyBalanceForUpdate(ctx, playerID, key.Name)
		if err != nil {
			return err
		}
		if err := fitsBalance(balance, amount); err != nil {
			return err
		}
		inv.Remove(key.Item, amount)
		if err := tx.UpdateInventory(ctx, playerID, *inv); err != nil {
			return err
		}
		if err := tx.SetKeyBalance(ctx, playerID, key.Name, balance+amount); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgUpdateBalanceFailed, err)
		}
		updated = inv
		logger.FromContext(ctx).Info(LogMsgKeysDeposited, "player_id", playerID, "key", key.Name, "amount", amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func validAmount(amount int) error {
	if amount <= 0 || amount > domain.MaxKeyAmount {
		return domain.ErrInvalidAmount
	}
	return nil
}

// fitsBalance rejects credits that would push a balance past MaxKeyAmount
func fitsBalance(balance, amount int) error {
	if balance > domain.MaxKeyAmount-amount {
		return fmt.Errorf("%w: %d + %d", domain.ErrBalanceLimit, balance, amount)
	}
	return nil
}

// Shutdown stops the presence tracker
func (s *service) Shutdown(ctx context.Context) error {
	s.presence.Stop()
	return nil
}

// withTx runs fn in a player transaction, committing when fn succeeds
func (s *service) withTx(ctx context.Context, fn func(tx repository.PlayerTx) error) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
