package key

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/testing/fakes"
)

type stubBalances map[string]int

func (b stubBalances) Balances(ctx context.Context, playerID string) (map[string]int, error) {
	if b == nil {
		return nil, errors.New("db down")
	}
	return b, nil
}

func hookItem() *domain.ItemStack {
	return &domain.ItemStack{Material: "TRIPWIRE_HOOK", Amount: 1, DisplayName: "&6Vote Key"}
}

func holding(item *domain.ItemStack) *domain.Player {
	inv := domain.NewInventory()
	inv.Slots[0] = item
	return &domain.Player{ID: "actor", Name: "Admin", Inventory: inv}
}

type fixture struct {
	keys   *fakes.KeyRepository
	crates *fakes.CrateRepository
	bus    *fakes.MockBus
	svc    Service
}

func newFixture(t *testing.T, menuSize int, keys ...*domain.Key) *fixture {
	t.Helper()
	f := &fixture{
		keys:   fakes.NewKeyRepository(keys...),
		crates: fakes.NewCrateRepository(),
		bus:    &fakes.MockBus{},
	}
	f.svc = NewService(Config{
		Repo:     f.keys,
		Usage:    f.crates,
		Balances: stubBalances{"vote": 3},
		Bus:      f.bus,
		MenuSize: menuSize,
	})
	return f
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("uses first free slot", func(t *testing.T) {
		f := newFixture(t, 54,
			&domain.Key{Name: "a", Item: &domain.ItemStack{Material: "STONE", Amount: 1}, Slot: 0},
			&domain.Key{Name: "b", Item: &domain.ItemStack{Material: "DIRT", Amount: 1}, Slot: 2},
		)
		f.bus.On("Publish", mock.Anything, fakes.OfType(event.KeyCreated)).Return(nil).Once()

		k, err := f.svc.Create(ctx, holding(hookItem().Clone(16)), "vote")
		require.NoError(t, err)
		assert.Equal(t, 1, k.Slot)
		assert.Equal(t, 1, k.Item.Amount)
		f.bus.AssertExpectations(t)
	})

	t.Run("menu full", func(t *testing.T) {
		f := newFixture(t, 1, &domain.Key{Name: "a", Item: hookItem(), Slot: 0})

		_, err := f.svc.Create(ctx, holding(hookItem()), "vote")
		assert.ErrorIs(t, err, domain.ErrKeyMenuFull)
	})

	t.Run("already registered", func(t *testing.T) {
		f := newFixture(t, 54, &domain.Key{Name: "vote", Item: hookItem(), Slot: 0})

		_, err := f.svc.Create(ctx, holding(hookItem()), "vote")
		assert.ErrorIs(t, err, domain.ErrKeyAlreadyRegistered)
	})

	t.Run("empty hand", func(t *testing.T) {
		f := newFixture(t, 54)

		_, err := f.svc.Create(ctx, holding(nil), "vote")
		assert.ErrorIs(t, err, domain.ErrEmptyHand)
		f.bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("not registered", func(t *testing.T) {
		f := newFixture(t, 54)
		assert.ErrorIs(t, f.svc.Delete(ctx, "actor", "vote"), domain.ErrKeyNotFound)
	})

	t.Run("used by crate", func(t *testing.T) {
		f := newFixture(t, 54, &domain.Key{Name: "vote", Item: hookItem()})
		require.NoError(t, f.crates.UpsertCrate(ctx, &domain.Crate{Name: "common", KeyName: "vote", Size: 27}))

		assert.ErrorIs(t, f.svc.Delete(ctx, "actor", "vote"), domain.ErrKeyUsedByCrate)
	})

	t.Run("deletes and evicts cache", func(t *testing.T) {
		f := newFixture(t, 54, &domain.Key{Name: "vote", Item: hookItem()})
		f.bus.On("Publish", mock.Anything, fakes.OfType(event.KeyDeleted)).Return(nil).Once()

		registered, err := f.svc.IsRegistered(ctx, "vote")
		require.NoError(t, err)
		require.True(t, registered)

		require.NoError(t, f.svc.Delete(ctx, "actor", "vote"))

		registered, err = f.svc.IsRegistered(ctx, "vote")
		require.NoError(t, err)
		assert.False(t, registered)
		f.bus.AssertExpectations(t)
	})
}

func TestGet_UsesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 54, &domain.Key{Name: "vote", Item: hookItem()})

	_, err := f.svc.Get(ctx, "vote")
	require.NoError(t, err)
	lookups := f.keys.Lookups

	k, err := f.svc.Get(ctx, "vote")
	require.NoError(t, err)
	assert.Equal(t, lookups, f.keys.Lookups)

	k.Item.DisplayName = "changed"
	again, err := f.svc.Get(ctx, "vote")
	require.NoError(t, err)
	assert.Equal(t, "&6Vote Key", again.Item.DisplayName)
}

func TestGetByItemAndSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 54, &domain.Key{Name: "vote", Item: hookItem(), Slot: 7})

	k, err := f.svc.GetByItem(ctx, hookItem().Clone(30))
	require.NoError(t, err)
	assert.Equal(t, "vote", k.Name)

	_, err = f.svc.GetByItem(ctx, &domain.ItemStack{Material: "STONE", Amount: 1})
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	_, err = f.svc.GetByItem(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	k, err = f.svc.GetBySlot(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "vote", k.Name)
}

func TestIsFull(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, &domain.Key{Name: "a", Item: hookItem(), Slot: 0})

	full, err := f.svc.IsFull(ctx)
	require.NoError(t, err)
	assert.False(t, full)

	require.NoError(t, f.keys.InsertKey(ctx, &domain.Key{Name: "b", Item: hookItem(), Slot: 1}))
	full, err = f.svc.IsFull(ctx)
	require.NoError(t, err)
	assert.True(t, full)
}

func TestSetSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 54,
		&domain.Key{Name: "vote", Item: hookItem(), Slot: 0},
		&domain.Key{Name: "rare", Item: &domain.ItemStack{Material: "NAME_TAG", Amount: 1}, Slot: 1},
	)
	f.bus.On("Publish", mock.Anything, fakes.OfType(event.KeySlotChanged)).Return(nil).Once()

	require.NoError(t, f.svc.SetSlot(ctx, "vote", 9))
	k, err := f.svc.Get(ctx, "vote")
	require.NoError(t, err)
	assert.Equal(t, 9, k.Slot)

	assert.ErrorIs(t, f.svc.SetSlot(ctx, "vote", 1), domain.ErrInvalidSlot)
	assert.ErrorIs(t, f.svc.SetSlot(ctx, "vote", 54), domain.ErrInvalidSlot)
	assert.ErrorIs(t, f.svc.SetSlot(ctx, "vote", -1), domain.ErrInvalidSlot)
	assert.ErrorIs(t, f.svc.SetSlot(ctx, "missing", 3), domain.ErrKeyNotFound)
	f.bus.AssertExpectations(t)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t, 54)
	f.bus.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus closed"))

	_, err := f.svc.Create(context.Background(), holding(hookItem()), "vote")
	assert.NoError(t, err)
}

func TestShowMenu(t *testing.T) {
	f := newFixture(t, 54, &domain.Key{Name: "vote", Item: hookItem(), Slot: 4})

	view, err := f.svc.ShowMenu(context.Background(), &domain.Player{ID: "p1", Name: "Alice"})
	require.NoError(t, err)

	assert.Equal(t, domain.MenuKeyShow, view.Kind)
	assert.Equal(t, "§8Keys of Alice", view.Title)
	assert.Equal(t, "p1", view.OwnerID)
	assert.Equal(t, 54, view.Size)
	require.Contains(t, view.Slots, 4)
	assert.Equal(t, []string{"§7Amount: §e3", "§7Left click to withdraw", "§7Right click to deposit"}, view.Slots[4].Lore)
}

func TestShowMenu_BalanceFailureShowsZero(t *testing.T) {
	keys := fakes.NewKeyRepository(&domain.Key{Name: "vote", Item: hookItem(), Slot: 0})
	svc := NewService(Config{Repo: keys, Balances: stubBalances(nil)})

	view, err := svc.ShowMenu(context.Background(), &domain.Player{ID: "p1", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "§7Amount: §e0", view.Slots[0].Lore[0])
}

func TestEditMenu(t *testing.T) {
	f := newFixture(t, 27, &domain.Key{Name: "vote", Item: hookItem(), Slot: 3})

	view, err := f.svc.EditMenu(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.MenuKeyEdit, view.Kind)
	assert.Equal(t, 27, view.Size)
	assert.True(t, view.Slots[3].IsSimilar(hookItem()))
}
