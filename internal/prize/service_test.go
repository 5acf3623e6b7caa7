package prize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/notification"
	"github.com/osse101/CrateBot_Go/internal/testing/fakes"
)

func newTestService(t *testing.T) (Service, *fakes.CrateRepository, *fakes.MockBus) {
	t.Helper()
	sword := domain.NewPrize(&domain.ItemStack{Material: "IRON_SWORD", Amount: 1, Lore: []string{"Sharp"}}, &domain.ItemStack{Material: "STICK", Amount: 1}, 4, 12.5)
	sword.Tags = []domain.Tag{{Name: "weapon", Description: "&7Weapon"}}
	barrier := domain.NewPrize(&domain.ItemStack{Material: domain.MaterialBarrier, Amount: 1}, nil, 8, 0)

	repo := fakes.NewCrateRepository(&domain.Crate{Name: "vote", KeyName: "vote", Size: 9, Prizes: []*domain.Prize{sword, barrier}})
	require.NoError(t, repo.UpsertTag(context.Background(), domain.Tag{Name: "weapon", Description: "&7Weapon"}))
	require.NoError(t, repo.UpsertTag(context.Background(), domain.Tag{Name: "rare", Description: "&6Rare"}))

	bus := new(fakes.MockBus)
	return NewService(repo, bus, notification.Default()), repo, bus
}

func expectPrizeEvent(bus *fakes.MockBus) {
	bus.On("Publish", mock.Anything, fakes.OfType(event.PrizeUpdated)).Return(nil).Once()
}

func TestGet(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Get(ctx, "vote", 4)
	require.NoError(t, err)
	assert.Equal(t, domain.Material("IRON_SWORD"), p.Item.Material)

	_, err = svc.Get(ctx, "vote", 5)
	assert.ErrorIs(t, err, domain.ErrPrizeNotFound)

	_, err = svc.Get(ctx, "missing", 4)
	assert.ErrorIs(t, err, domain.ErrCrateNotFound)
}

func TestSwitchTagSelection(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := context.Background()

	t.Run("adds a missing tag", func(t *testing.T) {
		expectPrizeEvent(bus)
		p, err := svc.SwitchTagSelection(ctx, "vote", 4, "rare")
		require.NoError(t, err)
		assert.True(t, p.HasTag("rare"))

		stored, err := svc.Get(ctx, "vote", 4)
		require.NoError(t, err)
		assert.Equal(t, []domain.Tag{{Name: "weapon", Description: "&7Weapon"}, {Name: "rare", Description: "&6Rare"}}, stored.Tags)
	})

	t.Run("removes a present tag", func(t *testing.T) {
		expectPrizeEvent(bus)
		p, err := svc.SwitchTagSelection(ctx, "vote", 4, "weapon")
		require.NoError(t, err)
		assert.False(t, p.HasTag("weapon"))
		assert.True(t, p.HasTag("rare"))
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := svc.SwitchTagSelection(ctx, "vote", 4, "armor")
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})

	bus.AssertExpectations(t)
}

func TestChangeChance(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := context.Background()

	for _, bad := range []float64{-0.1, 100.01} {
		_, err := svc.ChangeChance(ctx, "vote", 4, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidChance)
	}

	expectPrizeEvent(bus)
	p, err := svc.ChangeChance(ctx, "vote", 4, 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Chance)

	stored, err := svc.Get(ctx, "vote", 4)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored.Chance)
	bus.AssertExpectations(t)
}

func TestChangeRarity(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := context.Background()
	bus.On("Publish", mock.Anything, fakes.OfType(event.PrizeUpdated)).Return(nil).Twice()

	p, err := svc.ChangeRarity(ctx, "vote", 4)
	require.NoError(t, err)
	assert.True(t, p.Rarity)

	p, err = svc.ChangeRarity(ctx, "vote", 4)
	require.NoError(t, err)
	assert.False(t, p.Rarity)
	bus.AssertExpectations(t)
}

func TestChangeSkin(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := context.Background()

	_, err := svc.ChangeSkin(ctx, "vote", 4, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bus.On("Publish", mock.Anything, fakes.OfType(event.PrizeUpdated)).Return(errors.New("bus down")).Once()
	p, err := svc.ChangeSkin(ctx, "vote", 4, &domain.ItemStack{Material: "BLAZE_ROD", Amount: 1})
	require.NoError(t, err, "publish failures do not fail the edit")
	assert.Equal(t, domain.Material("BLAZE_ROD"), p.Skin.Material)
	bus.AssertExpectations(t)
}

func TestBackgrounds(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	catalog := notification.Default()

	sword, err := svc.Get(ctx, "vote", 4)
	require.NoError(t, err)
	chance := catalog.Get(notification.PrizeChance, notification.With("chance", "12.5"))

	edit := svc.EditBackground(sword)
	assert.Equal(t, []string{"Sharp", "§7Weapon", "", chance, "", catalog.Get(notification.PrizeNotRare)}, edit.Lore)
	assert.Equal(t, []string{"Sharp"}, sword.Item.Lore, "the prize item is not modified")

	shown := svc.Background(sword)
	assert.Equal(t, []string{"Sharp", "§7Weapon", "", chance}, shown.Lore)

	barrier, err := svc.Get(ctx, "vote", 8)
	require.NoError(t, err)
	assert.True(t, svc.Background(barrier).IsEmpty())
	assert.Equal(t, domain.MaterialBarrier, svc.EditBackground(barrier).Material)
}
