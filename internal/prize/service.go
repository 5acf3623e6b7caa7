package prize

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/internal/notification"
	"github.com/osse101/CrateBot_Go/internal/repository"
)

// Service edits and renders the prizes of synced crates
type Service interface {
	Get(ctx context.Context, crateName string, slot int) (*domain.Prize, error)
	SwitchTagSelection(ctx context.Context, crateName string, slot int, tag string) (*domain.Prize, error)
	ChangeChance(ctx context.Context, crateName string, slot int, chance float64) (*domain.Prize, error)
	ChangeRarity(ctx context.Context, crateName string, slot int) (*domain.Prize, error)
	ChangeSkin(ctx context.Context, crateName string, slot int, skin *domain.ItemStack) (*domain.Prize, error)

	EditBackground(prize *domain.Prize) *domain.ItemStack
	Background(prize *domain.Prize) *domain.ItemStack
}

type service struct {
	repo    repository.Crate
	bus     event.Bus
	catalog *notification.Catalog
}

// NewService creates a new prize service
func NewService(repo repository.Crate, bus event.Bus, catalog *notification.Catalog) Service {
	if catalog == nil {
		catalog = notification.Default()
	}
	return &service{repo: repo, bus: bus, catalog: catalog}
}

// Get returns the first prize of the crate at slot
func (s *service) Get(ctx context.Context, crateName string, slot int) (*domain.Prize, error) {
	crate, err := s.repo.GetCrate(ctx, crateName)
	if err != nil {
		return nil, err
	}
	for _, p := range crate.Prizes {
		if p.Slot == slot {
			return p, nil
		}
	}
	return nil, domain.ErrPrizeNotFound
}

// SwitchTagSelection removes the tag when the prize carries it and adds it otherwise
func (s *service) SwitchTagSelection(ctx context.Context, crateName string, slot int, tag string) (*domain.Prize, error) {
	return s.update(ctx, crateName, slot, FieldTags, func(p *domain.Prize) error {
		if p.HasTag(tag) {
			p.Tags = slices.DeleteFunc(p.Tags, func(t domain.Tag) bool { return t.Name == tag })
			return nil
		}
		t, err := s.repo.GetTag(ctx, tag)
		if err != nil {
			return err
		}
		p.Tags = append(p.Tags, *t)
		return nil
	})
}

// ChangeChance sets the chance, which must lie in [0, 100]
func (s *service) ChangeChance(ctx context.Context, crateName string, slot int, chance float64) (*domain.Prize, error) {
	if math.IsNaN(chance) || chance < MinChance || chance > MaxChance {
		return nil, domain.ErrInvalidChance
	}
	return s.update(ctx, crateName, slot, FieldChance, func(p *domain.Prize) error {
		p.Chance = chance
		return nil
	})
}

// ChangeRarity toggles the rare flag
func (s *service) ChangeRarity(ctx context.Context, crateName string, slot int) (*domain.Prize, error) {
	return s.update(ctx, crateName, slot, FieldRarity, func(p *domain.Prize) error {
		p.Rarity = !p.Rarity
		return nil
	})
}

func (s *service) ChangeSkin(ctx context.Context, crateName string, slot int, skin *domain.ItemStack) (*domain.Prize, error) {
	if skin.IsEmpty() {
		return nil, fmt.Errorf("%w: skin must be a non-empty item", domain.ErrInvalidInput)
	}
	return s.update(ctx, crateName, slot, FieldSkin, func(p *domain.Prize) error {
		p.Skin = skin.Clone(skin.Amount)
		return nil
	})
}

func (s *service) update(ctx context.Context, crateName string, slot int, field string, mutate func(p *domain.Prize) error) (*domain.Prize, error) {
	p, err := s.Get(ctx, crateName, slot)
	if err != nil {
		return nil, err
	}
	if err := mutate(p); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePrize(ctx, crateName, p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdatePrizeFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgPrizeUpdated, "crate", crateName, "slot", slot, "field", field)
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewPrizeUpdatedEvent(crateName, slot, field)); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", err)
		}
	}
	return p, nil
}

// EditBackground is the prize as shown in the edit menu
func (s *service) EditBackground(prize *domain.Prize) *domain.ItemStack {
	if prize.Item == nil {
		return domain.EmptyStack()
	}
	rarity := notification.PrizeNotRare
	if prize.Rarity {
		rarity = notification.PrizeRare
	}
	lore := append(s.tagLore(prize), "", s.chanceLine(prize), "", s.catalog.Get(rarity))
	return prize.Item.WithLore(lore...)
}

// Background is the prize as players see it. Barriers render as empty slots.
func (s *service) Background(prize *domain.Prize) *domain.ItemStack {
	if prize.Item == nil || prize.Item.Material == domain.MaterialBarrier {
		return domain.EmptyStack()
	}
	lore := append(s.tagLore(prize), "", s.chanceLine(prize))
	return prize.Item.WithLore(lore...)
}

func (s *service) tagLore(prize *domain.Prize) []string {
	lines := make([]string, 0, len(prize.Tags)+5)
	for _, t := range prize.Tags {
		lines = append(lines, notification.Colorize(t.Description))
	}
	return lines
}

func (s *service) chanceLine(prize *domain.Prize) string {
	return s.catalog.Get(notification.PrizeChance, notification.With("chance", FormatChance(prize.Chance)))
}
