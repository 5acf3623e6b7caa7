package key

import (
	"context"
	"strconv"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/internal/notification"
)

// ShowMenu renders the owner's key menu. Each key carries the owner's
// virtual balance and the usage hint in its lore.
func (s *service) ShowMenu(ctx context.Context, owner *domain.Player) (*domain.MenuView, error) {
	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	balances := map[string]int{}
	if s.balances != nil {
		b, err := s.balances.Balances(ctx, owner.ID)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgBalanceLookupErr, "player_id", owner.ID, "error", err)
		} else {
			balances = b
		}
	}

	usage := s.catalog.Lines(notification.KeyMenuUsage)
	view := s.newView(domain.MenuKeyShow, s.catalog.Get(notification.KeyShowMenuTitle, notification.With("player", owner.Name)))
	view.OwnerID = owner.ID
	for _, k := range keys {
		lore := append([]string{s.catalog.Get(notification.KeyMenuAmount,
			notification.With("amount", strconv.Itoa(balances[k.Name])))}, usage...)
		view.Slots[k.Slot] = k.Item.Clone(1).WithLore(lore...)
	}
	return view, nil
}

// EditMenu renders every key at its slot
func (s *service) EditMenu(ctx context.Context) (*domain.MenuView, error) {
	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	view := s.newView(domain.MenuKeyEdit, s.catalog.Get(notification.KeyEditMenuTitle))
	for _, k := range keys {
		view.Slots[k.Slot] = k.Item.Clone(1)
	}
	return view, nil
}

func (s *service) newView(kind domain.MenuKind, title string) *domain.MenuView {
	return &domain.MenuView{
		Kind:  kind,
		Title: title,
		Size:  s.menuSize,
		Slots: make(map[int]*domain.ItemStack),
	}
}
