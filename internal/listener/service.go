package listener

import (
	"context"
	"errors"
	"time"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/key"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/internal/notification"
	"github.com/osse101/CrateBot_Go/internal/player"
	"github.com/osse101/CrateBot_Go/internal/prompt"
)

// Service tracks open key menus and filters the clicks made in them
type Service interface {
	// OpenShow opens owner's key menu for viewer
	OpenShow(ctx context.Context, viewer, owner *domain.Player) (*domain.MenuView, error)
	// OpenEdit opens the key edit menu for viewer
	OpenEdit(ctx context.Context, viewer *domain.Player) (*domain.MenuView, error)
	// View renders the menu viewer has open, or ErrNoMenuOpen
	View(ctx context.Context, viewerID string) (*domain.MenuView, error)
	Close(ctx context.Context, viewerID string)

	Click(ctx context.Context, viewer *domain.Player, evt domain.ClickEvent) (domain.Reply, error)
	Drag(ctx context.Context, viewer *domain.Player, evt domain.DragEvent) (domain.Reply, error)
}

type service struct {
	keys     key.Service
	players  player.Service
	prompts  prompt.Service
	catalog  *notification.Catalog
	sessions *sessions
}

// NewService creates a listener service. A non-positive ttl uses DefaultSessionTTL.
func NewService(keys key.Service, players player.Service, prompts prompt.Service, catalog *notification.Catalog, ttl time.Duration) Service {
	if catalog == nil {
		catalog = notification.Default()
	}
	return &service{
		keys:     keys,
		players:  players,
		prompts:  prompts,
		catalog:  catalog,
		sessions: newSessions(DefaultSessionCapacity, ttl),
	}
}

func (s *service) OpenShow(ctx context.Context, viewer, owner *domain.Player) (*domain.MenuView, error) {
	view, err := s.keys.ShowMenu(ctx, owner)
	if err != nil {
		return nil, err
	}
	s.open(ctx, domain.MenuSession{ViewerID: viewer.ID, OwnerID: owner.ID, Kind: domain.MenuKeyShow})
	return view, nil
}

func (s *service) OpenEdit(ctx context.Context, viewer *domain.Player) (*domain.MenuView, error) {
	view, err := s.keys.EditMenu(ctx)
	if err != nil {
		return nil, err
	}
	s.open(ctx, domain.MenuSession{ViewerID: viewer.ID, Kind: domain.MenuKeyEdit})
	return view, nil
}

func (s *service) open(ctx context.Context, sess domain.MenuSession) {
	s.sessions.Set(sess)
	logger.FromContext(ctx).Debug(LogMsgMenuOpened, "viewer_id", sess.ViewerID, "owner_id", sess.OwnerID, "kind", sess.Kind)
}

func (s *service) View(ctx context.Context, viewerID string) (*domain.MenuView, error) {
	sess, ok := s.sessions.Get(viewerID)
	if !ok {
		return nil, domain.ErrNoMenuOpen
	}
	if sess.Kind == domain.MenuKeyEdit {
		return s.keys.EditMenu(ctx)
	}
	owner, err := s.players.GetByID(ctx, sess.OwnerID)
	if err != nil {
		return nil, err
	}
	return s.keys.ShowMenu(ctx, owner)
}

func (s *service) Close(ctx context.Context, viewerID string) {
	if s.sessions.Remove(viewerID) {
		logger.FromContext(ctx).Debug(LogMsgMenuClosed, "viewer_id", viewerID)
	}
}

// Drag cancels drags across a show menu
func (s *service) Drag(ctx context.Context, viewer *domain.Player, evt domain.DragEvent) (domain.Reply, error) {
	var reply domain.Reply
	if sess, ok := s.sessions.Get(viewer.ID); ok && sess.Kind == domain.MenuKeyShow {
		reply.Cancel = true
	}
	return reply, nil
}

// Click filters a click made while a key menu is open
func (s *service) Click(ctx context.Context, viewer *domain.Player, evt domain.ClickEvent) (domain.Reply, error) {
	var reply domain.Reply

	sess, ok := s.sessions.Get(viewer.ID)
	if !ok {
		return reply, nil
	}

	switch sess.Kind {
	case domain.MenuKeyShow:
		reply.Cancel = true
		return s.clickShow(ctx, viewer, sess, evt, reply)
	case domain.MenuKeyEdit:
		if evt.ClickedInventory != "" &&
			(evt.ClickedInventory == domain.InventoryPlayer || (evt.Click != domain.ClickLeft && evt.Click != domain.ClickRight)) {
			reply.Cancel = true
			return reply, nil
		}
		return s.clickEdit(ctx, evt, reply)
	}
	return reply, nil
}

func (s *service) clickShow(ctx context.Context, viewer *domain.Player, sess domain.MenuSession, evt domain.ClickEvent, reply domain.Reply) (domain.Reply, error) {
	if !evt.CurrentItem.HasMeta() {
		return reply, nil
	}

	var action domain.PromptAction
	var ask notification.Key
	switch evt.Click {
	case domain.ClickLeft:
		action, ask = domain.PromptWithdraw, notification.KeyAskWithdraw
	case domain.ClickRight:
		action, ask = domain.PromptDeposit, notification.KeyAskDeposit
	default:
		return reply, nil
	}

	k, err := s.clickedKey(ctx, evt)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return reply, nil
	}
	if err != nil {
		return reply, err
	}

	s.Close(ctx, viewer.ID)
	reply.CloseMenu = true
	if err := s.prompts.Ask(ctx, domain.Prompt{
		ViewerID: viewer.ID,
		OwnerID:  sess.OwnerID,
		KeyName:  k.Name,
		Action:   action,
	}); err != nil {
		return reply, err
	}
	reply.Tell(viewer.Name, s.catalog.Get(ask, notification.With("name", k.Name)))
	return reply, nil
}

// clickedKey resolves the key under the cursor. Menu slots hold decorated copies,
// so they are resolved by slot; the player's own inventory is resolved by item.
func (s *service) clickedKey(ctx context.Context, evt domain.ClickEvent) (*domain.Key, error) {
	if evt.ClickedInventory == domain.InventoryMenu {
		return s.keys.GetBySlot(ctx, evt.Slot)
	}
	return s.keys.GetByItem(ctx, evt.CurrentItem)
}

func (s *service) clickEdit(ctx context.Context, evt domain.ClickEvent, reply domain.Reply) (domain.Reply, error) {
	if evt.ClickedInventory != domain.InventoryMenu || !evt.CurrentItem.IsEmpty() || evt.Cursor.IsEmpty() {
		return reply, nil
	}

	k, err := s.keys.GetByItem(ctx, evt.Cursor)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return reply, nil
	}
	if err != nil {
		return reply, err
	}

	log := logger.FromContext(ctx)
	err = s.keys.SetSlot(ctx, k.Name, evt.Slot)
	if errors.Is(err, domain.ErrInvalidSlot) {
		log.Debug(LogMsgKeyMoveRefused, "key", k.Name, "slot", evt.Slot)
		reply.Cancel = true
		return reply, nil
	}
	if err != nil {
		return reply, err
	}
	log.Info(LogMsgKeyMoved, "key", k.Name, "slot", evt.Slot)
	return reply, nil
}
