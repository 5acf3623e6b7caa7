package prompt

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/key"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/internal/metrics"
	"github.com/osse101/CrateBot_Go/internal/notification"
	"github.com/osse101/CrateBot_Go/internal/player"
)

var positiveInt = regexp.MustCompile(`^[1-9]\d*$`)

// Service opens quantity prompts and answers them from chat
type Service interface {
	// Ask registers a one-shot prompt, replacing any pending one of the viewer
	Ask(ctx context.Context, p domain.Prompt) error
	// Answer consumes the viewer's pending prompt with a chat line.
	// consumed is false when the viewer had no pending prompt.
	Answer(ctx context.Context, viewer *domain.Player, line string) (reply domain.Reply, consumed bool, err error)
	Cancel(ctx context.Context, viewerID string) error
}

type service struct {
	store   Store
	players player.Service
	keys    key.Service
	bus     event.Bus
	catalog *notification.Catalog
}

// NewService creates a prompt service
func NewService(store Store, players player.Service, keys key.Service, bus event.Bus, catalog *notification.Catalog) Service {
	if catalog == nil {
		catalog = notification.Default()
	}
	return &service{
		store:   store,
		players: players,
		keys:    keys,
		bus:     bus,
		catalog: catalog,
	}
}

func (s *service) Ask(ctx context.Context, p domain.Prompt) error {
	if err := s.store.Put(ctx, p); err != nil {
		return err
	}
	metrics.PromptsOpened.WithLabelValues(string(p.Action)).Inc()
	logger.FromContext(ctx).Debug(LogMsgPromptOpened, "viewer_id", p.ViewerID, "owner_id", p.OwnerID, "key", p.KeyName, "action", p.Action)
	return nil
}

func (s *service) Cancel(ctx context.Context, viewerID string) error {
	return s.store.Cancel(ctx, viewerID)
}

func (s *service) Answer(ctx context.Context, viewer *domain.Player, line string) (domain.Reply, bool, error) {
	var reply domain.Reply

	p, err := s.store.Take(ctx, viewer.ID)
	if errors.Is(err, domain.ErrNoPendingPrompt) {
		return reply, false, nil
	}
	if err != nil {
		return reply, false, err
	}
	reply.Cancel = true

	a := &answer{svc: s, prompt: p, viewer: viewer, reply: &reply}
	done, err := a.run(ctx, line)
	if err != nil {
		return reply, true, err
	}

	outcome := metrics.OutcomeRejected
	if done {
		outcome = metrics.OutcomeDone
	}
	metrics.PromptsAnswered.WithLabelValues(string(p.Action), outcome).Inc()
	logger.FromContext(ctx).Info(LogMsgPromptAnswered, "viewer_id", viewer.ID, "owner_id", p.OwnerID,
		"key", p.KeyName, "action", p.Action, "outcome", outcome)
	return reply, true, nil
}

// answer carries the state of one prompt resolution
type answer struct {
	svc    *service
	prompt *domain.Prompt
	viewer *domain.Player
	owner  *domain.Player
	key    *domain.Key
	amount int
	reply  *domain.Reply
}

// run resolves the prompt, reporting whether keys were moved
func (a *answer) run(ctx context.Context, line string) (bool, error) {
	s := a.svc

	owner, err := s.players.GetByID(ctx, a.prompt.OwnerID)
	if err != nil && !errors.Is(err, domain.ErrPlayerNotFound) {
		return false, err
	}
	if owner == nil || !owner.Registered {
		name := a.prompt.OwnerID
		if owner != nil {
			name = owner.Name
		}
		a.tellViewer(notification.PlayerNotRegistered, notification.With("name", name))
		return false, nil
	}
	a.owner = owner

	n, ok := parseAmount(line)
	if !ok {
		a.tellViewer(notification.UtilNotANumber, notification.With("number", line))
		return false, nil
	}
	a.amount = n

	k, err := s.keys.Get(ctx, a.prompt.KeyName)
	if errors.Is(err, domain.ErrKeyNotFound) {
		a.tellViewer(notification.KeyNotRegistered, notification.With("name", a.prompt.KeyName))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	a.key = k

	switch a.prompt.Action {
	case domain.PromptWithdraw:
		return a.withdraw(ctx)
	case domain.PromptDeposit:
		return a.deposit(ctx)
	}
	return false, domain.ErrInvalidInput
}

func (a *answer) withdraw(ctx context.Context) (bool, error) {
	s := a.svc
	self := a.isSelf()

	balance, err := s.players.Balance(ctx, a.owner.ID, a.key.Name)
	if err != nil {
		return false, err
	}
	if a.amount > balance {
		a.notEnoughToWithdraw(self)
		return false, nil
	}

	fits, err := s.players.CanWithdraw(ctx, a.owner.ID, a.key, a.amount)
	if err != nil {
		return false, err
	}
	if !fits {
		a.inventoryFull(self)
		return false, nil
	}

	if self {
		inv, err := s.players.WithdrawKeys(ctx, a.owner.ID, a.key, a.amount)
		switch {
		case errors.Is(err, domain.ErrInsufficientKeys):
			a.notEnoughToWithdraw(true)
			return false, nil
		case errors.Is(err, domain.ErrInventoryFull):
			a.inventoryFull(true)
			return false, nil
		case err != nil:
			return false, err
		}
		a.reply.SetInventory(a.owner.Name, inv)
		a.tellViewer(notification.KeyWithdraw, a.amountAndName()...)
		a.publish(ctx, event.KeyWithdrawn, true)
		return true, nil
	}

	removed, err := s.players.RemoveKeys(ctx, a.owner.ID, a.key.Name, a.amount)
	if err != nil {
		return false, err
	}
	a.amount = removed
	a.reply.Tell(a.owner.Name, s.catalog.Get(notification.PlayerLooseKey, a.amountAndName()...))
	a.tellViewer(notification.PlayerRemoveKey, a.amountNameAndPlayer()...)
	a.publish(ctx, event.KeyWithdrawn, false)
	return true, nil
}

func (a *answer) deposit(ctx context.Context) (bool, error) {
	s := a.svc

	if a.isSelf() {
		physical, err := s.players.PhysicalCount(ctx, a.owner.ID, a.key)
		if err != nil {
			return false, err
		}
		if a.amount > physical {
			a.tellViewer(notification.KeyYouNotEnoughToDeposit, a.amountAndName()...)
			return false, nil
		}
		inv, err := s.players.DepositKeys(ctx, a.owner.ID, a.key, a.amount)
		switch {
		case errors.Is(err, domain.ErrInsufficientKeys):
			a.tellViewer(notification.KeyYouNotEnoughToDeposit, a.amountAndName()...)
			return false, nil
		case errors.Is(err, domain.ErrBalanceLimit):
			a.balanceLimit()
			return false, nil
		case err != nil:
			return false, err
		}
		a.reply.SetInventory(a.owner.Name, inv)
		a.tellViewer(notification.KeyDeposit, a.amountAndName()...)
		a.publish(ctx, event.KeyDeposited, true)
		return true, nil
	}

	err := s.players.AddKeys(ctx, a.owner.ID, a.key.Name, a.amount)
	if errors.Is(err, domain.ErrBalanceLimit) {
		a.balanceLimit()
		return false, nil
	}
	if err != nil {
		return false, err
	}
	a.reply.Tell(a.owner.Name, s.catalog.Get(notification.PlayerReceiveKey, a.amountAndName()...))
	a.tellViewer(notification.PlayerGiveKey, a.amountNameAndPlayer()...)
	a.publish(ctx, event.KeyDeposited, false)
	return true, nil
}

func (a *answer) notEnoughToWithdraw(self bool) {
	if self {
		a.tellViewer(notification.KeyYouNotEnoughToWithdraw, a.amountAndName()...)
		return
	}
	a.tellViewer(notification.KeyPlayerNotEnoughToWithdraw, a.amountNameAndPlayer()...)
}

func (a *answer) inventoryFull(self bool) {
	if self {
		a.tellViewer(notification.PlayerYouInventoryFull)
		return
	}
	a.tellViewer(notification.PlayerInventoryFull, notification.With("player", a.owner.Name))
}

func (a *answer) balanceLimit() {
	a.tellViewer(notification.KeyBalanceLimit,
		notification.With("name", a.key.Name),
		notification.With("player", a.owner.Name))
}

func (a *answer) isSelf() bool {
	return a.viewer.ID == a.owner.ID
}

func (a *answer) tellViewer(k notification.Key, placeholders ...notification.Placeholder) {
	a.reply.Tell(a.viewer.Name, a.svc.catalog.Get(k, placeholders...))
}

func (a *answer) amountAndName() []notification.Placeholder {
	return []notification.Placeholder{
		notification.With("amount", strconv.Itoa(a.amount)),
		notification.With("name", a.key.Name),
	}
}

func (a *answer) amountNameAndPlayer() []notification.Placeholder {
	return append(a.amountAndName(), notification.With("player", a.owner.Name))
}

func (a *answer) publish(ctx context.Context, t event.Type, physical bool) {
	if a.svc.bus == nil {
		return
	}
	evt := event.NewKeyTransferEvent(t, a.key.Name, a.viewer.ID, a.owner.ID, a.amount, physical, event.SourcePrompt)
	if err := a.svc.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", t, "error", err)
	}
}

// parseAmount accepts a positive decimal integer without sign or leading zeros
func parseAmount(line string) (int, bool) {
	if !positiveInt.MatchString(line) {
		return 0, false
	}
	n, err := strconv.ParseInt(line, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
