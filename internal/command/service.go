// Package command implements the /keys command tree.
package command

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/key"
	"github.com/osse101/CrateBot_Go/internal/listener"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/internal/metrics"
	"github.com/osse101/CrateBot_Go/internal/notification"
	"github.com/osse101/CrateBot_Go/internal/player"
)

// Service runs /keys command lines on behalf of a player
type Service interface {
	Execute(ctx context.Context, sender *domain.Player, line string) (domain.Reply, error)
	Complete(ctx context.Context, sender *domain.Player, line string) ([]string, error)
}

type service struct {
	registry *Registry
	keys     key.Service
	players  player.Service
	menus    listener.Service
	bus      event.Bus
	catalog  *notification.Catalog
}

// NewService creates the command service with every /keys subcommand registered
func NewService(keys key.Service, players player.Service, menus listener.Service, bus event.Bus, catalog *notification.Catalog) Service {
	if catalog == nil {
		catalog = notification.Default()
	}
	s := &service{
		registry: NewRegistry(),
		keys:     keys,
		players:  players,
		menus:    menus,
		bus:      bus,
		catalog:  catalog,
	}
	s.registerAll()
	return s
}

func (s *service) registerAll() {
	transferArgs := []string{"receiver", "amount", "name"}
	transferCompletions := []string{CompletePlayers, CompleteEmpty, CompleteKeys, CompleteEmpty}

	s.registry.Register(&Subcommand{
		Name:        SubHelp,
		Syntax:      "/keys help",
		Permission:  PermHelp,
		Description: "Gets the keys command help.",
		Handler:     s.help,
	})
	s.registry.Register(&Subcommand{
		Name:        SubDefault,
		Syntax:      "/keys",
		Permission:  PermKeys,
		Description: "Opens the keys menu.",
		Handler:     s.openOwnMenu,
	})
	s.registry.Register(&Subcommand{
		Name:        SubCreate,
		Syntax:      "/keys create <name>",
		Permission:  PermCreate,
		Description: "Creates a key.",
		Args:        []string{"name"},
		Handler:     s.create,
	})
	s.registry.Register(&Subcommand{
		Name:        SubDelete,
		Syntax:      "/keys delete <name>",
		Permission:  PermDelete,
		Description: "Deletes a key.",
		Args:        []string{"name"},
		Completions: []string{CompleteKeys, CompleteEmpty},
		Handler:     s.delete,
	})
	s.registry.Register(&Subcommand{
		Name:        SubGive,
		Syntax:      "/keys give <receiver> <amount> <name>",
		Permission:  PermGive,
		Description: "Gives a key.",
		Args:        transferArgs,
		Completions: transferCompletions,
		Handler:     s.transfer(event.KeyGiven),
	})
	s.registry.Register(&Subcommand{
		Name:        SubDeposit,
		Syntax:      "/keys deposit <receiver> <amount> <name>",
		Permission:  PermDeposit,
		Description: "Deposits a key.",
		Args:        transferArgs,
		Completions: transferCompletions,
		Handler:     s.transfer(event.KeyDeposited),
	})
	s.registry.Register(&Subcommand{
		Name:        SubWithdraw,
		Syntax:      "/keys withdraw <receiver> <amount> <name>",
		Permission:  PermWithdraw,
		Description: "Withdraws a key.",
		Args:        transferArgs,
		Completions: transferCompletions,
		Handler:     s.transfer(event.KeyWithdrawn),
	})
	s.registry.Register(&Subcommand{
		Name:        SubInfo,
		Syntax:      "/keys info <receiver>",
		Permission:  PermInfo,
		Description: "Gets key informations about player.",
		Args:        []string{"receiver"},
		Completions: []string{CompletePlayers, CompleteEmpty},
		Handler:     s.info,
	})
	s.registry.Register(&Subcommand{
		Name:        SubEdit,
		Syntax:      "/keys edit",
		Permission:  PermEdit,
		Description: "Edits key's slot.",
		Handler:     s.openEditMenu,
	})
}

// Execute parses and runs a command line such as "/keys give Alice 3 vote".
// Failed game rules become messages in the reply; only infrastructure failures are errors.
func (s *service) Execute(ctx context.Context, sender *domain.Player, line string) (domain.Reply, error) {
	var reply domain.Reply
	log := logger.FromContext(ctx)

	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	if len(fields) == 0 || !strings.EqualFold(fields[0], Root) {
		log.Debug(LogMsgUnknownCommand, "line", line)
		return reply, domain.ErrUnknownCommand
	}

	name, args := SubDefault, fields[1:]
	if len(args) > 0 {
		if _, ok := s.registry.Lookup(args[0]); ok {
			name, args = args[0], args[1:]
		}
	}
	sub, _ := s.registry.Lookup(name)

	if !sender.HasPermission(sub.Permission) {
		reply.Tell(sender.Name, s.catalog.Get(notification.UtilNoPermission))
		return reply, nil
	}
	if len(args) != len(sub.Args) {
		s.syntax(sender, sub, &reply)
		return reply, nil
	}

	metrics.CommandsRun.WithLabelValues(metricName(sub)).Inc()
	log.Info(LogMsgCommandRun, "sender", sender.Name, "subcommand", metricName(sub), "args", args)
	if err := sub.Handler(ctx, sender, args, &reply); err != nil {
		return reply, err
	}
	return reply, nil
}

func (s *service) syntax(sender *domain.Player, sub *Subcommand, reply *domain.Reply) {
	reply.Tell(sender.Name, s.catalog.Get(notification.UtilSyntax, notification.With("syntax", sub.Syntax)))
}

func (s *service) help(ctx context.Context, sender *domain.Player, args []string, reply *domain.Reply) error {
	title := cases.Title(language.English).String(Root)
	reply.Tell(sender.Name, s.catalog.Get(notification.UtilHelpHeader, notification.With("title", title)))
	for _, sub := range s.registry.Allowed(sender) {
		reply.Tell(sender.Name, s.catalog.Get(notification.UtilHelpLine,
			notification.With("syntax", sub.Syntax),
			notification.With("description", sub.Description)))
	}
	return nil
}

func (s *service) openOwnMenu(ctx context.Context, sender *domain.Player, args []string, reply *domain.Reply) error {
	view, err := s.menus.OpenShow(ctx, sender, sender)
	if err != nil {
		return err
	}
	reply.OpenMenu = view
	return nil
}

func (s *service) openEditMenu(ctx context.Context, sender *domain.Player, args []string, reply *domain.Reply) error {
	view, err := s.menus.OpenEdit(ctx, sender)
	if err != nil {
		return err
	}
	reply.OpenMenu = view
	return nil
}

func (s *service) create(ctx context.Context, sender *domain.Player, args []string, reply *domain.Reply) error {
	name := args[0]
	_, err := s.keys.Create(ctx, sender, name)
	switch {
	case errors.Is(err, domain.ErrKeyMenuFull):
		reply.Tell(sender.Name, s.catalog.Get(notification.KeyFull))
	case errors.Is(err, domain.ErrKeyAlreadyRegistered):
		reply.Tell(sender.Name, s.catalog.Get(notification.KeyAlreadyRegistered, notification.With("name", name)))
	case errors.Is(err, domain.ErrEmptyHand):
		reply.Tell(sender.Name, s.catalog.Get(notification.PlayerEmptyHand))
	case err != nil:
		return err
	default:
		reply.Tell(sender.Name, s.catalog.Get(notification.KeyCreated, notification.With("name", name)))
	}
	return nil
}

func (s *service) delete(ctx context.Context, sender *domain.Player, args []string, reply *domain.Reply) error {
	name := args[0]
	err := s.keys.Delete(ctx, sender.ID, name)
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		reply.Tell(sender.Name, s.catalog.Get(notification.KeyNotRegistered, notification.With("name", name)))
	case errors.Is(err, domain.ErrKeyUsedByCrate):
		reply.Tell(sender.Name, s.catalog.Get(notification.KeyUsedByCrate, notification.With("name", name)))
	case err != nil:
		return err
	default:
		reply.Tell(sender.Name, s.catalog.Get(notification.KeyDeleted, notification.With("name", name)))
	}
	return nil
}

// transfer builds the give, deposit and withdraw handlers. They share their checks:
// receiver online, receiver registered, key registered.
func (s *service) transfer(kind event.Type) Handler {
	return func(ctx context.Context, sender *domain.Player, args []string, reply *domain.Reply) error {
		receiverName, rawAmount, keyName := args[0], args[1], args[2]

		parsed, err := strconv.ParseInt(rawAmount, 10, 32)
		amount := int(parsed)
		if err != nil || amount < 1 {
			sub, _ := s.registry.Lookup(subcommandFor(kind))
			s.syntax(sender, sub, reply)
			return nil
		}

		receiver, ok, err := s.onlineReceiver(ctx, sender, receiverName, reply)
		if err != nil || !ok {
			return err
		}
		if !receiver.Registered {
			reply.Tell(sender.Name, s.catalog.Get(notification.PlayerNotRegistered, notification.With("name", receiverName)))
			return nil
		}
		k, err := s.keys.Get(ctx, keyName)
		if errors.Is(err, domain.ErrKeyNotFound) {
			reply.Tell(sender.Name, s.catalog.Get(notification.KeyNotRegistered, notification.With("name", keyName)))
			return nil
		}
		if err != nil {
			return err
		}

		receiveMsg, senderMsg, physical := notification.PlayerReceiveKey, notification.PlayerGiveKey, false
		switch kind {
		case event.KeyGiven:
			physical = true
			var inv *domain.Inventory
			inv, err = s.players.GiveKeys(ctx, receiver.ID, k, amount)
			reply.SetInventory(receiver.Name, inv)
		case event.KeyDeposited:
			err = s.players.AddKeys(ctx, receiver.ID, k.Name, amount)
		case event.KeyWithdrawn:
			receiveMsg, senderMsg = notification.PlayerLooseKey, notification.PlayerRemoveKey
			amount, err = s.players.RemoveKeys(ctx, receiver.ID, k.Name, amount)
		}
		if errors.Is(err, domain.ErrBalanceLimit) {
			reply.Tell(sender.Name, s.catalog.Get(notification.KeyBalanceLimit,
				notification.With("name", k.Name),
				notification.With("player", receiver.Name)))
			return nil
		}
		if err != nil {
			return err
		}

		amountStr := strconv.Itoa(amount)
		reply.Tell(receiver.Name, s.catalog.Get(receiveMsg,
			notification.With("name", k.Name),
			notification.With("amount", amountStr)))
		reply.Tell(sender.Name, s.catalog.Get(senderMsg,
			notification.With("name", k.Name),
			notification.With("amount", amountStr),
			notification.With("player", receiver.Name)))

		s.publish(ctx, event.NewKeyTransferEvent(kind, k.Name, sender.ID, receiver.ID, amount, physical, event.SourceCommand))
		return nil
	}
}

func (s *service) info(ctx context.Context, sender *domain.Player, args []string, reply *domain.Reply) error {
	receiver, ok, err := s.onlineReceiver(ctx, sender, args[0], reply)
	if err != nil || !ok {
		return err
	}
	view, err := s.menus.OpenShow(ctx, sender, receiver)
	if err != nil {
		return err
	}
	reply.OpenMenu = view
	return nil
}

// onlineReceiver resolves an online player by name, telling the sender when they are not online
func (s *service) onlineReceiver(ctx context.Context, sender *domain.Player, name string, reply *domain.Reply) (*domain.Player, bool, error) {
	receiver, err := s.players.GetOnline(ctx, name)
	if errors.Is(err, domain.ErrPlayerOffline) || errors.Is(err, domain.ErrPlayerNotFound) {
		reply.Tell(sender.Name, s.catalog.Get(notification.UtilNotOnline, notification.With("name", name)))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return receiver, true, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func subcommandFor(kind event.Type) string {
	switch kind {
	case event.KeyDeposited:
		return SubDeposit
	case event.KeyWithdrawn:
		return SubWithdraw
	}
	return SubGive
}

func metricName(sub *Subcommand) string {
	if sub.Name == SubDefault {
		return Root
	}
	return sub.Name
}
