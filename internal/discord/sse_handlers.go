package discord

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// Notifier posts an embed to the announcement channel
type Notifier interface {
	SendNotification(embed *discordgo.MessageEmbed) error
}

// NotifiedEventTypes are the stream events announced in Discord
var NotifiedEventTypes = []string{
	domain.EventTypeKeyCreated,
	domain.EventTypeKeyDeleted,
	domain.EventTypeKeyGiven,
	domain.EventTypeKeyDeposited,
	domain.EventTypeKeyWithdrawn,
	domain.EventTypePrizeUpdated,
}

// SSENotifier turns key and prize events into channel announcements
type SSENotifier struct {
	notifier Notifier
}

// NewSSENotifier creates a new SSE notifier
func NewSSENotifier(notifier Notifier) *SSENotifier {
	return &SSENotifier{notifier: notifier}
}

// RegisterHandlers registers all SSE event handlers with the client
func (n *SSENotifier) RegisterHandlers(client *SSEClient) {
	client.OnEvent(domain.EventTypeKeyCreated, n.handleKeyLifecycle)
	client.OnEvent(domain.EventTypeKeyDeleted, n.handleKeyLifecycle)
	client.OnEvent(domain.EventTypeKeyGiven, n.handleKeyTransfer)
	client.OnEvent(domain.EventTypeKeyDeposited, n.handleKeyTransfer)
	client.OnEvent(domain.EventTypeKeyWithdrawn, n.handleKeyTransfer)
	client.OnEvent(domain.EventTypePrizeUpdated, n.handlePrizeUpdated)
}

func (n *SSENotifier) handleKeyLifecycle(event SSEEvent) error {
	var payload domain.KeyPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", event.Type)
		return nil
	}

	title := "🔑 New key type"
	desc := fmt.Sprintf("Key **%s** can now be handed out.", payload.KeyName)
	if event.Type == domain.EventTypeKeyDeleted {
		title = "🗑️ Key type removed"
		desc = fmt.Sprintf("Key **%s** no longer exists.", payload.KeyName)
	}
	return n.send(event, &discordgo.MessageEmbed{
		Title:       title,
		Description: desc,
		Color:       ColorKeys,
	})
}

func (n *SSENotifier) handleKeyTransfer(event SSEEvent) error {
	var payload domain.KeyTransferPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", event.Type)
		return nil
	}

	var verb string
	switch event.Type {
	case domain.EventTypeKeyGiven:
		verb = "given out"
	case domain.EventTypeKeyDeposited:
		verb = "deposited"
	default:
		verb = "withdrawn"
	}

	form := "virtual"
	if payload.Physical {
		form = "physical"
	}

	return n.send(event, &discordgo.MessageEmbed{
		Title:       "🔑 Keys " + verb,
		Description: fmt.Sprintf("**%d × %s** keys were %s.", payload.Amount, payload.KeyName, verb),
		Color:       ColorKeys,
		Fields:      []*discordgo.MessageEmbedField{
			{Name: "Key", Value: payload.KeyName, Inline: true},
			{Name: "Amount", Value: fmt.Sprintf("%d", payload.Amount), Inline: true},
			{Name: "Form", Value: form, Inline: true},
		},
	})
}

func (n *SSENotifier) handlePrizeUpdated(event SSEEvent) error {
	var payload domain.PrizeUpdatedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", event.Type)
		return nil
	}

	return n.send(event, &discordgo.MessageEmbed{
		Title:       "🎁 Prize updated",
		Description: fmt.Sprintf("Slot %d in crate **%s** had its %s changed.", payload.Slot, payload.CrateName, payload.Field),
		Color:       ColorInfo,
	})
}

func (n *SSENotifier) send(event SSEEvent, embed *discordgo.MessageEmbed) error {
	embed.Footer = &discordgo.MessageEmbedFooter{Text: FooterText}
	if event.Timestamp > 0 {
		embed.Timestamp = time.Unix(event.Timestamp, 0).UTC().Format(time.RFC3339)
	}

	if err := n.notifier.SendNotification(embed); err != nil {
		slog.Error(sseLogMsgNotificationError, "event_type", event.Type, "error", err)
		return err
	}
	slog.Info(sseLogMsgNotificationSent, "event_type", event.Type)
	return nil
}
