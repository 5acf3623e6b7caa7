package discord

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/notification"
)

// Player names follow the game's rules: 3 to 16 letters, digits or underscores
const (
	minPlayerName = 3
	maxPlayerName = 16
)

// PlayerName derives the player name a Discord user acts as
func PlayerName(user *discordgo.User) string {
	source := user.GlobalName
	if source == "" {
		source = user.Username
	}

	var b strings.Builder
	for _, r := range source {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '.', r == '-':
			b.WriteByte('_')
		}
		if b.Len() == maxPlayerName {
			break
		}
	}

	name := b.String()
	for len(name) < minPlayerName {
		name += "_"
	}
	return name
}

// FormatReply renders reply messages as Discord text. Messages addressed to
// someone other than the caller are prefixed with their recipient.
func FormatReply(caller string, reply *Reply) string {
	if reply == nil || len(reply.Messages) == 0 {
		return MsgNoOutput
	}
	return formatMessages(caller, reply.Messages)
}

func formatMessages(caller string, messages []domain.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		text := notification.StripColor(m.Text)
		if m.Recipient != "" && !strings.EqualFold(m.Recipient, caller) {
			text = fmt.Sprintf("→ **%s**: %s", m.Recipient, text)
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

// FormatCrates renders the crates catalogue, one crate per line
func FormatCrates(crates []domain.Crate) string {
	if len(crates) == 0 {
		return MsgNoCrates
	}
	var b strings.Builder
	for _, c := range crates {
		fmt.Fprintf(&b, "**%s** · key `%s` · %d prizes\n", c.Name, c.KeyName, len(c.Prizes))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// formatFriendlyError turns API failures into user-facing text
func formatFriendlyError(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return MsgAPIUnavailable
	}
	switch apiErr.Status {
	case http.StatusBadRequest:
		return fmt.Sprintf("%s\n%s", MsgBadRequest, apiErr.Message)
	case http.StatusForbidden:
		return MsgNoPermission
	case http.StatusNotFound:
		return fmt.Sprintf("%s\n%s", MsgNotFound, apiErr.Message)
	case http.StatusConflict:
		return fmt.Sprintf("%s\n%s", MsgConflict, apiErr.Message)
	default:
		return MsgGenericError
	}
}
