package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Option names
const (
	OptionArgs   = "args"
	OptionAnswer = "amount"
)

// KeysCommand forwards "/keys <args>" to the command endpoint as the caller's player
func KeysCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "keys",
		Description: "Manage crate keys",
		Options:     []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         OptionArgs,
				Description:  "Subcommand and arguments, e.g. give Steve vote 2",
				Required:     false,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			name := PlayerName(getInteractionUser(i))
			if _, err := client.Join(name); err != nil {
				return "", err
			}
			reply, err := client.RunCommand(name, keysLine(optionString(i, OptionArgs)))
			if err != nil {
				return "", err
			}
			return FormatReply(name, reply), nil
		}, ResponseConfig{
			Title: "Keys",
			Color: ColorKeys,
		})
	}

	return cmd, handler
}

// AnswerCommand answers a pending quantity prompt, the way a chat line would in game
func AnswerCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "answer",
		Description: "Answer a pending key amount prompt",
		Options:     []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionAnswer,
				Description: "Amount, or 'cancel'",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			name := PlayerName(getInteractionUser(i))
			reply, err := client.Chat(name, optionString(i, OptionAnswer))
			if err != nil {
				return "", err
			}
			if reply.Consumed != nil && !*reply.Consumed {
				return MsgNotConsumed, nil
			}
			return FormatReply(name, reply), nil
		}, ResponseConfig{
			Title: "Keys",
			Color: ColorKeys,
		})
	}

	return cmd, handler
}

// CratesCommand lists the configured crates
func CratesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "crates",
		Description: "List the available crates",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			crates, err := client.ListCrates()
			if err != nil {
				return "", err
			}
			return FormatCrates(crates), nil
		}, ResponseConfig{
			Title: "Crates",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}

// keysLine builds the command line the API expects from slash command arguments
func keysLine(args string) string {
	args = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(args), "/keys"))
	if args == "" {
		return "/keys"
	}
	return "/keys " + args
}
