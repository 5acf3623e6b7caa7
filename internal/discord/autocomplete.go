package discord

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// maxChoices is the Discord limit on autocomplete choices
const maxChoices = 25

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	data := i.ApplicationCommandData()

	switch data.Name {
	case "keys":
		handleKeysAutocomplete(s, i, client)
	default:
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
	}
}

// handleKeysAutocomplete completes the last word of the args option through the API
func handleKeysAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	user := getInteractionUser(i)
	if user == nil {
		return
	}

	var typed string
	for _, opt := range getOptions(i) {
		if opt.Focused {
			typed = opt.StringValue()
			break
		}
	}

	completions, err := client.Complete(PlayerName(user), "/keys "+strings.TrimLeft(typed, " "))
	if err != nil {
		slog.Error("Failed to get completions", "error", err)
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: completionChoices(typed, completions),
		},
	}); err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}

// completionChoices turns completions of the last word into full argument strings
func completionChoices(typed string, completions []string) []*discordgo.ApplicationCommandOptionChoice {
	typed = strings.TrimLeft(typed, " ")
	prefix := ""
	if idx := strings.LastIndex(typed, " "); idx >= 0 {
		prefix = typed[:idx+1]
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(completions), maxChoices))
	for _, c := range completions {
		value := prefix + c
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  value,
			Value: value,
		})
		if len(choices) == maxChoices {
			break
		}
	}
	return choices
}
