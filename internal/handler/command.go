package handler

import (
	"net/http"

	"github.com/osse101/CrateBot_Go/internal/command"
	"github.com/osse101/CrateBot_Go/internal/player"
)

// RunCommandRequest is a command line typed by a player
type RunCommandRequest struct {
	Player string `json:"player" validate:"required,playername"`
	Line   string `json:"line" validate:"required,max=256"`
}

// CompletionResponse lists candidate completions for the last argument
type CompletionResponse struct {
	Completions []string `json:"completions"`
}

// HandleRunCommand executes a /keys command line as a player
// @Summary Run a /keys command
// @Tags commands
// @Accept json
// @Produce json
// @Param request body RunCommandRequest true "Command"
// @Success 200 {object} ReplyResponse
// @Router /api/v1/commands [post]
func HandleRunCommand(commands command.Service, players player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RunCommandRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Run command"); err != nil {
			return
		}

		sender, err := players.Get(r.Context(), req.Player)
		if err != nil {
			respondServiceError(w, r, "Run command", err)
			return
		}
		reply, err := commands.Execute(r.Context(), sender, req.Line)
		if err != nil {
			respondServiceError(w, r, "Run command", err)
			return
		}
		respondJSON(w, http.StatusOK, newReplyResponse(reply))
	}
}

// HandleComplete returns tab completions for a partial command line
// @Summary Complete a /keys command
// @Tags commands
// @Produce json
// @Param player query string true "Player name"
// @Param line query string true "Partial command line"
// @Success 200 {object} CompletionResponse
// @Router /api/v1/commands/complete [get]
func HandleComplete(commands command.Service, players player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := GetQueryParam(r, w, "player")
		if !ok {
			return
		}
		line, ok := GetQueryParam(r, w, "line")
		if !ok {
			return
		}

		sender, err := players.Get(r.Context(), name)
		if err != nil {
			respondServiceError(w, r, "Complete command", err)
			return
		}
		completions, err := commands.Complete(r.Context(), sender, line)
		if err != nil {
			respondServiceError(w, r, "Complete command", err)
			return
		}
		if completions == nil {
			completions = []string{}
		}
		respondJSON(w, http.StatusOK, CompletionResponse{Completions: completions})
	}
}
