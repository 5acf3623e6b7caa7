package handler

import (
	"net/http"

	"github.com/osse101/CrateBot_Go/internal/player"
	"github.com/osse101/CrateBot_Go/internal/prompt"
)

// ChatRequest is a chat line sent by a player
type ChatRequest struct {
	Player string `json:"player" validate:"required,playername"`
	Line   string `json:"line" validate:"max=256"`
}

// HandleChat offers a chat line to the player's pending prompt.
// consumed=false tells the host to broadcast the line normally.
// @Summary Forward a chat line
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Chat line"
// @Success 200 {object} ReplyResponse
// @Router /api/v1/chat [post]
func HandleChat(prompts prompt.Service, players player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Chat"); err != nil {
			return
		}

		viewer, err := players.Get(r.Context(), req.Player)
		if err != nil {
			respondServiceError(w, r, "Chat", err)
			return
		}
		reply, consumed, err := prompts.Answer(r.Context(), viewer, req.Line)
		if err != nil {
			respondServiceError(w, r, "Chat", err)
			return
		}

		resp := newReplyResponse(reply)
		resp.Consumed = &consumed
		respondJSON(w, http.StatusOK, resp)
	}
}
