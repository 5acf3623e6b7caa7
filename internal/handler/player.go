package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/listener"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/internal/player"
	"github.com/osse101/CrateBot_Go/internal/prompt"
)

// RegisterPlayerRequest registers a player, optionally replacing their permissions
type RegisterPlayerRequest struct {
	Name        string   `json:"name" validate:"required,playername"`
	Permissions []string `json:"permissions,omitempty" validate:"omitempty,dive,required,max=64"`
}

// PresenceRequest reports a player joining or leaving
type PresenceRequest struct {
	Name   string `json:"name" validate:"required,playername"`
	Online bool   `json:"online"`
}

// InventoryRequest is the inventory the host currently shows for a player
type InventoryRequest struct {
	Slots    []*domain.ItemStack `json:"slots" validate:"max=36"`
	HeldSlot int                 `json:"held_slot" validate:"gte=0,lte=8"`
}

// PlayerResponse is a player with their virtual key balances
type PlayerResponse struct {
	*domain.Player
	Online   bool           `json:"online"`
	Balances map[string]int `json:"balances"`
}

// HandleRegisterPlayer registers or re-registers a player
// @Summary Register a player
// @Tags players
// @Accept json
// @Produce json
// @Param request body RegisterPlayerRequest true "Player"
// @Success 200 {object} domain.Player
// @Router /api/v1/players/register [post]
func HandleRegisterPlayer(players player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterPlayerRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register player"); err != nil {
			return
		}

		p, err := players.Register(r.Context(), req.Name, req.Permissions)
		if err != nil {
			respondServiceError(w, r, "Register player", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// HandlePresence marks a player online or offline. Leaving cancels the
// player's pending prompt and closes any menu they had open.
// @Summary Report player presence
// @Tags players
// @Accept json
// @Produce json
// @Param request body PresenceRequest true "Presence"
// @Success 200 {object} domain.Player
// @Router /api/v1/players/presence [post]
func HandlePresence(players player.Service, prompts prompt.Service, menus listener.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PresenceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Presence"); err != nil {
			return
		}
		ctx := r.Context()

		if req.Online {
			p, err := players.Join(ctx, req.Name)
			if err != nil {
				respondServiceError(w, r, "Presence", err)
				return
			}
			respondJSON(w, http.StatusOK, p)
			return
		}

		players.SetOnline(req.Name, false)
		p, err := players.Get(ctx, req.Name)
		if err != nil {
			respondServiceError(w, r, "Presence", err)
			return
		}
		menus.Close(ctx, p.ID)
		if err := prompts.Cancel(ctx, p.ID); err != nil {
			logger.FromContext(ctx).Warn("Failed to cancel prompt on quit", "player", p.Name, "error", err)
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// HandleGetPlayer returns a player with balances and presence
// @Summary Get a player
// @Tags players
// @Produce json
// @Param name path string true "Player name"
// @Success 200 {object} PlayerResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/players/{name} [get]
func HandleGetPlayer(players player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := players.Get(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			respondServiceError(w, r, "Get player", err)
			return
		}
		balances, err := players.Balances(r.Context(), p.ID)
		if err != nil {
			respondServiceError(w, r, "Get player", err)
			return
		}
		respondJSON(w, http.StatusOK, PlayerResponse{
			Player:   p,
			Online:   players.IsOnline(p.Name),
			Balances: balances,
		})
	}
}

// HandleSyncInventory stores the inventory the host reports
// @Summary Report a player's inventory
// @Tags players
// @Accept json
// @Produce json
// @Param name path string true "Player name"
// @Param request body InventoryRequest true "Inventory"
// @Success 200 {object} domain.Player
// @Router /api/v1/players/{name}/inventory [put]
func HandleSyncInventory(players player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InventoryRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sync inventory"); err != nil {
			return
		}

		inv := domain.NewInventory()
		copy(inv.Slots, req.Slots)
		inv.HeldSlot = req.HeldSlot

		p, err := players.SyncInventory(r.Context(), chi.URLParam(r, "name"), inv)
		if err != nil {
			respondServiceError(w, r, "Sync inventory", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}
