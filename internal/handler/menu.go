package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/listener"
	"github.com/osse101/CrateBot_Go/internal/player"
)

// MenuHandler serves the key menu endpoints
type MenuHandler struct {
	menus   listener.Service
	players player.Service
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(menus listener.Service, players player.Service) *MenuHandler {
	return &MenuHandler{menus: menus, players: players}
}

// ClickRequest is an inventory click in an open menu
type ClickRequest struct {
	Player           string               `json:"player" validate:"required,playername"`
	Slot             int                  `json:"slot"`
	Click            domain.ClickType     `json:"click" validate:"required"`
	ClickedInventory domain.InventoryType `json:"clicked_inventory,omitempty" validate:"omitempty,oneof=MENU PLAYER"`
	CurrentItem      *domain.ItemStack    `json:"current_item,omitempty"`
	Cursor           *domain.ItemStack    `json:"cursor,omitempty"`
}

// DragRequest is an inventory drag in an open menu
type DragRequest struct {
	Player string `json:"player" validate:"required,playername"`
	Slots  []int  `json:"slots"`
}

// CloseRequest reports that a player closed their menu
type CloseRequest struct {
	Player string `json:"player" validate:"required,playername"`
}

// HandleClick forwards a click to the menu listener
// @Summary Forward a menu click
// @Tags menu
// @Accept json
// @Produce json
// @Param request body ClickRequest true "Click"
// @Success 200 {object} ReplyResponse
// @Router /api/v1/menu/click [post]
func (h *MenuHandler) HandleClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Menu click"); err != nil {
		return
	}
	viewer, err := h.players.Get(r.Context(), req.Player)
	if err != nil {
		respondServiceError(w, r, "Menu click", err)
		return
	}

	reply, err := h.menus.Click(r.Context(), viewer, domain.ClickEvent{
		ViewerID:         viewer.ID,
		Slot:             req.Slot,
		Click:            req.Click,
		ClickedInventory: req.ClickedInventory,
		CurrentItem:      req.CurrentItem,
		Cursor:           req.Cursor,
	})
	if err != nil {
		respondServiceError(w, r, "Menu click", err)
		return
	}
	respondJSON(w, http.StatusOK, newReplyResponse(reply))
}

// HandleDrag forwards a drag to the menu listener
// @Summary Forward a menu drag
// @Tags menu
// @Accept json
// @Produce json
// @Param request body DragRequest true "Drag"
// @Success 200 {object} ReplyResponse
// @Router /api/v1/menu/drag [post]
func (h *MenuHandler) HandleDrag(w http.ResponseWriter, r *http.Request) {
	var req DragRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Menu drag"); err != nil {
		return
	}
	viewer, err := h.players.Get(r.Context(), req.Player)
	if err != nil {
		respondServiceError(w, r, "Menu drag", err)
		return
	}

	reply, err := h.menus.Drag(r.Context(), viewer, domain.DragEvent{ViewerID: viewer.ID, Slots: req.Slots})
	if err != nil {
		respondServiceError(w, r, "Menu drag", err)
		return
	}
	respondJSON(w, http.StatusOK, newReplyResponse(reply))
}

// HandleClose forgets the player's open menu
// @Summary Report a closed menu
// @Tags menu
// @Accept json
// @Produce json
// @Param request body CloseRequest true "Close"
// @Success 200 {object} ReplyResponse
// @Router /api/v1/menu/close [post]
func (h *MenuHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	var req CloseRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Menu close"); err != nil {
		return
	}
	viewer, err := h.players.Get(r.Context(), req.Player)
	if err != nil {
		respondServiceError(w, r, "Menu close", err)
		return
	}
	h.menus.Close(r.Context(), viewer.ID)
	respondJSON(w, http.StatusOK, newReplyResponse(domain.Reply{}))
}

// HandleView renders the menu a player has open
// @Summary Render the open menu
// @Tags menu
// @Produce json
// @Param viewer path string true "Player name"
// @Success 200 {object} domain.MenuView
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/menu/{viewer} [get]
func (h *MenuHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	viewer, err := h.players.Get(r.Context(), chi.URLParam(r, "viewer"))
	if err != nil {
		respondServiceError(w, r, "Menu view", err)
		return
	}
	view, err := h.menus.View(r.Context(), viewer.ID)
	if err != nil {
		respondServiceError(w, r, "Menu view", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
