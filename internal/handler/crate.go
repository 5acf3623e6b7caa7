package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/CrateBot_Go/internal/crate"
	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/prize"
)

// CrateHandler serves the crate catalogue and prize editing endpoints
type CrateHandler struct {
	crates crate.Service
	prizes prize.Service
}

// NewCrateHandler creates a new CrateHandler
func NewCrateHandler(crates crate.Service, prizes prize.Service) *CrateHandler {
	return &CrateHandler{crates: crates, prizes: prizes}
}

// PrizeResponse is a prize with both of its rendered forms
type PrizeResponse struct {
	Crate          string            `json:"crate"`
	Prize          *domain.Prize     `json:"prize"`
	Background     *domain.ItemStack `json:"background"`
	EditBackground *domain.ItemStack `json:"edit_background"`
}

// TagRequest toggles a tag on a prize
type TagRequest struct {
	Tag string `json:"tag" validate:"required"`
}

// ChanceRequest sets a prize chance
type ChanceRequest struct {
	Chance *float64 `json:"chance" validate:"required"`
}

// SkinRequest replaces a prize skin
type SkinRequest struct {
	Skin *SkinItem `json:"skin" validate:"required"`
}

// SkinItem is the item shown in place of the prize. Amount 0 stands for one item.
type SkinItem struct {
	Material    string   `json:"material" validate:"required,material"`
	Amount      int      `json:"amount" validate:"gte=0,lte=64"`
	DisplayName string   `json:"display_name,omitempty"`
	Lore        []string `json:"lore,omitempty"`
}

// HandleListCrates lists every synced crate
// @Summary List crates
// @Tags crates
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/crates [get]
func (h *CrateHandler) HandleListCrates(w http.ResponseWriter, r *http.Request) {
	crates, err := h.crates.List(r.Context())
	if err != nil {
		respondServiceError(w, r, "List crates", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: crates})
}

// HandleGetPrize returns the prize at a crate slot
// @Summary Get a prize
// @Tags crates
// @Produce json
// @Param crate path string true "Crate name"
// @Param slot path int true "Slot"
// @Success 200 {object} PrizeResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/crates/{crate}/prizes/{slot} [get]
func (h *CrateHandler) HandleGetPrize(w http.ResponseWriter, r *http.Request) {
	slot, ok := slotParam(r, w)
	if !ok {
		return
	}
	crateName := chi.URLParam(r, "crate")
	p, err := h.prizes.Get(r.Context(), crateName, slot)
	if err != nil {
		respondServiceError(w, r, "Get prize", err)
		return
	}
	h.respondPrize(w, crateName, p)
}

// HandleSwitchTag adds or removes a tag
// @Summary Toggle a prize tag
// @Tags crates
// @Accept json
// @Produce json
// @Param crate path string true "Crate name"
// @Param slot path int true "Slot"
// @Param request body TagRequest true "Tag"
// @Success 200 {object} PrizeResponse
// @Router /api/v1/crates/{crate}/prizes/{slot}/tags [post]
func (h *CrateHandler) HandleSwitchTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	h.edit(w, r, &req, "Switch prize tag", func(crateName string, slot int) (*domain.Prize, error) {
		return h.prizes.SwitchTagSelection(r.Context(), crateName, slot, req.Tag)
	})
}

// HandleChangeChance sets the chance
// @Summary Set a prize chance
// @Tags crates
// @Accept json
// @Produce json
// @Param crate path string true "Crate name"
// @Param slot path int true "Slot"
// @Param request body ChanceRequest true "Chance"
// @Success 200 {object} PrizeResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/crates/{crate}/prizes/{slot}/chance [post]
func (h *CrateHandler) HandleChangeChance(w http.ResponseWriter, r *http.Request) {
	var req ChanceRequest
	h.edit(w, r, &req, "Change prize chance", func(crateName string, slot int) (*domain.Prize, error) {
		return h.prizes.ChangeChance(r.Context(), crateName, slot, *req.Chance)
	})
}

// HandleChangeRarity toggles the rare flag
// @Summary Toggle prize rarity
// @Tags crates
// @Produce json
// @Param crate path string true "Crate name"
// @Param slot path int true "Slot"
// @Success 200 {object} PrizeResponse
// @Router /api/v1/crates/{crate}/prizes/{slot}/rarity [post]
func (h *CrateHandler) HandleChangeRarity(w http.ResponseWriter, r *http.Request) {
	slot, ok := slotParam(r, w)
	if !ok {
		return
	}
	crateName := chi.URLParam(r, "crate")
	p, err := h.prizes.ChangeRarity(r.Context(), crateName, slot)
	if err != nil {
		respondServiceError(w, r, "Change prize rarity", err)
		return
	}
	h.respondPrize(w, crateName, p)
}

// HandleChangeSkin replaces the skin
// @Summary Set a prize skin
// @Tags crates
// @Accept json
// @Produce json
// @Param crate path string true "Crate name"
// @Param slot path int true "Slot"
// @Param request body SkinRequest true "Skin"
// @Success 200 {object} PrizeResponse
// @Router /api/v1/crates/{crate}/prizes/{slot}/skin [post]
func (h *CrateHandler) HandleChangeSkin(w http.ResponseWriter, r *http.Request) {
	var req SkinRequest
	h.edit(w, r, &req, "Change prize skin", func(crateName string, slot int) (*domain.Prize, error) {
		skin := &domain.ItemStack{
			Material:    domain.Material(req.Skin.Material),
			Amount:      max(req.Skin.Amount, 1),
			DisplayName: req.Skin.DisplayName,
			Lore:        req.Skin.Lore,
		}
		return h.prizes.ChangeSkin(r.Context(), crateName, slot, skin)
	})
}

// edit decodes req, then applies action to the prize addressed by the path
func (h *CrateHandler) edit(w http.ResponseWriter, r *http.Request, req interface{}, opName string, action func(crateName string, slot int) (*domain.Prize, error)) {
	slot, ok := slotParam(r, w)
	if !ok {
		return
	}
	if err := DecodeAndValidateRequest(r, w, req, opName); err != nil {
		return
	}
	crateName := chi.URLParam(r, "crate")
	p, err := action(crateName, slot)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}
	h.respondPrize(w, crateName, p)
}

func (h *CrateHandler) respondPrize(w http.ResponseWriter, crateName string, p *domain.Prize) {
	respondJSON(w, http.StatusOK, PrizeResponse{
		Crate:          crateName,
		Prize:          p,
		Background:     h.prizes.Background(p),
		EditBackground: h.prizes.EditBackground(p),
	})
}
