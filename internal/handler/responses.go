package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// ReplyResponse is returned by every call that acts on behalf of a player.
// The host delivers Messages and applies Cancel, OpenMenu and CloseMenu.
// Inventories holds the stored inventory of every player whose items the call
// moved; the host must put them in game before its next inventory sync.
type ReplyResponse struct {
	Messages    []domain.Message             `json:"messages"`
	Cancel      bool                         `json:"cancel"`
	OpenMenu    *domain.MenuView             `json:"open_menu,omitempty"`
	CloseMenu   bool                         `json:"close_menu"`
	Consumed    *bool                        `json:"consumed,omitempty"`
	Inventories map[string]*domain.Inventory `json:"inventories,omitempty"`
}

func newReplyResponse(reply domain.Reply) ReplyResponse {
	messages := reply.Messages
	if messages == nil {
		messages = []domain.Message{}
	}
	return ReplyResponse{
		Messages:    messages,
		Cancel:      reply.Cancel,
		OpenMenu:    reply.OpenMenu,
		CloseMenu:   reply.CloseMenu,
		Inventories: reply.Inventories,
	}
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and maps it to a status and user message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" failed", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and user messages
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrPlayerNotRegistered):
		return http.StatusBadRequest, ErrMsgPlayerNotRegisteredErr
	case errors.Is(err, domain.ErrPlayerOffline):
		return http.StatusConflict, ErrMsgPlayerOfflineError
	case errors.Is(err, domain.ErrKeyNotFound):
		return http.StatusNotFound, ErrMsgKeyNotFoundError
	case errors.Is(err, domain.ErrKeyAlreadyRegistered):
		return http.StatusConflict, ErrMsgKeyAlreadyRegisteredErr
	case errors.Is(err, domain.ErrKeyMenuFull):
		return http.StatusConflict, ErrMsgKeyMenuFullError
	case errors.Is(err, domain.ErrKeyUsedByCrate):
		return http.StatusConflict, ErrMsgKeyUsedByCrateError
	case errors.Is(err, domain.ErrInvalidSlot):
		return http.StatusBadRequest, ErrMsgInvalidSlotError
	case errors.Is(err, domain.ErrCrateNotFound):
		return http.StatusNotFound, ErrMsgCrateNotFoundError
	case errors.Is(err, domain.ErrPrizeNotFound):
		return http.StatusNotFound, ErrMsgPrizeNotFoundError
	case errors.Is(err, domain.ErrTagNotFound):
		return http.StatusNotFound, ErrMsgTagNotFoundError
	case errors.Is(err, domain.ErrInvalidChance):
		return http.StatusBadRequest, ErrMsgInvalidChanceError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrBalanceLimit):
		return http.StatusConflict, ErrMsgBalanceLimitError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrEmptyHand):
		return http.StatusBadRequest, ErrMsgEmptyHandError
	case errors.Is(err, domain.ErrNoPermission):
		return http.StatusForbidden, ErrMsgNoPermissionError
	case errors.Is(err, domain.ErrNoMenuOpen):
		return http.StatusNotFound, ErrMsgNoMenuOpenError
	case errors.Is(err, domain.ErrUnknownCommand):
		return http.StatusBadRequest, ErrMsgUnknownCommandError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
