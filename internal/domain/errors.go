package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	ErrMsgKeyNotFound          = "key not found"
	ErrMsgKeyAlreadyRegistered = "key already registered"
	ErrMsgKeyMenuFull          = "key menu is full"
	ErrMsgKeyUsedByCrate       = "key is used by a crate"
	ErrMsgInvalidSlot          = "invalid slot"

	ErrMsgPlayerNotFound      = "player not found"
	ErrMsgPlayerNotRegistered = "player not registered"
	ErrMsgPlayerOffline       = "player is not online"
	ErrMsgEmptyHand           = "main hand is empty"

	ErrMsgInsufficientKeys = "insufficient keys"
	ErrMsgInventoryFull    = "inventory is full"
	ErrMsgInvalidAmount    = "invalid amount"
	ErrMsgBalanceLimit     = "key balance limit reached"

	ErrMsgCrateNotFound  = "crate not found"
	ErrMsgPrizeNotFound  = "prize not found"
	ErrMsgTagNotFound    = "tag not found"
	ErrMsgInvalidChance  = "chance must be between 0 and 100"
	ErrMsgNoPermission   = "no permission"
	ErrMsgNoPrompt       = "no pending prompt"
	ErrMsgNoMenuOpen     = "no menu open"
	ErrMsgInvalidInput   = "invalid input"
	ErrMsgUnknownCommand = "unknown command"
)

// Common domain errors, wrapped with fmt.Errorf("%w: ...") for context
var (
	ErrKeyNotFound          = errors.New(ErrMsgKeyNotFound)
	ErrKeyAlreadyRegistered = errors.New(ErrMsgKeyAlreadyRegistered)
	ErrKeyMenuFull          = errors.New(ErrMsgKeyMenuFull)
	ErrKeyUsedByCrate       = errors.New(ErrMsgKeyUsedByCrate)
	ErrInvalidSlot          = errors.New(ErrMsgInvalidSlot)

	ErrPlayerNotFound      = errors.New(ErrMsgPlayerNotFound)
	ErrPlayerNotRegistered = errors.New(ErrMsgPlayerNotRegistered)
	ErrPlayerOffline       = errors.New(ErrMsgPlayerOffline)
	ErrEmptyHand           = errors.New(ErrMsgEmptyHand)

	ErrInsufficientKeys = errors.New(ErrMsgInsufficientKeys)
	ErrInventoryFull    = errors.New(ErrMsgInventoryFull)
	ErrInvalidAmount    = errors.New(ErrMsgInvalidAmount)
	ErrBalanceLimit     = errors.New(ErrMsgBalanceLimit)

	ErrCrateNotFound   = errors.New(ErrMsgCrateNotFound)
	ErrPrizeNotFound   = errors.New(ErrMsgPrizeNotFound)
	ErrTagNotFound     = errors.New(ErrMsgTagNotFound)
	ErrInvalidChance   = errors.New(ErrMsgInvalidChance)
	ErrNoPermission    = errors.New(ErrMsgNoPermission)
	ErrNoPendingPrompt = errors.New(ErrMsgNoPrompt)
	ErrNoMenuOpen      = errors.New(ErrMsgNoMenuOpen)
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
	ErrUnknownCommand  = errors.New(ErrMsgUnknownCommand)
)
