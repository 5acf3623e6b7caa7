package domain

// MenuKind identifies which key menu a viewer has open
type MenuKind string

const (
	MenuKeyShow MenuKind = "key_show"
	MenuKeyEdit MenuKind = "key_edit"
)

// ClickType mirrors the host's inventory click kinds
type ClickType string

const (
	ClickLeft       ClickType = "LEFT"
	ClickRight      ClickType = "RIGHT"
	ClickShiftLeft  ClickType = "SHIFT_LEFT"
	ClickShiftRight ClickType = "SHIFT_RIGHT"
	ClickMiddle     ClickType = "MIDDLE"
	ClickNumberKey  ClickType = "NUMBER_KEY"
	ClickDrop       ClickType = "DROP"
	ClickDouble     ClickType = "DOUBLE_CLICK"
)

// InventoryType tells which inventory of an open view was clicked
type InventoryType string

const (
	InventoryMenu   InventoryType = "MENU"
	InventoryPlayer InventoryType = "PLAYER"
)

// MenuSession is the menu a viewer currently has open
type MenuSession struct {
	ViewerID string   `json:"viewer_id"`
	OwnerID  string   `json:"owner_id"`
	Kind     MenuKind `json:"kind"`
}

// MenuView is a rendered menu
type MenuView struct {
	Kind    MenuKind           `json:"kind"`
	Title   string             `json:"title"`
	OwnerID string             `json:"owner_id,omitempty"`
	Size    int                `json:"size"`
	Slots   map[int]*ItemStack `json:"slots"`
}

// ClickEvent is an inventory click forwarded by the host.
// ClickedInventory is empty when the click landed outside any inventory.
type ClickEvent struct {
	ViewerID         string        `json:"viewer_id"`
	Slot             int           `json:"slot"`
	Click            ClickType     `json:"click"`
	ClickedInventory InventoryType `json:"clicked_inventory,omitempty"`
	CurrentItem      *ItemStack    `json:"current_item,omitempty"`
	Cursor           *ItemStack    `json:"cursor,omitempty"`
}

// DragEvent is an inventory drag forwarded by the host
type DragEvent struct {
	ViewerID string `json:"viewer_id"`
	Slots    []int  `json:"slots"`
}

// PromptAction is what a pending quantity prompt will do with the answer
type PromptAction string

const (
	PromptWithdraw PromptAction = "withdraw"
	PromptDeposit  PromptAction = "deposit"
)

// Prompt is a pending one-shot chat question
type Prompt struct {
	ViewerID string       `json:"viewer_id"`
	OwnerID  string       `json:"owner_id"`
	KeyName  string       `json:"key_name"`
	Action   PromptAction `json:"action"`
}
