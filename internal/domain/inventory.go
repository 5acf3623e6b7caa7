package domain

// Inventory layout
const (
	InventorySize = 36
	HotbarSize    = 9
)

// Inventory is a player's storage. It is persisted as JSONB.
type Inventory struct {
	Slots    []*ItemStack `json:"slots"`
	HeldSlot int          `json:"held_slot"`
}

// NewInventory returns an empty inventory
func NewInventory() *Inventory {
	return &Inventory{Slots: make([]*ItemStack, InventorySize)}
}

func (inv *Inventory) normalize() {
	if len(inv.Slots) < InventorySize {
		slots := make([]*ItemStack, InventorySize)
		copy(slots, inv.Slots)
		inv.Slots = slots
	}
}

// MainHand returns the stack held in the selected hotbar slot, or nil
func (inv *Inventory) MainHand() *ItemStack {
	inv.normalize()
	if inv.HeldSlot < 0 || inv.HeldSlot >= HotbarSize {
		return nil
	}
	s := inv.Slots[inv.HeldSlot]
	if s.IsEmpty() {
		return nil
	}
	return s
}

// Count returns how many items similar to item the inventory holds
func (inv *Inventory) Count(item *ItemStack) int {
	total := 0
	for _, s := range inv.Slots {
		if !s.IsEmpty() && s.IsSimilar(item) {
			total += s.Amount
		}
	}
	return total
}

// SpaceFor returns how many items similar to item still fit
func (inv *Inventory) SpaceFor(item *ItemStack) int {
	inv.normalize()
	space := 0
	for _, s := range inv.Slots {
		switch {
		case s.IsEmpty():
			space += MaxStackSize
		case s.IsSimilar(item) && s.Amount < MaxStackSize:
			space += MaxStackSize - s.Amount
		}
	}
	return space
}

// Add stores amount copies of item, topping up existing stacks first.
// It returns the amount that did not fit.
func (inv *Inventory) Add(item *ItemStack, amount int) int {
	inv.normalize()
	for _, s := range inv.Slots {
		if amount == 0 {
			return 0
		}
		if !s.IsEmpty() && s.IsSimilar(item) && s.Amount < MaxStackSize {
			n := min(MaxStackSize-s.Amount, amount)
			s.Amount += n
			amount -= n
		}
	}
	for i, s := range inv.Slots {
		if amount == 0 {
			return 0
		}
		if s.IsEmpty() {
			n := min(MaxStackSize, amount)
			inv.Slots[i] = item.Clone(n)
			amount -= n
		}
	}
	return amount
}

// Remove takes up to amount items similar to item and returns how many were removed
func (inv *Inventory) Remove(item *ItemStack, amount int) int {
	removed := 0
	for i, s := range inv.Slots {
		if removed == amount {
			break
		}
		if s.IsEmpty() || !s.IsSimilar(item) {
			continue
		}
		n := min(s.Amount, amount-removed)
		s.Amount -= n
		removed += n
		if s.Amount == 0 {
			inv.Slots[i] = nil
		}
	}
	return removed
}
