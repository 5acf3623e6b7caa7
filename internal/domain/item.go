package domain

import "slices"

// Material identifies the kind of an item stack (e.g. "TRIPWIRE_HOOK")
type Material string

const (
	MaterialAir     Material = "AIR"
	MaterialBarrier Material = "BARRIER"
)

// MaxStackSize is the largest amount a single inventory slot can hold
const MaxStackSize = 64

// ItemStack is a game item as the host represents it. A nil stack or an AIR stack is empty.
type ItemStack struct {
	Material    Material `json:"material"`
	Amount      int      `json:"amount"`
	DisplayName string   `json:"display_name,omitempty"`
	Lore        []string `json:"lore,omitempty"`
}

// IsEmpty reports whether the stack holds nothing
func (s *ItemStack) IsEmpty() bool {
	return s == nil || s.Material == "" || s.Material == MaterialAir || s.Amount <= 0
}

// HasMeta reports whether the stack carries item metadata. Air has none.
func (s *ItemStack) HasMeta() bool {
	return s != nil && s.Material != "" && s.Material != MaterialAir
}

// IsSimilar compares two stacks ignoring their amounts
func (s *ItemStack) IsSimilar(other *ItemStack) bool {
	if s == nil || other == nil {
		return false
	}
	return s.Material == other.Material &&
		s.DisplayName == other.DisplayName &&
		slices.Equal(s.Lore, other.Lore)
}

// Clone returns a deep copy with the given amount
func (s *ItemStack) Clone(amount int) *ItemStack {
	if s == nil {
		return nil
	}
	return &ItemStack{
		Material:    s.Material,
		Amount:      amount,
		DisplayName: s.DisplayName,
		Lore:        slices.Clone(s.Lore),
	}
}

// WithLore returns a copy whose lore has the given lines appended
func (s *ItemStack) WithLore(lines ...string) *ItemStack {
	c := s.Clone(s.Amount)
	c.Lore = append(c.Lore, lines...)
	return c
}

// EmptyStack returns an AIR stack
func EmptyStack() *ItemStack {
	return &ItemStack{Material: MaterialAir}
}
