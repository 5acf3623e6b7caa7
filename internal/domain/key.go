package domain

import (
	"math"
	"time"
)

// DefaultKeyMenuSize is the number of slots in the key menus (six rows)
const DefaultKeyMenuSize = 54

// MaxKeyAmount bounds transfer amounts and virtual balances; player_keys.quantity is an INTEGER
const MaxKeyAmount = math.MaxInt32

// Key entitles a player to open the crate that references it
type Key struct {
	Name      string     `json:"name"`
	Item      *ItemStack `json:"item"`
	Slot      int        `json:"slot"`
	CreatedAt time.Time  `json:"created_at"`
}

// Matches reports whether item is a copy of this key's item
func (k *Key) Matches(item *ItemStack) bool {
	return !item.IsEmpty() && k.Item.IsSimilar(item)
}

// KeyBalance is how many virtual keys of one kind a player holds
type KeyBalance struct {
	KeyName  string `json:"key_name"`
	Quantity int    `json:"quantity"`
}
