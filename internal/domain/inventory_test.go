package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyItem() *ItemStack {
	return &ItemStack{Material: "TRIPWIRE_HOOK", Amount: 1, DisplayName: "&6Vote Key", Lore: []string{"Opens the vote crate"}}
}

func TestItemStack_IsSimilarIgnoresAmount(t *testing.T) {
	a := keyItem()
	b := keyItem().Clone(40)

	assert.True(t, a.IsSimilar(b))

	b.Lore = []string{"something else"}
	assert.False(t, a.IsSimilar(b))
	assert.False(t, a.IsSimilar(nil))
}

func TestItemStack_IsEmpty(t *testing.T) {
	var nilStack *ItemStack
	assert.True(t, nilStack.IsEmpty())
	assert.True(t, EmptyStack().IsEmpty())
	assert.True(t, (&ItemStack{Material: "STONE", Amount: 0}).IsEmpty())
	assert.False(t, keyItem().IsEmpty())
	assert.False(t, EmptyStack().HasMeta())
}

func TestInventory_AddTopsUpBeforeUsingEmptySlots(t *testing.T) {
	inv := NewInventory()
	inv.Slots[3] = keyItem().Clone(60)

	left := inv.Add(keyItem(), 10)

	require.Equal(t, 0, left)
	assert.Equal(t, 64, inv.Slots[3].Amount)
	assert.Equal(t, 6, inv.Slots[0].Amount)
	assert.Equal(t, 70, inv.Count(keyItem()))
}

func TestInventory_AddReturnsLeftoverWhenFull(t *testing.T) {
	inv := NewInventory()
	for i := range inv.Slots {
		inv.Slots[i] = &ItemStack{Material: "STONE", Amount: 64}
	}
	inv.Slots[10] = keyItem().Clone(63)

	assert.Equal(t, 1, inv.SpaceFor(keyItem()))
	assert.Equal(t, 4, inv.Add(keyItem(), 5))
	assert.Equal(t, 64, inv.Slots[10].Amount)
}

func TestInventory_Remove(t *testing.T) {
	inv := NewInventory()
	inv.Add(keyItem(), 70)

	removed := inv.Remove(keyItem(), 66)

	assert.Equal(t, 66, removed)
	assert.Equal(t, 4, inv.Count(keyItem()))
	assert.Nil(t, inv.Slots[0])
}

func TestInventory_MainHand(t *testing.T) {
	inv := &Inventory{HeldSlot: 2}
	assert.Nil(t, inv.MainHand())

	inv.Slots[2] = keyItem()
	assert.Same(t, inv.Slots[2], inv.MainHand())

	inv.HeldSlot = 12
	assert.Nil(t, inv.MainHand())
}

func TestPlayer_HasPermission(t *testing.T) {
	p := &Player{Permissions: []string{"keys", "keys.help"}}
	assert.True(t, p.HasPermission("keys.help"))
	assert.False(t, p.HasPermission("keys.create"))

	admin := &Player{Permissions: []string{PermissionWildcard}}
	assert.True(t, admin.HasPermission("keys.create"))
}
