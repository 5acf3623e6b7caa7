package domain

// Message is a chat line addressed to one player
type Message struct {
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// Reply is what the host must do after forwarding an action: messages to deliver,
// whether to cancel the originating event, which menu to open or close, and the
// inventories the action rewrote, keyed by player name.
type Reply struct {
	Messages    []Message             `json:"messages"`
	Cancel      bool                  `json:"cancel"`
	OpenMenu    *MenuView             `json:"open_menu,omitempty"`
	CloseMenu   bool                  `json:"close_menu"`
	Inventories map[string]*Inventory `json:"inventories,omitempty"`
}

// Tell appends a message for recipient
func (r *Reply) Tell(recipient, text string) {
	r.Messages = append(r.Messages, Message{Recipient: recipient, Text: text})
}

// SetInventory records the new contents of player's inventory
func (r *Reply) SetInventory(player string, inv *Inventory) {
	if inv == nil {
		return
	}
	if r.Inventories == nil {
		r.Inventories = make(map[string]*Inventory)
	}
	r.Inventories[player] = inv
}
