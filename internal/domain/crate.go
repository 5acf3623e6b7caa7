package domain

// Crate is a reward container opened with the key named KeyName
type Crate struct {
	Name    string   `json:"name"`
	KeyName string   `json:"key_name"`
	Size    int      `json:"size"`
	Prizes  []*Prize `json:"prizes"`
}

// Tag is a labelled category attached to prizes for display
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Prize is a reward entry of a crate
type Prize struct {
	ID     int        `json:"id"`
	Item   *ItemStack `json:"item"`
	Skin   *ItemStack `json:"skin"`
	Slot   int        `json:"slot"`
	Chance float64    `json:"chance"`
	Rarity bool       `json:"rarity"`
	Tags   []Tag      `json:"tags"`
}

// NewPrize creates a common prize without tags
func NewPrize(item, skin *ItemStack, slot int, chance float64) *Prize {
	return &Prize{
		Item:   item,
		Skin:   skin,
		Slot:   slot,
		Chance: chance,
		Rarity: false,
		Tags:   []Tag{},
	}
}

// HasTag reports whether a tag with the given name is attached
func (p *Prize) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}
