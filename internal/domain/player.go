package domain

import (
	"slices"
	"time"
)

// Player is a game account known to the service
type Player struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Registered  bool       `json:"registered"`
	Permissions []string   `json:"permissions"`
	Inventory   *Inventory `json:"inventory"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HasPermission reports whether the player holds perm or the wildcard
func (p *Player) HasPermission(perm string) bool {
	return slices.Contains(p.Permissions, perm) || slices.Contains(p.Permissions, PermissionWildcard)
}

// PermissionWildcard grants every permission
const PermissionWildcard = "*"
