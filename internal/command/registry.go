package command

import (
	"context"
	"strings"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// Handler runs a subcommand whose permission and arity were already checked
type Handler func(ctx context.Context, sender *domain.Player, args []string, reply *domain.Reply) error

// Subcommand describes one /keys subcommand
type Subcommand struct {
	Name        string
	Syntax      string
	Permission  string
	Description string
	// Completions holds one completion source per argument
	Completions []string
	// Args lists the argument names, used for arity checks
	Args    []string
	Handler Handler
}

// Registry holds the subcommands in registration order
type Registry struct {
	order []*Subcommand
	byKey map[string]*Subcommand
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Subcommand)}
}

// Register adds a subcommand
func (r *Registry) Register(sub *Subcommand) {
	r.order = append(r.order, sub)
	r.byKey[strings.ToLower(sub.Name)] = sub
}

// Lookup finds a subcommand by case-insensitive name
func (r *Registry) Lookup(name string) (*Subcommand, bool) {
	sub, ok := r.byKey[strings.ToLower(name)]
	return sub, ok
}

// Allowed returns the subcommands sender may run, in registration order
func (r *Registry) Allowed(sender *domain.Player) []*Subcommand {
	out := make([]*Subcommand, 0, len(r.order))
	for _, sub := range r.order {
		if sender.HasPermission(sub.Permission) {
			out = append(out, sub)
		}
	}
	return out
}
