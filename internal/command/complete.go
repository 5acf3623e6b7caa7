package command

import (
	"context"
	"strings"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// Complete returns the candidates for the last word of a partial command line.
// A trailing space starts a new, empty word.
func (s *service) Complete(ctx context.Context, sender *domain.Player, line string) ([]string, error) {
	line = strings.TrimPrefix(strings.TrimLeft(line, " "), "/")
	words := strings.Fields(line)
	if strings.HasSuffix(line, " ") || len(words) == 0 {
		words = append(words, "")
	}
	if len(words) < 2 || !strings.EqualFold(words[0], Root) {
		return []string{}, nil
	}

	partial := words[len(words)-1]
	if len(words) == 2 {
		var names []string
		for _, sub := range s.registry.Allowed(sender) {
			if sub.Name != SubDefault {
				names = append(names, sub.Name)
			}
		}
		return filterPrefix(names, partial), nil
	}

	sub, ok := s.registry.Lookup(words[1])
	if !ok || sub.Name == SubDefault || !sender.HasPermission(sub.Permission) {
		return []string{}, nil
	}
	argIndex := len(words) - 3
	if argIndex >= len(sub.Completions) {
		return []string{}, nil
	}

	var candidates []string
	switch sub.Completions[argIndex] {
	case CompleteKeys:
		names, err := s.keys.Names(ctx)
		if err != nil {
			return nil, err
		}
		candidates = names
	case CompletePlayers:
		candidates = s.players.OnlineNames()
	}
	return filterPrefix(candidates, partial), nil
}

func filterPrefix(candidates []string, prefix string) []string {
	out := make([]string, 0, len(candidates))
	lower := strings.ToLower(prefix)
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			out = append(out, c)
		}
	}
	return out
}
