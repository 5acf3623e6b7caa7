package notification

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lang.yml
var defaultLang []byte

// Placeholder is a literal token replaced in a template
type Placeholder struct {
	Old string
	New string
}

// With builds a placeholder for the token %name%
func With(name, value string) Placeholder {
	return Placeholder{Old: "%" + name + "%", New: value}
}

// Catalog resolves notification keys to colourised text
type Catalog struct {
	mu      sync.RWMutex
	strings map[string]string
	lists   map[string][]string
}

// Default returns a catalog built from the embedded language file
func Default() *Catalog {
	c, err := Parse(defaultLang)
	if err != nil {
		panic(fmt.Sprintf("embedded language file is invalid: %v", err))
	}
	return c
}

// Load reads a language file, falling back to the embedded one for keys it does not define
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadLangFile, err)
	}
	override, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c := Default()
	c.merge(override)
	return c, nil
}

// Parse builds a catalog from YAML. Values are either strings or lists of strings.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseLangFile, err)
	}

	c := &Catalog{
		strings: make(map[string]string, len(raw)),
		lists:   make(map[string][]string),
	}
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			c.strings[k] = val
		case []interface{}:
			lines := make([]string, 0, len(val))
			for _, line := range val {
				lines = append(lines, fmt.Sprint(line))
			}
			c.lists[k] = lines
		case nil:
			c.strings[k] = ""
		default:
			c.strings[k] = fmt.Sprint(val)
		}
	}
	return c, nil
}

func (c *Catalog) merge(other *Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range other.strings {
		c.strings[k] = v
		delete(c.lists, k)
	}
	for k, v := range other.lists {
		c.lists[k] = v
		delete(c.strings, k)
	}
}

// Get resolves key, replaces the placeholders in order and colourises the result.
// Unknown keys resolve to the key name.
func (c *Catalog) Get(key Key, placeholders ...Placeholder) string {
	c.mu.RLock()
	tmpl, ok := c.strings[string(key)]
	if !ok {
		if lines, isList := c.lists[string(key)]; isList {
			tmpl, ok = strings.Join(lines, "\n"), true
		}
	}
	c.mu.RUnlock()

	if !ok {
		slog.Warn(LogMsgMissingKey, "key", key)
		return string(key)
	}
	return Colorize(replace(tmpl, placeholders))
}

// Lines resolves a list-valued key. A string value yields a single line.
func (c *Catalog) Lines(key Key, placeholders ...Placeholder) []string {
	c.mu.RLock()
	lines, ok := c.lists[string(key)]
	if !ok {
		if s, isString := c.strings[string(key)]; isString {
			lines, ok = []string{s}, true
		}
	}
	c.mu.RUnlock()

	if !ok {
		slog.Warn(LogMsgMissingKey, "key", key)
		return []string{string(key)}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Colorize(replace(line, placeholders))
	}
	return out
}

func replace(s string, placeholders []Placeholder) string {
	for _, p := range placeholders {
		s = strings.ReplaceAll(s, p.Old, p.New)
	}
	return s
}
