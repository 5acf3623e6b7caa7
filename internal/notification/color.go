package notification

import (
	"regexp"
	"strings"
)

// ColorChar is the section sign the game client reads as a formatting prefix
const ColorChar = "§"

var (
	altColorPattern = regexp.MustCompile(`&([0-9a-fk-orA-FK-OR])`)
	colorPattern    = regexp.MustCompile(`(?i)` + ColorChar + `[0-9a-fk-or]`)
)

// Colorize translates '&' colour codes into client colour codes
func Colorize(s string) string {
	return altColorPattern.ReplaceAllStringFunc(s, func(m string) string {
		return ColorChar + strings.ToLower(m[1:])
	})
}

// StripColor removes client colour codes, for platforms that cannot render them
func StripColor(s string) string {
	return colorPattern.ReplaceAllString(s, "")
}
