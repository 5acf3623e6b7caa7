package prize

import (
	"math"
	"strconv"
	"strings"
)

// FormatChance renders a chance the way the game host prints doubles:
// at least one fractional digit, and scientific notation outside [1e-3, 1e7).
func FormatChance(chance float64) string {
	switch {
	case math.IsNaN(chance):
		return "NaN"
	case math.IsInf(chance, 1):
		return "Infinity"
	case math.IsInf(chance, -1):
		return "-Infinity"
	case chance == 0:
		return "0.0"
	}

	abs := math.Abs(chance)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(chance, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	// 1.5e-05 becomes 1.5E-5
	s := strconv.FormatFloat(chance, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(n)
}
