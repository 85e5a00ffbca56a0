package scene

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const fallbackColor = "#8892B0"

// normalizeColor returns c as #RRGGBB, or the fallback colour when c is
// not a hex colour.
func normalizeColor(c string) string {
	if len(c) == 7 {
		if _, err := colorful.Hex(c); err == nil {
			return c
		}
	}
	parsed, err := colorful.Hex(c)
	if err != nil {
		return fallbackColor
	}
	return strings.ToUpper(parsed.Hex())
}

// withAlpha appends a two-digit hex alpha to a colour.
func withAlpha(c, alpha string) string {
	return normalizeColor(c) + alpha
}

// rgba renders c as a CSS rgba() string.
func rgba(c string, alpha float64) string {
	parsed, err := colorful.Hex(normalizeColor(c))
	if err != nil {
		parsed, _ = colorful.Hex(fallbackColor)
	}
	r, g, b := parsed.RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", r, g, b, alpha)
}
