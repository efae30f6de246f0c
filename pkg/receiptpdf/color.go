package receiptpdf

import (
	"fmt"
	"strings"
)

// ParseHexColor parses a "#RRGGBB" or "RRGGBB" hex color string.
func ParseHexColor(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}

	var c RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	return c, nil
}
