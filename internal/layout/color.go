package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B int
}

var (
	Black     = Color{0, 0, 0}
	White     = Color{255, 255, 255}
	LightGray = Color{235, 235, 235}
	MidGray   = Color{160, 160, 160}
)

// ParseColor accepts #RRGGBB, #RGB and rgb(r,g,b).
func ParseColor(value string) (Color, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "#") {
		if r, g, b, ok := parseHexColor(value); ok {
			return Color{r, g, b}, nil
		}
		return Color{}, fmt.Errorf("invalid hex color %q", value)
	}

	var r, g, b int
	if _, err := fmt.Sscanf(value, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return clampColor(r, g, b), nil
	}
	if _, err := fmt.Sscanf(value, "rgb(%d, %d, %d)", &r, &g, &b); err == nil {
		return clampColor(r, g, b), nil
	}
	return Color{}, fmt.Errorf("unsupported color %q", value)
}

func clampColor(r, g, b int) Color {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return Color{clamp(r), clamp(g), clamp(b)}
}

// parseHexColor parses #RRGGBB or #RGB into r,g,b
func parseHexColor(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 6:
		if rv, err := strconv.ParseUint(s[0:2], 16, 8); err == nil {
			if gv, err := strconv.ParseUint(s[2:4], 16, 8); err == nil {
				if bv, err := strconv.ParseUint(s[4:6], 16, 8); err == nil {
					return int(rv), int(gv), int(bv), true
				}
			}
		}
	case 3:
		r := string([]byte{s[0], s[0]})
		g := string([]byte{s[1], s[1]})
		b := string([]byte{s[2], s[2]})
		if rv, err := strconv.ParseUint(r, 16, 8); err == nil {
			if gv, err := strconv.ParseUint(g, 16, 8); err == nil {
				if bv, err := strconv.ParseUint(b, 16, 8); err == nil {
					return int(rv), int(gv), int(bv), true
				}
			}
		}
	}
	return 0, 0, 0, false
}
