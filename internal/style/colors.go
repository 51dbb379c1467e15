package style

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
)

// ParseColor parses `none`, hex forms, rgb()/rgba(), and named CSS colors,
// following the teacher repo's color-function decomposition
// (types.go:parseColorFunction/parseHexColor), generalized to the 4-float
// Color representation and to alpha percentages.
func ParseColor(raw string) svgtypes.Color {
	s := strings.TrimSpace(raw)
	if s == "" {
		return svgtypes.Color{}
	}
	low := strings.ToLower(s)

	switch low {
	case "none":
		return svgtypes.None()
	case "transparent":
		return svgtypes.Opaque(0, 0, 0, 0)
	case "currentcolor":
		// Resolved by the caller against the cascaded `color` property.
		return svgtypes.Color{}
	}

	if strings.HasPrefix(s, "#") {
		if c, ok := parseHex(s[1:]); ok {
			return c
		}
		return svgtypes.Color{}
	}

	if strings.HasPrefix(low, "rgb(") || strings.HasPrefix(low, "rgba(") {
		if c, ok := parseRGBFunction(s); ok {
			return c
		}
		return svgtypes.Color{}
	}

	if strings.HasPrefix(low, "hsl(") || strings.HasPrefix(low, "hsla(") {
		if c, ok := parseHSLFunction(s); ok {
			return c
		}
		return svgtypes.Color{}
	}

	if c, ok := namedColors[low]; ok {
		return c
	}

	return svgtypes.Color{}
}

func parseHex(v string) (svgtypes.Color, bool) {
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2], 'f', 'f'})
	case 4:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2], v[3], v[3]})
	case 6:
		v += "ff"
	case 8:
		// OK
	default:
		return svgtypes.Color{}, false
	}

	bytes, err := hex.DecodeString(v)
	if err != nil || len(bytes) != 4 {
		return svgtypes.Color{}, false
	}
	return svgtypes.Opaque(
		float64(bytes[0])/255,
		float64(bytes[1])/255,
		float64(bytes[2])/255,
		float64(bytes[3])/255,
	), true
}

func splitArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	inner := s[open+1 : len(s)-1]
	parts := strings.Split(inner, ",")
	if len(parts) == 1 && strings.TrimSpace(parts[0]) != "" {
		// Support the space-separated modern syntax: rgb(1 2 3 / .5)
		inner = strings.ReplaceAll(inner, "/", " ")
		parts = strings.Fields(inner)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

func parseByteOrPercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil {
			return 0, false
		}
		return n / 100, true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n / 255, true
}

func parseAlpha(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil {
			return 0, false
		}
		return n / 100, true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseRGBFunction(s string) (svgtypes.Color, bool) {
	args, ok := splitArgs(s)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return svgtypes.Color{}, false
	}
	r, ok1 := parseByteOrPercent(args[0])
	g, ok2 := parseByteOrPercent(args[1])
	b, ok3 := parseByteOrPercent(args[2])
	if !ok1 || !ok2 || !ok3 {
		return svgtypes.Color{}, false
	}
	a := 1.0
	if len(args) == 4 {
		var ok4 bool
		a, ok4 = parseAlpha(args[3])
		if !ok4 {
			return svgtypes.Color{}, false
		}
	}
	return svgtypes.Opaque(clamp01(r), clamp01(g), clamp01(b), clamp01(a)), true
}

func parseHSLFunction(s string) (svgtypes.Color, bool) {
	args, ok := splitArgs(s)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return svgtypes.Color{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(args[0]), "deg"), 64)
	if err != nil {
		return svgtypes.Color{}, false
	}
	sPct, ok1 := parseAlpha(strings.TrimSuffix(args[1], "%"))
	lPct, ok2 := parseAlpha(strings.TrimSuffix(args[2], "%"))
	if !ok1 || !ok2 {
		return svgtypes.Color{}, false
	}
	sPct, lPct = sPct/100, lPct/100

	a := 1.0
	if len(args) == 4 {
		var ok4 bool
		a, ok4 = parseAlpha(args[3])
		if !ok4 {
			return svgtypes.Color{}, false
		}
	}

	r, g, b := hslToRGB(h/360, sPct, lPct)
	return svgtypes.Opaque(r, g, b, clamp01(a)), true
}

func hueToRGB(m1, m2, h float64) float64 {
	switch {
	case h < 0:
		h += 1
	case h > 1:
		h -= 1
	}
	switch {
	case h*6 < 1:
		return m1 + (m2-m1)*h*6
	case h*2 < 1:
		return m2
	case h*3 < 2:
		return m1 + (m2-m1)*(2.0/3.0-h)*6
	}
	return m1
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	var m2 float64
	if l <= 0.5 {
		m2 = l * (s + 1)
	} else {
		m2 = l + s - l*s
	}
	m1 := l*2 - m2
	return clamp01(hueToRGB(m1, m2, h+1.0/3.0)), clamp01(hueToRGB(m1, m2, h)), clamp01(hueToRGB(m1, m2, h-1.0/3.0))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mustHex(h string) svgtypes.Color {
	c, ok := parseHex(h)
	if !ok {
		panic(fmt.Sprintf("bad built-in color %q", h))
	}
	return c
}
