// Package geometry builds shape geometry from element attributes,
// resolving SVG lengths and percentages against the current viewport.
package geometry

import (
	"math"
	"strconv"
	"strings"
)

// unitsPerPixel converts one unit of the named CSS unit into CSS pixels at
// 96 DPI.
var unitsPerPixel = map[string]float64{
	"px": 1,
	"pt": 96.0 / 72.0,
	"pc": 16,       // 1pc = 12pt = 16px
	"in": 96,
	"cm": 96.0 / 2.54,
	"mm": 96.0 / 25.4,
	"q":  96.0 / 25.4 / 4.0, // 1Q = 1/4 mm
	"em": 0,                // resolved relative to font size by callers
	"ex": 0,
}

// ParsedLength is a decomposed CSS length: a numeric value, its unit
// suffix (empty for unitless numbers), and whether it was a percentage.
type ParsedLength struct {
	Value     float64
	Unit      string
	IsPercent bool
	OK        bool
}

// ParseLength splits a numeric length string into value + unit/percent,
// without resolving percent or em/ex against a basis.
func ParseLength(s string) ParsedLength {
	s = strings.TrimSpace(s)
	if s == "" {
		return ParsedLength{}
	}
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
		if err != nil {
			return ParsedLength{}
		}
		return ParsedLength{Value: n / 100, IsPercent: true, OK: true}
	}

	i := len(s)
	for i > 0 && !isDigitOrSign(s, i-1) {
		i--
	}
	numPart, unitPart := s[:i], strings.ToLower(strings.TrimSpace(s[i:]))
	n, err := strconv.ParseFloat(strings.TrimSpace(numPart), 64)
	if err != nil {
		return ParsedLength{}
	}
	return ParsedLength{Value: n, Unit: unitPart, OK: true}
}

func isDigitOrSign(s string, i int) bool {
	c := s[i]
	if c == 'e' || c == 'E' {
		// An exponent marker only when a digit or sign follows; otherwise
		// it starts a unit such as "em" or "ex".
		return i+1 < len(s) && ((s[i+1] >= '0' && s[i+1] <= '9') || s[i+1] == '+' || s[i+1] == '-')
	}
	return (c >= '0' && c <= '9') || c == '.' || c == '+' || c == '-'
}

// ToPixels resolves a ParsedLength to CSS pixels. basis is used for
// percentages; fontSize is used for em/ex units. Units this rasterizer
// does not special-case (including the empty/unitless suffix) pass
// through as raw CSS pixels.
func (l ParsedLength) ToPixels(basis, fontSize float64) float64 {
	if !l.OK {
		return 0
	}
	if l.IsPercent {
		return l.Value * basis
	}
	switch l.Unit {
	case "em":
		return l.Value * fontSize
	case "ex":
		return l.Value * fontSize * 0.5
	case "":
		return l.Value
	default:
		if factor, ok := unitsPerPixel[l.Unit]; ok && factor != 0 {
			return l.Value * factor
		}
		return l.Value
	}
}

// Resolve parses and resolves a length string in one step.
func Resolve(s string, basis, fontSize float64) (float64, bool) {
	pl := ParseLength(s)
	if !pl.OK {
		return 0, false
	}
	return pl.ToPixels(basis, fontSize), true
}

// DiagonalBasis computes the SVG percentage basis for diameter-like
// quantities: sqrt((w^2 + h^2) / 2).
func DiagonalBasis(w, h float64) float64 {
	return math.Sqrt((w*w + h*h) / 2)
}
