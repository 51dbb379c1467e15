// Package style computes the cascaded ResolvedStyle for each element: a
// pure function of (parent style, element attributes, inline style,
// matched stylesheet rules) to a child style, following the teacher's
// "copy-then-override" pattern generalized from the inheritance-stack
// walk in renderer_style.go into an explicit per-node resolved struct, as
// the spec's ResolvedStyle data model requires.
package style

import (
	"strconv"
	"strings"

	"github.com/inkwell-graphics/svgraster/internal/cssvalue"
	"github.com/inkwell-graphics/svgraster/internal/geometry"
	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// Sheet bundles the parsed inline `<style>` block consulted during
// cascade; nil is a valid zero-rule sheet.
type Sheet struct {
	parsed cssvalue.Stylesheet
}

// ParseSheet parses a document's inline `<style>` element bodies.
func ParseSheet(css string) *Sheet {
	return &Sheet{parsed: cssvalue.ParseStylesheet(css)}
}

func classList(node *xmlnode.Node) []string {
	class, _ := node.Attr("class")
	if class == "" {
		return nil
	}
	return strings.Fields(class)
}

func elementInfo(node *xmlnode.Node, ancestors []cssvalue.ElementInfo) cssvalue.ElementInfo {
	id, _ := node.Attr("id")
	return cssvalue.ElementInfo{
		Tag:       xmlnode.LocalName(node.Tag),
		ID:        id,
		Classes:   classList(node),
		Ancestors: ancestors,
	}
}

// lookup resolves one property's raw text value following the cascade
// precedence: inline `style=` entry, then matched CSS rule, then the
// plain attribute of the same name.
func lookup(node *xmlnode.Node, inline map[string]string, matched []map[string]string, prop string) (string, bool) {
	if v, ok := inline[prop]; ok {
		return v, true
	}
	for i := len(matched) - 1; i >= 0; i-- {
		if v, ok := matched[i][prop]; ok {
			return v, true
		}
	}
	if v, ok := node.Attr(prop); ok {
		return v, true
	}
	return "", false
}

// Resolve computes the child's ResolvedStyle from its parent and its own
// attributes/inline style/matched stylesheet rules.
func Resolve(parent svgtypes.ResolvedStyle, node *xmlnode.Node, sheet *Sheet, ancestors []cssvalue.ElementInfo) svgtypes.ResolvedStyle {
	out := parent
	// Per-element properties never inherit across elements even though
	// the struct is copied wholesale; reset them to neutral defaults
	// before applying overrides.
	out.Display = "inline"
	out.Opacity = 1

	styleAttr, _ := node.Attr("style")
	inline := cssvalue.Declarations(styleAttr)

	var matched []map[string]string
	if sheet != nil {
		matched = sheet.parsed.Match(elementInfo(node, ancestors))
	}

	get := func(prop string) (string, bool) { return lookup(node, inline, matched, prop) }

	if v, ok := get("color"); ok {
		if c := ParseColor(v); c.IsValid {
			out.Color = c
		}
	}

	if v, ok := get("fill"); ok {
		out.FillRaw = parsePaintRef(v)
	}
	if v, ok := get("stroke"); ok {
		out.StrokeRaw = parsePaintRef(v)
	}
	out.FillColor = resolvePaintColor(out.FillRaw, out.Color)
	out.StrokeColor = resolvePaintColor(out.StrokeRaw, out.Color)

	if v, ok := get("fill-opacity"); ok {
		if n, ok := parseOpacity(v); ok {
			out.FillOpacity = n
		}
	}
	if v, ok := get("stroke-opacity"); ok {
		if n, ok := parseOpacity(v); ok {
			out.StrokeOpacity = n
		}
	}
	if v, ok := get("opacity"); ok {
		if n, ok := parseOpacity(v); ok {
			out.Opacity = n
		}
	}

	if v, ok := get("fill-rule"); ok {
		switch strings.TrimSpace(v) {
		case "evenodd":
			out.FillRule = svgtypes.FillRuleEvenOdd
		case "nonzero":
			out.FillRule = svgtypes.FillRuleNonZero
		}
	}

	if v, ok := get("font-size"); ok {
		if n, ok := geometry.Resolve(v, out.FontSize, out.FontSize); ok {
			out.FontSize = n
		}
	}
	if v, ok := get("font-family"); ok {
		out.FontFamily = parseFontFamily(v)
	}
	if v, ok := get("font-weight"); ok {
		out.FontWeight = strings.TrimSpace(v)
	}
	if v, ok := get("font-style"); ok {
		out.FontStyle = strings.TrimSpace(v)
	}
	if v, ok := get("font"); ok {
		applyFontShorthand(&out, v)
	}

	if v, ok := get("stroke-width"); ok {
		if n, ok := geometry.Resolve(v, out.StrokeWidth, out.FontSize); ok {
			out.StrokeWidth = n
		}
	}
	if v, ok := get("stroke-miterlimit"); ok {
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			if n < 1 {
				n = 1
			}
			out.StrokeMiterLimit = n
		}
	}
	if v, ok := get("stroke-linecap"); ok {
		switch strings.TrimSpace(v) {
		case "butt":
			out.StrokeLineCap = svgtypes.LineCapButt
		case "round":
			out.StrokeLineCap = svgtypes.LineCapRound
		case "square":
			out.StrokeLineCap = svgtypes.LineCapSquare
		}
	}
	if v, ok := get("stroke-linejoin"); ok {
		switch strings.TrimSpace(v) {
		case "miter":
			out.StrokeLineJoin = svgtypes.LineJoinMiter
		case "round":
			out.StrokeLineJoin = svgtypes.LineJoinRound
		case "bevel":
			out.StrokeLineJoin = svgtypes.LineJoinBevel
		}
	}
	if v, ok := get("stroke-dasharray"); ok {
		out.StrokeDashArray = parseDashArray(v, out.FontSize)
	}
	if v, ok := get("stroke-dashoffset"); ok {
		if n, ok := geometry.Resolve(v, 0, out.FontSize); ok {
			out.StrokeDashOffset = n
		}
	}

	if v, ok := get("text-anchor"); ok {
		switch strings.TrimSpace(v) {
		case "start":
			out.TextAnchor = svgtypes.TextAnchorStart
		case "middle":
			out.TextAnchor = svgtypes.TextAnchorMiddle
		case "end":
			out.TextAnchor = svgtypes.TextAnchorEnd
		}
	}
	if v, ok := get("letter-spacing"); ok {
		if n, ok := geometry.Resolve(v, 0, out.FontSize); ok {
			out.LetterSpacing = n
		}
	}
	if v, ok := get("word-spacing"); ok {
		if n, ok := geometry.Resolve(v, 0, out.FontSize); ok {
			out.WordSpacing = n
		}
	}
	if v, ok := get("text-decoration"); ok {
		out.TextDecoration = strings.TrimSpace(v)
	}

	if v, ok := get("display"); ok {
		out.Display = strings.TrimSpace(v)
	}
	if v, ok := get("visibility"); ok {
		out.Visibility = strings.TrimSpace(v)
	}

	return out
}

// ParseOpacity parses a bare opacity value (0-1, or a percentage),
// clamped to [0,1]. Exposed for callers outside the cascade, such as
// gradient stop opacity.
func ParseOpacity(s string) (float64, bool) {
	return parseOpacity(s)
}

func parseOpacity(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	var n float64
	var err error
	if strings.HasSuffix(s, "%") {
		n, err = strconv.ParseFloat(s[:len(s)-1], 64)
		n /= 100
	} else {
		n, err = strconv.ParseFloat(s, 64)
	}
	if err != nil {
		return 0, false
	}
	return clamp01(n), true
}

func parsePaintRef(raw string) svgtypes.PaintRef {
	s := strings.TrimSpace(raw)
	ref := svgtypes.PaintRef{Raw: s}
	low := strings.ToLower(s)
	if low == "currentcolor" {
		ref.IsCurrentColor = true
		return ref
	}
	if strings.HasPrefix(low, "url(") {
		end := strings.IndexByte(s, ')')
		inner := s
		if end > 0 {
			inner = s[4:end]
		} else {
			inner = strings.TrimPrefix(s, "url(")
		}
		inner = strings.Trim(strings.TrimSpace(inner), `"'`)
		ref.IsURL = true
		ref.URLID = strings.TrimPrefix(inner, "#")
		// A fallback color/keyword may follow the url() reference.
		rest := strings.TrimSpace(s[end+1:])
		if rest != "" {
			ref.Resolved = ParseColor(rest)
		}
		return ref
	}
	return ref
}

// resolvePaintColor resolves a non-URL paint reference to a concrete
// color, substituting `currentColor` with the cascaded color property.
// URL references are resolved by the painter against the paint-server
// map and fall back to ref.Resolved (or none) if the id is missing.
func resolvePaintColor(ref svgtypes.PaintRef, current svgtypes.Color) svgtypes.Color {
	if ref.IsCurrentColor {
		return current
	}
	if ref.IsURL {
		return ref.Resolved
	}
	return ParseColor(ref.Raw)
}

func parseFontFamily(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `"'`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// applyFontShorthand parses "[style] [weight] size[/line-height] family"
// per the spec's §4.5 step 4.
func applyFontShorthand(out *svgtypes.ResolvedStyle, raw string) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return
	}

	idx := 0
	for idx < len(fields)-1 {
		switch fields[idx] {
		case "italic", "oblique", "normal":
			out.FontStyle = fields[idx]
			idx++
			continue
		case "bold", "bolder", "lighter":
			out.FontWeight = fields[idx]
			idx++
			continue
		}
		if _, err := strconv.Atoi(fields[idx]); err == nil && len(fields[idx]) <= 3 {
			out.FontWeight = fields[idx]
			idx++
			continue
		}
		break
	}
	if idx >= len(fields) {
		return
	}

	sizeField := fields[idx]
	if slash := strings.IndexByte(sizeField, '/'); slash >= 0 {
		sizeField = sizeField[:slash]
	}
	if n, ok := geometry.Resolve(sizeField, out.FontSize, out.FontSize); ok {
		out.FontSize = n
	}
	idx++

	if idx < len(fields) {
		family := strings.Join(fields[idx:], " ")
		out.FontFamily = parseFontFamily(family)
	}
}

// parseDashArray parses a whitespace/comma separated list of lengths; an
// odd-length array is doubled per the spec.
func parseDashArray(raw string, fontSize float64) []float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "none" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", " ")
	fields := strings.Fields(s)
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, ok := geometry.Resolve(f, 0, fontSize)
		if !ok || n < 0 {
			return nil
		}
		vals = append(vals, n)
	}
	if len(vals)%2 == 1 {
		vals = append(vals, vals...)
	}
	return vals
}
