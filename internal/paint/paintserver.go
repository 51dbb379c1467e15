package paint

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/inkwell-graphics/svgraster/internal/cssvalue"
	"github.com/inkwell-graphics/svgraster/internal/geometry"
	"github.com/inkwell-graphics/svgraster/internal/style"
	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// resolvePaintServer builds a gg.Pattern for a gradient or pattern
// definition node, in the bounding box given by (bx, by, bw, bh) for
// objectBoundingBox-relative coordinates. Returns false if node is not a
// recognized paint server.
func (p *Painter) resolvePaintServer(node *xmlnode.Node, bx, by, bw, bh float64, opacity float64) (gg.Pattern, bool) {
	switch xmlnode.LocalName(node.Tag) {
	case "linearGradient":
		return p.buildLinearGradient(node, bx, by, bw, bh, opacity), true
	case "radialGradient":
		return p.buildRadialGradient(node, bx, by, bw, bh, opacity), true
	case "pattern":
		return p.buildPattern(node, bx, by, bw, bh, opacity), true
	default:
		return nil, false
	}
}

func gradientUnits(node *xmlnode.Node) string {
	u, _ := node.Attr("gradientUnits")
	if u == "" {
		return "objectBoundingBox"
	}
	return u
}

// gradientCoord resolves a gradient/pattern coordinate attribute. In
// objectBoundingBox mode the raw value (percentage or bare number) is a
// 0..1 fraction of the bounding box; in userSpaceOnUse mode it is an
// ordinary length resolved against basis.
func gradientCoord(node *xmlnode.Node, name string, def, basis, bboxOrigin, bboxSpan float64, userSpace bool) float64 {
	raw, ok := node.Attr(name)
	if !ok {
		if userSpace {
			return def
		}
		return bboxOrigin + def*bboxSpan
	}
	if userSpace {
		v, ok := geometry.Resolve(raw, basis, 16)
		if !ok {
			return def
		}
		return v
	}
	pl := geometry.ParseLength(raw)
	if !pl.OK {
		return bboxOrigin + def*bboxSpan
	}
	return bboxOrigin + pl.Value*bboxSpan
}

func collectStops(node *xmlnode.Node, idmap map[string]*xmlnode.Node, opacity float64) []stopColor {
	var stops []stopColor
	for _, c := range node.Children {
		if xmlnode.LocalName(c.Tag) != "stop" {
			continue
		}
		stops = append(stops, parseStop(c, opacity))
	}
	if len(stops) == 0 {
		if href, ok := node.Attr("href"); ok {
			if ref := resolveHrefID(href); ref != "" {
				if target, ok := idmap[ref]; ok {
					return collectStops(target, idmap, opacity)
				}
			}
		}
	}
	return stops
}

type stopColor struct {
	offset float64
	c      svgtypes.Color
}

func parseStop(node *xmlnode.Node, opacity float64) stopColor {
	offsetRaw, _ := node.Attr("offset")
	offset := parseStopOffset(offsetRaw)

	colorRaw, _ := node.Attr("stop-color")
	if colorRaw == "" {
		colorRaw = "black"
	}
	alphaRaw, _ := node.Attr("stop-opacity")
	alpha := 1.0
	if alphaRaw != "" {
		if n, ok := parsePlainOpacity(alphaRaw); ok {
			alpha = n
		}
	}

	if styleAttr, ok := node.Attr("style"); ok {
		for k, v := range cssvalue.Declarations(styleAttr) {
			switch k {
			case "stop-color":
				colorRaw = v
			case "stop-opacity":
				if n, ok := parsePlainOpacity(v); ok {
					alpha = n
				}
			}
		}
	}

	c := style.ParseColor(colorRaw)
	c.A *= alpha * opacity
	return stopColor{offset: offset, c: c}
}

func parseStopOffset(s string) float64 {
	pl := geometry.ParseLength(s)
	if !pl.OK {
		return 0
	}
	return clampUnit(pl.Value)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toNRGBA(c svgtypes.Color) color.NRGBA {
	return color.NRGBA{
		R: byte(clampUnit(c.R) * 255),
		G: byte(clampUnit(c.G) * 255),
		B: byte(clampUnit(c.B) * 255),
		A: byte(clampUnit(c.A) * 255),
	}
}

func (p *Painter) buildLinearGradient(node *xmlnode.Node, bx, by, bw, bh, opacity float64) gg.Pattern {
	userSpace := gradientUnits(node) == "userSpaceOnUse"

	x1 := gradientCoord(node, "x1", 0, bw, bx, bw, userSpace)
	y1 := gradientCoord(node, "y1", 0, bh, by, bh, userSpace)
	x2 := gradientCoord(node, "x2", 1, bw, bx, bw, userSpace)
	y2 := gradientCoord(node, "y2", 0, bh, by, bh, userSpace)

	grad := gg.NewLinearGradient(x1, y1, x2, y2)
	stops := collectStops(node, p.idmap, opacity)
	if len(stops) == 0 {
		return gg.NewSolidPattern(color.Transparent)
	}
	for _, s := range stops {
		grad.AddColorStop(s.offset, toNRGBA(s.c))
	}
	return grad
}

func (p *Painter) buildRadialGradient(node *xmlnode.Node, bx, by, bw, bh, opacity float64) gg.Pattern {
	userSpace := gradientUnits(node) == "userSpaceOnUse"
	diag := geometry.DiagonalBasis(bw, bh)

	cx := gradientCoord(node, "cx", 0.5, bw, bx, bw, userSpace)
	cy := gradientCoord(node, "cy", 0.5, bh, by, bh, userSpace)
	r := gradientCoord(node, "r", 0.5, diag, 0, diag, userSpace)
	fx := cx
	fy := cy
	if _, ok := node.Attr("fx"); ok {
		fx = gradientCoord(node, "fx", 0.5, bw, bx, bw, userSpace)
	}
	if _, ok := node.Attr("fy"); ok {
		fy = gradientCoord(node, "fy", 0.5, bh, by, bh, userSpace)
	}

	grad := gg.NewRadialGradient(fx, fy, 0, cx, cy, r)
	stops := collectStops(node, p.idmap, opacity)
	if len(stops) == 0 {
		return gg.NewSolidPattern(color.Transparent)
	}
	for _, s := range stops {
		grad.AddColorStop(s.offset, toNRGBA(s.c))
	}
	return grad
}

// buildPattern renders the pattern's tile content into its own surface
// and wraps it as a repeating gg.Pattern. patternContentUnits
// objectBoundingBox scales the tile content into the tile's own
// fractional coordinate space.
func (p *Painter) buildPattern(node *xmlnode.Node, bx, by, bw, bh, opacity float64) gg.Pattern {
	units := gradientUnits(node)
	userSpace := units == "userSpaceOnUse"

	tw := gradientCoord(node, "width", 0, bw, 0, bw, userSpace)
	th := gradientCoord(node, "height", 0, bh, 0, bh, userSpace)
	if tw <= 0 || th <= 0 || tw > 4096 || th > 4096 {
		return gg.NewSolidPattern(color.Transparent)
	}

	if p.activePatterns[node] {
		return gg.NewSolidPattern(color.Transparent)
	}
	p.activePatterns[node] = true
	defer delete(p.activePatterns, node)

	tileCtx := gg.NewContext(int(math.Ceil(tw)), int(math.Ceil(th)))

	contentUnits, _ := node.Attr("patternContentUnits")
	sub := &Painter{
		ctx:            tileCtx,
		idmap:          p.idmap,
		options:        p.options,
		activeUse:      p.activeUse,
		activePatterns: p.activePatterns,
		ctm:            IdentityMatrix(),
	}
	if contentUnits == "objectBoundingBox" {
		sub.ctm = scaleMatrix(tw, th)
	}
	if t, ok := node.Attr("patternTransform"); ok {
		sub.ctm = sub.ctm.Multiply(ParseTransformList(t))
	}

	children := node.Children
	if len(children) == 0 {
		if href, ok := node.Attr("href"); ok {
			if ref := resolveHrefID(href); ref != "" {
				if target, ok := p.idmap[ref]; ok {
					children = target.Children
				}
			}
		}
	}
	for _, c := range children {
		sub.paintNode(c, sub.ctm, p.rootStyle(), nil, tw, th)
	}

	return gg.NewSurfacePattern(tileCtx.Image(), gg.RepeatBoth)
}

func parsePlainOpacity(s string) (float64, bool) {
	return style.ParseOpacity(s)
}
