package paint

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// kappa is the cubic-bezier control point ratio that approximates a
// quarter circle arc to within well under a pixel at typical sizes.
const kappa = 0.5522847498

func ellipseSegs(cx, cy, rx, ry float64) []pathSeg {
	return []pathSeg{
		{kind: segMoveTo, x: cx + rx, y: cy},
		{kind: segCubicTo, x1: cx + rx, y1: cy + ry*kappa, x2: cx + rx*kappa, y2: cy + ry, x: cx, y: cy + ry},
		{kind: segCubicTo, x1: cx - rx*kappa, y1: cy + ry, x2: cx - rx, y2: cy + ry*kappa, x: cx - rx, y: cy},
		{kind: segCubicTo, x1: cx - rx, y1: cy - ry*kappa, x2: cx - rx*kappa, y2: cy - ry, x: cx, y: cy - ry},
		{kind: segCubicTo, x1: cx + rx*kappa, y1: cy - ry, x2: cx + rx, y2: cy - ry*kappa, x: cx + rx, y: cy},
		{kind: segClose},
	}
}

func rectSegs(x, y, w, h, rx, ry float64) []pathSeg {
	if rx <= 0 && ry <= 0 {
		return []pathSeg{
			{kind: segMoveTo, x: x, y: y},
			{kind: segLineTo, x: x + w, y: y},
			{kind: segLineTo, x: x + w, y: y + h},
			{kind: segLineTo, x: x, y: y + h},
			{kind: segClose},
		}
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	k := kappa
	return []pathSeg{
		{kind: segMoveTo, x: x + rx, y: y},
		{kind: segLineTo, x: x + w - rx, y: y},
		{kind: segCubicTo, x1: x + w - rx + rx*k, y1: y, x2: x + w, y2: y + ry - ry*k, x: x + w, y: y + ry},
		{kind: segLineTo, x: x + w, y: y + h - ry},
		{kind: segCubicTo, x1: x + w, y1: y + h - ry + ry*k, x2: x + w - rx + rx*k, y2: y + h, x: x + w - rx, y: y + h},
		{kind: segLineTo, x: x + rx, y: y + h},
		{kind: segCubicTo, x1: x + rx - rx*k, y1: y + h, x2: x, y2: y + h - ry + ry*k, x: x, y: y + h - ry},
		{kind: segLineTo, x: x, y: y + ry},
		{kind: segCubicTo, x1: x, y1: y + ry - ry*k, x2: x + rx - rx*k, y2: y, x: x + rx, y: y},
		{kind: segClose},
	}
}

func lineSegs(x1, y1, x2, y2 float64) []pathSeg {
	return []pathSeg{{kind: segMoveTo, x: x1, y: y1}, {kind: segLineTo, x: x2, y: y2}}
}

func polySegs(pts []svgtypes.Point, closed bool) []pathSeg {
	if len(pts) == 0 {
		return nil
	}
	segs := make([]pathSeg, 0, len(pts)+1)
	segs = append(segs, pathSeg{kind: segMoveTo, x: pts[0].X, y: pts[0].Y})
	for _, p := range pts[1:] {
		segs = append(segs, pathSeg{kind: segLineTo, x: p.X, y: p.Y})
	}
	if closed {
		segs = append(segs, pathSeg{kind: segClose})
	}
	return segs
}

func shapeSegs(geo svgtypes.ShapeGeometry) []pathSeg {
	switch geo.Kind {
	case svgtypes.ShapeRect:
		return rectSegs(geo.X, geo.Y, geo.Width, geo.Height, geo.RX, geo.RY)
	case svgtypes.ShapeCircle:
		return ellipseSegs(geo.CX, geo.CY, geo.R, geo.R)
	case svgtypes.ShapeEllipse:
		return ellipseSegs(geo.CX, geo.CY, geo.RX, geo.RY)
	case svgtypes.ShapeLine:
		return lineSegs(geo.X1, geo.Y1, geo.X2, geo.Y2)
	case svgtypes.ShapePolygon:
		return polySegs(geo.Points, true)
	case svgtypes.ShapePolyline:
		return polySegs(geo.Points, false)
	case svgtypes.ShapePath:
		return parsePathData(geo.PathData)
	default:
		return nil
	}
}

func segsBBox(segs []pathSeg) (x, y, w, h float64) {
	first := true
	minX, minY, maxX, maxY := 0.0, 0.0, 0.0, 0.0
	consider := func(px, py float64) {
		if first {
			minX, maxX, minY, maxY = px, px, py, py
			first = false
			return
		}
		if px < minX {
			minX = px
		}
		if px > maxX {
			maxX = px
		}
		if py < minY {
			minY = py
		}
		if py > maxY {
			maxY = py
		}
	}
	for _, s := range segs {
		switch s.kind {
		case segMoveTo, segLineTo:
			consider(s.x, s.y)
		case segCubicTo:
			consider(s.x1, s.y1)
			consider(s.x2, s.y2)
			consider(s.x, s.y)
		}
	}
	if first {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX - minX, maxY - minY
}

// drawShape renders a resolved shape's geometry under ctm with the
// cascaded fill/stroke state.
func (p *Painter) drawShape(geo svgtypes.ShapeGeometry, ctm Matrix, st svgtypes.ResolvedStyle, vw, vh float64) {
	segs := shapeSegs(geo)
	if len(segs) == 0 {
		return
	}
	bx, by, bw, bh := segsBBox(segs)

	p.ctx.ClearPath()
	for _, s := range segs {
		switch s.kind {
		case segMoveTo:
			x, y := ctm.Apply(s.x, s.y)
			p.ctx.MoveTo(x, y)
		case segLineTo:
			x, y := ctm.Apply(s.x, s.y)
			p.ctx.LineTo(x, y)
		case segCubicTo:
			x1, y1 := ctm.Apply(s.x1, s.y1)
			x2, y2 := ctm.Apply(s.x2, s.y2)
			x, y := ctm.Apply(s.x, s.y)
			p.ctx.CubicTo(x1, y1, x2, y2, x, y)
		case segClose:
			p.ctx.ClosePath()
		}
	}

	if st.FillRule == svgtypes.FillRuleEvenOdd {
		p.ctx.SetFillRule(gg.FillRuleEvenOdd)
	} else {
		p.ctx.SetFillRule(gg.FillRuleWinding)
	}

	fillPattern := p.resolveFillOrStroke(st.FillRaw, st.FillColor, st.FillOpacity, bx, by, bw, bh)
	strokePattern := p.resolveFillOrStroke(st.StrokeRaw, st.StrokeColor, st.StrokeOpacity, bx, by, bw, bh)

	scale := ctm.AvgScale()
	p.ctx.SetLineWidth(st.StrokeWidth * scale)
	switch st.StrokeLineCap {
	case svgtypes.LineCapRound:
		p.ctx.SetLineCap(gg.LineCapRound)
	case svgtypes.LineCapSquare:
		p.ctx.SetLineCap(gg.LineCapSquare)
	default:
		p.ctx.SetLineCap(gg.LineCapButt)
	}
	switch st.StrokeLineJoin {
	case svgtypes.LineJoinRound:
		p.ctx.SetLineJoin(gg.LineJoinRound)
	case svgtypes.LineJoinBevel:
		p.ctx.SetLineJoin(gg.LineJoinBevel)
	default:
		p.ctx.SetLineJoin(gg.LineJoinRound)
	}
	if len(st.StrokeDashArray) > 0 {
		scaled := make([]float64, len(st.StrokeDashArray))
		for i, d := range st.StrokeDashArray {
			scaled[i] = d * scale
		}
		p.ctx.SetDash(scaled...)
		p.ctx.SetDashOffset(st.StrokeDashOffset * scale)
	} else {
		p.ctx.SetDash()
	}

	if fillPattern != nil {
		p.ctx.SetFillStyle(fillPattern)
		p.ctx.FillPreserve()
	}
	if strokePattern != nil {
		p.ctx.SetStrokeStyle(strokePattern)
		p.ctx.StrokePreserve()
	}
	p.ctx.ClearPath()
}

// resolveFillOrStroke resolves one paint property (fill or stroke) to a
// drawable gg.Pattern, or nil when the property is `none` or an
// unresolvable paint server reference.
func (p *Painter) resolveFillOrStroke(ref svgtypes.PaintRef, solid svgtypes.Color, opacity, bx, by, bw, bh float64) gg.Pattern {
	if ref.IsURL {
		if target, ok := p.idmap[ref.URLID]; ok {
			if pattern, ok := p.resolvePaintServer(target, bx, by, bw, bh, opacity); ok {
				return pattern
			}
		}
		if solid.Paintable() {
			c := solid
			c.A *= opacity
			return gg.NewSolidPattern(toNRGBA(c))
		}
		return nil
	}
	if !solid.Paintable() {
		return nil
	}
	c := solid
	c.A *= opacity
	return gg.NewSolidPattern(toNRGBA(c))
}

// drawText draws a single text run anchored at (TextX,TextY), which is
// transformed as a point by ctm; glyph rotation/skew under non-uniform
// transforms is not modeled, matching the painter's general text
// simplification.
func (p *Painter) drawText(geo svgtypes.ShapeGeometry, ctm Matrix, st svgtypes.ResolvedStyle, vw, vh float64) {
	ff := resolveFontFamily(st.FontFamily)
	scale := ctm.AvgScale()
	face, err := ff.newFace(st.FontWeight, st.FontStyle == "italic", st.FontSize*scale)
	if err != nil {
		return
	}
	p.ctx.SetFontFace(face)

	ax := 0.0
	switch st.TextAnchor {
	case svgtypes.TextAnchorMiddle:
		ax = 0.5
	case svgtypes.TextAnchorEnd:
		ax = 1.0
	}

	fillPattern := p.resolveFillOrStroke(st.FillRaw, st.FillColor, st.FillOpacity, geo.TextX, geo.TextY, 0, 0)
	if fillPattern == nil {
		return
	}
	p.ctx.SetFillStyle(fillPattern)

	x, y := ctm.Apply(geo.TextX, geo.TextY)
	p.ctx.DrawStringAnchored(geo.TextValue, x, y, ax, 0)
}

// drawImage decodes and places a raster `<image>` element, honoring
// preserveAspectRatio's align/meetOrSlice within the element's box.
// Only translation and uniform scale are applied to the bitmap itself;
// rotation/skew in the ambient transform affects only its anchor point.
func (p *Painter) drawImage(node *xmlnode.Node, geo svgtypes.ShapeGeometry, ctm Matrix, vw, vh float64) {
	if geo.Width <= 0 || geo.Height <= 0 {
		return
	}
	img, ok := decodeImageHref(geo.Href)
	if !ok {
		return
	}

	nb := img.Bounds()
	nw, nh := float64(nb.Dx()), float64(nb.Dy())
	if nw <= 0 || nh <= 0 {
		return
	}

	align, meet := parsePreserveAspectRatio(node.AttrOr("preserveAspectRatio", "xMidYMid meet"))

	var drawW, drawH, offX, offY float64
	if align == "none" {
		drawW, drawH = geo.Width, geo.Height
	} else {
		sx, sy := geo.Width/nw, geo.Height/nh
		s := sx
		if (meet && sy < sx) || (!meet && sy > sx) {
			s = sy
		}
		drawW, drawH = nw*s, nh*s
		offX = alignOffset(align, true, geo.Width-drawW)
		offY = alignOffset(align, false, geo.Height-drawH)
	}

	scale := ctm.AvgScale()
	devW := int(math.Round(drawW * scale))
	devH := int(math.Round(drawH * scale))
	if devW <= 0 || devH <= 0 {
		return
	}

	resized := image.NewRGBA(image.Rect(0, 0, devW, devH))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, nb, draw.Over, nil)

	x, y := ctm.Apply(geo.X+offX, geo.Y+offY)
	p.ctx.DrawImage(resized, int(math.Round(x)), int(math.Round(y)))
}

func parsePreserveAspectRatio(s string) (align string, meet bool) {
	align, meet = "xMidYMid", true
	fields := splitFields(s)
	for _, f := range fields {
		switch f {
		case "none", "xMinYMin", "xMidYMin", "xMaxYMin", "xMinYMid", "xMidYMid", "xMaxYMid", "xMinYMax", "xMidYMax", "xMaxYMax":
			align = f
		case "slice":
			meet = false
		case "meet":
			meet = true
		}
	}
	return align, meet
}

func splitFields(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

// alignOffset reads the horizontal ("xMin"/"xMid"/"xMax", chars [1:4])
// or vertical ("YMin"/"YMid"/"YMax", chars [5:8]) component of a
// preserveAspectRatio align keyword like "xMidYMid".
func alignOffset(align string, horizontal bool, extra float64) float64 {
	var part string
	if horizontal {
		part = align[1:4]
	} else {
		part = align[5:8]
	}
	switch part {
	case "Min":
		return 0
	case "Mid":
		return extra / 2
	case "Max":
		return extra
	}
	return 0
}
