package geometry

import (
	"strconv"
	"strings"

	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// Build resolves a drawable element's attributes into a ShapeGeometry.
// Unknown elements return svgtypes.ShapeNone, signaling the painter to
// recurse into children instead of drawing.
func Build(node *xmlnode.Node, viewportW, viewportH, fontSize float64) (svgtypes.ShapeGeometry, bool) {
	diag := DiagonalBasis(viewportW, viewportH)
	attr := func(name string) (float64, bool) {
		v, ok := node.Attr(name)
		if !ok {
			return 0, false
		}
		return Resolve(v, viewportW, fontSize)
	}
	attrH := func(name string, basis float64) float64 {
		v, ok := node.Attr(name)
		if !ok {
			return 0
		}
		n, _ := Resolve(v, basis, fontSize)
		return n
	}

	switch xmlnode.LocalName(node.Tag) {
	case "rect":
		x := attrH("x", viewportW)
		y := attrH("y", viewportH)
		w, wok := attr("width")
		if !wok {
			w = viewportW
		} else {
			w, _ = Resolve(node.AttrOr("width", ""), viewportW, fontSize)
		}
		h := viewportH
		if hv, ok := node.Attr("height"); ok {
			h, _ = Resolve(hv, viewportH, fontSize)
		}
		rx, hasRx := node.Attr("rx")
		ry, hasRy := node.Attr("ry")
		var rxv, ryv float64
		if hasRx {
			rxv, _ = Resolve(rx, viewportW, fontSize)
		}
		if hasRy {
			ryv, _ = Resolve(ry, viewportH, fontSize)
		} else {
			ryv = rxv
		}
		if !hasRx && hasRy {
			rxv = ryv
		}
		return svgtypes.ShapeGeometry{Kind: svgtypes.ShapeRect, X: x, Y: y, Width: w, Height: h, RX: rxv, RY: ryv}, true

	case "circle":
		cx := attrH("cx", viewportW)
		cy := attrH("cy", viewportH)
		r := attrH("r", diag)
		return svgtypes.ShapeGeometry{Kind: svgtypes.ShapeCircle, CX: cx, CY: cy, R: r}, true

	case "ellipse":
		cx := attrH("cx", viewportW)
		cy := attrH("cy", viewportH)
		rx := attrH("rx", viewportW)
		ry := attrH("ry", viewportH)
		return svgtypes.ShapeGeometry{Kind: svgtypes.ShapeEllipse, CX: cx, CY: cy, RX: rx, RY: ry}, true

	case "line":
		return svgtypes.ShapeGeometry{
			Kind: svgtypes.ShapeLine,
			X1:   attrH("x1", viewportW), Y1: attrH("y1", viewportH),
			X2: attrH("x2", viewportW), Y2: attrH("y2", viewportH),
		}, true

	case "polygon":
		pts := parsePoints(node.AttrOr("points", ""))
		return svgtypes.ShapeGeometry{Kind: svgtypes.ShapePolygon, Points: pts}, true

	case "polyline":
		pts := parsePoints(node.AttrOr("points", ""))
		return svgtypes.ShapeGeometry{Kind: svgtypes.ShapePolyline, Points: pts}, true

	case "path":
		return svgtypes.ShapeGeometry{Kind: svgtypes.ShapePath, PathData: node.AttrOr("d", "")}, true

	case "text":
		return svgtypes.ShapeGeometry{
			Kind:      svgtypes.ShapeText,
			TextX:     attrH("x", viewportW),
			TextY:     attrH("y", viewportH),
			TextValue: node.Text,
		}, true

	case "image":
		href := node.AttrOr("href", node.AttrOr("xlink:href", ""))
		w := attrH("width", viewportW)
		h := attrH("height", viewportH)
		return svgtypes.ShapeGeometry{
			Kind: svgtypes.ShapeImage,
			X:    attrH("x", viewportW), Y: attrH("y", viewportH),
			Width: w, Height: h, Href: href,
		}, true

	default:
		return svgtypes.ShapeGeometry{}, false
	}
}

// parsePoints parses a flat stream of numbers, pairing consecutive values
// into (x,y); an odd trailing value is dropped.
func parsePoints(s string) []svgtypes.Point {
	s = strings.ReplaceAll(s, ",", " ")
	fields := strings.Fields(s)
	var pts []svgtypes.Point
	for i := 0; i+1 < len(fields); i += 2 {
		x, err1 := strconv.ParseFloat(fields[i], 64)
		y, err2 := strconv.ParseFloat(fields[i+1], 64)
		if err1 != nil || err2 != nil {
			break
		}
		pts = append(pts, svgtypes.Point{X: x, Y: y})
	}
	return pts
}
