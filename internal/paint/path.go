package paint

import (
	"math"
	"strconv"
	"strings"
)

// arcEpsilon is the single named tolerance constant for arc decomposition
// numerics, per the spec's design notes.
const arcEpsilon = 1e-9

// segKind tags a flattened path segment understood by the painter.
type segKind int

const (
	segMoveTo segKind = iota
	segLineTo
	segCubicTo
	segClose
)

// pathSeg is one absolute, fully-resolved path segment: MoveTo/LineTo
// carry (X,Y); CubicTo also carries the two control points.
type pathSeg struct {
	kind           segKind
	x, y           float64
	x1, y1, x2, y2 float64
}

// parsePathData interprets SVG path command data, decomposing elliptical
// arcs into cubic Bezier segments via the endpoint-to-center mapping.
// `M x y Z` with no further commands parses to a moveTo+close with no
// visible fill, never an error.
func parsePathData(d string) []pathSeg {
	toks := tokenizePath(d)
	var segs []pathSeg

	var curX, curY float64
	var startX, startY float64
	var lastCubicCX, lastCubicCY float64
	var lastWasCubic bool
	var lastQuadCX, lastQuadCY float64
	var lastWasQuad bool

	i := 0
	var cmd byte
	for i < len(toks) {
		tok := toks[i]
		if isCommandLetter(tok) {
			cmd = tok[0]
			i++
		}
		if cmd == 0 {
			break
		}

		abs := cmd >= 'A' && cmd <= 'Z'
		lower := cmd
		if abs {
			lower = cmd - 'A' + 'a'
		}

		switch lower {
		case 'm':
			x, y, ok := readPair(toks, &i)
			if !ok {
				return segs
			}
			if !abs {
				x, y = curX+x, curY+y
			}
			curX, curY = x, y
			startX, startY = x, y
			segs = append(segs, pathSeg{kind: segMoveTo, x: x, y: y})
			lastWasCubic, lastWasQuad = false, false
			// Subsequent coordinate pairs without a repeated command
			// letter are implicit lineto commands.
			cmd = ifByte(abs, 'L', 'l')

		case 'z':
			segs = append(segs, pathSeg{kind: segClose})
			curX, curY = startX, startY
			lastWasCubic, lastWasQuad = false, false

		case 'l':
			x, y, ok := readPair(toks, &i)
			if !ok {
				return segs
			}
			if !abs {
				x, y = curX+x, curY+y
			}
			curX, curY = x, y
			segs = append(segs, pathSeg{kind: segLineTo, x: x, y: y})
			lastWasCubic, lastWasQuad = false, false

		case 'h':
			x, ok := readOne(toks, &i)
			if !ok {
				return segs
			}
			if !abs {
				x = curX + x
			}
			curX = x
			segs = append(segs, pathSeg{kind: segLineTo, x: curX, y: curY})
			lastWasCubic, lastWasQuad = false, false

		case 'v':
			y, ok := readOne(toks, &i)
			if !ok {
				return segs
			}
			if !abs {
				y = curY + y
			}
			curY = y
			segs = append(segs, pathSeg{kind: segLineTo, x: curX, y: curY})
			lastWasCubic, lastWasQuad = false, false

		case 'c':
			x1, y1, ok1 := readPair(toks, &i)
			x2, y2, ok2 := readPair(toks, &i)
			x, y, ok3 := readPair(toks, &i)
			if !ok1 || !ok2 || !ok3 {
				return segs
			}
			if !abs {
				x1, y1 = curX+x1, curY+y1
				x2, y2 = curX+x2, curY+y2
				x, y = curX+x, curY+y
			}
			segs = append(segs, pathSeg{kind: segCubicTo, x1: x1, y1: y1, x2: x2, y2: y2, x: x, y: y})
			curX, curY = x, y
			lastCubicCX, lastCubicCY = x2, y2
			lastWasCubic, lastWasQuad = true, false

		case 's':
			x2, y2, ok1 := readPair(toks, &i)
			x, y, ok2 := readPair(toks, &i)
			if !ok1 || !ok2 {
				return segs
			}
			if !abs {
				x2, y2 = curX+x2, curY+y2
				x, y = curX+x, curY+y
			}
			var x1, y1 float64
			if lastWasCubic {
				x1, y1 = 2*curX-lastCubicCX, 2*curY-lastCubicCY
			} else {
				x1, y1 = curX, curY
			}
			segs = append(segs, pathSeg{kind: segCubicTo, x1: x1, y1: y1, x2: x2, y2: y2, x: x, y: y})
			curX, curY = x, y
			lastCubicCX, lastCubicCY = x2, y2
			lastWasCubic, lastWasQuad = true, false

		case 'q':
			x1, y1, ok1 := readPair(toks, &i)
			x, y, ok2 := readPair(toks, &i)
			if !ok1 || !ok2 {
				return segs
			}
			if !abs {
				x1, y1 = curX+x1, curY+y1
				x, y = curX+x, curY+y
			}
			cx1, cy1, cx2, cy2 := quadToCubic(curX, curY, x1, y1, x, y)
			segs = append(segs, pathSeg{kind: segCubicTo, x1: cx1, y1: cy1, x2: cx2, y2: cy2, x: x, y: y})
			curX, curY = x, y
			lastQuadCX, lastQuadCY = x1, y1
			lastWasQuad, lastWasCubic = true, false

		case 't':
			x, y, ok := readPair(toks, &i)
			if !ok {
				return segs
			}
			if !abs {
				x, y = curX+x, curY+y
			}
			var x1, y1 float64
			if lastWasQuad {
				x1, y1 = 2*curX-lastQuadCX, 2*curY-lastQuadCY
			} else {
				x1, y1 = curX, curY
			}
			cx1, cy1, cx2, cy2 := quadToCubic(curX, curY, x1, y1, x, y)
			segs = append(segs, pathSeg{kind: segCubicTo, x1: cx1, y1: cy1, x2: cx2, y2: cy2, x: x, y: y})
			curX, curY = x, y
			lastQuadCX, lastQuadCY = x1, y1
			lastWasQuad, lastWasCubic = true, false

		case 'a':
			rx, ok := readOne(toks, &i)
			if !ok {
				return segs
			}
			ry, ok := readOne(toks, &i)
			if !ok {
				return segs
			}
			xrot, ok := readOne(toks, &i)
			if !ok {
				return segs
			}
			large, ok := readFlag(toks, &i)
			if !ok {
				return segs
			}
			sweep, ok := readFlag(toks, &i)
			if !ok {
				return segs
			}
			x, y, ok := readPair(toks, &i)
			if !ok {
				return segs
			}
			if !abs {
				x, y = curX+x, curY+y
			}
			arcSegs := arcToCubics(curX, curY, rx, ry, xrot, large, sweep, x, y)
			segs = append(segs, arcSegs...)
			curX, curY = x, y
			lastWasCubic, lastWasQuad = false, false

		default:
			return segs
		}
	}

	return segs
}

func ifByte(cond bool, a, b byte) byte {
	if cond {
		return a
	}
	return b
}

func isCommandLetter(tok string) bool {
	if len(tok) != 1 {
		return false
	}
	c := tok[0]
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// tokenizePath splits path data into command letters and numbers; flag
// arguments (0/1 for arcs) are handled specially by readFlag since they
// may run together without separators: "0015" stays one token here, and
// readFlag peels one leading digit per flag slot, giving 0, 0, then 15.
func tokenizePath(d string) []string {
	var toks []string
	i, n := 0, len(d)
	for i < n {
		c := d[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isCommandLetter(string(c)):
			toks = append(toks, string(c))
			i++
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			start := i
			i++
			seenDot := d[start] == '.'
			seenExp := false
			for i < n {
				c := d[i]
				if c >= '0' && c <= '9' {
					i++
					continue
				}
				if c == '.' && !seenDot && !seenExp {
					seenDot = true
					i++
					continue
				}
				if (c == 'e' || c == 'E') && !seenExp {
					seenExp = true
					i++
					if i < n && (d[i] == '+' || d[i] == '-') {
						i++
					}
					continue
				}
				break
			}
			toks = append(toks, d[start:i])
		default:
			i++
		}
	}
	return toks
}

func readOne(toks []string, i *int) (float64, bool) {
	if *i >= len(toks) {
		return 0, false
	}
	n, err := strconv.ParseFloat(toks[*i], 64)
	if err != nil {
		return 0, false
	}
	*i++
	return n, true
}

func readPair(toks []string, i *int) (float64, float64, bool) {
	x, ok1 := readOne(toks, i)
	if !ok1 {
		return 0, 0, false
	}
	y, ok2 := readOne(toks, i)
	if !ok2 {
		return 0, 0, false
	}
	return x, y, true
}

// readFlag reads an arc sweep/large-arc flag, which is a single '0' or
// '1' and may be glued to the following number in the source text
// (already split into a digit run by tokenizePath); if the current token
// is longer than one character we peel off its leading digit.
func readFlag(toks []string, i *int) (bool, bool) {
	if *i >= len(toks) {
		return false, false
	}
	tok := toks[*i]
	if tok == "" {
		return false, false
	}
	if len(tok) == 1 && (tok == "0" || tok == "1") {
		*i++
		return tok == "1", true
	}
	// Glued form, e.g. "1010 10" tokenized as "1010" then "10": split
	// the leading flag digit off the front of the token in place.
	first := tok[0]
	if first != '0' && first != '1' {
		return false, false
	}
	rest := tok[1:]
	if rest == "" {
		*i++
	} else {
		toks[*i] = rest
	}
	return first == '1', true
}

func quadToCubic(x0, y0, x1, y1, x, y float64) (cx1, cy1, cx2, cy2 float64) {
	cx1 = x0 + 2.0/3.0*(x1-x0)
	cy1 = y0 + 2.0/3.0*(y1-y0)
	cx2 = x + 2.0/3.0*(x1-x)
	cy2 = y + 2.0/3.0*(y1-y)
	return
}

// arcToCubics decomposes an elliptical arc into cubic Bezier segments via
// the SVG endpoint-to-center conversion.
func arcToCubics(x0, y0, rx, ry, xAxisRotationDeg float64, largeArc, sweep bool, x, y float64) []pathSeg {
	if (x0 == x && y0 == y) || rx == 0 || ry == 0 {
		return []pathSeg{{kind: segLineTo, x: x, y: y}}
	}

	rx, ry = math.Abs(rx), math.Abs(ry)
	phi := xAxisRotationDeg * math.Pi / 180

	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	dx2, dy2 := (x0-x)/2, (y0-y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		scale := math.Sqrt(lambda)
		rx, ry = rx*scale, ry*scale
	}

	sign := 1.0
	if largeArc == sweep {
		sign = -1.0
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den > arcEpsilon {
		v := num / den
		if v < 0 {
			v = 0
		}
		coef = sign * math.Sqrt(v)
	}
	cxp := coef * (rx * y1p / ry)
	cyp := coef * -(ry * x1p / rx)

	cx := cosPhi*cxp - sinPhi*cyp + (x0+x)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y0+y)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		dot := ux*vx + uy*vy
		lenProd := math.Hypot(ux, uy) * math.Hypot(vx, vy)
		if lenProd < arcEpsilon {
			return 0
		}
		cosA := dot / lenProd
		if cosA > 1 {
			cosA = 1
		} else if cosA < -1 {
			cosA = -1
		}
		a := math.Acos(cosA)
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}

	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dtheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	segCount := int(math.Ceil(math.Abs(dtheta) / (math.Pi / 2)))
	if segCount < 1 {
		segCount = 1
	}
	delta := dtheta / float64(segCount)
	alpha := 4.0 / 3.0 * math.Tan(delta/4)

	segs := make([]pathSeg, 0, segCount)
	t := theta1
	for i := 0; i < segCount; i++ {
		t2 := t + delta

		cosT, sinT := math.Cos(t), math.Sin(t)
		cosT2, sinT2 := math.Cos(t2), math.Sin(t2)

		ex1, ey1 := ellipsePoint(cx, cy, rx, ry, cosPhi, sinPhi, cosT, sinT)
		ex2, ey2 := ellipsePoint(cx, cy, rx, ry, cosPhi, sinPhi, cosT2, sinT2)

		dEx1, dEy1 := ellipseDerivative(rx, ry, cosPhi, sinPhi, cosT, sinT)
		dEx2, dEy2 := ellipseDerivative(rx, ry, cosPhi, sinPhi, cosT2, sinT2)

		cp1x, cp1y := ex1+alpha*dEx1, ey1+alpha*dEy1
		cp2x, cp2y := ex2-alpha*dEx2, ey2-alpha*dEy2

		segs = append(segs, pathSeg{kind: segCubicTo, x1: cp1x, y1: cp1y, x2: cp2x, y2: cp2y, x: ex2, y: ey2})
		t = t2
	}
	return segs
}

func ellipsePoint(cx, cy, rx, ry, cosPhi, sinPhi, cosT, sinT float64) (float64, float64) {
	x := rx * cosT
	y := ry * sinT
	return cx + cosPhi*x - sinPhi*y, cy + sinPhi*x + cosPhi*y
}

func ellipseDerivative(rx, ry, cosPhi, sinPhi, cosT, sinT float64) (float64, float64) {
	dx := -rx * sinT
	dy := ry * cosT
	return cosPhi*dx - sinPhi*dy, sinPhi*dx + cosPhi*dy
}

// trimSpaceCommas replaces each comma with a space, leaving other
// whitespace as it is; nothing in this package calls it.
func trimSpaceCommas(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' {
			return ' '
		}
		return r
	}, s)
}
