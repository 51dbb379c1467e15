package paint

import (
	"math"
	"strconv"
	"strings"
)

// Matrix is a 2D affine transform: x' = A*x + C*y + E, y' = B*x + D*y + F.
// The painter keeps its own transform stack rather than driving gg's CTM
// directly, so every point handed to the raster context is already in
// device space and gg.Context itself stays at the identity matrix.
type Matrix struct {
	A, B, C, D, E, F float64
}

// IdentityMatrix is the neutral transform.
func IdentityMatrix() Matrix {
	return Matrix{A: 1, D: 1}
}

// Multiply returns m composed with n, applied as m then n (n(m(p))).
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
		E: m.E*n.A + m.F*n.C + n.E,
		F: m.E*n.B + m.F*n.D + n.F,
	}
}

// Apply transforms a point by the matrix.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// AvgScale returns a representative uniform scale factor, used to scale
// stroke width under non-uniform transforms without a full elliptical
// pen model.
func (m Matrix) AvgScale() float64 {
	sx := math.Hypot(m.A, m.B)
	sy := math.Hypot(m.C, m.D)
	return (sx + sy) / 2
}

func translateMatrix(tx, ty float64) Matrix  { return Matrix{A: 1, D: 1, E: tx, F: ty} }
func scaleMatrix(sx, sy float64) Matrix      { return Matrix{A: sx, D: sy} }
func rotateMatrix(deg float64) Matrix {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return Matrix{A: c, B: s, C: -s, D: c}
}
func skewXMatrix(deg float64) Matrix { return Matrix{A: 1, D: 1, C: math.Tan(deg * math.Pi / 180)} }
func skewYMatrix(deg float64) Matrix { return Matrix{A: 1, D: 1, B: math.Tan(deg * math.Pi / 180)} }

// ParseTransformList parses an SVG `transform` attribute value into a
// single composed matrix with SVG transform-list semantics: the list
// "T1 T2 ... Tn" maps a point p to T1(T2(...Tn(p))), so the rightmost
// function is applied to the point first.
func ParseTransformList(s string) Matrix {
	m := IdentityMatrix()
	i, n := 0, len(s)
	for i < n {
		for i < n && (s[i] == ' ' || s[i] == ',' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
			i++
		}
		start := i
		for i < n && s[i] != '(' {
			i++
		}
		if i >= n {
			break
		}
		name := strings.TrimSpace(s[start:i])
		i++ // skip '('
		argStart := i
		for i < n && s[i] != ')' {
			i++
		}
		args := parseTransformArgs(s[argStart:i])
		if i < n {
			i++ // skip ')'
		}

		var fm Matrix
		switch name {
		case "translate":
			tx := argAt(args, 0, 0)
			ty := argAt(args, 1, 0)
			fm = translateMatrix(tx, ty)
		case "scale":
			sx := argAt(args, 0, 1)
			sy := sx
			if len(args) > 1 {
				sy = args[1]
			}
			fm = scaleMatrix(sx, sy)
		case "rotate":
			angle := argAt(args, 0, 0)
			if len(args) >= 3 {
				cx, cy := args[1], args[2]
				fm = translateMatrix(-cx, -cy).Multiply(rotateMatrix(angle)).Multiply(translateMatrix(cx, cy))
			} else {
				fm = rotateMatrix(angle)
			}
		case "skewX":
			fm = skewXMatrix(argAt(args, 0, 0))
		case "skewY":
			fm = skewYMatrix(argAt(args, 0, 0))
		case "matrix":
			if len(args) == 6 {
				fm = Matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}
			} else {
				fm = IdentityMatrix()
			}
		default:
			fm = IdentityMatrix()
		}
		m = fm.Multiply(m)
	}
	return m
}

func argAt(args []float64, i int, def float64) float64 {
	if i < len(args) {
		return args[i]
	}
	return def
}

func parseTransformArgs(s string) []float64 {
	s = strings.ReplaceAll(s, ",", " ")
	fields := strings.Fields(s)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
