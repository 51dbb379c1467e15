// Package layout resolves the outer viewport and viewBox of the root
// `svg` element into pixel dimensions.
package layout

import (
	"strconv"
	"strings"

	"github.com/inkwell-graphics/svgraster/internal/geometry"
	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// ViewBox is a user-space rectangle mapped into the viewport.
type ViewBox struct {
	X, Y, Width, Height float64
	Present             bool
}

// ParseViewBox parses the `viewBox` attribute's four whitespace/comma
// separated numbers.
func ParseViewBox(s string) (ViewBox, bool) {
	fields := splitNumbers(s)
	if len(fields) != 4 {
		return ViewBox{}, false
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, false
		}
		vals[i] = n
	}
	return ViewBox{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3], Present: true}, true
}

func splitNumbers(s string) []string {
	s = strings.ReplaceAll(s, ",", " ")
	return strings.Fields(s)
}

// Resolve computes the final pixel LayoutResult for the root svg node
// given the caller's RenderOptions.
func Resolve(root *xmlnode.Node, opts svgtypes.RenderOptions) (svgtypes.LayoutResult, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	vb, hasVB := ParseViewBox(root.AttrOr("viewBox", ""))

	fallbackW, fallbackH := 300.0, 150.0
	if opts.ViewportWidth > 0 && opts.ViewportHeight > 0 {
		fallbackW, fallbackH = float64(opts.ViewportWidth), float64(opts.ViewportHeight)
	} else if hasVB && vb.Width > 0 && vb.Height > 0 {
		fallbackW, fallbackH = vb.Width, vb.Height
	}

	w := resolveRootLength(root.AttrOr("width", ""), fallbackW)
	h := resolveRootLength(root.AttrOr("height", ""), fallbackH)

	pixelW := int(w * scale)
	pixelH := int(h * scale)

	if pixelW <= 0 || pixelH <= 0 {
		return svgtypes.LayoutResult{}, svgtypes.NewError(svgtypes.ErrInvalidDocument, "resolved viewport dimensions must be positive, got %dx%d", pixelW, pixelH)
	}

	result := svgtypes.LayoutResult{Width: pixelW, Height: pixelH}
	if hasVB {
		result.ViewBoxX, result.ViewBoxY = vb.X, vb.Y
		result.ViewBoxWidth, result.ViewBoxHeight = vb.Width, vb.Height
	} else {
		result.ViewBoxWidth, result.ViewBoxHeight = w, h
	}
	return result, nil
}

// resolveRootLength parses the root width/height attribute, resolving a
// trailing '%' against fallback and converting unit suffixes to CSS
// pixels at 96 DPI.
func resolveRootLength(s string, fallback float64) float64 {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	pl := geometry.ParseLength(s)
	if !pl.OK {
		return fallback
	}
	return pl.ToPixels(fallback, 16)
}
