// Package svgtypes holds the value shapes shared across the rendering
// pipeline: colors, geometry primitives, render options, errors, and the
// resolved per-element style bag.
package svgtypes

import "fmt"

// ErrorKind is the stable ordinal for a RenderError, suitable for a
// C-style ABI boundary.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrInvalidDocument
	ErrUnsupportedFeature
	ErrExternalResourceBlocked
	ErrExternalResourceFailed
	ErrRenderFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "None"
	case ErrInvalidDocument:
		return "InvalidDocument"
	case ErrUnsupportedFeature:
		return "UnsupportedFeature"
	case ErrExternalResourceBlocked:
		return "ExternalResourceBlocked"
	case ErrExternalResourceFailed:
		return "ExternalResourceFailed"
	case ErrRenderFailed:
		return "RenderFailed"
	default:
		return "Unknown"
	}
}

// RenderError is the {error_kind, message} pair surfaced by every stage of
// the pipeline.
type RenderError struct {
	Kind    ErrorKind
	Message string
}

func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewError(kind ErrorKind, format string, args ...any) *RenderError {
	return &RenderError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Point is a 2D coordinate in user space.
type Point struct {
	X, Y float64
}

// RenderOptions controls the top-level render call.
type RenderOptions struct {
	ViewportWidth, ViewportHeight int
	Scale                         float64

	BackgroundR, BackgroundG, BackgroundB, BackgroundA float64

	DefaultFontFamily string
	DefaultFontSize   float64

	EnableExternalResources bool

	// StrictMode and AllowUnsupportedFilterFallback gate the advisory
	// FilterGraph validator (see internal/filter). Unsupported primitives
	// are tolerated unless StrictMode is set and the fallback flag is not.
	StrictMode                     bool
	AllowUnsupportedFilterFallback bool
}

// DefaultRenderOptions returns the spec's baseline option set.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Scale:             1,
		DefaultFontFamily: "sans-serif",
		DefaultFontSize:   16,
	}
}

// Color is a 4-float color with explicit validity/none flags — consumers
// must check IsValid && !IsNone before painting with it.
type Color struct {
	R, G, B, A float64
	IsValid    bool
	IsNone     bool
}

// Opaque constructs a fully valid, non-none color.
func Opaque(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a, IsValid: true}
}

// None is the explicit `none` paint keyword.
func None() Color {
	return Color{IsValid: true, IsNone: true}
}

// Paintable reports whether c should be painted with.
func (c Color) Paintable() bool {
	return c.IsValid && !c.IsNone
}

// LayoutResult is the resolved pixel/viewBox geometry for a document.
type LayoutResult struct {
	Width, Height int

	ViewBoxX, ViewBoxY, ViewBoxWidth, ViewBoxHeight float64
}

// FillRule enumerates the `fill-rule` property.
type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// LineCap enumerates `stroke-linecap`.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin enumerates `stroke-linejoin`.
type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// TextAnchor enumerates `text-anchor`.
type TextAnchor int

const (
	TextAnchorStart TextAnchor = iota
	TextAnchorMiddle
	TextAnchorEnd
)

// PaintRef captures a raw paint property: a literal color, a url(#id)
// reference, or the currentColor keyword, kept as text until the painter
// resolves it against the ID map.
type PaintRef struct {
	Raw          string
	IsCurrentColor bool
	IsURL        bool
	URLID        string
	Resolved     Color
}

// ResolvedStyle is the cascaded property bag for one element.
type ResolvedStyle struct {
	Color Color

	FillRaw, StrokeRaw PaintRef
	FillColor, StrokeColor Color

	FillOpacity, StrokeOpacity, Opacity float64

	StrokeWidth      float64
	StrokeMiterLimit float64
	StrokeLineCap    LineCap
	StrokeLineJoin   LineJoin
	StrokeDashArray  []float64
	StrokeDashOffset float64

	FillRule FillRule

	FontFamily []string
	FontSize   float64
	FontWeight string
	FontStyle  string

	TextAnchor     TextAnchor
	LetterSpacing  float64
	WordSpacing    float64
	TextDecoration string

	Display    string
	Visibility string
}

// DefaultStyle is the root element's well-defined default style.
func DefaultStyle(opts RenderOptions) ResolvedStyle {
	family := opts.DefaultFontFamily
	if family == "" {
		family = "sans-serif"
	}
	size := opts.DefaultFontSize
	if size == 0 {
		size = 16
	}
	return ResolvedStyle{
		Color:            Opaque(0, 0, 0, 1),
		FillRaw:          PaintRef{Raw: "black"},
		FillColor:        Opaque(0, 0, 0, 1),
		StrokeRaw:        PaintRef{Raw: "none"},
		StrokeColor:      None(),
		FillOpacity:      1,
		StrokeOpacity:    1,
		Opacity:          1,
		StrokeWidth:      1,
		StrokeMiterLimit: 4,
		FillRule:         FillRuleNonZero,
		FontFamily:       []string{family},
		FontSize:         size,
		FontWeight:       "normal",
		FontStyle:        "normal",
		TextAnchor:       TextAnchorStart,
		Display:          "inline",
		Visibility:       "visible",
	}
}

// ShapeKind tags a ShapeGeometry variant.
type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	ShapeRect
	ShapeCircle
	ShapeEllipse
	ShapeLine
	ShapePolygon
	ShapePolyline
	ShapePath
	ShapeText
	ShapeImage
)

// ShapeGeometry carries the resolved numeric fields needed to draw an
// element; Path data is kept as the original command string and
// interpreted at paint time.
type ShapeGeometry struct {
	Kind ShapeKind

	// Rect
	X, Y, Width, Height, RX, RY float64

	// Circle / Ellipse
	CX, CY, R float64

	// Line
	X1, Y1, X2, Y2 float64

	// Polygon / Polyline
	Points []Point

	// Path
	PathData string

	// Text
	TextX, TextY float64
	TextValue    string

	// Image
	Href string
}
