// Package filter implements the SVG filter-primitive pipeline: a
// directed graph of named buffers (SourceGraphic, SourceAlpha, and each
// primitive's own result) evaluated into a final premultiplied RGBA
// image the same size as the filtered element's render.
package filter

import "image"

// Kind enumerates the supported filter primitive element names.
type Kind string

const (
	KindGaussianBlur      Kind = "feGaussianBlur"
	KindOffset            Kind = "feOffset"
	KindColorMatrix       Kind = "feColorMatrix"
	KindComponentTransfer Kind = "feComponentTransfer"
	KindConvolveMatrix    Kind = "feConvolveMatrix"
	KindMorphology        Kind = "feMorphology"
	KindComposite         Kind = "feComposite"
	KindBlend             Kind = "feBlend"
	KindMerge             Kind = "feMerge"
	KindFlood             Kind = "feFlood"
	KindImage             Kind = "feImage"
	KindTile              Kind = "feTile"
	KindTurbulence        Kind = "feTurbulence"
	KindDisplacementMap   Kind = "feDisplacementMap"
	KindDiffuseLighting   Kind = "feDiffuseLighting"
	KindSpecularLighting  Kind = "feSpecularLighting"
)

// SupportedKinds is the complete set of primitives this pipeline
// evaluates; ValidateDocument flags anything outside this set.
var SupportedKinds = map[Kind]bool{
	KindGaussianBlur: true, KindOffset: true, KindColorMatrix: true,
	KindComponentTransfer: true, KindConvolveMatrix: true, KindMorphology: true,
	KindComposite: true, KindBlend: true, KindMerge: true, KindFlood: true,
	KindImage: true, KindTile: true, KindTurbulence: true,
	KindDisplacementMap: true, KindDiffuseLighting: true, KindSpecularLighting: true,
}

// buffer is a named intermediate result: premultiplied RGBA, fixed to
// the filter region's pixel dimensions.
type buffer = *image.RGBA

// reservedInputs are the well-known input names besides a previous
// primitive's result or an explicit result= reference.
const (
	inSourceGraphic = "SourceGraphic"
	inSourceAlpha   = "SourceAlpha"
	inBackgroundImage = "BackgroundImage"
	inBackgroundAlpha = "BackgroundAlpha"
	inFillPaint       = "FillPaint"
	inStrokePaint     = "StrokePaint"
)
