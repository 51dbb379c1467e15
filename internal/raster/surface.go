// Package raster owns the destination pixel buffer: it is the single
// point of truth for the output pixel layout (premultiplied RGBA,
// row-major, SVG's top-left origin).
package raster

import (
	"image"

	"github.com/fogleman/gg"
)

// Surface owns a width*height*4 premultiplied-RGBA byte buffer and the
// gg.Context bound to it that the painter draws through.
type Surface struct {
	ctx           *gg.Context
	width, height int
}

// New creates a surface of the given pixel dimensions. If background
// alpha is > 0, the surface is cleared to that color; alpha == 0 means
// "no clear" (fully transparent).
func New(width, height int, bgR, bgG, bgB, bgA float64) *Surface {
	ctx := gg.NewContext(width, height)
	if bgA > 0 {
		ctx.SetRGBA(bgR, bgG, bgB, bgA)
		ctx.Clear()
	}
	return &Surface{ctx: ctx, width: width, height: height}
}

// Context returns the drawable context bound to this surface's memory.
func (s *Surface) Context() *gg.Context { return s.ctx }

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Image returns the underlying image; gg.Context's backing store is an
// *image.RGBA, whose in-memory representation (premultiplied alpha,
// row-major, top-left origin) is already this package's contract, so no
// additional Y-flip or premultiplication pass is required on extraction.
// The painter applies no per-element Y-flip either: text and images are
// drawn at device-space points computed through the current transform.
func (s *Surface) Image() *image.RGBA {
	return s.ctx.Image().(*image.RGBA)
}

// Extract returns the premultiplied RGBA byte buffer, row-major,
// top-to-bottom, 4 bytes per pixel in R,G,B,A order.
func (s *Surface) Extract() []byte {
	img := s.Image()
	if img.Stride == s.width*4 {
		out := make([]byte, len(img.Pix))
		copy(out, img.Pix)
		return out
	}
	out := make([]byte, s.width*s.height*4)
	for y := 0; y < s.height; y++ {
		srcOff := y * img.Stride
		dstOff := y * s.width * 4
		copy(out[dstOff:dstOff+s.width*4], img.Pix[srcOff:srcOff+s.width*4])
	}
	return out
}
