package filter

import (
	"image"
	"image/draw"
)

// toPremultipliedRGBA copies any image.Image (straight or premultiplied
// alpha) into a fresh premultiplied *image.RGBA the pipeline can keep
// operating on; draw.Draw with draw.Src performs the premultiplication
// via each source pixel's color.Color.RGBA() method.
func toPremultipliedRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}
