package filter

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blend"

	"github.com/inkwell-graphics/svgraster/internal/style"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

func offsetImage(node *xmlnode.Node, in buffer) buffer {
	dx := int(math.Round(floatAttr(node, "dx", 0)))
	dy := int(math.Round(floatAttr(node, "dy", 0)))
	return shiftBuffer(in, dx, dy)
}

func flood(node *xmlnode.Node, bounds image.Rectangle) buffer {
	colorRaw := node.AttrOr("flood-color", "black")
	opacity := 1.0
	if v, ok := node.Attr("flood-opacity"); ok {
		if n, ok := style.ParseOpacity(v); ok {
			opacity = n
		}
	}
	c := style.ParseColor(colorRaw)
	c.A *= opacity
	nrgba := color.NRGBA{
		R: clampByte(c.R * 255), G: clampByte(c.G * 255), B: clampByte(c.B * 255), A: clampByte(c.A * 255),
	}
	out := image.NewRGBA(bounds)
	premul := color.RGBAModel.Convert(nrgba).(color.RGBA)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetRGBA(x, y, premul)
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// feImage only supports an already-decoded raster reference supplied
// via the `href` pointing at a data: URI; a reference to another
// document element's rendered form is not modeled.
func feImage(node *xmlnode.Node, bounds image.Rectangle) buffer {
	href := node.AttrOr("href", node.AttrOr("xlink:href", ""))
	img, ok := decodeDataHref(href)
	if !ok {
		return blank(bounds)
	}
	out := image.NewRGBA(bounds)
	sb := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sx, sy := sb.Min.X+(x-bounds.Min.X), sb.Min.Y+(y-bounds.Min.Y)
			if !(image.Point{sx, sy}.In(sb)) {
				continue
			}
			out.Set(x, y, img.At(sx, sy))
		}
	}
	return out
}

func tileImage(node *xmlnode.Node, in buffer, bounds image.Rectangle) buffer {
	sb := in.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return blank(bounds)
	}
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sx := sb.Min.X + mod(x-bounds.Min.X, sb.Dx())
			sy := sb.Min.Y + mod(y-bounds.Min.Y, sb.Dy())
			out.Set(x, y, in.At(sx, sy))
		}
	}
	return out
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func mergeLayers(node *xmlnode.Node, buffers map[string]buffer, last buffer, bounds image.Rectangle) buffer {
	out := image.NewRGBA(bounds)
	found := false
	for _, mn := range node.Children {
		if xmlnode.LocalName(mn.Tag) != "feMergeNode" {
			continue
		}
		found = true
		in := resolveInput(mn, "in", last, buffers, bounds)
		compositeOver(out, in)
	}
	if !found {
		return cloneImg(last)
	}
	return out
}

// compositeOver draws src onto dst with the standard Porter-Duff
// source-over operator, both already premultiplied.
func compositeOver(dst, src *image.RGBA) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := src.PixOffset(x, y)
			sr, sg, sb2, sa := src.Pix[si], src.Pix[si+1], src.Pix[si+2], src.Pix[si+3]
			if sa == 255 {
				di := dst.PixOffset(x, y)
				dst.Pix[di], dst.Pix[di+1], dst.Pix[di+2], dst.Pix[di+3] = sr, sg, sb2, sa
				continue
			}
			if sa == 0 {
				continue
			}
			di := dst.PixOffset(x, y)
			inv := 255 - int(sa)
			dst.Pix[di] = uint8(int(sr) + int(dst.Pix[di])*inv/255)
			dst.Pix[di+1] = uint8(int(sg) + int(dst.Pix[di+1])*inv/255)
			dst.Pix[di+2] = uint8(int(sb2) + int(dst.Pix[di+2])*inv/255)
			dst.Pix[di+3] = uint8(int(sa) + int(dst.Pix[di+3])*inv/255)
		}
	}
}

// composite implements feComposite's Porter-Duff operators plus the
// arithmetic mode.
func composite(node *xmlnode.Node, in1, in2 buffer) buffer {
	if in2 == nil {
		in2 = blank(in1.Bounds())
	}
	op := node.AttrOr("operator", "over")
	b := in1.Bounds()
	out := image.NewRGBA(b)

	if op == "arithmetic" {
		k1 := floatAttr(node, "k1", 0)
		k2 := floatAttr(node, "k2", 0)
		k3 := floatAttr(node, "k3", 0)
		k4 := floatAttr(node, "k4", 0)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				i1 := in1.PixOffset(x, y)
				i2 := in2.PixOffset(x, y)
				oi := out.PixOffset(x, y)
				// Pixels where both inputs have zero coverage stay
				// transparent regardless of k4 — otherwise a positive
				// k4 floods the whole filter region.
				if in1.Pix[i1+3] == 0 && in2.Pix[i2+3] == 0 {
					continue
				}
				for ch := 0; ch < 4; ch++ {
					a := float64(in1.Pix[i1+ch]) / 255
					bb := float64(in2.Pix[i2+ch]) / 255
					v := k1*a*bb + k2*a + k3*bb + k4
					out.Pix[oi+ch] = clampByte(v * 255)
				}
			}
		}
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i1 := in1.PixOffset(x, y)
			i2 := in2.PixOffset(x, y)
			oi := out.PixOffset(x, y)
			fa := float64(in1.Pix[i1+3]) / 255
			fb := float64(in2.Pix[i2+3]) / 255
			var ca, cb float64
			switch op {
			case "in":
				ca, cb = fb, 0
			case "out":
				ca, cb = 1-fb, 0
			case "atop":
				ca, cb = fb, 1-fa
			case "xor":
				ca, cb = 1-fb, 1-fa
			default: // over
				ca, cb = 1, 1-fa
			}
			for ch := 0; ch < 4; ch++ {
				v := ca*float64(in1.Pix[i1+ch]) + cb*float64(in2.Pix[i2+ch])
				out.Pix[oi+ch] = clampByte(v)
			}
		}
	}
	return out
}

// blendImages implements feBlend's separable blend modes via bild/blend,
// falling back to a plain source-over composite for "normal".
func blendImages(node *xmlnode.Node, in1, in2 buffer) buffer {
	if in2 == nil {
		in2 = blank(in1.Bounds())
	}
	mode := node.AttrOr("mode", "normal")
	var blended image.Image
	switch mode {
	case "multiply":
		blended = blend.Multiply(in2, in1)
	case "screen":
		blended = blend.Screen(in2, in1)
	case "darken":
		blended = blend.Darken(in2, in1)
	case "lighten":
		blended = blend.Lighten(in2, in1)
	case "overlay":
		blended = blend.Overlay(in2, in1)
	case "color-dodge":
		blended = blend.ColorDodge(in2, in1)
	case "color-burn":
		blended = blend.ColorBurn(in2, in1)
	case "hard-light":
		blended = blend.HardLight(in2, in1)
	case "soft-light":
		blended = blend.SoftLight(in2, in1)
	case "difference":
		blended = blend.Difference(in2, in1)
	case "exclusion":
		blended = blend.Exclusion(in2, in1)
	default:
		out := cloneImg(in2)
		compositeOver(out, in1)
		return out
	}
	merged := toPremultipliedRGBA(blended)
	out := cloneImg(in2)
	compositeOver(out, merged)
	return out
}
