package filter

import (
	"image"
	"strconv"
	"strings"

	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// Apply evaluates a `<filter>` element's primitive chain against source
// (the element's own unfiltered premultiplied render, SourceGraphic)
// and returns the final composited buffer, same dimensions as source.
// Primitives this pipeline does not recognize are skipped, passing
// their input straight through — ValidateDocument is what decides
// whether an unsupported primitive should instead fail the render.
func Apply(filterNode *xmlnode.Node, source *image.RGBA, idmap map[string]*xmlnode.Node) *image.RGBA {
	bounds := source.Bounds()
	buffers := map[string]buffer{
		inSourceGraphic: source,
		inSourceAlpha:   alphaOnly(source),
	}
	var last buffer = source

	for _, c := range filterNode.Children {
		kind := Kind(xmlnode.LocalName(c.Tag))
		if !SupportedKinds[kind] {
			continue
		}

		in1 := resolveInput(c, "in", last, buffers, bounds)
		in2 := resolveInput(c, "in2", last, buffers, bounds)

		var out buffer
		switch kind {
		case KindGaussianBlur:
			out = gaussianBlur(c, in1)
		case KindOffset:
			out = offsetImage(c, in1)
		case KindColorMatrix:
			out = colorMatrix(c, in1)
		case KindComponentTransfer:
			out = componentTransfer(c, in1)
		case KindConvolveMatrix:
			out = convolveMatrix(c, in1)
		case KindMorphology:
			out = morphology(c, in1)
		case KindComposite:
			out = composite(c, in1, in2)
		case KindBlend:
			out = blendImages(c, in1, in2)
		case KindMerge:
			out = mergeLayers(c, buffers, last, bounds)
		case KindFlood:
			out = flood(c, bounds)
		case KindImage:
			out = feImage(c, bounds)
		case KindTile:
			out = tileImage(c, in1, bounds)
		case KindTurbulence:
			out = turbulence(c, bounds)
		case KindDisplacementMap:
			out = displacementMap(c, in1, in2)
		case KindDiffuseLighting:
			out = diffuseLighting(c, in1)
		case KindSpecularLighting:
			out = specularLighting(c, in1)
		}
		if out == nil {
			out = in1
		}
		if name, ok := c.Attr("result"); ok && name != "" {
			buffers[name] = out
		}
		last = out
	}
	return last
}

func resolveInput(node *xmlnode.Node, attr string, last buffer, buffers map[string]buffer, bounds image.Rectangle) buffer {
	name, ok := node.Attr(attr)
	if !ok || name == "" {
		if attr == "in2" {
			return nil
		}
		if last != nil {
			return last
		}
		return blank(bounds)
	}
	if b, ok := buffers[name]; ok {
		return b
	}
	switch name {
	case inBackgroundImage, inBackgroundAlpha, inFillPaint, inStrokePaint:
		return blank(bounds)
	}
	return blank(bounds)
}

func blank(bounds image.Rectangle) *image.RGBA {
	return image.NewRGBA(bounds)
}

func alphaOnly(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	for i := 0; i < len(img.Pix); i += 4 {
		a := img.Pix[i+3]
		out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = a, a, a, a
	}
	return out
}

func cloneImg(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

func floatAttr(node *xmlnode.Node, name string, def float64) float64 {
	v, ok := node.Attr(name)
	if !ok {
		return def
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return n
}

// floatAttrPair parses an attribute that may carry one value (applied to
// both axes) or two whitespace/comma separated values (x then y), per
// the filter primitives that define a two-axis form (stdDeviation,
// radius, baseFrequency).
func floatAttrPair(node *xmlnode.Node, name string, def float64) (x, y float64) {
	v, ok := node.Attr(name)
	if !ok {
		return def, def
	}
	fields := splitNumbers(v)
	switch len(fields) {
	case 1:
		n := atofOr(fields[0], def)
		return n, n
	case 2:
		return atofOr(fields[0], def), atofOr(fields[1], def)
	default:
		return def, def
	}
}

// shiftBuffer translates in by (dx,dy), leaving vacated pixels
// transparent.
func shiftBuffer(in buffer, dx, dy int) buffer {
	if dx == 0 && dy == 0 {
		return cloneImg(in)
	}
	b := in.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sx, sy := x-dx, y-dy
			if sx < b.Min.X || sx >= b.Max.X || sy < b.Min.Y || sy >= b.Max.Y {
				continue
			}
			si := in.PixOffset(sx, sy)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], in.Pix[si:si+4])
		}
	}
	return out
}

func intAttr(node *xmlnode.Node, name string, def int) int {
	v, ok := node.Attr(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func splitNumbers(s string) []string {
	s = strings.ReplaceAll(s, ",", " ")
	return strings.Fields(s)
}

func atoiStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func atofStrict(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
