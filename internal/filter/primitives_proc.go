package filter

import (
	"image"
	"math"

	"github.com/inkwell-graphics/svgraster/internal/style"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// turbulence implements feTurbulence with a hand-rolled Perlin gradient
// noise (quintic fade, per-channel gradient tables filled from `seed` by a
// 64-bit LCG), evaluated at buffer pixel coordinates. stitchTiles is not
// read; tiles are never stitched.
func turbulence(node *xmlnode.Node, bounds image.Rectangle) buffer {
	baseFreq := splitNumbers(node.AttrOr("baseFrequency", "0"))
	fx, fy := 0.0, 0.0
	if len(baseFreq) >= 1 {
		fx = atofOr(baseFreq[0], 0)
		fy = fx
	}
	if len(baseFreq) >= 2 {
		fy = atofOr(baseFreq[1], 0)
	}
	octaves := clampInt(intAttr(node, "numOctaves", 1), 1, 8)
	seed := int64(floatAttr(node, "seed", 0))
	fractalNoise := node.AttrOr("type", "turbulence") == "fractalNoise"

	noise := newPerlinNoise(seed)
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var channels [4]float64
			for ch := 0; ch < 4; ch++ {
				sum := 0.0
				freqX, freqY := fx, fy
				amp := 1.0
				for o := 0; o < octaves; o++ {
					n := noise.noise2(ch, float64(x)*freqX, float64(y)*freqY)
					if fractalNoise {
						sum += n * amp
					} else {
						sum += math.Abs(n) * amp
					}
					freqX *= 2
					freqY *= 2
					amp *= 0.5
				}
				if fractalNoise {
					sum = (sum + 1) / 2
				}
				channels[ch] = clamp01(sum)
			}
			a := channels[3]
			oi := out.PixOffset(x, y)
			out.Pix[oi] = clampByte(channels[0] * a * 255)
			out.Pix[oi+1] = clampByte(channels[1] * a * 255)
			out.Pix[oi+2] = clampByte(channels[2] * a * 255)
			out.Pix[oi+3] = clampByte(a * 255)
		}
	}
	return out
}

type perlinNoise struct {
	perm [4][256]int
	grad [4][256][2]float64
}

func newPerlinNoise(seed int64) *perlinNoise {
	rnd := newLCG(seed)
	p := &perlinNoise{}
	for ch := 0; ch < 4; ch++ {
		for i := 0; i < 256; i++ {
			p.perm[ch][i] = i
			angle := rnd.next() * 2 * math.Pi
			p.grad[ch][i] = [2]float64{math.Cos(angle), math.Sin(angle)}
		}
		for i := 255; i > 0; i-- {
			j := int(rnd.next() * float64(i+1))
			p.perm[ch][i], p.perm[ch][j] = p.perm[ch][j], p.perm[ch][i]
		}
	}
	return p
}

func (p *perlinNoise) noise2(ch int, x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	g00 := p.gradAt(ch, xi, yi)
	g10 := p.gradAt(ch, xi+1, yi)
	g01 := p.gradAt(ch, xi, yi+1)
	g11 := p.gradAt(ch, xi+1, yi+1)

	d00 := g00[0]*xf + g00[1]*yf
	d10 := g10[0]*(xf-1) + g10[1]*yf
	d01 := g01[0]*xf + g01[1]*(yf-1)
	d11 := g11[0]*(xf-1) + g11[1]*(yf-1)

	u := fade(xf)
	v := fade(yf)
	return lerp(v, lerp(u, d00, d10), lerp(u, d01, d11))
}

func (p *perlinNoise) gradAt(ch, x, y int) [2]float64 {
	idx := p.perm[ch][(x+p.perm[ch][y&255])&255]
	return p.grad[ch][idx]
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

type lcg struct{ state uint64 }

func newLCG(seed int64) *lcg { return &lcg{state: uint64(seed) ^ 0x9E3779B97F4A7C15} }

func (r *lcg) next() float64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return float64((r.state>>33)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// displacementMap implements feDisplacementMap, sampling in1 offset by
// in2's selected channel pair scaled by `scale`.
func displacementMap(node *xmlnode.Node, in1, in2 buffer) buffer {
	if in2 == nil {
		return cloneImg(in1)
	}
	scale := floatAttr(node, "scale", 0)
	xCh := channelIndex(node.AttrOr("xChannelSelector", "A"))
	yCh := channelIndex(node.AttrOr("yChannelSelector", "A"))

	b := in1.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			di := in2.PixOffset(x, y)
			dx := (float64(in2.Pix[di+xCh])/255 - 0.5) * scale
			dy := (float64(in2.Pix[di+yCh])/255 - 0.5) * scale
			sx := x + int(math.Round(dx))
			sy := y + int(math.Round(dy))
			oi := out.PixOffset(x, y)
			if sx < b.Min.X || sx >= b.Max.X || sy < b.Min.Y || sy >= b.Max.Y {
				continue
			}
			si := in1.PixOffset(sx, sy)
			copy(out.Pix[oi:oi+4], in1.Pix[si:si+4])
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func channelIndex(name string) int {
	switch name {
	case "R":
		return 0
	case "G":
		return 1
	case "B":
		return 2
	default:
		return 3
	}
}

// diffuseLighting and specularLighting estimate a surface normal from
// the alpha channel's gradient (a bump map) and shade it with a single
// distant or point light, per the spec's simplified lighting model.
func diffuseLighting(node *xmlnode.Node, in buffer) buffer {
	surfaceScale := floatAttr(node, "surfaceScale", 1)
	diffuseConstant := floatAttr(node, "diffuseConstant", 1)
	lightColor, lx, ly, lz := resolveLight(node)

	b := in.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			nx, ny, nz := surfaceNormal(in, x, y, surfaceScale)
			ldx, ldy, ldz := normalizeLightDir(lx, ly, lz, x, y, surfaceScale*alphaAt(in, x, y))
			ndotl := nx*ldx + ny*ldy + nz*ldz
			if ndotl < 0 {
				ndotl = 0
			}
			r := clamp01(diffuseConstant * ndotl * lightColor[0])
			g := clamp01(diffuseConstant * ndotl * lightColor[1])
			bl := clamp01(diffuseConstant * ndotl * lightColor[2])
			oi := out.PixOffset(x, y)
			out.Pix[oi] = clampByte(r * 255)
			out.Pix[oi+1] = clampByte(g * 255)
			out.Pix[oi+2] = clampByte(bl * 255)
			out.Pix[oi+3] = 255
		}
	}
	return out
}

func specularLighting(node *xmlnode.Node, in buffer) buffer {
	surfaceScale := floatAttr(node, "surfaceScale", 1)
	specularConstant := floatAttr(node, "specularConstant", 1)
	specularExponent := floatAttr(node, "specularExponent", 1)
	lightColor, lx, ly, lz := resolveLight(node)

	b := in.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			nx, ny, nz := surfaceNormal(in, x, y, surfaceScale)
			ldx, ldy, ldz := normalizeLightDir(lx, ly, lz, x, y, surfaceScale*alphaAt(in, x, y))
			hx, hy, hz := normalize3(ldx, ldy, ldz+1)
			ndoth := nx*hx + ny*hy + nz*hz
			if ndoth < 0 {
				ndoth = 0
			}
			spec := specularConstant * math.Pow(ndoth, specularExponent)
			r := clamp01(spec * lightColor[0])
			g := clamp01(spec * lightColor[1])
			bl := clamp01(spec * lightColor[2])
			a := clamp01(math.Max(r, math.Max(g, bl)))
			oi := out.PixOffset(x, y)
			out.Pix[oi] = clampByte(r * a * 255)
			out.Pix[oi+1] = clampByte(g * a * 255)
			out.Pix[oi+2] = clampByte(bl * a * 255)
			out.Pix[oi+3] = clampByte(a * 255)
		}
	}
	return out
}

func alphaAt(in buffer, x, y int) float64 {
	b := in.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return 0
	}
	i := in.PixOffset(x, y)
	return float64(in.Pix[i+3]) / 255
}

func surfaceNormal(in buffer, x, y int, surfaceScale float64) (float64, float64, float64) {
	nx := -surfaceScale * ((alphaAt(in, x+1, y-1) + 2*alphaAt(in, x+1, y) + alphaAt(in, x+1, y+1)) -
		(alphaAt(in, x-1, y-1) + 2*alphaAt(in, x-1, y) + alphaAt(in, x-1, y+1))) / 4
	ny := -surfaceScale * ((alphaAt(in, x-1, y+1) + 2*alphaAt(in, x, y+1) + alphaAt(in, x+1, y+1)) -
		(alphaAt(in, x-1, y-1) + 2*alphaAt(in, x, y-1) + alphaAt(in, x+1, y-1))) / 4
	return normalize3(nx, ny, 1)
}

func normalize3(x, y, z float64) (float64, float64, float64) {
	n := math.Sqrt(x*x + y*y + z*z)
	if n == 0 {
		return 0, 0, 1
	}
	return x / n, y / n, z / n
}

func resolveLight(node *xmlnode.Node) ([3]float64, float64, float64, float64) {
	color := [3]float64{1, 1, 1}
	if c, ok := node.Attr("lighting-color"); ok {
		col := style.ParseColor(c)
		color = [3]float64{col.R, col.G, col.B}
	}
	for _, c := range node.Children {
		switch xmlnode.LocalName(c.Tag) {
		case "feDistantLight":
			az := floatAttr(c, "azimuth", 0) * math.Pi / 180
			el := floatAttr(c, "elevation", 0) * math.Pi / 180
			return color, math.Cos(az) * math.Cos(el), math.Sin(az) * math.Cos(el), math.Sin(el)
		case "fePointLight", "feSpotLight":
			return color, floatAttr(c, "x", 0), floatAttr(c, "y", 0), floatAttr(c, "z", 0)
		}
	}
	return color, 0, 0, 1
}

// normalizeLightDir treats (lx,ly,lz) as a distant-light direction when
// its magnitude already looks like a unit-ish vector, otherwise as a
// point position to be converted into a per-pixel direction.
func normalizeLightDir(lx, ly, lz float64, x, y int, surfaceZ float64) (float64, float64, float64) {
	if lx*lx+ly*ly+lz*lz <= 1.01 {
		return normalize3(lx, ly, lz)
	}
	return normalize3(lx-float64(x), ly-float64(y), lz-surfaceZ)
}
