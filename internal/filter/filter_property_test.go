package filter

import (
	"fmt"
	"image"
	"testing"

	"pgregory.net/rapid"

	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// TestNumOctavesAlwaysClamped checks feTurbulence's numOctaves attribute
// always resolves into [1,8] regardless of the raw input value, the
// property a maintainer review flagged as previously unchecked.
func TestNumOctavesAlwaysClamped(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.IntRange(-1000, 1000).Draw(t, "numOctaves")
		node := &xmlnode.Node{Attrs: map[string]string{"numOctaves": fmt.Sprint(raw)}}
		got := clampInt(intAttr(node, "numOctaves", 1), 1, 8)
		if got < 1 || got > 8 {
			t.Fatalf("clampInt(%d) = %d, want in [1,8]", raw, got)
		}
	})
}

// TestFloatAttrPairSingleValueAppliesToBothAxes checks the one-value form
// of a two-axis attribute (stdDeviation, radius, baseFrequency) always
// produces equal x/y components.
func TestFloatAttrPairSingleValueAppliesToBothAxes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float64Range(0, 100).Draw(t, "v")
		node := &xmlnode.Node{Attrs: map[string]string{"stdDeviation": fmt.Sprint(v)}}
		x, y := floatAttrPair(node, "stdDeviation", 0)
		if x != y {
			t.Fatalf("single-value form gave x=%v y=%v, want equal", x, y)
		}
	})
}

// TestFloatAttrPairTwoValuesKeepsAxesIndependent checks the two-value form
// round-trips each axis independently instead of collapsing to one value.
func TestFloatAttrPairTwoValuesKeepsAxesIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		vx := rapid.Float64Range(0, 100).Draw(t, "vx")
		vy := rapid.Float64Range(0, 100).Draw(t, "vy")
		node := &xmlnode.Node{Attrs: map[string]string{"stdDeviation": fmt.Sprintf("%v %v", vx, vy)}}
		x, y := floatAttrPair(node, "stdDeviation", 0)
		if x != vx || y != vy {
			t.Fatalf("floatAttrPair(%q) = (%v,%v), want (%v,%v)", node.Attrs["stdDeviation"], x, y, vx, vy)
		}
	})
}

// TestShiftBufferRoundTrip checks shifting a buffer by (dx,dy) and back by
// (-dx,-dy) restores every pixel that wasn't shifted out of bounds.
func TestShiftBufferRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(2, 12).Draw(t, "w")
		h := rapid.IntRange(2, 12).Draw(t, "h")
		dx := rapid.IntRange(-5, 5).Draw(t, "dx")
		dy := rapid.IntRange(-5, 5).Draw(t, "dy")

		src := image.NewRGBA(image.Rect(0, 0, w, h))
		for i := range src.Pix {
			src.Pix[i] = uint8((i * 37) % 256)
		}

		shifted := shiftBuffer(src, dx, dy)
		restored := shiftBuffer(shifted, -dx, -dy)

		b := src.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				sx, sy := x+dx, y+dy
				if sx < b.Min.X || sx >= b.Max.X || sy < b.Min.Y || sy >= b.Max.Y {
					continue
				}
				rx, ry := sx-dx, sy-dy
				if rx < b.Min.X || rx >= b.Max.X || ry < b.Min.Y || ry >= b.Max.Y {
					continue
				}
				si := src.PixOffset(x, y)
				ri := restored.PixOffset(x, y)
				if src.Pix[si] != restored.Pix[ri] {
					t.Fatalf("pixel (%d,%d) changed across shift round-trip with dx=%d dy=%d", x, y, dx, dy)
				}
			}
		}
	})
}

// TestClampIntAlwaysWithinBounds is a direct property check on the shared
// clampInt helper used by feTurbulence and elsewhere.
func TestClampIntAlwaysWithinBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.IntRange(-1000, 1000).Draw(t, "v")
		lo := rapid.IntRange(-10, 10).Draw(t, "lo")
		hi := lo + rapid.IntRange(0, 20).Draw(t, "span")
		got := clampInt(v, lo, hi)
		if got < lo || got > hi {
			t.Fatalf("clampInt(%d,%d,%d) = %d, out of bounds", v, lo, hi, got)
		}
	})
}
