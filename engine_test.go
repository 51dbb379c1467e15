package svgraster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-graphics/svgraster"
)

func pixelAt(img *svgraster.Image, x, y int) (r, g, b, a byte) {
	i := (y*img.Width + x) * 4
	return img.Pixels[i], img.Pixels[i+1], img.Pixels[i+2], img.Pixels[i+3]
}

func TestRenderFilledRectIsOpaqueRed(t *testing.T) {
	svg := `<svg width="10" height="10"><rect x="0" y="0" width="10" height="10" fill="red"/></svg>`
	img, err := svgraster.Render([]byte(svg))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Width)
	assert.Equal(t, 10, img.Height)
	r, g, b, a := pixelAt(img, 5, 5)
	assert.Equal(t, byte(255), r)
	assert.Equal(t, byte(0), g)
	assert.Equal(t, byte(0), b)
	assert.Equal(t, byte(255), a)
}

func TestRenderOriginIsTopLeft(t *testing.T) {
	svg := `<svg width="20" height="20">
		<rect x="0" y="0" width="10" height="10" fill="blue"/>
		<rect x="10" y="10" width="10" height="10" fill="green"/>
	</svg>`
	img, err := svgraster.Render([]byte(svg))
	require.NoError(t, err)

	r, g, b, _ := pixelAt(img, 2, 2)
	assert.Equal(t, byte(0), r)
	assert.Equal(t, byte(0), g)
	assert.Equal(t, byte(255), b)

	r, g, b, _ = pixelAt(img, 15, 15)
	assert.Equal(t, byte(0), r)
	assert.Greater(t, g, byte(0))
	assert.Equal(t, byte(0), b)
}

func TestRenderCurrentColorInheritance(t *testing.T) {
	svg := `<svg width="4" height="4" color="#00ff00">
		<rect x="0" y="0" width="4" height="4" fill="currentColor"/>
	</svg>`
	img, err := svgraster.Render([]byte(svg))
	require.NoError(t, err)
	r, g, b, _ := pixelAt(img, 1, 1)
	assert.Equal(t, byte(0), r)
	assert.Equal(t, byte(255), g)
	assert.Equal(t, byte(0), b)
}

func TestRenderInvalidRootRejected(t *testing.T) {
	_, err := svgraster.Render([]byte(`<notsvg/>`))
	require.Error(t, err)
	rerr, ok := err.(*svgraster.RenderError)
	require.True(t, ok)
	assert.Equal(t, svgraster.ErrInvalidDocument, rerr.Kind)
}

func TestRenderExternalResourceBlockedByDefault(t *testing.T) {
	svg := `<svg width="4" height="4">
		<image href="http://example.com/x.png" x="0" y="0" width="4" height="4"/>
	</svg>`
	_, err := svgraster.Render([]byte(svg))
	require.Error(t, err)
	rerr, ok := err.(*svgraster.RenderError)
	require.True(t, ok)
	assert.Equal(t, svgraster.ErrExternalResourceBlocked, rerr.Kind)
}

func TestRenderViewportOverrideScalesOutput(t *testing.T) {
	svg := `<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="black"/></svg>`
	img, err := svgraster.Render([]byte(svg), svgraster.WithViewport(40, 40))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 40, img.Height)
}

func TestRenderDashedStrokeProducesGaps(t *testing.T) {
	svg := `<svg width="20" height="2">
		<line x1="0" y1="1" x2="20" y2="1" stroke="black" stroke-width="2" stroke-dasharray="4 4"/>
	</svg>`
	img, err := svgraster.Render([]byte(svg))
	require.NoError(t, err)
	r1, _, _, a1 := pixelAt(img, 1, 1)
	r2, _, _, a2 := pixelAt(img, 6, 1)
	_ = r1
	_ = r2
	assert.NotEqual(t, a1, a2)
}
