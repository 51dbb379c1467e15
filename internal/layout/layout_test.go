package layout

import (
	"testing"

	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, svg string, opts svgtypes.RenderOptions) svgtypes.LayoutResult {
	t.Helper()
	root, err := xmlnode.Parse(svg)
	require.NoError(t, err)
	result, err := Resolve(root, opts)
	require.NoError(t, err)
	return result
}

func TestResolveExplicitDimensions(t *testing.T) {
	r := resolve(t, `<svg width="40" height="30"></svg>`, svgtypes.DefaultRenderOptions())
	assert.Equal(t, 40, r.Width)
	assert.Equal(t, 30, r.Height)
	assert.Equal(t, 0.0, r.ViewBoxX)
	assert.Equal(t, 40.0, r.ViewBoxWidth)
}

func TestResolveDefaultDimensions(t *testing.T) {
	r := resolve(t, `<svg></svg>`, svgtypes.DefaultRenderOptions())
	assert.Equal(t, 300, r.Width)
	assert.Equal(t, 150, r.Height)
}

func TestResolveViewBoxFallback(t *testing.T) {
	r := resolve(t, `<svg viewBox="0 0 100 50"></svg>`, svgtypes.DefaultRenderOptions())
	assert.Equal(t, 100, r.Width)
	assert.Equal(t, 50, r.Height)
}

func TestResolveScale(t *testing.T) {
	opts := svgtypes.DefaultRenderOptions()
	opts.Scale = 2
	r := resolve(t, `<svg width="40" height="30"></svg>`, opts)
	assert.Equal(t, 80, r.Width)
	assert.Equal(t, 60, r.Height)
}

func TestResolveInvalidZeroDimension(t *testing.T) {
	root, err := xmlnode.Parse(`<svg width="0" height="30"></svg>`)
	require.NoError(t, err)
	_, err = Resolve(root, svgtypes.DefaultRenderOptions())
	assert.Error(t, err)
}
