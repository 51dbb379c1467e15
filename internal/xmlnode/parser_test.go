package xmlnode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	root, err := Parse(`<svg width="40" height="30"><rect width="40" height="30" fill="#ff0000"/></svg>`)
	require.NoError(t, err)
	assert.Equal(t, "svg", root.Tag)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "rect", root.Children[0].Tag)
	assert.Equal(t, "#ff0000", root.Children[0].AttrOr("fill", ""))
}

func TestParseMismatchedTags(t *testing.T) {
	_, err := Parse(`<svg><rect></svg>`)
	assert.Error(t, err)
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)

	_, err = Parse("   \n\t  ")
	assert.Error(t, err)
}

func TestParseCharacterEntities(t *testing.T) {
	root, err := Parse(`<svg><text>a &amp; b &lt;c&gt; &#65; &#x42;</text></svg>`)
	require.NoError(t, err)
	assert.Equal(t, "a & b <c> A B", root.Children[0].Text)
}

func TestParseDoctypeEntityExpansion(t *testing.T) {
	doc := `<!DOCTYPE svg [<!ENTITY foo "bar">]><svg><text>&foo;</text></svg>`
	root, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "bar", root.Children[0].Text)
}

func TestParseBoundedBillionLaughs(t *testing.T) {
	var decls strings.Builder
	decls.WriteString(`<!DOCTYPE svg [`)
	decls.WriteString(`<!ENTITY a0 "x">`)
	for i := 1; i <= 10; i++ {
		decls.WriteString(`<!ENTITY a`)
		decls.WriteString(itoa(i))
		decls.WriteString(` "`)
		for j := 0; j < 2; j++ {
			decls.WriteString("&a")
			decls.WriteString(itoa(i - 1))
			decls.WriteString(";")
		}
		decls.WriteString(`">`)
	}
	decls.WriteString(`]>`)

	doc := decls.String() + `<svg><text>&a10;</text></svg>`

	root, err := Parse(doc)
	require.NoError(t, err)
	// Bounded to 8 passes: not every reference is guaranteed to fully
	// resolve, but parsing terminates and produces a tree rather than
	// hanging or panicking.
	assert.Equal(t, "svg", root.Tag)
	assert.NotNil(t, root.Children)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func TestParseSelfClosingAndNested(t *testing.T) {
	root, err := Parse(`<svg><g><rect/><circle r="1"/></g></svg>`)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	g := root.Children[0]
	assert.Equal(t, "g", g.Tag)
	require.Len(t, g.Children, 2)
	assert.Equal(t, "rect", g.Children[0].Tag)
	assert.Equal(t, "circle", g.Children[1].Tag)
}

func TestParseCommentsAndPIs(t *testing.T) {
	root, err := Parse(`<?xml version="1.0"?><!-- comment --><svg><!-- c2 --><rect/></svg>`)
	require.NoError(t, err)
	assert.Equal(t, "svg", root.Tag)
	require.Len(t, root.Children, 1)
}
