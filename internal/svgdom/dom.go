// Package svgdom validates the parsed node tree's root and wraps it as an
// SVG document.
package svgdom

import (
	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// Document is a thin wrapper over the root `svg` element.
type Document struct {
	Root *xmlnode.Node
}

// New validates that root is an `svg` element and wraps it. No mutation.
func New(root *xmlnode.Node) (*Document, error) {
	if root == nil || xmlnode.LocalName(root.Tag) != "svg" {
		tag := ""
		if root != nil {
			tag = root.Tag
		}
		return nil, svgtypes.NewError(svgtypes.ErrInvalidDocument, "root element must be <svg>, got %q", tag)
	}
	return &Document{Root: root}, nil
}
