package filter

import (
	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// ValidateDocument walks every `<filter>` element and checks that each
// of its primitive children is one this pipeline supports. Under
// StrictMode, an unsupported primitive fails the render unless
// AllowUnsupportedFilterFallback is also set. In every other case the
// unsupported names are returned without an error and the filter is
// still applied, with Apply skipping the primitives it does not support.
func ValidateDocument(root *xmlnode.Node, opts svgtypes.RenderOptions) ([]string, error) {
	var unsupported []string
	var walk func(n *xmlnode.Node)
	walk = func(n *xmlnode.Node) {
		if n == nil {
			return
		}
		if xmlnode.LocalName(n.Tag) == "filter" {
			for _, c := range n.Children {
				tag := xmlnode.LocalName(c.Tag)
				if len(tag) > 2 && tag[:2] == "fe" && !SupportedKinds[Kind(tag)] {
					unsupported = append(unsupported, tag)
				}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)

	if len(unsupported) == 0 {
		return nil, nil
	}
	if opts.StrictMode && !opts.AllowUnsupportedFilterFallback {
		return unsupported, svgtypes.NewError(svgtypes.ErrUnsupportedFeature, "unsupported filter primitives: %v", unsupported)
	}
	return unsupported, nil
}

// IsUnsupportedFallback reports whether a filter node (the `<filter>`
// element itself) contains any primitive outside SupportedKinds. The
// painter consults it only under StrictMode without
// AllowUnsupportedFilterFallback, where such a filter is not applied.
func IsUnsupportedFallback(filterNode *xmlnode.Node) bool {
	for _, c := range filterNode.Children {
		tag := xmlnode.LocalName(c.Tag)
		if len(tag) > 2 && tag[:2] == "fe" && !SupportedKinds[Kind(tag)] {
			return true
		}
	}
	return false
}
