// Package resource enumerates external URL references in a document and
// enforces the external-resource policy.
package resource

import (
	"strings"

	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// hrefAttrs are the attribute names that carry a resource reference.
var hrefAttrs = []string{"href", "xlink:href"}

// IsRemote reports whether a URL has an http/https scheme.
func IsRemote(url string) bool {
	low := strings.ToLower(url)
	return strings.HasPrefix(low, "http://") || strings.HasPrefix(low, "https://")
}

// IsAllowedAlways reports whether a URL is always permitted regardless of
// policy: fragments, data URLs, and local paths.
func IsAllowedAlways(url string) bool {
	if url == "" {
		return true
	}
	if strings.HasPrefix(url, "#") {
		return true
	}
	if strings.HasPrefix(strings.ToLower(url), "data:") {
		return true
	}
	return !IsRemote(url)
}

// Validate walks the tree and collects every href reference; when
// enableExternal is false, any remote reference fails the render.
func Validate(root *xmlnode.Node, enableExternal bool) error {
	var found error
	walk(root, func(n *xmlnode.Node) {
		if found != nil {
			return
		}
		for _, attr := range hrefAttrs {
			v, ok := n.Attr(attr)
			if !ok || v == "" {
				continue
			}
			if !enableExternal && IsRemote(v) {
				found = svgtypes.NewError(svgtypes.ErrExternalResourceBlocked, "external resource blocked: %s", v)
				return
			}
		}
	})
	return found
}

// Collect returns every remote, non-fragment, non-data-URL reference in
// the document so a host can preflight them before calling render.
func Collect(root *xmlnode.Node) []string {
	var urls []string
	walk(root, func(n *xmlnode.Node) {
		for _, attr := range hrefAttrs {
			v, ok := n.Attr(attr)
			if ok && v != "" && IsRemote(v) {
				urls = append(urls, v)
			}
		}
	})
	return urls
}

func walk(n *xmlnode.Node, visit func(*xmlnode.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		walk(c, visit)
	}
}
