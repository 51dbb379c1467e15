package paint

import "github.com/inkwell-graphics/svgraster/internal/xmlnode"

// buildIDMap walks the document once and indexes every `id` attribute,
// first occurrence wins on duplicates.
func buildIDMap(root *xmlnode.Node) map[string]*xmlnode.Node {
	m := map[string]*xmlnode.Node{}
	var walk func(n *xmlnode.Node)
	walk = func(n *xmlnode.Node) {
		if n == nil {
			return
		}
		if id, ok := n.Attr("id"); ok && id != "" {
			if _, exists := m[id]; !exists {
				m[id] = n
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return m
}

// definitionTags are never painted directly; they are only reachable
// through a url() reference or a `<use>` shadow tree.
var definitionTags = map[string]bool{
	"defs":          true,
	"linearGradient": true,
	"radialGradient": true,
	"stop":          true,
	"pattern":       true,
	"clipPath":      true,
	"mask":          true,
	"marker":        true,
	"color-profile": true,
	"symbol":        true,
	"title":         true,
	"desc":          true,
	"metadata":      true,
	"script":        true,
	"style":         true,
}
