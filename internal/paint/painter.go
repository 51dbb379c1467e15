// Package paint implements the recursive painter: it walks the resolved
// DOM in rendering-tree order, maintaining a transform stack, a cascaded
// style at each node, and an active-id guard against `<use>`/pattern
// reference cycles, drawing directly onto a gg.Context bound to the
// destination raster surface.
package paint

import (
	"image"
	"strings"

	"github.com/fogleman/gg"

	"github.com/inkwell-graphics/svgraster/internal/cssvalue"
	"github.com/inkwell-graphics/svgraster/internal/filter"
	"github.com/inkwell-graphics/svgraster/internal/geometry"
	"github.com/inkwell-graphics/svgraster/internal/layout"
	"github.com/inkwell-graphics/svgraster/internal/style"
	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// Painter owns the mutable state shared across one document's paint
// pass: the id map (for url() refs and `<use>`), the parsed inline
// stylesheet, and cycle guards.
type Painter struct {
	ctx            *gg.Context
	idmap          map[string]*xmlnode.Node
	options        svgtypes.RenderOptions
	sheet          *style.Sheet
	activeUse      map[string]bool
	activePatterns map[*xmlnode.Node]bool
	ctm            Matrix
}

// New builds a Painter for one document, bound to ctx.
func New(ctx *gg.Context, root *xmlnode.Node, opts svgtypes.RenderOptions) *Painter {
	return &Painter{
		ctx:            ctx,
		idmap:          buildIDMap(root),
		options:        opts,
		sheet:          collectStylesheet(root),
		activeUse:      map[string]bool{},
		activePatterns: map[*xmlnode.Node]bool{},
	}
}

func collectStylesheet(root *xmlnode.Node) *style.Sheet {
	var css strings.Builder
	var walk func(n *xmlnode.Node)
	walk = func(n *xmlnode.Node) {
		if n == nil {
			return
		}
		if xmlnode.LocalName(n.Tag) == "style" {
			css.WriteString(n.Text)
			css.WriteByte('\n')
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return style.ParseSheet(css.String())
}

func (p *Painter) rootStyle() svgtypes.ResolvedStyle {
	return svgtypes.DefaultStyle(p.options)
}

// Paint renders the document's root children onto the bound context
// using the resolved viewBox-to-viewport transform.
func (p *Painter) Paint(root *xmlnode.Node, layout svgtypes.LayoutResult) error {
	sx := float64(layout.Width) / layout.ViewBoxWidth
	sy := float64(layout.Height) / layout.ViewBoxHeight
	ctm := translateMatrix(-layout.ViewBoxX, -layout.ViewBoxY).Multiply(scaleMatrix(sx, sy))

	vw, vh := layout.ViewBoxWidth, layout.ViewBoxHeight
	rootStyle := style.Resolve(p.rootStyle(), root, p.sheet, nil)
	for _, c := range root.Children {
		p.paintNode(c, ctm, rootStyle, nil, vw, vh)
	}
	return nil
}

func resolveHrefID(href string) string {
	href = strings.TrimSpace(href)
	return strings.TrimPrefix(href, "#")
}

// paintNode renders one element and its renderable descendants. ctm is
// the transform already in effect (including the parent's own
// `transform` attribute); vw/vh are the current viewport dimensions
// used as the percentage basis for this node's own attributes.
func (p *Painter) paintNode(node *xmlnode.Node, ctm Matrix, parentStyle svgtypes.ResolvedStyle, ancestors []cssvalue.ElementInfo, vw, vh float64) {
	if node == nil {
		return
	}
	tag := xmlnode.LocalName(node.Tag)
	if definitionTags[tag] {
		return
	}

	resolved := style.Resolve(parentStyle, node, p.sheet, ancestors)
	if resolved.Display == "none" {
		return
	}

	if t, ok := node.Attr("transform"); ok {
		ctm = ParseTransformList(t).Multiply(ctm)
	}

	childAncestors := append(append([]cssvalue.ElementInfo{}, ancestors...), elemInfo(node, ancestors))

	var filterNode *xmlnode.Node
	if f, ok := node.Attr("filter"); ok {
		if id := resolveHrefID(f); id != "" {
			if fn, ok := p.idmap[id]; ok && xmlnode.LocalName(fn.Tag) == "filter" {
				if !(p.options.StrictMode && !p.options.AllowUnsupportedFilterFallback) || !filter.IsUnsupportedFallback(fn) {
					filterNode = fn
				}
			}
		}
	}

	group := resolved.Opacity < 0.999 || filterNode != nil
	var targetCtx *gg.Context
	origCtx := p.ctx
	if group {
		targetCtx = gg.NewContext(p.ctx.Width(), p.ctx.Height())
		p.ctx = targetCtx
	}

	switch tag {
	case "g", "a", "switch", "symbol":
		children := node.Children
		if tag == "switch" && len(children) > 0 {
			children = children[:1]
		}
		for _, c := range children {
			p.paintNode(c, ctm, resolved, childAncestors, vw, vh)
		}

	case "svg":
		nvw, nvh, nctm := p.nestedViewport(node, ctm, vw, vh, resolved.FontSize)
		for _, c := range node.Children {
			p.paintNode(c, nctm, resolved, childAncestors, nvw, nvh)
		}

	case "use":
		p.paintUse(node, ctm, resolved, childAncestors, vw, vh)

	case "rect", "circle", "ellipse", "line", "polygon", "polyline", "path":
		if geo, ok := geometry.Build(node, vw, vh, resolved.FontSize); ok {
			p.drawShape(geo, ctm, resolved, vw, vh)
		}

	case "text", "tspan":
		if geo, ok := geometry.Build(node, vw, vh, resolved.FontSize); ok {
			p.drawText(geo, ctm, resolved, vw, vh)
		}

	case "image":
		if geo, ok := geometry.Build(node, vw, vh, resolved.FontSize); ok {
			p.drawImage(node, geo, ctm, vw, vh)
		}

	default:
		for _, c := range node.Children {
			p.paintNode(c, ctm, resolved, childAncestors, vw, vh)
		}
	}

	if group {
		p.ctx = origCtx
		img := targetCtx.Image().(*image.RGBA)
		if filterNode != nil {
			img = filter.Apply(filterNode, img, p.idmap)
		}
		scaleAlpha(img, resolved.Opacity)
		p.ctx.DrawImage(img, 0, 0)
	}
}

func elemInfo(node *xmlnode.Node, ancestors []cssvalue.ElementInfo) cssvalue.ElementInfo {
	id, _ := node.Attr("id")
	var classes []string
	if c, ok := node.Attr("class"); ok {
		classes = strings.Fields(c)
	}
	return cssvalue.ElementInfo{
		Tag:       xmlnode.LocalName(node.Tag),
		ID:        id,
		Classes:   classes,
		Ancestors: ancestors,
	}
}

// scaleAlpha multiplies every pixel's alpha (and its premultiplied
// color channels) by factor in place, implementing group opacity on an
// already-rendered premultiplied buffer.
func scaleAlpha(img *image.RGBA, factor float64) {
	if factor >= 0.999 {
		return
	}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = byte(float64(img.Pix[i]) * factor)
		img.Pix[i+1] = byte(float64(img.Pix[i+1]) * factor)
		img.Pix[i+2] = byte(float64(img.Pix[i+2]) * factor)
		img.Pix[i+3] = byte(float64(img.Pix[i+3]) * factor)
	}
}

// paintUse instantiates a `<use>` reference as a shadow tree: the
// target is rendered as if it were a child of the `<use>` element,
// translated by (x,y), guarded against reference cycles by id.
func (p *Painter) paintUse(node *xmlnode.Node, ctm Matrix, useStyle svgtypes.ResolvedStyle, ancestors []cssvalue.ElementInfo, vw, vh float64) {
	href := node.AttrOr("href", node.AttrOr("xlink:href", ""))
	id := resolveHrefID(href)
	if id == "" || p.activeUse[id] {
		return
	}
	target, ok := p.idmap[id]
	if !ok {
		return
	}

	x, _ := geometry.Resolve(node.AttrOr("x", "0"), vw, useStyle.FontSize)
	y, _ := geometry.Resolve(node.AttrOr("y", "0"), vh, useStyle.FontSize)
	ctm = translateMatrix(x, y).Multiply(ctm)

	p.activeUse[id] = true
	defer delete(p.activeUse, id)

	if xmlnode.LocalName(target.Tag) == "symbol" || xmlnode.LocalName(target.Tag) == "svg" {
		nvw, nvh, nctm := p.nestedViewport(target, ctm, vw, vh, useStyle.FontSize)
		resolved := style.Resolve(useStyle, target, p.sheet, ancestors)
		for _, c := range target.Children {
			p.paintNode(c, nctm, resolved, ancestors, nvw, nvh)
		}
		return
	}

	p.paintNode(target, ctm, useStyle, ancestors, vw, vh)
}

// nestedViewport resolves a nested `<svg>`/`<symbol>` element's own
// viewport geometry, returning the child viewport dimensions and the
// CTM updated with the element's x/y offset and viewBox scale.
func (p *Painter) nestedViewport(node *xmlnode.Node, ctm Matrix, parentVW, parentVH, fontSize float64) (float64, float64, Matrix) {
	x, _ := geometry.Resolve(node.AttrOr("x", "0"), parentVW, fontSize)
	y, _ := geometry.Resolve(node.AttrOr("y", "0"), parentVH, fontSize)
	w := parentVW
	if wv, ok := node.Attr("width"); ok {
		w, _ = geometry.Resolve(wv, parentVW, fontSize)
	}
	h := parentVH
	if hv, ok := node.Attr("height"); ok {
		h, _ = geometry.Resolve(hv, parentVH, fontSize)
	}

	if vb, ok := node.Attr("viewBox"); ok {
		if box, ok := layout.ParseViewBox(vb); ok && box.Width > 0 && box.Height > 0 {
			sx, sy := w/box.Width, h/box.Height
			local := translateMatrix(-box.X, -box.Y).Multiply(scaleMatrix(sx, sy)).Multiply(translateMatrix(x, y))
			return box.Width, box.Height, local.Multiply(ctm)
		}
	}
	local := translateMatrix(x, y)
	return w, h, local.Multiply(ctm)
}
