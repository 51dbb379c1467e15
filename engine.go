// Package svgraster rasterizes a single SVG document into an RGBA pixel
// buffer. It wires together, in order, the XML tokenizer, the document
// DOM wrapper, external-resource policy, the filter-primitive validator,
// viewport/viewBox layout, and the recursive painter.
package svgraster

import (
	"github.com/sirupsen/logrus"

	"github.com/inkwell-graphics/svgraster/internal/filter"
	"github.com/inkwell-graphics/svgraster/internal/layout"
	"github.com/inkwell-graphics/svgraster/internal/paint"
	"github.com/inkwell-graphics/svgraster/internal/raster"
	"github.com/inkwell-graphics/svgraster/internal/resource"
	"github.com/inkwell-graphics/svgraster/internal/svgdom"
	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
	"github.com/inkwell-graphics/svgraster/internal/xmlnode"
)

// Image is the rasterized result: Pixels is top-left-origin, row-major,
// premultiplied-alpha RGBA8 data, len(Pixels) == Width*Height*4.
type Image struct {
	Width, Height int
	Pixels        []byte
}

// RenderOptions re-exports the pipeline's option bag so callers who
// prefer building it directly (rather than via the With* functional
// options) don't need to import the internal package.
type RenderOptions = svgtypes.RenderOptions

// RenderError re-exports the stable {kind, message} error type surfaced
// by every pipeline stage.
type RenderError = svgtypes.RenderError

// ErrorKind re-exports the stable ordinal error classification.
type ErrorKind = svgtypes.ErrorKind

const (
	ErrInvalidDocument         = svgtypes.ErrInvalidDocument
	ErrUnsupportedFeature      = svgtypes.ErrUnsupportedFeature
	ErrExternalResourceBlocked = svgtypes.ErrExternalResourceBlocked
	ErrExternalResourceFailed  = svgtypes.ErrExternalResourceFailed
	ErrRenderFailed            = svgtypes.ErrRenderFailed
)

// Render parses, validates, lays out, and paints src, returning the
// rasterized pixels. Stages log their progress at Debug (the document
// validation step has no Debug line); a failing stage logs at Error
// before returning.
func Render(src []byte, options ...Option) (*Image, error) {
	cfg := newConfig()
	for _, o := range options {
		o(cfg)
	}
	log := cfg.logger

	log.Debug("parsing document")
	root, err := xmlnode.Parse(string(src))
	if err != nil {
		log.WithError(err).Error("parse failed")
		return nil, svgtypes.NewError(svgtypes.ErrInvalidDocument, "parse: %v", err)
	}

	doc, err := svgdom.New(root)
	if err != nil {
		log.WithError(err).Error("document validation failed")
		return nil, err
	}

	log.Debug("validating external resource references")
	if err := resource.Validate(doc.Root, cfg.opts.EnableExternalResources); err != nil {
		log.WithError(err).Error("resource validation failed")
		return nil, err
	}

	log.Debug("validating filter primitive support")
	unsupported, err := filter.ValidateDocument(doc.Root, cfg.opts)
	if err != nil {
		log.WithError(err).Error("filter validation failed")
		return nil, err
	}
	if len(unsupported) > 0 {
		log.WithField("primitives", unsupported).Warn("unsupported filter primitives are skipped during filter evaluation")
	}

	log.Debug("resolving layout")
	layoutResult, err := layout.Resolve(doc.Root, cfg.opts)
	if err != nil {
		log.WithError(err).Error("layout resolution failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{"width": layoutResult.Width, "height": layoutResult.Height}).Debug("layout resolved")

	surface := raster.New(layoutResult.Width, layoutResult.Height,
		cfg.opts.BackgroundR, cfg.opts.BackgroundG, cfg.opts.BackgroundB, cfg.opts.BackgroundA)

	log.Debug("painting")
	painter := paint.New(surface.Context(), doc.Root, cfg.opts)
	if err := painter.Paint(doc.Root, layoutResult); err != nil {
		log.WithError(err).Error("paint failed")
		return nil, svgtypes.NewError(svgtypes.ErrRenderFailed, "paint: %v", err)
	}

	return &Image{
		Width:  surface.Width(),
		Height: surface.Height(),
		Pixels: surface.Extract(),
	}, nil
}
