package svgraster

import (
	"github.com/sirupsen/logrus"

	"github.com/inkwell-graphics/svgraster/internal/svgtypes"
)

// Option configures a Render call beyond svgtypes.RenderOptions' plain
// fields, following the corpus convention of a `*logrus.Logger` threaded
// in via constructor injection rather than a package-level global.
type Option func(*config)

type config struct {
	opts   svgtypes.RenderOptions
	logger *logrus.Logger
}

func newConfig() *config {
	return &config{
		opts:   svgtypes.DefaultRenderOptions(),
		logger: logrus.New(),
	}
}

// WithLogger sets the logger used for per-stage diagnostics. The zero
// value falls back to a logrus.New() default (text formatter, Info
// level, stderr).
func WithLogger(logger *logrus.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithViewport sets the fallback pixel size used for a root width or
// height the document does not give; the document's own width/height
// attributes take precedence. It takes effect only when both values are
// positive; otherwise the viewBox size (or 300x150) is the fallback.
func WithViewport(width, height int) Option {
	return func(c *config) {
		c.opts.ViewportWidth = width
		c.opts.ViewportHeight = height
	}
}

// WithScale multiplies the resolved pixel dimensions, for high-DPI
// output.
func WithScale(scale float64) Option {
	return func(c *config) {
		c.opts.Scale = scale
	}
}

// WithBackground sets the color the surface is cleared to before
// painting; the default is fully transparent.
func WithBackground(r, g, b, a float64) Option {
	return func(c *config) {
		c.opts.BackgroundR, c.opts.BackgroundG, c.opts.BackgroundB, c.opts.BackgroundA = r, g, b, a
	}
}

// WithDefaultFont sets the family/size substituted when no font is
// specified anywhere in the cascade.
func WithDefaultFont(family string, size float64) Option {
	return func(c *config) {
		if family != "" {
			c.opts.DefaultFontFamily = family
		}
		if size > 0 {
			c.opts.DefaultFontSize = size
		}
	}
}

// WithExternalResources lets documents with http(s) hrefs pass resource
// validation instead of failing with ErrExternalResourceBlocked. The
// renderer does not fetch them; a remote image href paints nothing.
// Disabled by default; local data: URIs and same-document fragment
// references are always permitted regardless of this flag.
func WithExternalResources(enabled bool) Option {
	return func(c *config) {
		c.opts.EnableExternalResources = enabled
	}
}

// WithCompatFlags controls the FilterGraph validator's strictness:
// strict fails the whole render on an unsupported filter primitive;
// allowFallback (only meaningful under strict) instead lets the render
// proceed, applying the filter with its unsupported primitives skipped.
func WithCompatFlags(strict, allowFallback bool) Option {
	return func(c *config) {
		c.opts.StrictMode = strict
		c.opts.AllowUnsupportedFilterFallback = allowFallback
	}
}
