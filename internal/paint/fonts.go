package paint

import (
	"sync"

	findfont "github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// fontFamily resolves a (weight, style, size) triple to a rasterizable
// face for one logical font family.
type fontFamily struct {
	regular, bold, italic, boldItalic *sfnt.Font
}

func (ff *fontFamily) pick(weight string, italic bool) *sfnt.Font {
	isBold := weight == "bold" || weight == "bolder" || weight == "700" || weight == "800" || weight == "900"
	switch {
	case isBold && italic && ff.boldItalic != nil:
		return ff.boldItalic
	case isBold && ff.bold != nil:
		return ff.bold
	case italic && ff.italic != nil:
		return ff.italic
	default:
		return ff.regular
	}
}

func (ff *fontFamily) newFace(weight string, italic bool, points float64) (font.Face, error) {
	sf := ff.pick(weight, italic)
	return opentype.NewFace(sf, &opentype.FaceOptions{
		Size:    points,
		DPI:     96,
		Hinting: font.HintingFull,
	})
}

func mustParse(b []byte) *sfnt.Font {
	f, err := opentype.Parse(b)
	if err != nil {
		panic(err)
	}
	return f
}

var (
	goProportional = &fontFamily{
		regular: mustParse(goregular.TTF),
		bold:    mustParse(gobold.TTF),
		italic:  mustParse(goitalic.TTF),

		boldItalic: mustParse(gobolditalic.TTF),
	}
	goMonospace = &fontFamily{
		regular: mustParse(gomono.TTF),
		bold:    mustParse(gomonobold.TTF),
	}

	systemFontCache   = map[string]*fontFamily{}
	systemFontCacheMu sync.Mutex
)

// resolveFontFamily walks a font-family list (already split on commas)
// and returns the first match: a bundled Go font for the generic
// keywords, or a system font located on disk via go-findfont.
func resolveFontFamily(families []string) *fontFamily {
	for _, name := range families {
		switch name {
		case "serif", "sans-serif", "cursive", "fantasy", "system-ui", "ui-serif",
			"ui-sans-serif", "ui-rounded", "math", "emoji", "fangsong":
			return goProportional
		case "monospace", "ui-monospace":
			return goMonospace
		}
		if ff := lookupSystemFont(name); ff != nil {
			return ff
		}
	}
	return goProportional
}

func lookupSystemFont(name string) *fontFamily {
	systemFontCacheMu.Lock()
	defer systemFontCacheMu.Unlock()
	if ff, ok := systemFontCache[name]; ok {
		return ff
	}
	path, err := findfont.Find(name)
	if err != nil {
		systemFontCache[name] = nil
		return nil
	}
	data, err := readFontFile(path)
	if err != nil {
		systemFontCache[name] = nil
		return nil
	}
	sf, err := opentype.Parse(data)
	if err != nil {
		systemFontCache[name] = nil
		return nil
	}
	ff := &fontFamily{regular: sf, bold: sf, italic: sf}
	systemFontCache[name] = ff
	return ff
}
