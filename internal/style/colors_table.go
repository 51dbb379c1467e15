package style

import "github.com/inkwell-graphics/svgraster/internal/svgtypes"

// namedColors is the CSS3/SVG extended named-color table. This is plain
// data (hex value per name), not algorithmic logic, so it is written out
// here rather than taken from a dependency.
var namedColors = map[string]svgtypes.Color{
	"aliceblue":            mustHex("f0f8ff"),
	"antiquewhite":         mustHex("faebd7"),
	"aqua":                 mustHex("00ffff"),
	"aquamarine":           mustHex("7fffd4"),
	"azure":                mustHex("f0ffff"),
	"beige":                mustHex("f5f5dc"),
	"bisque":               mustHex("ffe4c4"),
	"black":                mustHex("000000"),
	"blanchedalmond":       mustHex("ffebcd"),
	"blue":                 mustHex("0000ff"),
	"blueviolet":           mustHex("8a2be2"),
	"brown":                mustHex("a52a2a"),
	"burlywood":            mustHex("deb887"),
	"cadetblue":            mustHex("5f9ea0"),
	"chartreuse":           mustHex("7fff00"),
	"chocolate":            mustHex("d2691e"),
	"coral":                mustHex("ff7f50"),
	"cornflowerblue":       mustHex("6495ed"),
	"cornsilk":             mustHex("fff8dc"),
	"crimson":              mustHex("dc143c"),
	"cyan":                 mustHex("00ffff"),
	"darkblue":             mustHex("00008b"),
	"darkcyan":             mustHex("008b8b"),
	"darkgoldenrod":        mustHex("b8860b"),
	"darkgray":             mustHex("a9a9a9"),
	"darkgreen":            mustHex("006400"),
	"darkgrey":             mustHex("a9a9a9"),
	"darkkhaki":            mustHex("bdb76b"),
	"darkmagenta":          mustHex("8b008b"),
	"darkolivegreen":       mustHex("556b2f"),
	"darkorange":           mustHex("ff8c00"),
	"darkorchid":           mustHex("9932cc"),
	"darkred":              mustHex("8b0000"),
	"darksalmon":           mustHex("e9967a"),
	"darkseagreen":         mustHex("8fbc8f"),
	"darkslateblue":        mustHex("483d8b"),
	"darkslategray":        mustHex("2f4f4f"),
	"darkslategrey":        mustHex("2f4f4f"),
	"darkturquoise":        mustHex("00ced1"),
	"darkviolet":           mustHex("9400d3"),
	"deeppink":             mustHex("ff1493"),
	"deepskyblue":          mustHex("00bfff"),
	"dimgray":              mustHex("696969"),
	"dimgrey":              mustHex("696969"),
	"dodgerblue":           mustHex("1e90ff"),
	"firebrick":            mustHex("b22222"),
	"floralwhite":          mustHex("fffaf0"),
	"forestgreen":          mustHex("228b22"),
	"fuchsia":              mustHex("ff00ff"),
	"gainsboro":            mustHex("dcdcdc"),
	"ghostwhite":           mustHex("f8f8ff"),
	"gold":                 mustHex("ffd700"),
	"goldenrod":            mustHex("daa520"),
	"gray":                 mustHex("808080"),
	"grey":                 mustHex("808080"),
	"green":                mustHex("008000"),
	"greenyellow":          mustHex("adff2f"),
	"honeydew":             mustHex("f0fff0"),
	"hotpink":              mustHex("ff69b4"),
	"indianred":            mustHex("cd5c5c"),
	"indigo":               mustHex("4b0082"),
	"ivory":                mustHex("fffff0"),
	"khaki":                mustHex("f0e68c"),
	"lavender":             mustHex("e6e6fa"),
	"lavenderblush":        mustHex("fff0f5"),
	"lawngreen":            mustHex("7cfc00"),
	"lemonchiffon":         mustHex("fffacd"),
	"lightblue":            mustHex("add8e6"),
	"lightcoral":           mustHex("f08080"),
	"lightcyan":            mustHex("e0ffff"),
	"lightgoldenrodyellow": mustHex("fafad2"),
	"lightgray":            mustHex("d3d3d3"),
	"lightgreen":           mustHex("90ee90"),
	"lightgrey":            mustHex("d3d3d3"),
	"lightpink":            mustHex("ffb6c1"),
	"lightsalmon":          mustHex("ffa07a"),
	"lightseagreen":        mustHex("20b2aa"),
	"lightskyblue":         mustHex("87cefa"),
	"lightslategray":       mustHex("778899"),
	"lightslategrey":       mustHex("778899"),
	"lightsteelblue":       mustHex("b0c4de"),
	"lightyellow":          mustHex("ffffe0"),
	"lime":                 mustHex("00ff00"),
	"limegreen":            mustHex("32cd32"),
	"linen":                mustHex("faf0e6"),
	"magenta":              mustHex("ff00ff"),
	"maroon":               mustHex("800000"),
	"mediumaquamarine":     mustHex("66cdaa"),
	"mediumblue":           mustHex("0000cd"),
	"mediumorchid":         mustHex("ba55d3"),
	"mediumpurple":         mustHex("9370db"),
	"mediumseagreen":       mustHex("3cb371"),
	"mediumslateblue":      mustHex("7b68ee"),
	"mediumspringgreen":    mustHex("00fa9a"),
	"mediumturquoise":      mustHex("48d1cc"),
	"mediumvioletred":      mustHex("c71585"),
	"midnightblue":         mustHex("191970"),
	"mintcream":            mustHex("f5fffa"),
	"mistyrose":            mustHex("ffe4e1"),
	"moccasin":             mustHex("ffe4b5"),
	"navajowhite":          mustHex("ffdead"),
	"navy":                 mustHex("000080"),
	"oldlace":              mustHex("fdf5e6"),
	"olive":                mustHex("808000"),
	"olivedrab":            mustHex("6b8e23"),
	"orange":               mustHex("ffa500"),
	"orangered":            mustHex("ff4500"),
	"orchid":               mustHex("da70d6"),
	"palegoldenrod":        mustHex("eee8aa"),
	"palegreen":            mustHex("98fb98"),
	"paleturquoise":        mustHex("afeeee"),
	"palevioletred":        mustHex("db7093"),
	"papayawhip":           mustHex("ffefd5"),
	"peachpuff":            mustHex("ffdab9"),
	"peru":                 mustHex("cd853f"),
	"pink":                 mustHex("ffc0cb"),
	"plum":                 mustHex("dda0dd"),
	"powderblue":           mustHex("b0e0e6"),
	"purple":               mustHex("800080"),
	"rebeccapurple":        mustHex("663399"),
	"red":                  mustHex("ff0000"),
	"rosybrown":            mustHex("bc8f8f"),
	"royalblue":            mustHex("4169e1"),
	"saddlebrown":          mustHex("8b4513"),
	"salmon":               mustHex("fa8072"),
	"sandybrown":           mustHex("f4a460"),
	"seagreen":             mustHex("2e8b57"),
	"seashell":             mustHex("fff5ee"),
	"sienna":               mustHex("a0522d"),
	"silver":               mustHex("c0c0c0"),
	"skyblue":              mustHex("87ceeb"),
	"slateblue":            mustHex("6a5acd"),
	"slategray":            mustHex("708090"),
	"slategrey":            mustHex("708090"),
	"snow":                 mustHex("fffafa"),
	"springgreen":          mustHex("00ff7f"),
	"steelblue":            mustHex("4682b4"),
	"tan":                  mustHex("d2b48c"),
	"teal":                 mustHex("008080"),
	"thistle":              mustHex("d8bfd8"),
	"tomato":               mustHex("ff6347"),
	"turquoise":            mustHex("40e0d0"),
	"violet":               mustHex("ee82ee"),
	"wheat":                mustHex("f5deb3"),
	"white":                mustHex("ffffff"),
	"whitesmoke":           mustHex("f5f5f5"),
	"yellow":               mustHex("ffff00"),
	"yellowgreen":          mustHex("9acd32"),
}
