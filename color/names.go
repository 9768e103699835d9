package color

import (
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Standard CSS colours.
var (
	White                = MustHex("#ffffff")
	Silver               = MustHex("#c0c0c0")
	Gray                 = MustHex("#808080")
	Black                = MustHex("#000000")
	Red                  = MustHex("#ff0000")
	Maroon               = MustHex("#800000")
	Yellow               = MustHex("#ffff00")
	Olive                = MustHex("#808000")
	Lime                 = MustHex("#00ff00")
	Green                = MustHex("#008000")
	Aqua                 = MustHex("#00ffff")
	Teal                 = MustHex("#008080")
	Blue                 = MustHex("#0000ff")
	Navy                 = MustHex("#000080")
	Fuchsia              = MustHex("#ff00ff")
	Purple               = MustHex("#800080")
	MediumVioletRed      = MustHex("#c71585")
	DeepPink             = MustHex("#ff1493")
	PaleVioletRed        = MustHex("#db7093")
	HotPink              = MustHex("#ff69b4")
	LightPink            = MustHex("#ffb6c1")
	Pink                 = MustHex("#ffc0cb")
	DarkRed              = MustHex("#8b0000")
	Firebrick            = MustHex("#b22222")
	Crimson              = MustHex("#dc143c")
	IndianRed            = MustHex("#cd5c5c")
	LightCoral           = MustHex("#f08080")
	Salmon               = MustHex("#fa8072")
	DarkSalmon           = MustHex("#e9967a")
	LightSalmon          = MustHex("#ffa07a")
	OrangeRed            = MustHex("#ff4500")
	Tomato               = MustHex("#ff6347")
	DarkOrange           = MustHex("#ff8c00")
	Coral                = MustHex("#ff7f50")
	Orange               = MustHex("#ffa500")
	DarkKhaki            = MustHex("#bdb76b")
	Gold                 = MustHex("#ffd700")
	Khaki                = MustHex("#f0e68c")
	PeachPuff            = MustHex("#ffdab9")
	PaleGoldenrod        = MustHex("#eee8aa")
	Moccasin             = MustHex("#ffe4b5")
	PapayaWhip           = MustHex("#ffefd5")
	LightGoldenrodYellow = MustHex("#fafad2")
	LemonChiffon         = MustHex("#fffacd")
	LightYellow          = MustHex("#ffffe0")
	Brown                = MustHex("#a52a2a")
	SaddleBrown          = MustHex("#8b4513")
	Sienna               = MustHex("#a0522d")
	Chocolate            = MustHex("#d2691e")
	DarkGoldenrod        = MustHex("#b8860b")
	Peru                 = MustHex("#cd853f")
	RosyBrown            = MustHex("#bc8f8f")
	Goldenrod            = MustHex("#daa520")
	SandyBrown           = MustHex("#f4a460")
	Tan                  = MustHex("#d2b48c")
	Burlywood            = MustHex("#deb887")
	Wheat                = MustHex("#f5deb3")
	NavajoWhite          = MustHex("#ffdead")
	Bisque               = MustHex("#ffe4c4")
	BlanchedAlmond       = MustHex("#ffebcd")
	Cornsilk             = MustHex("#fff8dc")
	DarkGreen            = MustHex("#006400")
	DarkOliveGreen       = MustHex("#556b2f")
	ForestGreen          = MustHex("#228b22")
	SeaGreen             = MustHex("#2e8b57")
	OliveDrab            = MustHex("#6b8e23")
	MediumSeaGreen       = MustHex("#3cb371")
	LimeGreen            = MustHex("#32cd32")
	SpringGreen          = MustHex("#00ff7f")
	MediumSpringGreen    = MustHex("#00fa9a")
	DarkSeaGreen         = MustHex("#8fbc8f")
	MediumAquamarine     = MustHex("#66cdaa")
	YellowGreen          = MustHex("#9acd32")
	LawnGreen            = MustHex("#7cfc00")
	Chartreuse           = MustHex("#7fff00")
	LightGreen           = MustHex("#90ee90")
	GreenYellow          = MustHex("#adff2f")
	PaleGreen            = MustHex("#98fb98")
	DarkCyan             = MustHex("#008b8b")
	LightSeaGreen        = MustHex("#20b2aa")
	CadetBlue            = MustHex("#5f9ea0")
	DarkTurquoise        = MustHex("#00ced1")
	MediumTurquoise      = MustHex("#48d1cc")
	Turquoise            = MustHex("#40e0d0")
	Cyan                 = MustHex("#00ffff")
	Aquamarine           = MustHex("#7fffd4")
	PaleTurquoise        = MustHex("#afeeee")
	LightCyan            = MustHex("#e0ffff")
	MidnightBlue         = MustHex("#191970")
	DarkBlue             = MustHex("#00008b")
	MediumBlue           = MustHex("#0000cd")
	RoyalBlue            = MustHex("#4169e1")
	SteelBlue            = MustHex("#4682b4")
	DodgerBlue           = MustHex("#1e90ff")
	DeepSkyBlue          = MustHex("#00bfff")
	CornflowerBlue       = MustHex("#6495ed")
	SkyBlue              = MustHex("#87ceeb")
	LightSkyBlue         = MustHex("#87cefa")
	LightSteelBlue       = MustHex("#b0c4de")
	LightBlue            = MustHex("#add8e6")
	PowderBlue           = MustHex("#b0e0e6")
	Indigo               = MustHex("#4b0082")
	DarkMagenta          = MustHex("#8b008b")
	DarkViolet           = MustHex("#9400d3")
	DarkSlateBlue        = MustHex("#483d8b")
	BlueViolet           = MustHex("#8a2be2")
	DarkOrchid           = MustHex("#9932cc")
	Magenta              = MustHex("#ff00ff")
	SlateBlue            = MustHex("#6a5acd")
	MediumSlateBlue      = MustHex("#7b68ee")
	MediumOrchid         = MustHex("#ba55d3")
	MediumPurple         = MustHex("#9370db")
	Orchid               = MustHex("#da70d6")
	Violet               = MustHex("#ee82ee")
	Plum                 = MustHex("#dda0dd")
	Thistle              = MustHex("#d8bfd8")
	Lavender             = MustHex("#e6e6fa")
	MistyRose            = MustHex("#ffe4e1")
	AntiqueWhite         = MustHex("#faebd7")
	Linen                = MustHex("#faf0e6")
	Beige                = MustHex("#f5f5dc")
	WhiteSmoke           = MustHex("#f5f5f5")
	LavenderBlush        = MustHex("#fff0f5")
	OldLace              = MustHex("#fdf5e6")
	AliceBlue            = MustHex("#f0f8ff")
	Seashell             = MustHex("#fff5ee")
	GhostWhite           = MustHex("#f8f8ff")
	Honeydew             = MustHex("#f0fff0")
	FloralWhite          = MustHex("#fffaf0")
	Azure                = MustHex("#f0ffff")
	MintCream            = MustHex("#f5fffa")
	Snow                 = MustHex("#fffafa")
	Ivory                = MustHex("#fffff0")
	DarkSlateGray        = MustHex("#2f4f4f")
	DimGray              = MustHex("#696969")
	SlateGray            = MustHex("#708090")
	LightSlateGray       = MustHex("#778899")
	DarkGray             = MustHex("#a9a9a9")
	LightGray            = MustHex("#d3d3d3")
	Gainsboro            = MustHex("#dcdcdc")
	RebeccaPurple        = MustHex("#663399")
)

// Named is a colour together with its CSS name.
type Named struct {
	Name string
	Color
}

var byName = map[string]Color{
	"white":                White,
	"silver":               Silver,
	"gray":                 Gray,
	"black":                Black,
	"red":                  Red,
	"maroon":               Maroon,
	"yellow":               Yellow,
	"olive":                Olive,
	"lime":                 Lime,
	"green":                Green,
	"aqua":                 Aqua,
	"teal":                 Teal,
	"blue":                 Blue,
	"navy":                 Navy,
	"fuchsia":              Fuchsia,
	"purple":               Purple,
	"mediumvioletred":      MediumVioletRed,
	"deeppink":             DeepPink,
	"palevioletred":        PaleVioletRed,
	"hotpink":              HotPink,
	"lightpink":            LightPink,
	"pink":                 Pink,
	"darkred":              DarkRed,
	"firebrick":            Firebrick,
	"crimson":              Crimson,
	"indianred":            IndianRed,
	"lightcoral":           LightCoral,
	"salmon":               Salmon,
	"darksalmon":           DarkSalmon,
	"lightsalmon":          LightSalmon,
	"orangered":            OrangeRed,
	"tomato":               Tomato,
	"darkorange":           DarkOrange,
	"coral":                Coral,
	"orange":               Orange,
	"darkkhaki":            DarkKhaki,
	"gold":                 Gold,
	"khaki":                Khaki,
	"peachpuff":            PeachPuff,
	"palegoldenrod":        PaleGoldenrod,
	"moccasin":             Moccasin,
	"papayawhip":           PapayaWhip,
	"lightgoldenrodyellow": LightGoldenrodYellow,
	"lemonchiffon":         LemonChiffon,
	"lightyellow":          LightYellow,
	"brown":                Brown,
	"saddlebrown":          SaddleBrown,
	"sienna":               Sienna,
	"chocolate":            Chocolate,
	"darkgoldenrod":        DarkGoldenrod,
	"peru":                 Peru,
	"rosybrown":            RosyBrown,
	"goldenrod":            Goldenrod,
	"sandybrown":           SandyBrown,
	"tan":                  Tan,
	"burlywood":            Burlywood,
	"wheat":                Wheat,
	"navajowhite":          NavajoWhite,
	"bisque":               Bisque,
	"blanchedalmond":       BlanchedAlmond,
	"cornsilk":             Cornsilk,
	"darkgreen":            DarkGreen,
	"darkolivegreen":       DarkOliveGreen,
	"forestgreen":          ForestGreen,
	"seagreen":             SeaGreen,
	"olivedrab":            OliveDrab,
	"mediumseagreen":       MediumSeaGreen,
	"limegreen":            LimeGreen,
	"springgreen":          SpringGreen,
	"mediumspringgreen":    MediumSpringGreen,
	"darkseagreen":         DarkSeaGreen,
	"mediumaquamarine":     MediumAquamarine,
	"yellowgreen":          YellowGreen,
	"lawngreen":            LawnGreen,
	"chartreuse":           Chartreuse,
	"lightgreen":           LightGreen,
	"greenyellow":          GreenYellow,
	"palegreen":            PaleGreen,
	"darkcyan":             DarkCyan,
	"lightseagreen":        LightSeaGreen,
	"cadetblue":            CadetBlue,
	"darkturquoise":        DarkTurquoise,
	"mediumturquoise":      MediumTurquoise,
	"turquoise":            Turquoise,
	"cyan":                 Cyan,
	"aquamarine":           Aquamarine,
	"paleturquoise":        PaleTurquoise,
	"lightcyan":            LightCyan,
	"midnightblue":         MidnightBlue,
	"darkblue":             DarkBlue,
	"mediumblue":           MediumBlue,
	"royalblue":            RoyalBlue,
	"steelblue":            SteelBlue,
	"dodgerblue":           DodgerBlue,
	"deepskyblue":          DeepSkyBlue,
	"cornflowerblue":       CornflowerBlue,
	"skyblue":              SkyBlue,
	"lightskyblue":         LightSkyBlue,
	"lightsteelblue":       LightSteelBlue,
	"lightblue":            LightBlue,
	"powderblue":           PowderBlue,
	"indigo":               Indigo,
	"darkmagenta":          DarkMagenta,
	"darkviolet":           DarkViolet,
	"darkslateblue":        DarkSlateBlue,
	"blueviolet":           BlueViolet,
	"darkorchid":           DarkOrchid,
	"magenta":              Magenta,
	"slateblue":            SlateBlue,
	"mediumslateblue":      MediumSlateBlue,
	"mediumorchid":         MediumOrchid,
	"mediumpurple":         MediumPurple,
	"orchid":               Orchid,
	"violet":               Violet,
	"plum":                 Plum,
	"thistle":              Thistle,
	"lavender":             Lavender,
	"mistyrose":            MistyRose,
	"antiquewhite":         AntiqueWhite,
	"linen":                Linen,
	"beige":                Beige,
	"whitesmoke":           WhiteSmoke,
	"lavenderblush":        LavenderBlush,
	"oldlace":              OldLace,
	"aliceblue":            AliceBlue,
	"seashell":             Seashell,
	"ghostwhite":           GhostWhite,
	"honeydew":             Honeydew,
	"floralwhite":          FloralWhite,
	"azure":                Azure,
	"mintcream":            MintCream,
	"snow":                 Snow,
	"ivory":                Ivory,
	"darkslategray":        DarkSlateGray,
	"dimgray":              DimGray,
	"slategray":            SlateGray,
	"lightslategray":       LightSlateGray,
	"darkgray":             DarkGray,
	"lightgray":            LightGray,
	"gainsboro":            Gainsboro,
	"rebeccapurple":        RebeccaPurple,
}

type family struct {
	name   string
	colors []string
}

// palettes groups the named colours by shade family, in CSS listing order.
var palettes = []family{
	{"basic", []string{"White", "Silver", "Gray", "Black", "Red", "Maroon", "Yellow", "Olive", "Lime", "Green", "Aqua", "Teal", "Blue", "Navy", "Fuchsia", "Purple"}},
	{"pink", []string{"MediumVioletRed", "DeepPink", "PaleVioletRed", "HotPink", "LightPink", "Pink"}},
	{"red", []string{"DarkRed", "Red", "Firebrick", "Crimson", "IndianRed", "LightCoral", "Salmon", "DarkSalmon", "LightSalmon"}},
	{"orange", []string{"OrangeRed", "Tomato", "DarkOrange", "Coral", "Orange"}},
	{"yellow", []string{"DarkKhaki", "Gold", "Khaki", "PeachPuff", "Yellow", "PaleGoldenrod", "Moccasin", "PapayaWhip", "LightGoldenrodYellow", "LemonChiffon", "LightYellow"}},
	{"brown", []string{"Maroon", "Brown", "SaddleBrown", "Sienna", "Chocolate", "DarkGoldenrod", "Peru", "RosyBrown", "Goldenrod", "SandyBrown", "Tan", "Burlywood", "Wheat", "NavajoWhite", "Bisque", "BlanchedAlmond", "Cornsilk"}},
	{"green", []string{"DarkGreen", "Green", "DarkOliveGreen", "ForestGreen", "SeaGreen", "Olive", "OliveDrab", "MediumSeaGreen", "LimeGreen", "Lime", "SpringGreen", "MediumSpringGreen", "DarkSeaGreen", "MediumAquamarine", "YellowGreen", "LawnGreen", "Chartreuse", "LightGreen", "GreenYellow", "PaleGreen"}},
	{"cyan", []string{"Teal", "DarkCyan", "LightSeaGreen", "CadetBlue", "DarkTurquoise", "MediumTurquoise", "Turquoise", "Aqua", "Cyan", "Aquamarine", "PaleTurquoise", "LightCyan"}},
	{"blue", []string{"MidnightBlue", "Navy", "DarkBlue", "MediumBlue", "Blue", "RoyalBlue", "SteelBlue", "DodgerBlue", "DeepSkyBlue", "CornflowerBlue", "SkyBlue", "LightSkyBlue", "LightSteelBlue", "LightBlue", "PowderBlue"}},
	{"purple", []string{"Indigo", "Purple", "DarkMagenta", "DarkViolet", "DarkSlateBlue", "BlueViolet", "DarkOrchid", "Fuchsia", "Magenta", "SlateBlue", "MediumSlateBlue", "MediumOrchid", "MediumPurple", "Orchid", "Violet", "Plum", "Thistle", "Lavender"}},
	{"white", []string{"MistyRose", "AntiqueWhite", "Linen", "Beige", "WhiteSmoke", "LavenderBlush", "OldLace", "AliceBlue", "Seashell", "GhostWhite", "Honeydew", "FloralWhite", "Azure", "MintCream", "Snow", "Ivory", "White"}},
	{"black", []string{"Black", "DarkSlateGray", "DimGray", "SlateGray", "Gray", "LightSlateGray", "DarkGray", "Silver", "LightGray", "Gainsboro"}},
	{"extra", []string{"RebeccaPurple"}},
}

// Lookup returns a standard colour by case-insensitive CSS name.
func Lookup(name string) (Color, bool) {
	c, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Names returns lowercase names of all standard colours in natural order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Groups returns names of the shade families in listing order.
func Groups() []string {
	out := make([]string, 0, len(palettes))
	for _, p := range palettes {
		out = append(out, p.name)
	}
	return out
}

// Group returns colours of a shade family, nil for unknown family.
func Group(name string) []Named {
	i := slices.IndexFunc(palettes, func(f family) bool { return f.name == name })
	if i < 0 {
		return nil
	}
	out := make([]Named, 0, len(palettes[i].colors))
	for _, n := range palettes[i].colors {
		out = append(out, Named{Name: n, Color: byName[strings.ToLower(n)]})
	}
	return out
}

// BasicPalette returns the 16 basic web colours.
func BasicPalette() []Named {
	return Group("basic")
}
