package preset

import (
	"go.uber.org/zap"

	"stylekit/color"
	"stylekit/sheet"
	"stylekit/style"
	"stylekit/unit"
)

// Size is a named font size, e.g. ".text.small".
type Size struct {
	Name string
	Font unit.Unit
}

// Tone is a named colour, e.g. ".button.primary".
type Tone struct {
	Name  string
	Color color.Color
}

// DefaultSizes are the sizes used when SemanticOptions.Sizes is empty.
var DefaultSizes = []Size{
	{"small", unit.Rem(1)},
	{"medium", unit.Rem(1.4)},
	{"large", unit.Rem(2)},
}

// DefaultTones are the tones used when SemanticOptions.Tones is empty.
var DefaultTones = []Tone{
	{"normal", color.White.Lit(0.9)},
	{"primary", color.Blue.Lit(0.3)},
	{"success", color.Green.Lit(0.3)},
	{"warning", color.Orange.Lit(0.6)},
	{"error", color.Red.Lit(0.3)},
}

// SemanticOptions configures SemanticDesign.
type SemanticOptions struct {
	TextClass   string // "text" when empty
	ButtonClass string // "button" when empty
	Sizes       []Size
	Tones       []Tone
}

// SemanticDesign generates text and button classes combining a base class
// with size and tone modifiers: ".button.large", ".text.error".
type SemanticDesign struct {
	*sheet.StyleSheet
	opts SemanticOptions
}

// NewSemanticDesign creates an empty design. Call Typography, Buttons or All
// to populate it.
func NewSemanticDesign(log *zap.Logger, o SemanticOptions, opts ...sheet.Option) *SemanticDesign {
	if o.TextClass == "" {
		o.TextClass = "text"
	}
	if o.ButtonClass == "" {
		o.ButtonClass = "button"
	}
	if len(o.Sizes) == 0 {
		o.Sizes = DefaultSizes
	}
	if len(o.Tones) == 0 {
		o.Tones = DefaultTones
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SemanticDesign{
		StyleSheet: sheet.New(append([]sheet.Option{sheet.WithLogger(log)}, opts...)...),
		opts:       o,
	}
}

// Typography defines the text class and its size and tone modifiers.
func (d *SemanticDesign) Typography() *SemanticDesign {
	base := "." + d.opts.TextClass
	d.Select(base).Color(color.Black.Lit(0.2))
	for _, sz := range d.opts.Sizes {
		d.Select(base + "." + sz.Name).Font(style.FontSpec{Size: sz.Font})
	}
	for _, t := range d.opts.Tones {
		d.Select(base + "." + t.Name).Color(t.Color.Lit(0.2))
	}
	return d
}

// Buttons defines the button class, its sizes and a coloured variant with
// hover and active states per tone.
func (d *SemanticDesign) Buttons() *SemanticDesign {
	base := "." + d.opts.ButtonClass
	shadow := color.Black.Transparent(0.2)
	d.Select(base).
		Rule("cursor", "pointer").
		Rounded().
		Shadow(style.ShadowSpec{Color: &shadow, X: 2, Y: 2, Blur: 4}).
		Transition(style.TransitionSpec{Duration: 50})

	for _, sz := range d.opts.Sizes {
		pad := sz.Font.Div(4)
		d.Select(base + "." + sz.Name).
			Font(style.FontSpec{Size: sz.Font}).
			PaddingSides(style.Edges{Left: pad.Mul(2), Right: pad.Mul(2), Top: pad, Bottom: pad})
	}

	for _, t := range d.opts.Tones {
		text, accent := t.Color.Lit(0.1), color.Black
		if t.Color.Lightness() < 0.4 {
			text, accent = t.Color.Lit(0.9), color.White
		}
		btn := d.Select(base + "." + t.Name).Background(t.Color).Color(text)
		btn.On("hover").Background(t.Color.Lighter(0.2)).Color(accent)
		glow := t.Color.Lit(0.2).Transparent(0.2)
		btn.On("active").
			Background(t.Color.Darker(0.1)).
			Color(accent).
			Shadow(style.ShadowSpec{Color: &glow, X: 0, Y: 0, Blur: 2, Spread: 1})
	}
	return d
}

// All defines typography and buttons.
func (d *SemanticDesign) All() *SemanticDesign {
	return d.Typography().Buttons()
}
