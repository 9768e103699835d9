package style

import (
	"fmt"
	"slices"
	"strings"

	"stylekit/color"
	"stylekit/unit"
)

// Edges holds optional per-side values. Nil sides are skipped.
type Edges struct {
	Left, Right, Top, Bottom any
}

func (e Edges) each(fn func(side string, v any)) {
	for _, side := range []struct {
		name string
		v    any
	}{{"left", e.Left}, {"right", e.Right}, {"top", e.Top}, {"bottom", e.Bottom}} {
		if side.v != nil {
			fn(side.name, side.v)
		}
	}
}

// infer wraps unit.Infer recording failures as ConfigError.
func (s *Style) infer(helper string, v any, onFloat, onInt unit.Ctor) (unit.Unit, bool) {
	u, err := unit.Infer(v, onFloat, onInt)
	if err != nil {
		s.fail(helper, "%v", err)
		return unit.Unit{}, false
	}
	return u, true
}

// dim stores attr = Infer(v) and reports success. Nil values are skipped.
func (s *Style) dim(helper, attr string, v any, onFloat unit.Ctor) bool {
	if v == nil {
		return true
	}
	u, ok := s.infer(helper, v, onFloat, nil)
	if ok {
		s.Rule(attr, u)
	}
	return ok
}

// Typography

var fontWeightKeywords = []string{"normal", "bold", "lighter", "bolder"}

// FontSpec describes font declarations. Size floats are rem, integers px.
// Weight is an integer 100..900 in steps of 100 or a weight keyword.
type FontSpec struct {
	Size   any
	Weight any
	Family string
}

// Font sets font-size, font-weight and font-family.
func (s *Style) Font(f FontSpec) *Style {
	var weight string
	switch w := f.Weight.(type) {
	case nil:
	case int:
		if w < 100 || w > 900 || w%100 != 0 {
			return s.fail("font", "weight %d is not a multiple of 100 in 100..900", w)
		}
		weight = unit.Format(w)
	case string:
		if !slices.Contains(fontWeightKeywords, w) {
			return s.fail("font", "unknown weight keyword %q", w)
		}
		weight = w
	default:
		return s.fail("font", "unsupported weight type %T", f.Weight)
	}
	if !s.dim("font", "font-size", f.Size, nil) {
		return s
	}
	if weight != "" {
		s.Rule("font-weight", weight)
	}
	if f.Family != "" {
		s.Rule("font-family", f.Family)
	}
	return s
}

var textAligns = []string{"left", "right", "center", "justify", "start", "end"}

// TextSpec describes text declarations. Decoration may be a string or false,
// which renders as "none".
type TextSpec struct {
	Align      string
	Decoration any
	Transform  string
}

// Text sets text-align, text-decoration and text-transform.
func (s *Style) Text(t TextSpec) *Style {
	if t.Align != "" && !slices.Contains(textAligns, t.Align) {
		return s.fail("text", "unknown alignment %q", t.Align)
	}
	var decoration string
	switch d := t.Decoration.(type) {
	case nil:
	case bool:
		if d {
			return s.fail("text", "decoration true is ambiguous, name the decoration")
		}
		decoration = "none"
	case string:
		decoration = d
	default:
		return s.fail("text", "unsupported decoration type %T", t.Decoration)
	}
	if t.Align != "" {
		s.Rule("text-align", t.Align)
	}
	if decoration != "" {
		s.Rule("text-decoration", decoration)
	}
	if t.Transform != "" {
		s.Rule("text-transform", t.Transform)
	}
	return s
}

func (s *Style) Center() *Style  { return s.Text(TextSpec{Align: "center"}) }
func (s *Style) Left() *Style    { return s.Text(TextSpec{Align: "left"}) }
func (s *Style) Right() *Style   { return s.Text(TextSpec{Align: "right"}) }
func (s *Style) Justify() *Style { return s.Text(TextSpec{Align: "justify"}) }

// LineHeight sets line-height. Floats stay unitless, integers are px.
func (s *Style) LineHeight(v any) *Style {
	s.dim("line-height", "line-height", v, func(f float64) unit.Unit { return unit.New(f, "") })
	return s
}

// LetterSpacing sets letter-spacing. Floats are em, integers px.
func (s *Style) LetterSpacing(v any) *Style {
	s.dim("letter-spacing", "letter-spacing", v, unit.Em)
	return s
}

// Colour

// Color sets the foreground colour.
func (s *Style) Color(c color.Color) *Style {
	return s.Rule("color", c)
}

// Background sets background-color.
func (s *Style) Background(c color.Color) *Style {
	return s.Rule("background-color", c)
}

// Opacity sets opacity, which must be within 0..1.
func (s *Style) Opacity(v float64) *Style {
	if v < 0 || v > 1 {
		return s.fail("opacity", "%s is outside 0..1", unit.FormatNumber(v))
	}
	return s.Rule("opacity", v)
}

// Visibility

func (s *Style) Visibility(v string) *Style { return s.Rule("visibility", v) }
func (s *Style) Visible() *Style            { return s.Visibility("visible") }
func (s *Style) Hidden() *Style             { return s.Visibility("hidden") }
func (s *Style) Display(v string) *Style    { return s.Rule("display", v) }
func (s *Style) Cursor(v string) *Style     { return s.Rule("cursor", v) }

// Geometry. Dimension floats are fractions rendered as percentages, spacing
// floats are rem, integers are px everywhere.

func (s *Style) Width(v any) *Style     { s.dim("width", "width", v, unit.Pc); return s }
func (s *Style) Height(v any) *Style    { s.dim("height", "height", v, unit.Pc); return s }
func (s *Style) MinWidth(v any) *Style  { s.dim("min-width", "min-width", v, unit.Pc); return s }
func (s *Style) MaxWidth(v any) *Style  { s.dim("max-width", "max-width", v, unit.Pc); return s }
func (s *Style) MinHeight(v any) *Style { s.dim("min-height", "min-height", v, unit.Pc); return s }
func (s *Style) MaxHeight(v any) *Style { s.dim("max-height", "max-height", v, unit.Pc); return s }

// Margin sets the margin shorthand.
func (s *Style) Margin(all any) *Style {
	s.dim("margin", "margin", all, nil)
	return s
}

// MarginSides sets margin-left, margin-right, margin-top and margin-bottom.
func (s *Style) MarginSides(e Edges) *Style {
	return s.sides("margin", e)
}

// Padding sets the padding shorthand.
func (s *Style) Padding(all any) *Style {
	s.dim("padding", "padding", all, nil)
	return s
}

// PaddingSides sets padding-left, padding-right, padding-top and
// padding-bottom.
func (s *Style) PaddingSides(e Edges) *Style {
	return s.sides("padding", e)
}

func (s *Style) sides(prop string, e Edges) *Style {
	e.each(func(side string, v any) {
		s.dim(prop, prop+"-"+side, v, nil)
	})
	return s
}

// Rounded sets border-radius, 0.25rem when no radius is given.
func (s *Style) Rounded(radius ...any) *Style {
	var r any = 0.25
	if len(radius) > 0 && radius[0] != nil {
		r = radius[0]
	}
	s.dim("rounded", "border-radius", r, nil)
	return s
}

// BorderSpec describes the border shorthand. Style defaults to solid.
type BorderSpec struct {
	Width any
	Style string
	Color *color.Color
}

// Border sets the border shorthand.
func (s *Style) Border(b BorderSpec) *Style {
	if b.Width == nil && b.Color == nil && b.Style == "" {
		return s
	}
	var parts []string
	if b.Width != nil {
		u, ok := s.infer("border", b.Width, nil, nil)
		if !ok {
			return s
		}
		parts = append(parts, u.String())
	}
	kind := b.Style
	if kind == "" {
		kind = "solid"
	}
	parts = append(parts, kind)
	if b.Color != nil {
		parts = append(parts, b.Color.String())
	}
	return s.Rule("border", strings.Join(parts, " "))
}

// ShadowSpec describes a box-shadow. Offsets default to zero, blur and spread
// are omitted when nil.
type ShadowSpec struct {
	Color  *color.Color
	X, Y   any
	Blur   any
	Spread any
	Inset  bool
}

// Shadow sets box-shadow.
func (s *Style) Shadow(sh ShadowSpec) *Style {
	lengths := []any{sh.X, sh.Y, sh.Blur, sh.Spread}
	if lengths[0] == nil {
		lengths[0] = 0
	}
	if lengths[1] == nil {
		lengths[1] = 0
	}
	if sh.Spread != nil && sh.Blur == nil {
		lengths[2] = 0
	}
	var parts []string
	if sh.Inset {
		parts = append(parts, "inset")
	}
	for _, v := range lengths {
		if v == nil {
			continue
		}
		u, ok := s.infer("shadow", v, unit.Px, nil)
		if !ok {
			return s
		}
		parts = append(parts, u.String())
	}
	if sh.Color != nil {
		parts = append(parts, sh.Color.String())
	}
	return s.Rule("box-shadow", strings.Join(parts, " "))
}

// Layout

// FlexboxSpec describes a flex container. Direction is row (default) or
// column.
type FlexboxSpec struct {
	Direction string
	Wrap      bool
	Reverse   bool
	Align     string
	Justify   string
	Gap       any
}

// Flexbox turns s into a flex container.
func (s *Style) Flexbox(f FlexboxSpec) *Style {
	direction := f.Direction
	switch direction {
	case "":
		direction = "row"
	case "row", "column":
	default:
		return s.fail("flexbox", "direction must be row or column, got %q", direction)
	}
	if f.Reverse {
		direction += "-reverse"
	}
	s.Rule("display", "flex").Rule("flex-direction", direction)
	if f.Wrap {
		s.Rule("flex-wrap", "wrap")
	}
	if f.Align != "" {
		s.Rule("align-items", f.Align)
	}
	if f.Justify != "" {
		s.Rule("justify-content", f.Justify)
	}
	s.dim("flexbox", "gap", f.Gap, nil)
	return s
}

// FlexSpec describes a flex item. Basis floats are percentages.
type FlexSpec struct {
	Grow   any
	Shrink any
	Basis  any
}

// Flex sets flex-grow, flex-shrink and flex-basis.
func (s *Style) Flex(f FlexSpec) *Style {
	for _, factor := range []struct {
		attr string
		v    any
	}{{"flex-grow", f.Grow}, {"flex-shrink", f.Shrink}} {
		if factor.v == nil {
			continue
		}
		n, ok := number(factor.v)
		if !ok || n < 0 {
			return s.fail("flex", "%s must be a non-negative number, got %v", factor.attr, factor.v)
		}
		s.Rule(factor.attr, n)
	}
	s.dim("flex", "flex-basis", f.Basis, unit.Pc)
	return s
}

// GridSpec describes a grid container. Columns and Rows accept a track
// count (int, rendered as repeat(n, 1fr)), a unit, a list of units or a
// verbatim template string. At least one of them is required.
type GridSpec struct {
	Columns any
	Rows    any
	Gap     any
}

// Grid turns s into a grid container.
func (s *Style) Grid(g GridSpec) *Style {
	if g.Columns == nil && g.Rows == nil {
		return s.fail("grid", "requires columns or rows")
	}
	var cols, rows string
	var err error
	if g.Columns != nil {
		if cols, err = tracks(g.Columns); err != nil {
			return s.fail("grid", "columns: %v", err)
		}
	}
	if g.Rows != nil {
		if rows, err = tracks(g.Rows); err != nil {
			return s.fail("grid", "rows: %v", err)
		}
	}
	s.Rule("display", "grid")
	if cols != "" {
		s.Rule("grid-template-columns", cols)
	}
	if rows != "" {
		s.Rule("grid-template-rows", rows)
	}
	s.dim("grid", "gap", g.Gap, nil)
	return s
}

func tracks(v any) (string, error) {
	switch t := v.(type) {
	case int:
		if t < 1 {
			return "", fmt.Errorf("track count must be positive, got %d", t)
		}
		return unit.Repeat(t, unit.Fr(1)).String(), nil
	case unit.Unit:
		return t.String(), nil
	case []unit.Unit:
		if len(t) == 0 {
			return "", fmt.Errorf("empty track list")
		}
		parts := make([]string, len(t))
		for i, u := range t {
			parts[i] = u.String()
		}
		return strings.Join(parts, " "), nil
	case string:
		if strings.TrimSpace(t) == "" {
			return "", fmt.Errorf("empty template")
		}
		return t, nil
	default:
		return "", fmt.Errorf("unsupported track type %T", v)
	}
}

// GridPlace positions a grid item. Each span is a start line or a start and
// end line; empty spans are skipped.
type GridPlace struct {
	Columns []int
	Rows    []int
}

// Place sets grid-column and grid-row.
func (s *Style) Place(p GridPlace) *Style {
	for _, span := range [][]int{p.Columns, p.Rows} {
		if len(span) > 2 {
			return s.fail("place", "span takes at most start and end, got %v", span)
		}
	}
	for _, span := range []struct {
		attr  string
		lines []int
	}{{"grid-column", p.Columns}, {"grid-row", p.Rows}} {
		switch len(span.lines) {
		case 1:
			s.Rule(span.attr, span.lines[0])
		case 2:
			s.Rule(span.attr, fmt.Sprintf("%d / %d", span.lines[0], span.lines[1]))
		}
	}
	return s
}

var positions = []string{"static", "relative", "absolute", "fixed", "sticky"}

// Position sets position and the given offsets.
func (s *Style) Position(kind string, e Edges) *Style {
	if !slices.Contains(positions, kind) {
		return s.fail("position", "unknown position %q", kind)
	}
	s.Rule("position", kind)
	e.each(func(side string, v any) {
		s.dim("position", side, v, nil)
	})
	return s
}

func (s *Style) Absolute(e Edges) *Style { return s.Position("absolute", e) }
func (s *Style) Relative(e Edges) *Style { return s.Position("relative", e) }
func (s *Style) Fixed(e Edges) *Style    { return s.Position("fixed", e) }

// ZIndex sets z-index.
func (s *Style) ZIndex(z int) *Style {
	return s.Rule("z-index", z)
}

// Motion

// TransitionSpec describes one transition. Property defaults to all and
// duration to 250ms. Integer durations are milliseconds, floats seconds.
type TransitionSpec struct {
	Property string
	Duration any
	Timing   string
	Delay    any
}

// Transition adds a transition. Transitions for different properties
// accumulate into one comma separated declaration.
func (s *Style) Transition(t TransitionSpec) *Style {
	prop := t.Property
	if prop == "" {
		prop = "all"
	}
	var duration any = 250
	if t.Duration != nil {
		duration = t.Duration
	}
	d, ok := s.infer("transition", duration, unit.Sec, unit.Ms)
	if !ok {
		return s
	}
	if d.Value < 0 {
		return s.fail("transition", "negative duration %s", d)
	}
	parts := []string{prop, d.String()}
	if t.Timing != "" {
		parts = append(parts, t.Timing)
	}
	if t.Delay != nil {
		delay, ok := s.infer("transition", t.Delay, unit.Sec, unit.Ms)
		if !ok {
			return s
		}
		parts = append(parts, delay.String())
	}
	return s.accumulate("transition", ", ", strings.Join(parts, " "))
}

// Scale appends a scale() transform. A second factor scales y separately.
func (s *Style) Scale(x float64, y ...float64) *Style {
	if len(y) > 0 {
		return s.accumulate("transform", " ",
			fmt.Sprintf("scale(%s, %s)", unit.FormatNumber(x), unit.FormatNumber(y[0])))
	}
	return s.accumulate("transform", " ", fmt.Sprintf("scale(%s)", unit.FormatNumber(x)))
}

// Translate appends a translate() transform. Nil offsets are zero.
func (s *Style) Translate(x, y any) *Style {
	offsets := make([]string, 2)
	for i, v := range []any{x, y} {
		if v == nil {
			v = 0
		}
		u, ok := s.infer("translate", v, nil, nil)
		if !ok {
			return s
		}
		offsets[i] = u.String()
	}
	return s.accumulate("transform", " ", fmt.Sprintf("translate(%s, %s)", offsets[0], offsets[1]))
}

// Rotate appends a rotate() transform. Numbers are degrees.
func (s *Style) Rotate(v any) *Style {
	u, ok := s.infer("rotate", v, unit.Deg, unit.Deg)
	if !ok {
		return s
	}
	return s.accumulate("transform", " ", fmt.Sprintf("rotate(%s)", u))
}

// AnimateSpec describes how an animation runs. Integer durations are
// milliseconds, floats seconds. Iterations is a positive int or "infinite".
type AnimateSpec struct {
	Duration   any
	Iterations any
	Timing     string
	Delay      any
	Direction  string
}

// Animate attaches an animation to s. Attached animations are rendered as
// @keyframes blocks by the stylesheet.
func (s *Style) Animate(a *Animation, spec AnimateSpec) *Style {
	if a == nil || a.Name == "" {
		return s.fail("animate", "animation without name")
	}
	var iterations string
	switch it := spec.Iterations.(type) {
	case nil:
	case int:
		if it < 1 {
			return s.fail("animate", "iterations must be positive, got %d", it)
		}
		iterations = unit.Format(it)
	case string:
		if it != "infinite" {
			return s.fail("animate", "iterations must be a number or infinite, got %q", it)
		}
		iterations = it
	default:
		return s.fail("animate", "unsupported iterations type %T", spec.Iterations)
	}
	var times [2]string
	for i, d := range []any{spec.Duration, spec.Delay} {
		if d == nil {
			continue
		}
		u, ok := s.infer("animate", d, unit.Sec, unit.Ms)
		if !ok {
			return s
		}
		if i == 0 && u.Value < 0 {
			return s.fail("animate", "negative duration %s", u)
		}
		times[i] = u.String()
	}

	s.attach(a)
	s.Rule("animation-name", a.Name)
	for _, d := range []Property{
		{"animation-duration", times[0]},
		{"animation-iteration-count", iterations},
		{"animation-timing-function", spec.Timing},
		{"animation-delay", times[1]},
		{"animation-direction", spec.Direction},
	} {
		if d.Value != "" {
			s.Rule(d.Name, d.Value)
		}
	}
	return s
}

func (s *Style) accumulate(attr, sep, value string) *Style {
	if prev, ok := s.Value(attr); ok && prev != "" {
		return s.Rule(attr, prev+sep+value)
	}
	return s.Rule(attr, value)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
