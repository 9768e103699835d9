package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"stylekit/color"
	"stylekit/selector"
	"stylekit/style"
	"stylekit/unit"
)

func newSheet(t *testing.T, opts ...Option) *StyleSheet {
	t.Helper()
	opts = append([]Option{
		WithLogger(zaptest.NewLogger(t)),
		WithNamer(&style.CounterNamer{Prefix: "anim-"}),
	}, opts...)
	return New(opts...)
}

func TestRender_Button(t *testing.T) {
	s := newSheet(t)
	s.Select(".btn").Padding(10).Background(color.MustHex("#ff0000"))

	want := ".btn {\n    padding: 10px;\n    background-color: rgba(255,0,0,1);\n}\n"
	if got := s.Render(); got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestRender_MediaRedefine(t *testing.T) {
	s := newSheet(t)
	box := s.Select(".box").Width(1.0)

	err := s.Media(MaxWidth(600), func() error {
		st, err := s.Redefine(box)
		if err != nil {
			return err
		}
		st.Width(0.5)
		return nil
	})
	if err != nil {
		t.Fatalf("Media() error = %v", err)
	}

	want := ".box {\n    width: 100%;\n}\n" +
		"\n" +
		"@media (max-width: 600px) {\n    .box {\n        width: 50%;\n    }\n}\n"
	if got := s.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
	if v, _ := box.Value("width"); v != "100%" {
		t.Errorf("original width = %q, redefine must not touch it", v)
	}
}

func TestRender_DepthFirstSkipsEmpty(t *testing.T) {
	s := newSheet(t)
	list := s.Select("ul.menu")
	list.Children("li").Rule("display", "inline")
	list.On("hover").Rule("color", "red")
	list.Children("li").On("hover").Rule("color", "blue")
	s.Select("p").Margin(0)

	want := strings.Join([]string{
		"ul.menu>li {\n    display: inline;\n}\n",
		"ul.menu>li:hover {\n    color: blue;\n}\n",
		"ul.menu:hover {\n    color: red;\n}\n",
		"p {\n    margin: 0px;\n}\n",
	}, "\n")
	if got := s.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_Deterministic(t *testing.T) {
	build := func() string {
		s := New(WithNamer(&style.CounterNamer{}))
		s.Select("a").Color(color.Blue).On("hover").Color(color.Red)
		s.Select(".card").Rounded().Shadow(style.ShadowSpec{Blur: 4})
		s.Media(Between(300, 900), func() error {
			s.Select(".card").Padding(0.5)
			return nil
		})
		s.Select(".spin").Animate(s.Animation(""), style.AnimateSpec{Duration: 1.0, Iterations: "infinite"})
		return s.Render()
	}
	if a, b := build(), build(); a != b {
		t.Errorf("two identical builds differ:\n%s\n---\n%s", a, b)
	}
}

func TestMedia_OrderAndReuse(t *testing.T) {
	s := newSheet(t)
	s.Media(MinWidth(900), func() error {
		s.Select(".a").Rule("color", "red")
		return nil
	})
	s.Media(MaxWidth(300), func() error {
		s.Select(".b").Rule("color", "green")
		return nil
	})
	s.Media(MinWidth(900), func() error {
		s.Select(".c").Rule("color", "blue")
		return nil
	})

	qs := s.Queries()
	if len(qs) != 2 || qs[0] != MinWidth(900) || qs[1] != MaxWidth(300) {
		t.Fatalf("Queries() = %v", qs)
	}
	if n := len(s.Scoped(MinWidth(900))); n != 2 {
		t.Errorf("scope (min-width: 900px) has %d styles, want 2", n)
	}
	if n := len(s.Styles()); n != 0 {
		t.Errorf("unscoped styles = %d, want 0", n)
	}

	out := s.Render()
	first := strings.Index(out, "@media (min-width: 900px)")
	second := strings.Index(out, "@media (max-width: 300px)")
	if first < 0 || second < 0 || first > second {
		t.Errorf("media blocks out of order:\n%s", out)
	}
}

func TestMedia_ReleasedOnError(t *testing.T) {
	s := newSheet(t)
	boom := errors.New("boom")
	err := s.Media(MaxWidth(600), func() error {
		s.Select(".x").Rule("color", "red")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Media() error = %v, want %v", err, boom)
	}

	s.Select(".y").Rule("color", "blue")
	if n := len(s.Styles()); n != 1 {
		t.Errorf("unscoped styles = %d, want 1 (scope leaked)", n)
	}
}

func TestMedia_ReleasedOnPanic(t *testing.T) {
	s := newSheet(t)
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		s.Media(MaxWidth(600), func() error {
			panic("inside scope")
		})
	}()

	if _, err := s.Redefine(s.Select(".x")); !errors.Is(err, ErrNoMedia) {
		t.Errorf("Redefine() after panic error = %v, want ErrNoMedia", err)
	}
}

func TestMedia_Errors(t *testing.T) {
	s := newSheet(t)

	err := s.Media(MaxWidth(600), func() error {
		return s.Media(MinWidth(100), func() error { return nil })
	})
	if !errors.Is(err, ErrNestedMedia) {
		t.Errorf("nested Media() error = %v, want ErrNestedMedia", err)
	}
	if err := s.Media(Query{}, func() error { return nil }); !errors.Is(err, ErrEmptyMedia) {
		t.Errorf("empty Media() error = %v, want ErrEmptyMedia", err)
	}
	if err := s.Media(Between(900, 300), func() error { return nil }); err == nil {
		t.Error("Media() with min > max: expected error")
	}
}

func TestRedefine_Errors(t *testing.T) {
	s := newSheet(t)
	if _, err := s.Redefine(s.Select(".x")); !errors.Is(err, ErrNoMedia) {
		t.Errorf("Redefine() outside scope error = %v, want ErrNoMedia", err)
	}
	s.Media(MaxWidth(600), func() error {
		if _, err := s.Redefine(style.New()); !errors.Is(err, ErrAnonymous) {
			t.Errorf("Redefine(anonymous) error = %v, want ErrAnonymous", err)
		}
		a, _ := s.Redefine(s.Select(".x"))
		b, _ := s.Redefine(s.Select(".x"))
		if a != b {
			t.Error("Redefine() twice in one scope returned different styles")
		}
		return nil
	})
}

func TestQuery_CSS(t *testing.T) {
	tests := []struct {
		q    Query
		want string
	}{
		{MaxWidth(600), "(max-width: 600px)"},
		{MinWidth(300), "(min-width: 300px)"},
		{Between(300, 600), "(min-width: 300px) and (max-width: 600px)"},
	}
	for _, tt := range tests {
		if got := tt.q.CSS(); got != tt.want {
			t.Errorf("CSS() = %q, want %q", got, tt.want)
		}
	}
}

func TestSelect_Identity(t *testing.T) {
	s := newSheet(t)
	a := s.Select(".btn")
	a.Rule("color", "red")
	b := s.Select(".btn")
	if a != b {
		t.Fatal("Select() returned a different style for the same selector")
	}
	b.Rule("padding", unit.Px(2))
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
}

func TestSelect_Invalid(t *testing.T) {
	s := newSheet(t)
	st := s.Select("div p").Rule("color", "red")
	if st == nil {
		t.Fatal("Select() returned nil")
	}
	if len(s.Styles()) != 0 {
		t.Error("invalid selector was added to the sheet")
	}
	var pe *selector.ParseError
	if err := s.Err(); !errors.As(err, &pe) {
		t.Errorf("Err() = %v, want *selector.ParseError", err)
	}
	if s.Render() != "" {
		t.Errorf("Render() = %q, want empty", s.Render())
	}
}

func TestSelect_Empty(t *testing.T) {
	s := newSheet(t)
	s.Select("").Rule("color", "red")
	if len(s.Styles()) != 0 {
		t.Error("empty selector was added to the sheet")
	}
	var pe *selector.ParseError
	if err := s.Err(); !errors.As(err, &pe) || pe.Input != "" {
		t.Errorf("Err() = %v, want *selector.ParseError for empty input", err)
	}
}

func TestErr_Aggregates(t *testing.T) {
	s := newSheet(t)
	s.Select(".g").Grid(style.GridSpec{})
	s.Media(MaxWidth(600), func() error {
		s.Select(".o").Opacity(2)
		return nil
	})
	s.Animation("fade").At(0, nil, "opacity")

	err := s.Err()
	var ce *style.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Err() = %v, want *style.ConfigError", err)
	}
	for _, part := range []string{"grid", "opacity", "rules"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("Err() = %q, missing %q", err, part)
		}
	}
}

func TestAnimations_Rendered(t *testing.T) {
	s := newSheet(t)
	fade := s.Animation("fade").Start(nil, "opacity", 0).End(nil, "opacity", 1)
	spin := style.NewAnimation("spin").End(nil, "transform", "rotate(360deg)")
	s.Select(".spinner").Animate(spin, style.AnimateSpec{Duration: 500})
	s.Select(".fader").Animate(fade, style.AnimateSpec{})

	anims := s.Animations()
	if len(anims) != 2 || anims[0] != fade || anims[1] != spin {
		t.Fatalf("Animations() = %v", anims)
	}

	out := s.Render()
	iFade := strings.Index(out, "@keyframes fade {")
	iSpin := strings.Index(out, "@keyframes spin {")
	iRule := strings.Index(out, ".fader {")
	if iFade < 0 || iSpin < 0 || iRule < 0 {
		t.Fatalf("missing blocks:\n%s", out)
	}
	if !(iRule < iFade && iFade < iSpin) {
		t.Errorf("keyframes must follow styles in registration order:\n%s", out)
	}
	if strings.Count(out, "@keyframes fade") != 1 {
		t.Errorf("fade rendered more than once:\n%s", out)
	}
}

func TestAnimation_Anonymous(t *testing.T) {
	s := newSheet(t)
	a := s.Animation("")
	b := s.Animation("")
	if a.Name != "anim-1" || b.Name != "anim-2" {
		t.Errorf("names = %q, %q", a.Name, b.Name)
	}
}

func TestOptions(t *testing.T) {
	base := style.New().Font(style.FontSpec{Family: "sans-serif"}).Rule("margin", 0)
	s := newSheet(t, WithHeader("generated */ file"), WithNormalize(), WithBase(base))
	out := s.Render()

	if !strings.HasPrefix(out, "/* generated * / file */\n\n/*! normalize.css") {
		t.Errorf("Render() prefix = %q", out[:min(len(out), 80)])
	}
	if !strings.Contains(out, "\nbody {\n    font-family: sans-serif;\n    margin: 0;\n}\n") {
		t.Errorf("base style not applied to body:\n%s", out)
	}
	if s.Select("body").Len() != 2 {
		t.Error("base declarations missing on body")
	}
}

func TestExtend(t *testing.T) {
	a := newSheet(t)
	a.Select(".btn").Rule("color", "red")

	b := newSheet(t)
	b.Select(".btn").Rule("padding", unit.Px(4)).On("hover").Rule("color", "blue")
	b.Select(".card").Rule("display", "flex")
	b.Media(MaxWidth(600), func() error {
		b.Select(".card").Rule("display", "block")
		return nil
	})
	b.Animation("pulse").Start(nil, "opacity", 1)

	a.Extend(b)

	want := ".btn {\n    color: red;\n    padding: 4px;\n}\n" +
		"\n" +
		".btn:hover {\n    color: blue;\n}\n" +
		"\n" +
		".card {\n    display: flex;\n}\n" +
		"\n" +
		"@keyframes pulse {\n    0% {\n        opacity: 1;\n    }\n}\n" +
		"\n" +
		"@media (max-width: 600px) {\n    .card {\n        display: block;\n    }\n}\n"
	if got := a.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestImport_RoundTrip(t *testing.T) {
	src := newSheet(t)
	menu := src.Select("ul.menu").Rule("list-style", "none")
	menu.Children("li", 2).Rule("color", "rgba(255,0,0,1)")
	menu.On("hover", selector.Attr{Key: "data-x", Value: "y"}).Rule("opacity", 0.5)
	menu.Children("li", 3).On("hover").Rule("color", "blue")
	src.Select("#main").Padding(10).Margin(0.5)
	src.Select(".grid").Grid(style.GridSpec{Columns: 3})
	src.Select(".item").Place(style.GridPlace{Columns: []int{1, 3}})
	src.Select(".fade").
		Transition(style.TransitionSpec{Property: "opacity", Duration: 1.5}).
		Transition(style.TransitionSpec{Property: "color"})
	src.Select(".code").Font(style.FontSpec{Family: `"Fira Code", monospace`})
	src.Animation("fade").Start(nil, "opacity", 0).At(0.25, nil, "opacity", 0.1).End(nil, "opacity", 1)
	src.Media(Between(300, 600), func() error {
		src.Select(".box").Width(0.5)
		src.Select("p").Rule("font-size", unit.Em(0.9))
		return nil
	})
	rendered := src.Render()

	dst := newSheet(t)
	warnings, err := dst.Import([]byte(rendered))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Import() warnings = %v", warnings)
	}
	if got := dst.Render(); got != rendered {
		t.Errorf("round trip differs:\ngot:\n%s\nwant:\n%s", got, rendered)
	}
	for _, want := range []string{
		"ul.menu>li:nth-child(3):hover {",
		"grid-template-columns: repeat(3, 1fr);",
		"grid-column: 1 / 3;",
		"transition: opacity 1.5s, color 250ms;",
		`font-family: "Fira Code", monospace;`,
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered sheet is missing %q:\n%s", want, rendered)
		}
	}
}

func TestImport_Warnings(t *testing.T) {
	s := newSheet(t)
	data := `@import "base.css";
@font-face { font-family: x; }
div p { color: red; }
.ok { color: green; }
@media print { .x { color: red; } }
@media (max-width: 500px) { .y { color: blue; } a b { color: red; } }
`
	warnings, err := s.Import([]byte(data))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(warnings) != 5 {
		t.Errorf("Import() warnings = %d %v, want 5", len(warnings), warnings)
	}
	if v, ok := s.Select(".ok").Value("color"); !ok || v != "green" {
		t.Errorf(".ok color = %q", v)
	}
	if len(s.Styles()) != 1 {
		t.Errorf("unscoped styles = %d, want 1", len(s.Styles()))
	}
	if n := len(s.Scoped(MaxWidth(500))); n != 1 {
		t.Errorf("scoped styles = %d, want 1", n)
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v, unsupported selectors must not poison the sheet", err)
	}
}

func TestImport_InsideScope(t *testing.T) {
	s := newSheet(t)
	err := s.Media(MaxWidth(600), func() error {
		_, err := s.Import([]byte("@media (min-width: 100px) { .x { color: red; } }"))
		return err
	})
	if !errors.Is(err, ErrNestedMedia) {
		t.Errorf("Import() inside scope error = %v, want ErrNestedMedia", err)
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()

	s := newSheet(t)
	s.Select(".btn").Padding(10)
	path := filepath.Join(dir, "out.css")
	if err := s.RenderFile(path); err != nil {
		t.Fatalf("RenderFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != s.Render() {
		t.Errorf("file content = %q, want %q", data, s.Render())
	}

	bad := newSheet(t)
	bad.Select(".g").Grid(style.GridSpec{})
	badPath := filepath.Join(dir, "bad.css")
	if err := bad.RenderFile(badPath); err == nil {
		t.Error("RenderFile() with builder errors: expected error")
	}
	if _, err := os.Stat(badPath); !os.IsNotExist(err) {
		t.Error("RenderFile() wrote a file for a sheet with errors")
	}
}

func TestDump(t *testing.T) {
	s := newSheet(t)
	s.Select(".a").Rule("color", "red").On("hover").Rule("color", "blue")
	s.Media(MaxWidth(600), func() error {
		s.Select(".a").Rule("color", "green")
		return nil
	})
	s.Animation("fade10").Start(nil, "opacity", 0)
	s.Animation("fade9").End(nil, "opacity", 1)

	want := `stylesheet
  .a (1 declaration)
    color: red
    .a:hover (1 declaration)
      color: blue
  @media (max-width: 600px)
    .a (1 declaration)
      color: green
  animations
    @keyframes fade9 [100%]
    @keyframes fade10 [0%]
`
	if got := s.Dump(); got != want {
		t.Errorf("Dump() =\n%s\nwant\n%s", got, want)
	}
}
