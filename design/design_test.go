package design

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"

	"stylekit/sheet"
	"stylekit/style"
)

const sample = `
header: generated
base: {color: "#4d4d4d", margin: "0"}
styles:
  - select: .btn
    rules: {padding: 10px, cursor: pointer}
    on: {hover: {background-color: "#eeeeee"}}
    children:
      - select: span
        nth: 2
        rules: {font-weight: bold}
media:
  - max_width: 600
    styles:
      - select: .btn
        rules: {padding: 4px}
animations:
  - name: fade
    keyframes:
      - {at: 0, rules: {opacity: "0"}}
      - {at: 1, rules: {opacity: "1"}}
utilities:
  - class: p
    property: padding
    variants: [[0, 1, 2]]
    values: [[0rem, 1rem, 2rem]]
  - class: m
    property: margin
    variants: [[0.5, 1]]
  - class: gap
    property: gap
    variants: [[sm, lg]]
    values: [[4px, 16px]]
    name: '{{ .Class }}-{{ index .Variant 0 | upper }}'
palettes:
  - class: bg
    property: background-color
    start: "#ff0000"
    end: "#0000ff"
    steps: 3
    space: rgb
colors:
  - class: text
    property: color
    names: [Red, DarkRed]
`

func compile(t *testing.T, src string) (*sheet.StyleSheet, error) {
	t.Helper()
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return NewCompiler(zaptest.NewLogger(t), sheet.WithNamer(&style.CounterNamer{})).Compile(doc)
}

func TestCompile_Sample(t *testing.T) {
	s, err := compile(t, sample)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	out := s.Render()

	for _, want := range []string{
		"/* generated */\n",
		"body {\n    color: #4d4d4d;\n    margin: 0;\n}\n",
		".btn {\n    padding: 10px;\n    cursor: pointer;\n}\n",
		".btn:hover {\n    background-color: #eeeeee;\n}\n",
		".btn>span:nth-child(2) {\n    font-weight: bold;\n}\n",
		".p-0 {\n    padding: 0rem;\n}\n",
		".p-2 {\n    padding: 2rem;\n}\n",
		".m-0-5 {\n    margin: 0.5;\n}\n",
		".gap-sm {\n    gap: 4px;\n}\n",
		".bg-1 {\n    background-color: rgba(255,0,0,1);\n}\n",
		".bg-3 {\n    background-color: rgba(0,0,255,1);\n}\n",
		".text-red {\n    color: rgba(255,0,0,1);\n}\n",
		".text-darkred {\n    color: rgba(139,0,0,1);\n}\n",
		"@keyframes fade {\n    0% {\n        opacity: 0;\n    }\n    100% {\n        opacity: 1;\n    }\n}\n",
		"@media (max-width: 600px) {\n    .btn {\n        padding: 4px;\n    }\n}\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing\n%s\nin\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "@media (max-width: 600px) {\n    .btn {\n        padding: 4px;\n    }\n}\n") {
		t.Errorf("media block must come last:\n%s", out)
	}
}

func TestCompile_RuleOrder(t *testing.T) {
	s, err := compile(t, `
styles:
  - select: .z
    rules: {z-index: "2", color: red, align-items: center}
`)
	if err != nil {
		t.Fatal(err)
	}
	want := ".z {\n    z-index: 2;\n    color: red;\n    align-items: center;\n}\n"
	if got := s.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestCompile_ErrorsAggregated(t *testing.T) {
	s, err := compile(t, `
styles:
  - select: "div p"
    rules: {color: red}
  - select: .ok
    rules: {color: green}
  - rules: {color: blue}
media:
  - styles: [{select: .x, rules: {color: red}}]
palettes:
  - {class: bg, property: color, start: "#ff0000", end: "#00f", steps: 1}
colors:
  - {class: c, property: color, names: [NoSuchColor]}
utilities:
  - {class: w, property: width, variants: [[1, 2, 3]], values: [[1px]]}
`)
	if err == nil {
		t.Fatal("Compile() expected error")
	}
	errs := multierr.Errors(err)
	if len(errs) != 6 {
		t.Errorf("Compile() returned %d errors, want 6:\n%v", len(errs), err)
	}
	for _, part := range []string{"styles[0]", "styles[2]", "media[0]", "palettes[0]", "colors[0]", "utilities[0]"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q does not mention %s", err, part)
		}
	}
	if v, ok := s.Select(".ok").Value("color"); !ok || v != "green" {
		t.Errorf("valid entry not compiled, .ok color = %q", v)
	}
}

func TestCompile_AnonymousAnimation(t *testing.T) {
	s, err := compile(t, `
animations:
  - keyframes: [{at: 0.5, rules: {opacity: "0.5"}}]
`)
	if err != nil {
		t.Fatal(err)
	}
	want := "@keyframes animation-1 {\n    50% {\n        opacity: 0.5;\n    }\n}\n"
	if got := s.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", "colour: red\n"},
		{"rules not mapping", "base: [a, b]\n"},
		{"nested rule value", "base: {color: {a: b}}\n"},
		{"states not mapping", "styles: [{select: .a, on: [hover]}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src)); err == nil {
				t.Error("Parse() expected error")
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	s, err := NewCompiler(nil).Compile(doc)
	if err != nil || s.Render() != "" {
		t.Errorf("empty document compiled to %q, %v", s.Render(), err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(doc.Styles) != 1 || len(doc.Utilities) != 3 || doc.Header != "generated" {
		t.Errorf("Load() = %+v", doc)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) expected error")
	}
}
