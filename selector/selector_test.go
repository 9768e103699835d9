package selector

import (
	"errors"
	"slices"
	"testing"
)

func TestParse_Simple(t *testing.T) {
	for _, s := range []string{"div", "p", "body", "something-funny", "h1"} {
		sel, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", s, err)
		}
		if sel.Tag != s {
			t.Errorf("Parse(%q).Tag = %q", s, sel.Tag)
		}
		if got := sel.CSS(); got != s {
			t.Errorf("Parse(%q).CSS() = %q", s, got)
		}
	}
}

func TestParse_Components(t *testing.T) {
	sel, err := Parse("div#main.bar.foo:hover:active[state=on][size=lg]")
	if err != nil {
		t.Fatal(err)
	}
	if sel.Tag != "div" || sel.ID != "main" {
		t.Errorf("tag/id = %q/%q", sel.Tag, sel.ID)
	}
	if !slices.Equal(sel.Classes, []string{"bar", "foo"}) {
		t.Errorf("classes = %v", sel.Classes)
	}
	if !slices.Equal(sel.States, []string{"hover", "active"}) {
		t.Errorf("states = %v", sel.States)
	}
	want := []Attr{{"state", "on"}, {"size", "lg"}}
	if !slices.Equal(sel.Attrs, want) {
		t.Errorf("attrs = %v", sel.Attrs)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{
		"*", "div p", "ul>li", ".a,.b", "a::before", "#", ".",
		"[state]", "[a=\"b\"]", ":hover.btn", "div#a#b", "-x", "x-",
	} {
		_, err := Parse(s)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) error = %v, want *ParseError", s, err)
			continue
		}
		if pe.Input != s {
			t.Errorf("ParseError.Input = %q, want %q", pe.Input, s)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	sels := []Selector{
		{Tag: "div", ID: "main", Classes: []string{"bar", "foo"}},
		{States: []string{"hover", "active"}},
		{Classes: []string{"component"}, Attrs: []Attr{{"state", "on"}}},
		{Tag: "a", States: []string{"visited"}, Attrs: []Attr{{"data-x", "1"}, {"k", "v-2"}}},
		{ID: "color-palette"},
		{},
	}
	for _, s := range sels {
		css := s.CSS()
		parsed, err := Parse(css)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", css, err)
		}
		if got := parsed.CSS(); got != css {
			t.Errorf("round trip %q -> %q", css, got)
		}
	}
}

func TestOn_IsPure(t *testing.T) {
	base := MustParse(".btn[kind=x]")
	hover := base.On([]string{"hover"}, Attr{"state", "on"}, Attr{"kind", "y"})

	if got := base.CSS(); got != ".btn[kind=x]" {
		t.Errorf("base mutated: %q", got)
	}
	if got := hover.CSS(); got != ".btn:hover[kind=y][state=on]" {
		t.Errorf("On() = %q", got)
	}

	// appending to a derived selector must not leak into siblings
	a := base.State("a")
	b := base.State("b")
	if a.CSS() != ".btn:a[kind=x]" || b.CSS() != ".btn:b[kind=x]" {
		t.Errorf("siblings share state: %q %q", a.CSS(), b.CSS())
	}
}

func TestChildren(t *testing.T) {
	ul := Selector{Tag: "ul", ID: "main"}
	li, err := ul.Children("li", 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := li.CSS(); got != "ul#main>li:nth-child(2)" {
		t.Errorf("Children() = %q", got)
	}
	if ul.CSS() != "ul#main" {
		t.Error("Children must not modify parent")
	}

	div, err := MustParse(".palette").Children("div")
	if err != nil {
		t.Fatal(err)
	}
	span, err := div.Children("span.x")
	if err != nil {
		t.Fatal(err)
	}
	if got := span.CSS(); got != ".palette>div>span.x" {
		t.Errorf("nested Children() = %q", got)
	}

	if _, err := ul.Children("li > a"); err == nil {
		t.Error("expected parse error for combinator in child selector")
	}
	var pe *ParseError
	if _, err := ul.Children("", 1); !errors.As(err, &pe) {
		t.Errorf("Children(\"\") error = %v, want *ParseError", err)
	}
}

func TestMarkup(t *testing.T) {
	sel := MustParse("div#main.bar.foo:hover")
	if got := sel.Markup(); got != `id="main" class="bar foo"` {
		t.Errorf("Markup() = %q", got)
	}
	if got := MustParse("p").Markup(); got != "" {
		t.Errorf("Markup() = %q, want empty", got)
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic")
		}
	}()
	MustParse("not valid!")
}
