// Package selector models the subset of CSS selectors the engine supports: a
// single compound selector (tag, id, classes, pseudo states, attributes) with
// an optional parent joined by the child combinator.
package selector

import (
	"fmt"
	"html"
	"regexp"
	"slices"
	"strings"
)

const (
	token = `(?:[a-zA-Z0-9]+-)*[a-zA-Z0-9]+`

	pattern = `^(?P<tag>` + token + `)?` +
		`(?P<id>#` + token + `)?` +
		`(?P<classes>(?:\.` + token + `)*)` +
		`(?P<states>(?::` + token + `)*)` +
		`(?P<attrs>(?:\[` + token + `=` + token + `\])*)$`
)

var selectorRe = regexp.MustCompile(pattern)

// ParseError reports a selector string outside the supported grammar.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid CSS selector: %q", e.Input)
}

// Attr is a single [key=value] attribute condition.
type Attr struct {
	Key   string
	Value string
}

// Selector is immutable by convention: On and Children return new values and
// never share slices with the receiver.
type Selector struct {
	Tag     string
	ID      string
	Classes []string
	States  []string
	Attrs   []Attr
	Parent  *Selector
}

// Parse parses a selector string. The parent, if any, must be supplied by the
// caller, the grammar itself has no combinators. Every part is optional, ""
// parses to the empty selector.
func Parse(s string) (Selector, error) {
	m := selectorRe.FindStringSubmatch(s)
	if m == nil {
		return Selector{}, &ParseError{Input: s}
	}

	group := func(name string) string {
		return m[selectorRe.SubexpIndex(name)]
	}

	sel := Selector{
		Tag: group("tag"),
		ID:  strings.TrimPrefix(group("id"), "#"),
	}
	if cls := group("classes"); cls != "" {
		sel.Classes = strings.Split(cls, ".")[1:]
	}
	if st := group("states"); st != "" {
		sel.States = strings.Split(st, ":")[1:]
	}
	if at := group("attrs"); at != "" {
		for part := range strings.SplitSeq(strings.Trim(at, "[]"), "][") {
			k, v, _ := strings.Cut(part, "=")
			sel = sel.withAttr(k, v)
		}
	}
	return sel, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Selector {
	sel, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// CSS serializes the selector: parent and '>' first, then tag, id, classes,
// states and attributes in that fixed order.
func (s Selector) CSS() string {
	var b strings.Builder
	if s.Parent != nil {
		b.WriteString(s.Parent.CSS())
		b.WriteByte('>')
	}
	b.WriteString(s.Tag)
	if s.ID != "" {
		b.WriteByte('#')
		b.WriteString(s.ID)
	}
	for _, c := range s.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	for _, st := range s.States {
		b.WriteByte(':')
		b.WriteString(st)
	}
	for _, a := range s.Attrs {
		fmt.Fprintf(&b, "[%s=%s]", a.Key, a.Value)
	}
	return b.String()
}

func (s Selector) String() string {
	return s.CSS()
}

// IsEmpty reports whether the selector matches nothing in particular.
func (s Selector) IsEmpty() bool {
	return s.Parent == nil && s.Tag == "" && s.ID == "" &&
		len(s.Classes) == 0 && len(s.States) == 0 && len(s.Attrs) == 0
}

// On returns a new selector with extra pseudo states and attribute
// conditions. An attribute with an existing key replaces its value in place.
func (s Selector) On(states []string, attrs ...Attr) Selector {
	out := s.clone()
	out.States = append(out.States, states...)
	for _, a := range attrs {
		out = out.withAttr(a.Key, a.Value)
	}
	return out
}

// State is a shortcut for On with pseudo states only.
func (s Selector) State(states ...string) Selector {
	return s.On(states)
}

// Children returns the selector for direct children of s matching sel. A
// positive nth adds :nth-child(nth).
func (s Selector) Children(sel string, nth ...int) (Selector, error) {
	child, err := Parse(sel)
	if err != nil {
		return Selector{}, err
	}
	if child.IsEmpty() {
		return Selector{}, &ParseError{Input: sel}
	}
	parent := s.clone()
	child.Parent = &parent
	if len(nth) > 0 && nth[0] > 0 {
		child = child.State(fmt.Sprintf("nth-child(%d)", nth[0]))
	}
	return child, nil
}

// Markup renders id and class attributes for an HTML element matching s.
func (s Selector) Markup() string {
	var parts []string
	if s.ID != "" {
		parts = append(parts, `id="` + html.EscapeString(s.ID) + `"`)
	}
	if len(s.Classes) > 0 {
		parts = append(parts, `class="` + html.EscapeString(strings.Join(s.Classes, " ")) + `"`)
	}
	return strings.Join(parts, " ")
}

func (s Selector) clone() Selector {
	out := Selector{
		Tag:     s.Tag,
		ID:      s.ID,
		Classes: slices.Clone(s.Classes),
		States:  slices.Clone(s.States),
		Attrs:   slices.Clone(s.Attrs),
		Parent:  s.Parent,
	}
	return out
}

func (s Selector) withAttr(k, v string) Selector {
	if i := slices.IndexFunc(s.Attrs, func(a Attr) bool { return a.Key == k }); i >= 0 {
		s.Attrs = slices.Clone(s.Attrs)
		s.Attrs[i].Value = v
		return s
	}
	s.Attrs = append(slices.Clone(s.Attrs), Attr{Key: k, Value: v})
	return s
}
