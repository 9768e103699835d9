// Package style implements the style node: a selector, an ordered set of
// declarations and a memoized forest of derived sub-styles, plus the
// declaration helpers and keyframe animations built on top of it.
package style

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"stylekit/selector"
	"stylekit/unit"
)

// Indent is the indentation unit of rendered CSS.
const Indent = "    "

// ConfigError reports a helper called with an invalid or insufficient
// combination of arguments.
type ConfigError struct {
	Selector string // empty for anonymous styles
	Helper   string
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("%s: %s", e.Helper, e.Reason)
	}
	return fmt.Sprintf("%s on %q: %s", e.Helper, e.Selector, e.Reason)
}

// Property is a single rendered declaration.
type Property struct {
	Name  string
	Value string
}

// Style is a mutable node of the style forest. All builder methods return the
// receiver so calls can be chained. A helper which detects invalid arguments
// records a *ConfigError (the first one sticks, see Err), emits nothing and
// keeps the chain usable.
type Style struct {
	sel        *selector.Selector
	props      []Property
	index      map[string]int
	children   []*Style
	derived    map[string]*Style
	animations []*Animation
	err        error
}

// New returns an anonymous style without selector. Anonymous styles are used
// for keyframes, inline attributes and as Apply sources.
func New() *Style {
	return &Style{}
}

// For returns an empty style for the given selector.
func For(sel selector.Selector) *Style {
	return &Style{sel: &sel}
}

// Parse returns an empty style for a selector string.
func Parse(s string) (*Style, error) {
	sel, err := selector.Parse(s)
	if err != nil {
		return nil, err
	}
	return For(sel), nil
}

// Invalid returns a detached anonymous style carrying err. Builder calls on it
// work as usual but it belongs to no forest.
func Invalid(err error) *Style {
	return &Style{err: err}
}

// Selector returns a copy of the style selector. The second result is false
// for anonymous styles.
func (s *Style) Selector() (selector.Selector, bool) {
	if s.sel == nil {
		return selector.Selector{}, false
	}
	return *s.sel, true
}

// Err returns the first error recorded by a builder call on this style. Errors
// of sub-styles are not included, see Errors.
func (s *Style) Err() error {
	return s.err
}

// Errors returns every error recorded on s and its sub-styles, depth-first.
func (s *Style) Errors() []error {
	var errs []error
	s.Walk(func(st *Style, _ int) {
		if st.err != nil {
			errs = append(errs, st.err)
		}
	})
	return errs
}

// Rule stores a declaration. The value is stringified immediately, a repeated
// attribute keeps its first position and takes the last value.
func (s *Style) Rule(attr string, value any) *Style {
	v := unit.Format(value)
	if i, ok := s.index[attr]; ok {
		s.props[i].Value = v
		return s
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[attr] = len(s.props)
	s.props = append(s.props, Property{Name: attr, Value: v})
	return s
}

// Rules stores attribute/value pairs in argument order.
func (s *Style) Rules(kv ...any) *Style {
	if len(kv)%2 != 0 {
		return s.fail("rules", "odd number of arguments (%d)", len(kv))
	}
	for i := 0; i < len(kv); i += 2 {
		if _, ok := kv[i].(string); !ok {
			return s.fail("rules", "attribute name at position %d is %T, not string", i, kv[i])
		}
	}
	for i := 0; i < len(kv); i += 2 {
		s.Rule(kv[i].(string), kv[i+1])
	}
	return s
}

// Apply copies the flat declarations of others into s, later arguments
// overriding earlier ones. Sub-styles of others are never copied.
func (s *Style) Apply(others ...*Style) *Style {
	for _, o := range others {
		if o == nil {
			continue
		}
		for _, p := range o.props {
			s.Rule(p.Name, p.Value)
		}
	}
	return s
}

// Merge applies other to s and then merges the sub-styles of other into the
// sub-styles of s with the same selector, creating missing ones in order.
// Animations attached to other are attached to s as well.
func (s *Style) Merge(other *Style) *Style {
	if other == nil || other == s {
		return s
	}
	s.Apply(other)
	if s.err == nil && other.err != nil {
		s.err = other.err
	}
	for _, a := range other.animations {
		s.attach(a)
	}
	for _, oc := range other.children {
		key := oc.key()
		mine, ok := s.derived[key]
		if !ok {
			mine = &Style{sel: oc.sel}
			s.adopt(key, mine)
		}
		mine.Merge(oc)
	}
	return s
}

// Value returns the current value of a declaration.
func (s *Style) Value(attr string) (string, bool) {
	i, ok := s.index[attr]
	if !ok {
		return "", false
	}
	return s.props[i].Value, true
}

// Properties returns a copy of the declarations in insertion order.
func (s *Style) Properties() []Property {
	return slices.Clone(s.props)
}

// Len returns the number of declarations.
func (s *Style) Len() int {
	return len(s.props)
}

// Children returns the style for direct children of s matching sel (and the
// nth child when nth is given and positive). The same derived selector always
// yields the same style.
func (s *Style) Children(sel string, nth ...int) *Style {
	if s.sel == nil {
		return s.detached("children", "anonymous style has no selector")
	}
	child, err := s.sel.Children(sel, nth...)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return &Style{err: err}
	}
	return s.derive(child)
}

// On returns the style for s in the given pseudo state, optionally with
// attribute conditions. The same derived selector always yields the same
// style.
func (s *Style) On(state string, attrs ...selector.Attr) *Style {
	if s.sel == nil {
		return s.detached("on", "anonymous style has no selector")
	}
	var states []string
	if state != "" {
		states = []string{state}
	}
	return s.derive(s.sel.On(states, attrs...))
}

// SubStyles returns the directly derived styles in derivation order.
func (s *Style) SubStyles() []*Style {
	return slices.Clone(s.children)
}

// Animations returns the animations attached with Animate, in attachment
// order.
func (s *Style) Animations() []*Animation {
	return slices.Clone(s.animations)
}

// Walk calls fn for s and then for each sub-style, depth-first in derivation
// order. Depth is 0 for s.
func (s *Style) Walk(fn func(st *Style, depth int)) {
	s.walk(fn, 0)
}

func (s *Style) walk(fn func(*Style, int), depth int) {
	fn(s, depth)
	for _, c := range s.children {
		c.walk(fn, depth+1)
	}
}

// SelectorCSS returns the serialized selector, empty for anonymous styles.
func (s *Style) SelectorCSS() string {
	if s.sel == nil {
		return ""
	}
	return s.sel.CSS()
}

// CSS renders the declaration block of s alone (sub-styles excluded).
func (s *Style) CSS() string {
	return s.Block("")
}

// Block renders the declaration block of s with every line prefixed by
// indent.
func (s *Style) Block(indent string) string {
	var b strings.Builder
	writeBlock(&b, indent, s.SelectorCSS(), s.props)
	return b.String()
}

// Declarations renders the declarations on a single line.
func (s *Style) Declarations() string {
	parts := make([]string, len(s.props))
	for i, p := range s.props {
		parts[i] = p.Name + ": " + p.Value + ";"
	}
	return strings.Join(parts, " ")
}

// Inline renders s as an HTML style attribute.
func (s *Style) Inline() string {
	return `style="` + html.EscapeString(s.Declarations()) + `"`
}

// Markup renders the id and class attributes of an element matching s.
func (s *Style) Markup() string {
	if s.sel == nil {
		return ""
	}
	return s.sel.Markup()
}

func (s *Style) String() string {
	return s.CSS()
}

func writeBlock(b *strings.Builder, indent, head string, props []Property) {
	b.WriteString(indent)
	if head != "" {
		b.WriteString(head)
		b.WriteByte(' ')
	}
	b.WriteString("{\n")
	for _, p := range props {
		fmt.Fprintf(b, "%s%s%s: %s;\n", indent, Indent, p.Name, p.Value)
	}
	b.WriteString(indent)
	b.WriteString("}\n")
}

func (s *Style) key() string {
	return s.SelectorCSS()
}

func (s *Style) derive(sel selector.Selector) *Style {
	key := sel.CSS()
	if st, ok := s.derived[key]; ok {
		return st
	}
	st := For(sel)
	s.adopt(key, st)
	return st
}

func (s *Style) adopt(key string, st *Style) {
	if s.derived == nil {
		s.derived = make(map[string]*Style)
	}
	s.derived[key] = st
	s.children = append(s.children, st)
}

func (s *Style) attach(a *Animation) {
	if a != nil && !slices.Contains(s.animations, a) {
		s.animations = append(s.animations, a)
	}
}

func (s *Style) fail(helper, format string, args ...any) *Style {
	if s.err == nil {
		s.err = &ConfigError{Selector: s.SelectorCSS(), Helper: helper, Reason: fmt.Sprintf(format, args...)}
	}
	return s
}

// detached records an error on s and returns a throwaway style carrying the
// same error, so the chain continues without touching the forest.
func (s *Style) detached(helper, reason string) *Style {
	s.fail(helper, "%s", reason)
	return &Style{err: s.err}
}
