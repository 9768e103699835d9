package css

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MediaQuery represents a parsed @media query condition.
// Only width ranges in pixels are understood: "(min-width: 300px)",
// "(max-width: 600px)" and both joined with "and".
type MediaQuery struct {
	Raw       string // Original media query string
	MinWidth  int    // 0 when absent
	MaxWidth  int    // 0 when absent
	Supported bool   // false if the query contains anything else
}

// Declaration is a single property: value pair, value kept verbatim.
type Declaration struct {
	Property string
	Value    string
}

// Rule represents a single CSS rule. Declarations keep source order, a
// property repeated in the source appears once with its last value.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// Get returns the value for a property.
func (r Rule) Get(property string) (string, bool) {
	for _, d := range r.Declarations {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []Rule
}

// Keyframe is one step of a @keyframes block.
type Keyframe struct {
	Selector     string // "0%", "from", "to", ...
	Declarations []Declaration
}

// Percent returns the keyframe position as a fraction: "25%" is 0.25, "from"
// is 0 and "to" is 1.
func (k Keyframe) Percent() (float64, bool) {
	switch strings.ToLower(k.Selector) {
	case "from":
		return 0, true
	case "to":
		return 1, true
	}
	num, ok := strings.CutSuffix(k.Selector, "%")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}

// Keyframes represents a @keyframes block.
type Keyframes struct {
	Name   string
	Frames []Keyframe
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock, Keyframes or Import is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + declarations)
	MediaBlock *MediaBlock // A @media block containing nested rules
	Keyframes  *Keyframes  // A @keyframes block
	Import     *string     // An @import URL
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// Stats counts the items of a stylesheet by kind.
type Stats struct {
	Rules     int // top-level rules
	Media     int // @media blocks
	Scoped    int // rules inside @media blocks
	Keyframes int
	Imports   int
}

// Stats returns item counts for reporting.
func (s *Stylesheet) Stats() Stats {
	var st Stats
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			st.Rules++
		case item.MediaBlock != nil:
			st.Media++
			st.Scoped += len(item.MediaBlock.Rules)
		case item.Keyframes != nil:
			st.Keyframes++
		case item.Import != nil:
			st.Imports++
		}
	}
	return st
}

const indent = "    "

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Declarations keep source order.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "@import url(\"%s\");\n", cssEscapeDoubleQuoted(*item.Import))
		case item.Keyframes != nil:
			n, err = writeKeyframes(w, item.Keyframes)
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeBlock(w, "", item.Rule.Selector, item.Rule.Declarations)
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeBlock writes a selector block with every line prefixed by prefix.
func writeBlock(w io.Writer, prefix, selector string, decls []Declaration) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", prefix, selector)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range decls {
		n, err = fmt.Fprintf(w, "%s%s%s: %s;\n", prefix, indent, d.Property, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", prefix)
	total += n
	return total, err
}

// writeKeyframes writes a @keyframes block to w.
func writeKeyframes(w io.Writer, kf *Keyframes) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@keyframes %s {\n", kf.Name)
	total += n
	if err != nil {
		return total, err
	}
	for _, f := range kf.Frames {
		n, err = writeBlock(w, indent, f.Selector, f.Declarations)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query.Raw)
	total += n
	if err != nil {
		return total, err
	}
	for i := range mb.Rules {
		n, err = writeBlock(w, indent, mb.Rules[i].Selector, mb.Rules[i].Declarations)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
