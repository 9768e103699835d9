// Package debug renders indented text trees used by the dump commands.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates an indented tree, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

// Line writes a formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Node writes a style node header: its selector and declaration count.
// Anonymous nodes are shown as "<anonymous>".
func (tw *TreeWriter) Node(depth int, selector string, decls int) {
	if selector == "" {
		selector = "<anonymous>"
	}
	tw.indent(depth)
	tw.w.WriteString(selector)
	if decls == 1 {
		tw.w.WriteString(" (1 declaration)")
	} else {
		fmt.Fprintf(tw.w, " (%d declarations)", decls)
	}
	tw.w.WriteByte('\n')
}

// Prop writes a single declaration.
func (tw *TreeWriter) Prop(depth int, name, value string) {
	tw.indent(depth)
	tw.w.WriteString(name)
	tw.w.WriteString(": ")
	tw.w.WriteString(value)
	tw.w.WriteByte('\n')
}

// TextBlock writes label and a quoted value, empty values are left bare.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
