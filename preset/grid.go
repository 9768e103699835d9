package preset

import (
	"fmt"

	"go.uber.org/zap"

	"stylekit/sheet"
	"stylekit/style"
)

// maxSpan is the widest span class a grid defines.
const maxSpan = 12

// Breakpoint switches the grid to Columns columns below MaxWidth pixels and
// adds Class-1..Class-Columns classes for that range.
type Breakpoint struct {
	Class    string
	MaxWidth int
	Columns  int
}

// GridOptions configures FlexGrid. Zero fields take defaults: 12 columns,
// row class "row" and span class "span".
type GridOptions struct {
	Columns     int
	Breakpoints []Breakpoint
	RowClass    string
	SpanClass   string
}

// FlexGrid is a stylesheet with a flex based column system: rows wrap and
// span-N elements take N columns worth of width.
type FlexGrid struct {
	*sheet.StyleSheet
	opts GridOptions
}

// NewFlexGrid builds the grid stylesheet.
func NewFlexGrid(log *zap.Logger, g GridOptions, opts ...sheet.Option) (*FlexGrid, error) {
	if g.Columns == 0 {
		g.Columns = maxSpan
	}
	if g.RowClass == "" {
		g.RowClass = "row"
	}
	if g.SpanClass == "" {
		g.SpanClass = "span"
	}
	if g.Columns < 1 || g.Columns > maxSpan {
		return nil, fmt.Errorf("grid columns must be within 1..%d, got %d", maxSpan, g.Columns)
	}

	if log == nil {
		log = zap.NewNop()
	}
	fg := &FlexGrid{
		StyleSheet: sheet.New(append([]sheet.Option{sheet.WithLogger(log)}, opts...)...),
		opts:       g,
	}
	fg.Select("." + g.RowClass).Flexbox(style.FlexboxSpec{Wrap: true})
	fg.spans(g.Columns, "")

	for _, bp := range g.Breakpoints {
		if bp.Columns < 1 || bp.Columns > maxSpan {
			return nil, fmt.Errorf("breakpoint %q: columns must be within 1..%d, got %d", bp.Class, maxSpan, bp.Columns)
		}
		err := fg.Media(sheet.MaxWidth(bp.MaxWidth), func() error {
			fg.spans(bp.Columns, bp.Class)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("breakpoint %q: %w", bp.Class, err)
		}
	}
	return fg, fg.Err()
}

// spans defines span widths for a grid of columns columns. Spans wider than
// the grid take the full width.
func (fg *FlexGrid) spans(columns int, custom string) {
	for size := 1; size <= maxSpan; size++ {
		width := 1.0
		if size < columns {
			width = float64(size) / float64(columns)
		}
		fg.Select(fmt.Sprintf(".%s-%d", fg.opts.SpanClass, size)).Width(width)
	}
	if custom == "" {
		return
	}
	for size := 1; size <= columns; size++ {
		fg.Select(fmt.Sprintf(".%s-%d", custom, size)).Width(float64(size) / float64(columns))
	}
}
