package sheet

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"stylekit/style"
	"stylekit/utils/debug"
)

//go:embed normalize.css
var normalizeCSS string

// blocks returns every top-level block of the document in render order.
func (s *StyleSheet) blocks() []string {
	var out []string
	if s.header != "" {
		out = append(out, "/* "+strings.ReplaceAll(s.header, "*/", "* /")+" */\n")
	}
	if s.normalize {
		out = append(out, strings.TrimRight(normalizeCSS, "\n")+"\n")
	}

	out = append(out, scopeBlocks(s.root, "")...)

	names := make(map[string]bool)
	for _, a := range s.Animations() {
		if names[a.Name] {
			s.log.Warn("Duplicate animation name", zap.String("name", a.Name))
		}
		names[a.Name] = true
		out = append(out, a.CSS())
	}

	for _, sc := range s.media {
		inner := scopeBlocks(sc, style.Indent)
		if len(inner) == 0 {
			continue
		}
		out = append(out, "@media "+sc.query.CSS()+" {\n"+strings.Join(inner, "\n")+"}\n")
	}
	return out
}

// scopeBlocks renders the styles of sc depth-first. Styles without
// declarations are skipped, their sub-styles are not.
func scopeBlocks(sc *scope, indent string) []string {
	var out []string
	for _, st := range sc.styles {
		st.Walk(func(node *style.Style, _ int) {
			if node.Len() > 0 {
				out = append(out, node.Block(indent))
			}
		})
	}
	return out
}

// WriteTo writes the rendered document to w, implementing io.WriterTo.
func (s *StyleSheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, b := range s.blocks() {
		if i > 0 {
			n, err := io.WriteString(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := io.WriteString(w, b)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Render returns the CSS document. Identical builder call sequences render
// byte-identical output.
func (s *StyleSheet) Render() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func (s *StyleSheet) String() string {
	return s.Render()
}

// RenderFile writes the document to path. A sheet with builder errors is
// not written.
func (s *StyleSheet) RenderFile(path string) error {
	if err := s.Err(); err != nil {
		return fmt.Errorf("stylesheet has errors: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.log.Debug("Rendered stylesheet", zap.String("path", path))
	return nil
}

// Dump returns an indented tree of the style forest for debugging.
func (s *StyleSheet) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "stylesheet")
	dumpScope(tw, 1, s.root)
	for _, sc := range s.media {
		tw.Line(1, "@media %s", sc.query.CSS())
		dumpScope(tw, 2, sc)
	}

	anims := s.Animations()
	if len(anims) > 0 {
		names := make([]string, 0, len(anims))
		frames := make(map[string][]string, len(anims))
		for _, a := range anims {
			names = append(names, a.Name)
			frames[a.Name] = a.Keyframes()
		}
		sort.Sort(natural.StringSlice(names))
		tw.Line(1, "animations")
		for _, name := range names {
			tw.Line(2, "@keyframes %s [%s]", name, strings.Join(frames[name], " "))
		}
	}
	return tw.String()
}

func dumpScope(tw *debug.TreeWriter, depth int, sc *scope) {
	for _, st := range sc.styles {
		st.Walk(func(node *style.Style, d int) {
			tw.Node(depth+d, node.SelectorCSS(), node.Len())
			for _, p := range node.Properties() {
				tw.Prop(depth+d+1, p.Name, p.Value)
			}
			if err := node.Err(); err != nil {
				tw.TextBlock(depth+d+1, "error", err.Error())
			}
		})
	}
}
