package debug

import (
	"testing"
)

func TestTreeWriter_StyleForest(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "stylesheet")
	tw.Node(1, ".btn", 2)
	tw.Prop(2, "padding", "10px")
	tw.Prop(2, "background-color", "rgba(255,0,0,1)")
	tw.Node(2, ".btn:hover", 1)
	tw.Prop(3, "opacity", "0.5")
	tw.Line(1, "@media %s", "(max-width: 600px)")
	tw.Node(2, ".box", 0)
	tw.TextBlock(3, "error", `flexbox on ".box": direction must be row or column, got "diagonal"`)

	want := "stylesheet\n" +
		"  .btn (2 declarations)\n" +
		"    padding: 10px\n" +
		"    background-color: rgba(255,0,0,1)\n" +
		"    .btn:hover (1 declaration)\n" +
		"      opacity: 0.5\n" +
		"  @media (max-width: 600px)\n" +
		"    .box (0 declarations)\n" +
		`      error: "flexbox on \".box\": direction must be row or column, got \"diagonal\""` + "\n"
	if got := tw.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeWriter_Node(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		decls    int
		want     string
	}{
		{"anonymous", "", 3, "<anonymous> (3 declarations)\n"},
		{"single", "p", 1, "p (1 declaration)\n"},
		{"empty", "ul>li:nth-child(2)", 0, "ul>li:nth-child(2) (0 declarations)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Node(0, tt.selector, tt.decls)
			if got := tw.String(); got != tt.want {
				t.Errorf("Node() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty value", "", "  error: \n"},
		{"quoted", "bad", "  error: \"bad\"\n"},
		{"multiline", "a\nb", "  error: \"a\\nb\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(1, "error", tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Keyframes(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(1, "animations")
	tw.Line(2, "@keyframes %s [%s]", "fade", "0% 50% 100%")
	if got, want := tw.String(), "  animations\n    @keyframes fade [0% 50% 100%]\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
