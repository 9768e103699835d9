// Package design loads YAML design documents and compiles them into
// stylesheets.
package design

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v3"

	"stylekit/style"
)

type (
	// Rules is an ordered list of declarations decoded from a YAML mapping.
	Rules []style.Property

	// StateRules maps pseudo states to declarations, in document order.
	StateRules []StateRule

	StateRule struct {
		State string
		Rules Rules
	}

	StyleEntry struct {
		Select   string       `yaml:"select" validate:"required"`
		Nth      int          `yaml:"nth" validate:"gte=0"`
		Rules    Rules        `yaml:"rules"`
		On       StateRules   `yaml:"on"`
		Children []StyleEntry `yaml:"children" validate:"dive"`
	}

	MediaEntry struct {
		MinWidth int          `yaml:"min_width" validate:"gte=0"`
		MaxWidth int          `yaml:"max_width" validate:"gte=0"`
		Styles   []StyleEntry `yaml:"styles" validate:"dive"`
	}

	KeyframeEntry struct {
		At    float64 `yaml:"at" validate:"gte=0,lte=1"`
		Rules Rules   `yaml:"rules"`
	}

	AnimationEntry struct {
		Name      string          `yaml:"name"`
		Keyframes []KeyframeEntry `yaml:"keyframes" validate:"required,dive"`
	}

	UtilityEntry struct {
		Class    string  `yaml:"class" validate:"required_without=Name"`
		Property string  `yaml:"property" validate:"required"`
		Variants [][]any `yaml:"variants" validate:"required"`
		Values   [][]any `yaml:"values"`
		// Name is a text/template with slim-sprig functions executed with
		// .Class, .Variant and .Index.
		Name     string `yaml:"name"`
		Truncate bool   `yaml:"truncate"`
	}

	PaletteEntry struct {
		Class    string `yaml:"class" validate:"required"`
		Property string `yaml:"property" validate:"required"`
		Start    string `yaml:"start" validate:"required"`
		End      string `yaml:"end" validate:"required"`
		Steps    int    `yaml:"steps" validate:"min=2"`
		Space    string `yaml:"space" validate:"omitempty,oneof=rgb hls hsv"`
	}

	ColorEntry struct {
		Class    string   `yaml:"class" validate:"required"`
		Property string   `yaml:"property" validate:"required"`
		Names    []string `yaml:"names" validate:"required,dive,required"`
	}

	// Document is a design document.
	Document struct {
		Normalize  bool             `yaml:"normalize"`
		Header     string           `yaml:"header"`
		Base       Rules            `yaml:"base"`
		Styles     []StyleEntry     `yaml:"styles"`
		Media      []MediaEntry     `yaml:"media"`
		Animations []AnimationEntry `yaml:"animations"`
		Utilities  []UtilityEntry   `yaml:"utilities"`
		Palettes   []PaletteEntry   `yaml:"palettes"`
		Colors     []ColorEntry     `yaml:"colors"`
	}
)

// UnmarshalYAML keeps the mapping order of declarations. Values must be
// scalars and are kept as written.
func (r *Rules) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: rules must be a mapping", node.Line)
	}
	out := make(Rules, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: rule %q must have a scalar value", k.Line, k.Value)
		}
		out = append(out, style.Property{Name: k.Value, Value: v.Value})
	}
	*r = out
	return nil
}

// UnmarshalYAML keeps the mapping order of states.
func (sr *StateRules) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: states must be a mapping", node.Line)
	}
	out := make(StateRules, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var rules Rules
		if err := node.Content[i+1].Decode(&rules); err != nil {
			return err
		}
		out = append(out, StateRule{State: node.Content[i].Value, Rules: rules})
	}
	*sr = out
	return nil
}

// Parse decodes a design document. Unknown fields are rejected, empty input
// is an empty document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode design document: %w", err)
	}
	return doc, nil
}

// Load reads and decodes a design document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read design document: %w", err)
	}
	return Parse(data)
}
