package style

import (
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"stylekit/unit"
)

// Namer generates names for anonymous animations.
type Namer interface {
	Next() string
}

// CounterNamer numbers animations from a monotonic counter. The zero value is
// ready to use and safe for concurrent use.
type CounterNamer struct {
	Prefix string
	n      atomic.Uint64
}

func (c *CounterNamer) Next() string {
	return c.prefix() + unit.Format(c.n.Add(1))
}

func (c *CounterNamer) prefix() string {
	if c.Prefix == "" {
		return "animation-"
	}
	return c.Prefix
}

// UUIDNamer names animations with random UUIDs, unique across processes.
type UUIDNamer struct {
	Prefix string
}

func (u UUIDNamer) Next() string {
	prefix := u.Prefix
	if prefix == "" {
		prefix = "animation-"
	}
	return prefix + uuid.NewString()
}

// DefaultNamer is the process-wide namer used by Anonymous when no namer is
// supplied.
var DefaultNamer Namer = &CounterNamer{}

type keyframe struct {
	at    string
	style *Style
}

// Animation is an ordered set of keyframes rendered as a @keyframes block.
// Keyframes are rendered in the order they were first defined, never sorted
// by percentage.
type Animation struct {
	Name   string
	frames []keyframe
}

// NewAnimation returns an empty animation with the given name.
func NewAnimation(name string) *Animation {
	return &Animation{Name: name}
}

// Anonymous returns an empty animation named by n, DefaultNamer when nil.
func Anonymous(n Namer) *Animation {
	if n == nil {
		n = DefaultNamer
	}
	return NewAnimation(n.Next())
}

// At merges the declarations of st and the kv pairs into the keyframe at
// percent (a fraction, 0.25 is 25%). The keyframe is created on first use.
func (a *Animation) At(percent float64, st *Style, kv ...any) *Animation {
	key := unit.Pc(percent).String()
	var frame *Style
	for _, f := range a.frames {
		if f.at == key {
			frame = f.style
			break
		}
	}
	if frame == nil {
		frame = New()
		a.frames = append(a.frames, keyframe{at: key, style: frame})
	}
	frame.Apply(st)
	if st != nil && st.err != nil && frame.err == nil {
		frame.err = st.err
	}
	frame.Rules(kv...)
	return a
}

// Start is At(0, ...).
func (a *Animation) Start(st *Style, kv ...any) *Animation {
	return a.At(0, st, kv...)
}

// End is At(1, ...).
func (a *Animation) End(st *Style, kv ...any) *Animation {
	return a.At(1, st, kv...)
}

// Keyframes returns the keyframe selectors ("0%", "25%", ...) in order.
func (a *Animation) Keyframes() []string {
	keys := make([]string, len(a.frames))
	for i, f := range a.frames {
		keys[i] = f.at
	}
	return keys
}

// Frame returns the style of the keyframe at percent, nil if undefined.
func (a *Animation) Frame(percent float64) *Style {
	key := unit.Pc(percent).String()
	for _, f := range a.frames {
		if f.at == key {
			return f.style
		}
	}
	return nil
}

// Errors returns the errors recorded on keyframe styles.
func (a *Animation) Errors() []error {
	var errs []error
	for _, f := range a.frames {
		if f.style.err != nil {
			errs = append(errs, f.style.err)
		}
	}
	return errs
}

// CSS renders the @keyframes block. Keyframes without declarations are
// skipped like empty style blocks.
func (a *Animation) CSS() string {
	var b strings.Builder
	b.WriteString("@keyframes ")
	b.WriteString(a.Name)
	b.WriteString(" {\n")
	for _, f := range a.frames {
		if len(f.style.props) == 0 {
			continue
		}
		writeBlock(&b, Indent, f.at, f.style.props)
	}
	b.WriteString("}\n")
	return b.String()
}
