// Package preset contains stylesheet generators: the utility class system
// which expands variant tables into many small rules, a flex based column
// grid and a semantic typography/button design.
package preset

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"stylekit/sheet"
	"stylekit/style"
	"stylekit/unit"
)

// Definition describes one family of utility classes.
//
// Variants and Values are lists of dimensions. Each is flattened into tuples
// by Cartesian product, the first dimension varying slowest. Variant tuples
// name the classes, value tuples are passed to Rule. When Values is nil the
// variant tuples are used as values.
type Definition struct {
	Class    string
	Variants [][]any
	Values   [][]any
	Rule     func(st *style.Style, values ...any)
	// Name overrides the default class name Class-v1-v2...
	Name func(variant ...any) string
	// Truncate pairs variants and values up to the shorter of the two
	// instead of failing on a length mismatch.
	Truncate bool
}

// UtilitySystem is a stylesheet populated by Define calls.
type UtilitySystem struct {
	*sheet.StyleSheet
	log *zap.Logger
}

// NewUtilitySystem creates an empty utility stylesheet.
func NewUtilitySystem(log *zap.Logger, opts ...sheet.Option) *UtilitySystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &UtilitySystem{
		StyleSheet: sheet.New(append([]sheet.Option{sheet.WithLogger(log)}, opts...)...),
		log:        log.Named("utility"),
	}
}

// Define expands d into classes, one Select per aligned variant/value pair,
// in expansion order. Rules land in the active media scope, if any.
func (u *UtilitySystem) Define(d Definition) error {
	fail := func(format string, args ...any) error {
		sel := ""
		if d.Class != "" {
			sel = "." + d.Class
		}
		return &style.ConfigError{Selector: sel, Helper: "define", Reason: fmt.Sprintf(format, args...)}
	}

	if d.Rule == nil {
		return fail("rule callback is required")
	}
	variants, err := Product(d.Variants)
	if err != nil {
		return fail("variants: %v", err)
	}
	values := variants
	if d.Values != nil {
		if values, err = Product(d.Values); err != nil {
			return fail("values: %v", err)
		}
	}

	n := len(variants)
	if len(values) != n {
		if !d.Truncate {
			return fail("%d variants but %d values", len(variants), len(values))
		}
		n = min(n, len(values))
		u.log.Debug("Truncating utility definition",
			zap.String("class", d.Class),
			zap.Int("variants", len(variants)),
			zap.Int("values", len(values)))
	}

	name := d.Name
	if name == nil {
		name = func(variant ...any) string { return className(d.Class, variant) }
	}
	for i := range n {
		st := u.Select("." + name(variants[i]...))
		d.Rule(st, values[i]...)
	}
	u.log.Debug("Defined utilities", zap.String("class", d.Class), zap.Int("count", n))
	return nil
}

func className(class string, variant []any) string {
	parts := make([]string, 0, len(variant)+1)
	if class != "" {
		parts = append(parts, class)
	}
	for _, v := range variant {
		parts = append(parts, unit.Format(v))
	}
	return strings.Join(parts, "-")
}

// Product returns the Cartesian product of dims, first dimension slowest.
// It fails for no dimensions or an empty one.
func Product(dims [][]any) ([][]any, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("no dimensions")
	}
	out := [][]any{{}}
	for i, dim := range dims {
		if len(dim) == 0 {
			return nil, fmt.Errorf("dimension %d is empty", i)
		}
		next := make([][]any, 0, len(out)*len(dim))
		for _, prefix := range out {
			for _, v := range dim {
				tuple := make([]any, len(prefix), len(prefix)+1)
				copy(tuple, prefix)
				next = append(next, append(tuple, v))
			}
		}
		out = next
	}
	return out, nil
}

// Flat wraps values as a single dimension.
func Flat[T any](values ...T) [][]any {
	return [][]any{Seq(values...)}
}

// Seq converts typed values into one dimension.
func Seq[T any](values ...T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Range returns the integers lo..hi-1 as one dimension.
func Range(lo, hi int) []any {
	out := make([]any, 0, max(0, hi-lo))
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
