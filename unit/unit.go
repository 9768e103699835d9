// Package unit defines CSS dimension values and the inference rules used by
// style helpers to turn raw numbers into them.
package unit

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrSteps is returned when an even scale is requested with fewer than two
// points.
var ErrSteps = errors.New("scale requires at least 2 steps")

// Unit is a numeric value tagged with a CSS suffix. Keyword units carry a
// verbatim CSS token (e.g. "auto", "repeat(3, 1fr)") and ignore Value.
type Unit struct {
	Value   float64
	Suffix  string
	Keyword string
}

// Ctor builds a Unit from a raw number.
type Ctor func(float64) Unit

// New creates a unit with arbitrary suffix.
func New(v float64, suffix string) Unit {
	return Unit{Value: v, Suffix: suffix}
}

func Px(v float64) Unit  { return Unit{Value: v, Suffix: "px"} }
func Pt(v float64) Unit  { return Unit{Value: v, Suffix: "pt"} }
func Em(v float64) Unit  { return Unit{Value: v, Suffix: "em"} }
func Rem(v float64) Unit { return Unit{Value: v, Suffix: "rem"} }
func Vw(v float64) Unit  { return Unit{Value: v, Suffix: "vw"} }
func Vh(v float64) Unit  { return Unit{Value: v, Suffix: "vh"} }
func Fr(v float64) Unit  { return Unit{Value: v, Suffix: "fr"} }
func Ms(v float64) Unit  { return Unit{Value: v, Suffix: "ms"} }
func Sec(v float64) Unit { return Unit{Value: v, Suffix: "s"} }
func Deg(v float64) Unit { return Unit{Value: v, Suffix: "deg"} }

// Pc creates a percentage from a fraction: Pc(0.5) is 50%.
func Pc(v float64) Unit { return Unit{Value: v * 100, Suffix: "%"} }

// Keyword creates a unit which renders as the given CSS token.
func Keyword(kw string) Unit { return Unit{Keyword: kw} }

// Repeat renders a grid track repetition, e.g. repeat(3, 1fr).
func Repeat(n int, track Unit) Unit {
	return Keyword(fmt.Sprintf("repeat(%d, %s)", n, track))
}

// MinMax renders a grid track size range, e.g. minmax(100px, 1fr).
func MinMax(lo, hi Unit) Unit {
	return Keyword(fmt.Sprintf("minmax(%s, %s)", lo, hi))
}

// IsKeyword reports whether u is a keyword unit.
func (u Unit) IsKeyword() bool {
	return u.Keyword != ""
}

// Mul returns a new unit with value multiplied by k, suffix preserved.
func (u Unit) Mul(k float64) Unit {
	if u.IsKeyword() {
		return u
	}
	return Unit{Value: u.Value * k, Suffix: u.Suffix}
}

// Div returns a new unit with value divided by k, suffix preserved.
func (u Unit) Div(k float64) Unit {
	if u.IsKeyword() {
		return u
	}
	return Unit{Value: u.Value / k, Suffix: u.Suffix}
}

// Neg returns the unit with inverted sign.
func (u Unit) Neg() Unit {
	return u.Mul(-1)
}

func (u Unit) String() string {
	if u.IsKeyword() {
		return u.Keyword
	}
	return FormatNumber(u.Value) + u.Suffix
}

// FormatNumber renders a float the shortest way after rounding to 6 decimals,
// so 50.0 becomes "50" and 0.1*100 does not leak binary noise.
func FormatNumber(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		// avoid "-0"
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Format stringifies any declaration value: Stringers use String, floats go
// through FormatNumber, everything else through fmt.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case float64:
		return FormatNumber(x)
	case float32:
		return FormatNumber(float64(x))
	default:
		return fmt.Sprint(v)
	}
}

// Infer converts a raw value into a Unit. Integers go through onInt (Px when
// nil), floats through onFloat (Rem when nil), Units pass through unchanged
// and strings become keywords. Anything else is an error.
func Infer(x any, onFloat, onInt Ctor) (Unit, error) {
	if onFloat == nil {
		onFloat = Rem
	}
	if onInt == nil {
		onInt = Px
	}
	switch v := x.(type) {
	case Unit:
		return v, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return Unit{}, fmt.Errorf("unable to infer unit from empty string")
		}
		return Keyword(v), nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return onInt(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return onInt(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return onFloat(rv.Float()), nil
	}
	return Unit{}, fmt.Errorf("unable to infer unit from %T", x)
}

// Steps returns n evenly spaced numbers from lo to hi inclusive.
func Steps(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrSteps, n)
	}
	delta := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range n {
		out[i] = lo + delta*float64(i)
	}
	// last point is exact, not accumulated
	out[n-1] = hi
	return out, nil
}

// Scale returns steps units evenly spaced from lo to hi inclusive, each built
// by ctor.
func Scale(ctor Ctor, lo, hi float64, steps int) ([]Unit, error) {
	values, err := Steps(lo, hi, steps)
	if err != nil {
		return nil, err
	}
	out := make([]Unit, len(values))
	for i, v := range values {
		out[i] = ctor(v)
	}
	return out, nil
}
