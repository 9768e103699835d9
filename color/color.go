// Package color implements RGBA colours with conversions between RGB, HLS and
// HSV spaces, interpolation and palette generation.
package color

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"stylekit/unit"
)

// Color is an sRGB colour with alpha. Channel conversions are never cached,
// every query recomputes from R, G, B.
type Color struct {
	R, G, B uint8
	A       float64
}

// Space selects the 3-channel representation used for interpolation.
type Space string

const (
	RGB Space = "rgb"
	HLS Space = "hls"
	HSV Space = "hsv"
)

// ParseSpace maps a name to a Space.
func ParseSpace(name string) (Space, error) {
	switch s := Space(strings.ToLower(strings.TrimSpace(name))); s {
	case RGB, HLS, HSV:
		return s, nil
	case "":
		return HLS, nil
	default:
		return "", fmt.Errorf("unknown color space %q", name)
	}
}

// New returns an opaque colour.
func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a colour with explicit alpha.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, unit.FormatNumber(c.A))
}

// FromHex decodes "#rrggbb", "#rgb" or the same without leading '#'.
func FromHex(code string) (Color, error) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, "#") {
		code = "#" + code
	}
	if len(code) != 4 && len(code) != 7 {
		return Color{}, fmt.Errorf("invalid hex color %q", code)
	}
	cf, err := colorful.Hex(strings.ToLower(code))
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", code, err)
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b, A: 1}, nil
}

// MustHex is like FromHex but panics on malformed input. Intended for literals.
func MustHex(code string) Color {
	c, err := FromHex(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex encodes RGB channels as "#rrggbb". Alpha is not encoded.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// DecodeRGB returns channels scaled to 0..1.
func (c Color) DecodeRGB() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// EncodeRGB builds a colour from 0..1 channels. Out of range values are
// clamped.
func EncodeRGB(r, g, b, alpha float64) Color {
	return Color{R: channel(r), G: channel(g), B: channel(b), A: alpha}
}

// DecodeHLS returns hue, lightness and saturation, all in 0..1.
func (c Color) DecodeHLS() (h, l, s float64) {
	h, s, l = c.colorful().Hsl()
	return h / 360, l, s
}

// EncodeHLS builds a colour from hue, lightness and saturation in 0..1.
// Hue wraps around.
func EncodeHLS(h, l, s, alpha float64) Color {
	cf := colorful.Hsl(hueDegrees(h), clamp01(s), clamp01(l))
	return EncodeRGB(cf.R, cf.G, cf.B, alpha)
}

// DecodeHSV returns hue, saturation and value, all in 0..1.
func (c Color) DecodeHSV() (h, s, v float64) {
	h, s, v = c.colorful().Hsv()
	return h / 360, s, v
}

// EncodeHSV builds a colour from hue, saturation and value in 0..1.
func EncodeHSV(h, s, v, alpha float64) Color {
	cf := colorful.Hsv(hueDegrees(h), clamp01(s), clamp01(v))
	return EncodeRGB(cf.R, cf.G, cf.B, alpha)
}

// Decode returns the channel triple of c in the given space.
func (c Color) Decode(space Space) (float64, float64, float64) {
	switch space {
	case RGB:
		return c.DecodeRGB()
	case HSV:
		return c.DecodeHSV()
	default:
		return c.DecodeHLS()
	}
}

// Encode builds a colour from a channel triple in the given space.
func Encode(space Space, x, y, z, alpha float64) Color {
	switch space {
	case RGB:
		return EncodeRGB(x, y, z, alpha)
	case HSV:
		return EncodeHSV(x, y, z, alpha)
	default:
		return EncodeHLS(x, y, z, alpha)
	}
}

// Lightness returns the HLS lightness of c.
func (c Color) Lightness() float64 {
	_, l, _ := c.DecodeHLS()
	return l
}

// Lit replaces HLS lightness.
func (c Color) Lit(lightness float64) Color {
	h, _, s := c.DecodeHLS()
	return EncodeHLS(h, lightness, s, c.A)
}

// Saturated replaces HSV saturation.
func (c Color) Saturated(saturation float64) Color {
	h, _, v := c.DecodeHSV()
	return EncodeHSV(h, saturation, v, c.A)
}

// Shifted replaces HLS hue.
func (c Color) Shifted(hue float64) Color {
	_, l, s := c.DecodeHLS()
	return EncodeHLS(hue, l, s, c.A)
}

// Transparent replaces alpha.
func (c Color) Transparent(alpha float64) Color {
	c.A = alpha
	return c
}

// Lighter raises HLS lightness by delta (capped at 1).
func (c Color) Lighter(delta float64) Color {
	return c.Lit(math.Min(1, c.Lightness()+delta))
}

// Darker lowers HLS lightness by delta (floored at 0).
func (c Color) Darker(delta float64) Color {
	return c.Lit(math.Max(0, c.Lightness()-delta))
}

// Redshift moves c towards its red-hued counterpart.
func (c Color) Redshift(percent float64, space Space) Color {
	_, l, s := c.DecodeHLS()
	return c.Towards(EncodeHLS(0, l, s, c.A), percent, space)
}

// Blueshift moves c towards its blue-hued counterpart.
func (c Color) Blueshift(percent float64, space Space) Color {
	_, l, s := c.DecodeHLS()
	return c.Towards(EncodeHLS(2.0/3.0, l, s, c.A), percent, space)
}

// Towards linearly interpolates every channel of c and other in the given
// space. Percent is not clamped, values outside 0..1 extrapolate. Hue is
// interpolated as a plain number, without taking the short way around.
// Alpha is interpolated linearly as well.
func (c Color) Towards(other Color, percent float64, space Space) Color {
	x0, y0, z0 := c.Decode(space)
	x1, y1, z1 := other.Decode(space)
	lerp := func(a, b float64) float64 { return a + (b-a)*percent }
	return Encode(space, lerp(x0, x1), lerp(y0, y1), lerp(z0, z1), lerp(c.A, other.A))
}

// Palette returns steps colours from start to end inclusive, evenly spaced in
// the given space.
func Palette(start, end Color, steps int, space Space) ([]Color, error) {
	percents, err := unit.Steps(0, 1, steps)
	if err != nil {
		return nil, err
	}
	out := make([]Color, len(percents))
	for i, p := range percents {
		out[i] = start.Towards(end, p, space)
	}
	return out, nil
}

func (c Color) colorful() colorful.Color {
	r, g, b := c.DecodeRGB()
	return colorful.Color{R: r, G: g, B: b}
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// hueDegrees maps a 0..1 hue (any real number, wrapping) to [0, 360).
func hueDegrees(h float64) float64 {
	deg := math.Mod(h*360, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
