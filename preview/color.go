// Package preview turns Lab colors into something a person can look at:
// #RRGGBB strings, rounded swatches and animated swatch comparisons.
package preview

import (
	"fmt"

	"github.com/kovidgoyal/munsell/colorconv"
)

var _ = fmt.Print

// NRGBColor is an opaque 8 bit sRGB color.
type NRGBColor struct {
	R, G, B uint8
}

// AsSharp formats the color as #RRGGBB with upper case hex digits.
func (c NRGBColor) AsSharp() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c NRGBColor) String() string {
	return fmt.Sprintf("NRGBColor{%02X %02X %02X}", c.R, c.G, c.B)
}

func (c NRGBColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 65535 // (255 << 8 | 255)
	return
}

// Quantize clamps each channel to [0,1] and scales it to [0,255],
// truncating rather than rounding. Out of gamut colors are thus
// approximated, never rejected.
func Quantize(c colorconv.RGB) NRGBColor {
	c = c.Clamped()
	return NRGBColor{uint8(c[0] * 255), uint8(c[1] * 255), uint8(c[2] * 255)}
}
