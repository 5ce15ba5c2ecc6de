// Package colour builds bounded-size colour palettes from raw pixel data.
//
// The engine deduplicates every colour read from its sources, seeds k
// centroids from the most frequent colours and refines them with k-means
// until the cluster assignment stops changing or the iteration budget is
// spent. Clusters are collapsed into representative colours with a
// root-mean-square average and the result is sorted by a caller comparator.
package colour

import (
	"fmt"
	"image/color"
)

// Color is an 8-bit colour with straight (non-premultiplied) alpha.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Value is the packed ARGB identity of a Color, used for sorting and deduplication.
type Value uint32

// Transparent is the sentinel returned when averaging an empty set of colours.
var Transparent = Color{}

// Opaque returns a fully opaque colour.
func Opaque(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// Value packs the colour as A<<24 | R<<16 | G<<8 | B.
func (c Color) Value() Value {
	return Value(uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

// Color unpacks the value.
func (v Value) Color() Color {
	return Color{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// FromStd converts any image/color value to a Color without losing the
// straight alpha channel.
func FromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// NRGBA returns the colour as a standard library colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Hex returns the colour as "#rrggbb", or "#rrggbbaa" when it is not fully opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String returns the colour in the format "rgb(r, g, b)" or "rgba(r, g, b, a)".
func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}
