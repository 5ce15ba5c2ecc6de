package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"iter"
	"strings"
)

// Stats describes how a palette was built.
type Stats struct {
	Sources    int  `json:"sources"`
	RawColors  int  `json:"raw_colors"`
	Distinct   int  `json:"distinct_colors"`
	Iterations int  `json:"iterations"`
	Restarts   int  `json:"restarts"`
	Converged  bool `json:"converged"`
	Clustered  bool `json:"clustered"`
}

// Palette is the ordered result of a build.
type Palette struct {
	Colors []Color
	Stats  Stats
}

// NewPalette creates a new Palette with the given colors.
func NewPalette(colors []Color) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// Get returns the color at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (Color, error) {
	if index < 0 || index >= len(p.Colors) {
		return Color{}, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}

// All returns an iterator over all colors in the palette.
func (p *Palette) All() iter.Seq2[int, Color] {
	return func(yield func(int, Color) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Std returns the palette as an image/color palette.
func (p *Palette) Std() color.Palette {
	out := make(color.Palette, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.NRGBA()
	}
	return out
}

// ToHex converts the palette colors to hex strings.
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex()
	}
	return hexColors
}

// ColorJSON represents a color in JSON output format.
type ColorJSON struct {
	Hex  string `json:"hex"`
	RGBA Color  `json:"rgba"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
	Stats  Stats       `json:"stats"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = ColorJSON{Hex: c.Hex(), RGBA: c}
	}

	return json.MarshalIndent(PaletteJSON{
		Count:  len(p.Colors),
		Colors: colors,
		Stats:  p.Stats,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		fmt.Fprintf(&b, "  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return b.String()
}
