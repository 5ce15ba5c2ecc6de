package colour

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
)

// Swatch defaults.
const (
	DefaultTileSize     = 4
	DefaultColorsPerRow = 16

	// MaxTileSize and MaxColorsPerRow bound the rendered image so that a
	// full palette stays within a few megapixels.
	MaxTileSize     = 64
	MaxColorsPerRow = MaxColors
)

// SwatchSize returns the dimensions of a swatch image for n colours.
func SwatchSize(n, tileSize, colorsPerRow int) (width, height int) {
	if n == 0 {
		return 0, 0
	}
	rows := (n + colorsPerRow - 1) / colorsPerRow
	return min(n, colorsPerRow) * tileSize, rows * tileSize
}

// ValidateSwatch checks the swatch layout parameters.
func ValidateSwatch(tileSize, colorsPerRow int) error {
	if tileSize < 1 || tileSize > MaxTileSize {
		return invalidArgument("tile size must be between 1 and %d, got %d", MaxTileSize, tileSize)
	}
	if colorsPerRow < 1 || colorsPerRow > MaxColorsPerRow {
		return invalidArgument("colors per row must be between 1 and %d, got %d", MaxColorsPerRow, colorsPerRow)
	}
	return nil
}

// RenderSwatch draws each palette colour as a tileSize square, wrapping after
// colorsPerRow tiles.
func RenderSwatch(p *Palette, tileSize, colorsPerRow int) (*image.NRGBA, error) {
	if err := ValidateSwatch(tileSize, colorsPerRow); err != nil {
		return nil, err
	}

	w, h := SwatchSize(p.Len(), tileSize, colorsPerRow)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range p.Colors {
		x := (i % colorsPerRow) * tileSize
		y := (i / colorsPerRow) * tileSize
		tile := image.Rect(x, y, x+tileSize, y+tileSize)
		draw.Draw(img, tile, image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
	}
	return img, nil
}

// EncodeSwatchPNG renders the palette and writes it as PNG.
func EncodeSwatchPNG(w io.Writer, p *Palette, tileSize, colorsPerRow int) error {
	if p.Len() == 0 {
		return fmt.Errorf("%w: cannot render an empty palette", ErrInvalidArgument)
	}
	img, err := RenderSwatch(p, tileSize, colorsPerRow)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode swatch: %w", err)
	}
	return nil
}

// SaveSwatchPNG writes the swatch image to path.
func SaveSwatchPNG(path string, p *Palette, tileSize, colorsPerRow int) error {
	f, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create swatch file: %w", err)
	}
	if err := EncodeSwatchPNG(f, p, tileSize, colorsPerRow); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close swatch file: %w", err)
	}
	return nil
}
