package source

import (
	"context"
	"image"

	"github.com/jmylchreest/palex/internal/colour"
)

// imageValues reads every pixel of img in row-major order.
// The context is checked once per row.
func imageValues(ctx context.Context, img image.Image) ([]colour.Value, error) {
	bounds := img.Bounds()
	values := make([]colour.Value, 0, bounds.Dx()*bounds.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			row := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, y):nrgba.PixOffset(bounds.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				c := colour.Color{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]}
				values = append(values, c.Value())
			}
		}
		return values, nil
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			values = append(values, colour.FromStd(img.At(x, y)).Value())
		}
	}
	return values, nil
}
