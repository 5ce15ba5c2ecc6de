//go:build ignore

// Test fixture generator for sample sources used when trying palex by hand:
//
//	go run testdata/generate_test_image.go
//	palex extract -c 4 --preview testdata
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/jmylchreest/palex/internal/colour"
	"github.com/jmylchreest/palex/internal/source"
)

func main() {
	// Eight colour blocks on a 2x4 grid.
	colors := []colour.Color{
		colour.Opaque(255, 0, 0),     // Red
		colour.Opaque(0, 255, 0),     // Green
		colour.Opaque(0, 0, 255),     // Blue
		colour.Opaque(255, 255, 0),   // Yellow
		colour.Opaque(255, 0, 255),   // Magenta
		colour.Opaque(0, 255, 255),   // Cyan
		colour.Opaque(128, 128, 128), // Gray
		colour.Opaque(255, 128, 0),   // Orange
	}

	const width, height = 400, 400
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blockWidth, blockHeight := width/2, height/4
	for i, c := range colors {
		col, row := i%2, i/2
		for y := row * blockHeight; y < (row+1)*blockHeight; y++ {
			for x := col * blockWidth; x < (col+1)*blockWidth; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
			}
		}
	}

	imgFile, err := os.Create("testdata/sample.png")
	if err != nil {
		log.Fatal(err)
	}
	defer imgFile.Close()
	if err := png.Encode(imgFile, img); err != nil {
		log.Fatal(err)
	}

	// The same colours as a palette, darkened so both sources contribute.
	shades := make([]colour.Color, len(colors))
	for i, c := range colors {
		shades[i] = colour.Opaque(c.R/2, c.G/2, c.B/2)
	}
	palFile, err := os.Create("testdata/sample.pal")
	if err != nil {
		log.Fatal(err)
	}
	defer palFile.Close()
	if err := source.WriteJASC(palFile, shades); err != nil {
		log.Fatal(err)
	}

	log.Println("wrote testdata/sample.png and testdata/sample.pal")
}
