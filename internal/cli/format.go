package cli

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/palex/internal/colour"
	"github.com/jmylchreest/palex/internal/source"
)

// outputFormats lists the values accepted by --format.
var outputFormats = []string{"hex", "rgb", "json", "jasc"}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case "jasc":
		var b strings.Builder
		if err := source.WriteJASC(&b, palette.Colors); err != nil {
			return "", err
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("%w: unsupported format: %s (supported: %s)",
			colour.ErrInvalidArgument, format, strings.Join(outputFormats, ", "))
	}
}

// formatHex formats the palette as hex colour codes.
func formatHex(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, c := range palette.Colors {
		if showPreview {
			b.WriteString(colour.FormatColourWithPreview(c, 8))
		} else {
			b.WriteString(c.Hex())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// formatRGB formats the palette as rgb() values.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, c := range palette.Colors {
		if showPreview {
			b.WriteString(colour.ColourPreview(c, 8) + "  ")
		}
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}
