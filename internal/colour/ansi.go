package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
// Uses background colour with spaces for a solid block.
func ColourPreview(c Color, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bgColour + strings.Repeat(" ", width) + ansiReset
}

// FormatColourWithPreview formats a colour with its preview and hex code.
func FormatColourWithPreview(c Color, width int) string {
	return fmt.Sprintf("%s %s", ColourPreview(c, width), c.Hex())
}

// PreviewRows renders the palette as rows of preview blocks, perRow
// colours per line.
func PreviewRows(p *Palette, width, perRow int) string {
	if perRow <= 0 {
		perRow = DefaultColorsPerRow
	}

	var b strings.Builder
	for i, c := range p.Colors {
		b.WriteString(ColourPreview(c, width))
		if (i+1)%perRow == 0 || i == len(p.Colors)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
