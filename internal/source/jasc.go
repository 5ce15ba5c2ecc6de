package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jmylchreest/palex/internal/colour"
)

// Magic is the first line of a JASC-PAL palette file.
const Magic = "JASC-PAL"

// jascVersion is written as the second header line.
const jascVersion = "0100"

// headerLines is the number of lines preceding the colour entries.
const headerLines = 3

var errMissingMagic = fmt.Errorf("missing %s header", Magic)

// ParseJASC reads a JASC-PAL palette. The first line must match Magic
// (case-insensitive), the next two lines are skipped, and every following
// non-blank line must hold three decimal channel values. Alpha is opaque.
func ParseJASC(name string, r io.Reader) ([]colour.Color, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var colors []colour.Color
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		switch {
		case line == 1:
			if !strings.EqualFold(text, Magic) {
				return nil, colour.NewFormatError(name, line, errMissingMagic)
			}
			continue
		case line <= headerLines:
			continue
		case text == "":
			continue
		}

		c, err := parseTriple(text)
		if err != nil {
			return nil, colour.NewFormatError(name, line, err)
		}
		colors = append(colors, c)
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, colour.NewFormatError(name, line+1, err)
		}
		return nil, colour.NewIOError(name, err)
	}
	if line == 0 {
		return nil, colour.NewFormatError(name, 1, errMissingMagic)
	}

	return colors, nil
}

func parseTriple(text string) (colour.Color, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return colour.Color{}, fmt.Errorf("expected 3 values, got %d in %q", len(fields), text)
	}

	var rgb [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return colour.Color{}, fmt.Errorf("invalid channel value %q: must be 0-255", f)
		}
		rgb[i] = uint8(v)
	}
	return colour.Opaque(rgb[0], rgb[1], rgb[2]), nil
}

// WriteJASC writes colors as a JASC-PAL palette with CRLF line endings.
// Alpha is not representable and is dropped.
func WriteJASC(w io.Writer, colors []colour.Color) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\r\n%s\r\n%d\r\n", Magic, jascVersion, len(colors))
	for _, c := range colors {
		fmt.Fprintf(bw, "%d %d %d\r\n", c.R, c.G, c.B)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write palette: %w", err)
	}
	return nil
}
