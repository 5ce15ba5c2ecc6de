package colour

import (
	"fmt"
	"math"
	"strings"
)

// Channels selects which channels take part in distance and averaging.
type Channels int

const (
	// ChannelsRGB ignores alpha; averaged colours are fully opaque.
	ChannelsRGB Channels = iota

	// ChannelsRGBA treats alpha as a fourth dimension.
	ChannelsRGBA
)

// String returns the channel mode name.
func (m Channels) String() string {
	switch m {
	case ChannelsRGBA:
		return "rgba"
	default:
		return "rgb"
	}
}

// ParseChannels parses "rgb" or "rgba" (case-insensitive).
func ParseChannels(s string) (Channels, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rgb":
		return ChannelsRGB, nil
	case "rgba":
		return ChannelsRGBA, nil
	default:
		return ChannelsRGB, fmt.Errorf("%w: unknown channel mode %q (valid: rgb, rgba)", ErrInvalidArgument, s)
	}
}

// squaredDistance returns the sum of squared per-channel differences.
// Ordering by it is identical to ordering by Euclidean distance.
func (m Channels) squaredDistance(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	d := dr*dr + dg*dg + db*db
	if m == ChannelsRGBA {
		da := int(a.A) - int(b.A)
		d += da * da
	}
	return d
}

// Distance returns the Euclidean distance between two colours.
func (m Channels) Distance(a, b Color) float64 {
	return math.Sqrt(float64(m.squaredDistance(a, b)))
}

// Average returns the per-channel root-mean-square of colors:
// round(sqrt(mean(v*v))). An empty slice averages to Transparent and a
// single colour averages to itself.
func (m Channels) Average(colors []Color) Color {
	switch len(colors) {
	case 0:
		return Transparent
	case 1:
		return colors[0]
	}

	var rr, gg, bb, aa uint64
	for _, c := range colors {
		rr += uint64(c.R) * uint64(c.R)
		gg += uint64(c.G) * uint64(c.G)
		bb += uint64(c.B) * uint64(c.B)
		aa += uint64(c.A) * uint64(c.A)
	}

	n := float64(len(colors))
	out := Color{
		R: rms(rr, n),
		G: rms(gg, n),
		B: rms(bb, n),
		A: 0xff,
	}
	if m == ChannelsRGBA {
		out.A = rms(aa, n)
	}
	return out
}

func rms(sumSquares uint64, n float64) uint8 {
	v := math.Round(math.Sqrt(float64(sumSquares) / n))
	return uint8(min(v, 255))
}
