package colour

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Comparator is a three-way ordering over colours: negative when a sorts
// before b, positive when after, zero when equal.
type Comparator func(a, b Color) int

// hsl returns hue (0-360), saturation (0-1) and lightness (0-1).
func hsl(c Color) (h, s, l float64) {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hsl()
}

// ByHue orders colours by HSL hue.
func ByHue(a, b Color) int {
	ha, _, _ := hsl(a)
	hb, _, _ := hsl(b)
	return cmp.Compare(ha, hb)
}

// ByBrightness orders colours by HSL lightness.
func ByBrightness(a, b Color) int {
	_, _, la := hsl(a)
	_, _, lb := hsl(b)
	return cmp.Compare(la, lb)
}

// BySaturation orders colours by HSL saturation.
func BySaturation(a, b Color) int {
	_, sa, _ := hsl(a)
	_, sb, _ := hsl(b)
	return cmp.Compare(sa, sb)
}

// ComparatorNames lists the names accepted by ComparatorByName.
func ComparatorNames() []string {
	return []string{"hue", "brightness", "saturation", "none"}
}

// ComparatorByName returns the named built-in comparator. "none" returns a
// nil comparator, which leaves the engine's order untouched.
func ComparatorByName(name string) (Comparator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hue":
		return ByHue, nil
	case "brightness":
		return ByBrightness, nil
	case "saturation":
		return BySaturation, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown sort order %q (valid: %s)",
			ErrInvalidArgument, name, strings.Join(ComparatorNames(), ", "))
	}
}

// Sort stably sorts colors in place. A nil comparator is a no-op.
func Sort(colors []Color, by Comparator) {
	if by == nil {
		return
	}
	slices.SortStableFunc(colors, by)
}
