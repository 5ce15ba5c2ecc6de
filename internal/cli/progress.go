package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/palex/internal/colour"
)

const barWidth = 30

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// progressBar returns a sink that redraws a bar on w. The bar ends with a
// newline once the run completes.
func progressBar(w io.Writer, label string) colour.ProgressFunc {
	last := -1
	return func(fraction float64) {
		pct := int(fraction * 100)
		if pct == last {
			return
		}
		last = pct

		filled := int(fraction * barWidth)
		fmt.Fprintf(w, "\r%s [%s%s] %3d%%", label,
			strings.Repeat("#", filled), strings.Repeat(" ", barWidth-filled), pct)
		if fraction >= 1 {
			fmt.Fprintln(w)
		}
	}
}
