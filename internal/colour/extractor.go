package colour

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Limits on the options accepted by BuildPalette.
const (
	MinColors     = 1
	MaxColors     = 512
	MinIterations = 1
	MaxIterations = 65536

	DefaultMaxColors     = 512
	DefaultMaxIterations = 200
)

// Source produces the raw colour values of one input.
type Source interface {
	// Name identifies the source in errors and logs.
	Name() string

	// Colors reads every colour of the source, one value per pixel or per
	// declared palette entry. The source is closed before Colors returns.
	Colors(ctx context.Context) ([]Value, error)
}

// ProgressFunc receives the completed fraction of a run, in [0, 1].
type ProgressFunc func(fraction float64)

// Options configures a palette build.
type Options struct {
	// MaxColors is the target palette size k.
	MaxColors int

	// MaxIterations is the refinement budget, counted in assignment passes.
	MaxIterations int

	// Comparator sorts the final palette. Nil keeps engine order.
	Comparator Comparator

	// Channels selects RGB-only or RGBA-inclusive distance and averaging.
	Channels Channels

	// Seed drives random reseeding after a degenerate pass.
	Seed uint64

	// Workers bounds parallel nearest-centroid search. Values below 2 keep
	// assignment sequential.
	Workers int

	// Progress is an optional sink for progress reports.
	Progress ProgressFunc

	// Logger receives debug output. Nil discards it.
	Logger hclog.Logger
}

// DefaultOptions returns the default build options.
func DefaultOptions() Options {
	return Options{
		MaxColors:     DefaultMaxColors,
		MaxIterations: DefaultMaxIterations,
		Comparator:    ByHue,
		Channels:      ChannelsRGB,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.MaxColors < MinColors || o.MaxColors > MaxColors {
		return invalidArgument("max colors must be from %d to %d, got %d", MinColors, MaxColors, o.MaxColors)
	}
	if o.MaxIterations < MinIterations || o.MaxIterations > MaxIterations {
		return invalidArgument("max iterations must be from %d to %d, got %d", MinIterations, MaxIterations, o.MaxIterations)
	}
	if o.Channels != ChannelsRGB && o.Channels != ChannelsRGBA {
		return invalidArgument("unknown channel mode %d", int(o.Channels))
	}
	if o.Workers < 0 {
		return invalidArgument("workers must not be negative, got %d", o.Workers)
	}
	return nil
}

func (o Options) logger() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}

// String summarises the options for logs.
func (o Options) String() string {
	return fmt.Sprintf("colors=%d iterations=%d channels=%s seed=%d workers=%d",
		o.MaxColors, o.MaxIterations, o.Channels, o.Seed, o.Workers)
}
