package colour

import (
	"context"
	"errors"
	"slices"
)

// BuildPalette reads every source, deduplicates the colours and reduces them
// to at most opts.MaxColors representative colours sorted by opts.Comparator.
//
// Sources are read one at a time, in order. A failing source aborts the run;
// no partial palette is returned.
func BuildPalette(ctx context.Context, sources []Source, opts Options) (*Palette, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, invalidArgument("at least one source is required")
	}

	log := opts.logger()
	prog := newProgress(opts.Progress, len(sources)+opts.MaxIterations+1)

	var raw []Value
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, cancelled(err)
		}
		values, err := src.Colors(ctx)
		if err != nil {
			return nil, sourceFailure(ctx, src, err)
		}
		log.Debug("read source", "source", src.Name(), "colors", len(values))
		raw = append(raw, values...)
		prog.step()
	}

	idx := IndexValues(raw)
	stats := Stats{
		Sources:   len(sources),
		RawColors: idx.Raw,
		Distinct:  len(idx.Distinct),
	}
	log.Debug("indexed colors", "raw", stats.RawColors, "distinct", stats.Distinct)

	var colors []Color
	switch {
	case len(idx.Distinct) == 0:
		colors = []Color{}
	case opts.MaxColors >= len(idx.Distinct):
		colors = slices.Clone(idx.Distinct)
	case opts.MaxColors == 1:
		colors = []Color{opts.Channels.Average(idx.Distinct)}
	default:
		r := &refiner{
			palette:       idx.Distinct,
			k:             opts.MaxColors,
			maxIterations: opts.MaxIterations,
			channels:      opts.Channels,
			rng:           newRand(opts.Seed),
			workers:       opts.Workers,
			tick:          prog.step,
		}
		res, err := r.run(ctx, SeedByFrequency(idx.ByCount, opts.MaxColors))
		if err != nil {
			return nil, err
		}
		colors = recenter(res.Clusters, opts.Channels)
		stats.Clustered = true
		stats.Iterations = res.Iterations
		stats.Restarts = res.Restarts
		stats.Converged = res.Converged
		log.Debug("refined clusters",
			"iterations", res.Iterations,
			"restarts", res.Restarts,
			"converged", res.Converged)
	}

	Sort(colors, opts.Comparator)
	prog.complete()

	return &Palette{Colors: colors, Stats: stats}, nil
}

// sourceFailure attributes err to src unless it already names a source or
// the run was cancelled.
func sourceFailure(ctx context.Context, src Source, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if errors.Is(err, ErrCancelled) {
			return err
		}
		if ctxErr == nil {
			ctxErr = err
		}
		return cancelled(ctxErr)
	}
	var se *SourceError
	if errors.As(err, &se) {
		return err
	}
	return NewIOError(src.Name(), err)
}

// StaticSource is an in-memory Source.
type StaticSource struct {
	Label  string
	Values []Value
}

// NewStaticSource returns a Source yielding colors in order.
func NewStaticSource(label string, colors ...Color) *StaticSource {
	values := make([]Value, len(colors))
	for i, c := range colors {
		values[i] = c.Value()
	}
	return &StaticSource{Label: label, Values: values}
}

// Name implements Source.
func (s *StaticSource) Name() string { return s.Label }

// Colors implements Source. The returned slice is a copy.
func (s *StaticSource) Colors(context.Context) ([]Value, error) {
	return slices.Clone(s.Values), nil
}
