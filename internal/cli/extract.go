package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/palex/internal/colour"
	"github.com/jmylchreest/palex/internal/source"
	"github.com/jmylchreest/palex/internal/util/cache"
	httputil "github.com/jmylchreest/palex/internal/util/http"
)

// extractOptions holds the extract command flags.
type extractOptions struct {
	colours     int
	iterations  int
	sortBy      string
	channels    string
	seed        uint64
	workers     int
	format      string
	output      string
	swatch      string
	tileSize    int
	perRow      int
	preview     bool
	stats       bool
	fetchRate   float64
	fetchBurst  int
	maxBytesMiB int64
	cache       bool
	cacheDir    string
	refresh     bool
}

func newExtractCmd() *cobra.Command {
	o := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <source>...",
		Short: "Build a colour palette from images and palette files",
		Long: `Build a colour palette from one or more sources.

A source is an image file (JPEG, PNG, GIF, WebP, BMP, TIFF), a JASC-PAL
palette file (*.pal), a directory of such files, or an http(s) URL. Files
may be gzip, xz or bzip2 compressed.

Every colour of every source is pooled. When there are more distinct colours
than requested, k-means clustering reduces them to representative colours.

Flag defaults may be set with PALEX_COLOURS, PALEX_ITERATIONS, PALEX_SORT,
PALEX_CHANNELS and PALEX_WORKERS.

Examples:
  # Extract 16 colours (default) from an image
  palex extract wallpaper.jpg

  # Extract 8 colours with preview
  palex extract --preview --colours 8 wallpaper.png

  # Merge a directory of images into one 32 colour JASC palette
  palex extract -c 32 -f jasc -o merged.pal ./screenshots

  # Render a swatch image alongside JSON output
  palex extract --format json --swatch swatch.png wallpaper.jpg

  # Reproducible random reseeding over RGBA
  palex extract --channels rgba --seed 42 sprite.png`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyEnv(cmd.Flags(), map[string]string{
				"colours":    "COLOURS",
				"iterations": "ITERATIONS",
				"sort":       "SORT",
				"channels":   "CHANNELS",
				"workers":    "WORKERS",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, o, args)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&o.colours, "colours", "c", 16, fmt.Sprintf("number of colours to extract (%d-%d)", colour.MinColors, colour.MaxColors))
	flags.IntVarP(&o.iterations, "iterations", "i", colour.DefaultMaxIterations, fmt.Sprintf("maximum clustering passes (%d-%d)", colour.MinIterations, colour.MaxIterations))
	flags.StringVarP(&o.sortBy, "sort", "s", "hue", "palette order ("+strings.Join(colour.ComparatorNames(), ", ")+")")
	flags.StringVar(&o.channels, "channels", "rgb", "channels used for distance and averaging (rgb, rgba)")
	flags.Uint64Var(&o.seed, "seed", 0, "seed for random reseeding")
	flags.IntVarP(&o.workers, "workers", "w", runtime.NumCPU(), "parallel workers for large palettes")
	flags.StringVarP(&o.format, "format", "f", "hex", "output format ("+strings.Join(outputFormats, ", ")+")")
	flags.StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVar(&o.swatch, "swatch", "", "also write a PNG swatch to this path")
	flags.IntVar(&o.tileSize, "tile-size", colour.DefaultTileSize, "swatch tile size in pixels")
	flags.IntVar(&o.perRow, "per-row", colour.DefaultColorsPerRow, "swatch and preview colours per row")
	flags.BoolVar(&o.preview, "preview", false, "show colour previews in terminal")
	flags.BoolVar(&o.stats, "stats", false, "print build statistics to stderr")
	flags.Float64Var(&o.fetchRate, "fetch-rate", 4, "maximum URL fetches per second (0 for unlimited)")
	flags.IntVar(&o.fetchBurst, "fetch-burst", 2, "URL fetch burst size")
	flags.Int64Var(&o.maxBytesMiB, "max-source-mib", 256, "maximum size of a downloaded or decompressed source in MiB")
	flags.BoolVar(&o.cache, "cache", false, "cache downloaded sources on disk")
	flags.StringVar(&o.cacheDir, "cache-dir", "", "cache directory (default: user cache dir)")
	flags.BoolVar(&o.refresh, "refresh", false, "refetch cached sources")

	return cmd
}

// options converts the flags to build options.
func (o *extractOptions) options() (colour.Options, error) {
	opts := colour.DefaultOptions()
	opts.MaxColors = o.colours
	opts.MaxIterations = o.iterations
	opts.Seed = o.seed
	opts.Workers = o.workers

	cmp, err := colour.ComparatorByName(o.sortBy)
	if err != nil {
		return opts, err
	}
	opts.Comparator = cmp

	if opts.Channels, err = colour.ParseChannels(o.channels); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, o *extractOptions, args []string) error {
	logger := commandLogger(cmd)
	_, quiet := verbosity(cmd)

	opts, err := o.options()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := formatPalette(colour.NewPalette(nil), o.format, false); err != nil {
		return err
	}
	if o.swatch != "" {
		if err := colour.ValidateSwatch(o.tileSize, o.perRow); err != nil {
			return err
		}
	}
	opts.Logger = logger

	maxBytes := o.maxBytesMiB << 20
	var fetcher source.Fetcher = httputil.NewFetcher(o.fetchRate, o.fetchBurst, httputil.FetchOptions{MaxBytes: maxBytes})
	if o.cache {
		c, err := cache.New(fetcher, cache.Options{Dir: o.cacheDir, Refresh: o.refresh})
		if err != nil {
			return err
		}
		fetcher = c
	}
	sources, err := source.Expand(args, fetcher)
	if err != nil {
		return err
	}
	for _, s := range sources {
		if src, ok := s.(*source.Source); ok {
			src.WithMaxBytes(maxBytes)
			logger.Debug("source", "name", source.Label(src.Name()), "kind", src.Kind())
		}
	}

	if !quiet && isTerminal(cmd.ErrOrStderr()) {
		opts.Progress = progressBar(cmd.ErrOrStderr(), "building palette")
	}

	logger.Debug("building palette", "sources", len(sources), "options", opts.String())
	palette, err := colour.BuildPalette(cmd.Context(), sources, opts)
	if err != nil {
		return fmt.Errorf("failed to build palette: %w", err)
	}
	logger.Debug("palette built", "colours", palette.Len(), "distinct", palette.Stats.Distinct)

	if o.stats {
		fmt.Fprint(cmd.ErrOrStderr(), statsTable(palette).Render())
	}

	// Previews only make sense on an interactive stdout.
	showPreview := o.preview && o.output == "" && isTerminal(cmd.OutOrStdout())
	if o.preview && !showPreview {
		logger.Debug("preview disabled: output is not a terminal")
	}

	output, err := formatPalette(palette, o.format, showPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("wrote palette", "path", o.output)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), output)
		if showPreview && (o.format == "json" || o.format == "jasc") {
			fmt.Fprint(cmd.OutOrStdout(), colour.PreviewRows(palette, 2, o.perRow))
		}
	}

	if o.swatch != "" {
		if err := colour.SaveSwatchPNG(o.swatch, palette, o.tileSize, o.perRow); err != nil {
			return fmt.Errorf("failed to write swatch: %w", err)
		}
		logger.Debug("wrote swatch", "path", o.swatch)
	}

	return nil
}
