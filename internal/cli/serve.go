package cli

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/palex/internal/colour"
	"github.com/jmylchreest/palex/internal/server"
)

type serveOptions struct {
	listen       string
	colours      int
	iterations   int
	workers      int
	ratePerSec   float64
	burst        int
	maxUploadMiB int64
	timeout      time.Duration
}

func newServeCmd() *cobra.Command {
	o := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve palette building over HTTP",
		Long: `Serve palette building over HTTP.

Endpoints:
  POST /v1/palette   multipart form with one or more "source" files
  GET  /healthz      liveness check

Query parameters on /v1/palette: colours, iterations, sort, channels, seed,
format (json, jasc, png), tile and per_row.

Flag defaults may be set with PALEX_LISTEN, PALEX_COLOURS, PALEX_ITERATIONS
and PALEX_WORKERS.

Example:
  palex serve --listen :8080
  curl -F source=@wallpaper.jpg 'http://localhost:8080/v1/palette?colours=8'`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyEnv(cmd.Flags(), map[string]string{
				"listen":     "LISTEN",
				"colours":    "COLOURS",
				"iterations": "ITERATIONS",
				"workers":    "WORKERS",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, o)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.listen, "listen", "l", ":8080", "address to listen on")
	flags.IntVarP(&o.colours, "colours", "c", 16, "default number of colours")
	flags.IntVarP(&o.iterations, "iterations", "i", colour.DefaultMaxIterations, "default maximum clustering passes")
	flags.IntVarP(&o.workers, "workers", "w", runtime.NumCPU(), "parallel workers per request")
	flags.Float64Var(&o.ratePerSec, "rate", 10, "palette requests per second (0 for unlimited)")
	flags.IntVar(&o.burst, "burst", 20, "request burst size")
	flags.Int64Var(&o.maxUploadMiB, "max-upload-mib", 64, "maximum request body size in MiB")
	flags.DurationVar(&o.timeout, "timeout", server.DefaultRequestTimeout, "maximum time to build one palette")

	return cmd
}

func runServe(cmd *cobra.Command, o *serveOptions) error {
	logger := commandLogger(cmd)

	defaults := colour.DefaultOptions()
	defaults.MaxColors = o.colours
	defaults.MaxIterations = o.iterations
	defaults.Workers = o.workers
	if err := defaults.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	srv := server.New(server.Config{
		Defaults:       defaults,
		RatePerSecond:  o.ratePerSec,
		Burst:          o.burst,
		MaxUploadBytes: o.maxUploadMiB << 20,
		RequestTimeout: o.timeout,
		Logger:         logger.Named("server"),
	})

	return srv.ListenAndServe(cmd.Context(), o.listen)
}
