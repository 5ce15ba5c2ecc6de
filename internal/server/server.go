// Package server exposes palette building over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"

	"github.com/jmylchreest/palex/internal/colour"
	"github.com/jmylchreest/palex/internal/source"
)

const (
	// DefaultMaxUploadBytes bounds the multipart body of one request.
	DefaultMaxUploadBytes = 64 << 20

	// DefaultRequestTimeout bounds a single palette build.
	DefaultRequestTimeout = 2 * time.Minute

	sourceField = "source"
)

// Config configures a Server.
type Config struct {
	// Defaults are the options applied before query parameters.
	Defaults colour.Options

	// RatePerSecond limits palette requests. Non-positive disables limiting.
	RatePerSecond float64
	Burst         int

	MaxUploadBytes int64
	RequestTimeout time.Duration

	Logger hclog.Logger
}

// Server handles palette requests.
type Server struct {
	cfg     Config
	limiter *rate.Limiter
	logger  hclog.Logger
	router  chi.Router
}

// New returns a Server with routes registered.
func New(cfg Config) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	s := &Server{
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, max(cfg.Burst, 1)),
		logger:  cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/palette", s.handlePalette)
	})
	s.router = r

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r.URL.Query(), s.cfg.Defaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart body: %w", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File[sourceField]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: no %q files in request", colour.ErrInvalidArgument, sourceField))
		return
	}

	sources := make([]colour.Source, 0, len(files))
	for _, fh := range files {
		sources = append(sources, source.New(fh.Filename, openPart(fh)))
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	opts := req.options
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	palette, err := colour.BuildPalette(ctx, sources, opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	s.logger.Debug("palette built", "sources", len(sources), "colours", palette.Len(), "format", req.format)
	if err := writePalette(w, palette, req); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func openPart(fh *multipart.FileHeader) source.Opener {
	return func(context.Context) (io.ReadCloser, error) {
		return fh.Open()
	}
}

func writePalette(w http.ResponseWriter, p *colour.Palette, req request) error {
	switch req.format {
	case formatJASC:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		return source.WriteJASC(w, p.Colors)
	case formatPNG:
		if p.Len() == 0 {
			writeError(w, http.StatusUnprocessableEntity, errors.New("palette is empty"))
			return nil
		}
		w.Header().Set("Content-Type", "image/png")
		return colour.EncodeSwatchPNG(w, p, req.tile, req.perRow)
	default:
		data, err := p.ToJSON()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return nil
		}
		w.Header().Set("Content-Type", "application/json")
		_, err = w.Write(append(data, '\n'))
		return err
	}
}

// statusFor maps build errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, colour.ErrInvalidArgument), errors.Is(err, colour.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, colour.ErrIO):
		return http.StatusUnprocessableEntity
	case errors.Is(err, colour.ErrCancelled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, err.Error()+"\n")
}
