// Package http provides HTTP utilities for fetching remote colour sources.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jmylchreest/palex/internal/security"
	"github.com/jmylchreest/palex/internal/version"
)

const (
	// UserAgentName is the application name used in the User-Agent header.
	UserAgentName = "palex"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// FetchOptions configures HTTP fetch behavior.
type FetchOptions struct {
	// Timeout specifies the HTTP request timeout.
	// If zero, DefaultTimeout is used.
	Timeout time.Duration

	// Headers specifies additional HTTP headers to send with the request.
	Headers map[string]string

	// MaxBytes bounds the response body. If zero,
	// security.DefaultMaxSourceBytes is used.
	MaxBytes int64
}

// Fetcher performs rate-limited GET requests.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	opts    FetchOptions
}

// NewFetcher returns a Fetcher allowing perSecond requests per second with
// the given burst. A non-positive perSecond disables rate limiting.
func NewFetcher(perSecond float64, burst int, opts FetchOptions) *Fetcher {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, max(burst, 1)),
		opts:    opts,
	}
}

// Fetch waits for the rate limiter and retrieves url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return fetch(ctx, f.client, url, f.opts)
}

func fetch(ctx context.Context, client *http.Client, url string, opts FetchOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", UserAgentName, version.Version))
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = security.DefaultMaxSourceBytes
	}

	data, err := io.ReadAll(security.NewLimitedReader(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
