// Package source opens colour sources (images and JASC-PAL palettes) from
// files, directories, URLs and memory, and implements colour.Source for each.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/palex/internal/colour"
	"github.com/jmylchreest/palex/internal/compression"
	imgloader "github.com/jmylchreest/palex/internal/image"
	"github.com/jmylchreest/palex/internal/security"
	httputil "github.com/jmylchreest/palex/internal/util/http"
)

// Kind distinguishes image sources from palette files.
type Kind int

const (
	// KindImage is any decodable raster image.
	KindImage Kind = iota
	// KindPalette is a JASC-PAL text palette.
	KindPalette
)

func (k Kind) String() string {
	if k == KindPalette {
		return "palette"
	}
	return "image"
}

// KindOf classifies name by extension. A compression suffix is ignored, and a
// name ending in "pal" (any case) is a palette.
func KindOf(name string) Kind {
	_, base := compression.Detect(name)
	if strings.HasSuffix(strings.ToLower(base), "pal") {
		return KindPalette
	}
	return KindImage
}

// Opener opens the raw bytes of a source.
type Opener func(ctx context.Context) (io.ReadCloser, error)

// Source is a named, lazily opened colour source.
type Source struct {
	name        string
	kind        Kind
	compression compression.Format
	open        Opener
	maxBytes    int64
}

var _ colour.Source = (*Source)(nil)

// New returns a Source named name that reads through open. Kind and
// compression are inferred from name.
func New(name string, open Opener) *Source {
	path := name
	if security.IsHTTPURL(path) {
		if idx := strings.IndexAny(path, "?#"); idx != -1 {
			path = path[:idx]
		}
	}
	format, _ := compression.Detect(path)
	return &Source{
		name:        name,
		kind:        KindOf(path),
		compression: format,
		open:        open,
		maxBytes:    security.DefaultMaxSourceBytes,
	}
}

// FromPath returns a Source reading the file at path.
func FromPath(path string) *Source {
	return New(path, func(context.Context) (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// FromBytes returns a Source over data. name determines the kind.
func FromBytes(name string, data []byte) *Source {
	return New(name, func(context.Context) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// Fetcher retrieves the body of a URL. *http.Fetcher and *cache.Cache
// implement it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FromURL returns a Source fetching url through fetcher. A nil fetcher
// performs unlimited requests with default options.
func FromURL(url string, fetcher Fetcher) *Source {
	if fetcher == nil {
		fetcher = httputil.NewFetcher(0, 1, httputil.FetchOptions{})
	}
	return New(url, func(ctx context.Context) (io.ReadCloser, error) {
		if err := security.ValidateHTTPURL(url); err != nil {
			return nil, err
		}
		data, err := fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// WithMaxBytes bounds the decompressed size of the source.
func (s *Source) WithMaxBytes(n int64) *Source {
	s.maxBytes = n
	return s
}

// Name implements colour.Source.
func (s *Source) Name() string { return s.name }

// Kind reports whether the source is an image or a palette.
func (s *Source) Kind() Kind { return s.kind }

// Colors implements colour.Source.
func (s *Source) Colors(ctx context.Context) ([]colour.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := s.open(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, colour.NewIOError(s.name, err)
	}
	defer raw.Close()

	r, err := compression.NewReader(raw, s.compression, s.maxBytes)
	if err != nil {
		return nil, colour.NewIOError(s.name, err)
	}
	defer r.Close()

	if s.kind == KindPalette {
		colors, err := ParseJASC(s.name, r)
		if err != nil {
			return nil, err
		}
		values := make([]colour.Value, len(colors))
		for i, c := range colors {
			values[i] = c.Value()
		}
		return values, nil
	}

	img, err := imgloader.Decode(r)
	if err != nil {
		return nil, colour.NewIOError(s.name, err)
	}
	return imageValues(ctx, img)
}

// IsSupported reports whether name looks like a readable source.
func IsSupported(name string) bool {
	_, base := compression.Detect(name)
	return KindOf(name) == KindPalette || imgloader.IsImageFile(base)
}

// Expand resolves each argument into sources. HTTP(S) URLs are fetched with
// fetcher, directories contribute their supported files in name order, and
// anything else is read as a file.
func Expand(args []string, fetcher Fetcher) ([]colour.Source, error) {
	var sources []colour.Source
	for _, arg := range args {
		if security.IsHTTPURL(arg) {
			sources = append(sources, FromURL(arg, fetcher))
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, colour.NewIOError(arg, err)
		}
		if !info.IsDir() {
			sources = append(sources, FromPath(arg))
			continue
		}

		files, err := imgloader.ScanDirectory(arg, IsSupported)
		if err != nil {
			return nil, colour.NewIOError(arg, err)
		}
		for _, f := range files {
			sources = append(sources, FromPath(f))
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no sources given", colour.ErrInvalidArgument)
	}
	return sources, nil
}

// Label returns a short display name for a source path or URL.
func Label(name string) string {
	if security.IsHTTPURL(name) {
		return name
	}
	return filepath.Base(name)
}
