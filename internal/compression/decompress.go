// Package compression unwraps compressed colour sources while they are read.
package compression

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/palex/internal/security"
	"github.com/ulikunitz/xz"
)

// Format is a single-stream compression format.
type Format int

const (
	// None means the source is not compressed.
	None Format = iota
	// Gzip is RFC 1952 gzip.
	Gzip
	// Xz is the xz container format.
	Xz
	// Bzip2 is bzip2.
	Bzip2
)

// String returns the format's file extension without the dot.
func (f Format) String() string {
	switch f {
	case Gzip:
		return "gz"
	case Xz:
		return "xz"
	case Bzip2:
		return "bz2"
	default:
		return "none"
	}
}

var suffixes = []struct {
	ext    string
	format Format
}{
	{".gz", Gzip},
	{".xz", Xz},
	{".bz2", Bzip2},
}

// Detect returns the compression format implied by name's extension and the
// name with that extension removed.
func Detect(name string) (Format, string) {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.ext) {
			return s.format, name[:len(name)-len(s.ext)]
		}
	}
	return None, name
}

// readCloser pairs a decompressing reader with the closers it depends on.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewReader wraps rc so reads yield decompressed data, limited to maxBytes.
// Closing the result closes rc.
func NewReader(rc io.ReadCloser, format Format, maxBytes int64) (io.ReadCloser, error) {
	if maxBytes <= 0 {
		maxBytes = security.DefaultMaxSourceBytes
	}

	switch format {
	case None:
		return rc, nil
	case Gzip:
		gzr, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return &readCloser{
			Reader:  security.NewLimitedReader(gzr, maxBytes),
			closers: []io.Closer{gzr, rc},
		}, nil
	case Xz:
		xzr, err := xz.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return &readCloser{
			Reader:  security.NewLimitedReader(xzr, maxBytes),
			closers: []io.Closer{rc},
		}, nil
	case Bzip2:
		return &readCloser{
			Reader:  security.NewLimitedReader(bzip2.NewReader(rc), maxBytes),
			closers: []io.Closer{rc},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported compression format: %d", int(format))
	}
}
