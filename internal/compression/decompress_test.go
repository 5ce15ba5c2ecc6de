package compression

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/ulikunitz/xz"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		wantFormat Format
		wantBase   string
	}{
		{name: "colours.pal", wantFormat: None, wantBase: "colours.pal"},
		{name: "colours.pal.gz", wantFormat: Gzip, wantBase: "colours.pal"},
		{name: "photo.PNG.XZ", wantFormat: Xz, wantBase: "photo.PNG"},
		{name: "a.pal.bz2", wantFormat: Bzip2, wantBase: "a.pal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, base := Detect(tt.name)
			if format != tt.wantFormat || base != tt.wantBase {
				t.Errorf("Detect(%q) = %v, %q, want %v, %q", tt.name, format, base, tt.wantFormat, tt.wantBase)
			}
		})
	}
}

func compress(t *testing.T, format Format, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser
	var err error
	switch format {
	case Gzip:
		w = gzip.NewWriter(&buf)
	case Xz:
		w, err = xz.NewWriter(&buf)
		if err != nil {
			t.Fatalf("xz.NewWriter() error = %v", err)
		}
	default:
		t.Fatalf("cannot compress with %v", format)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestNewReaderRoundTrip(t *testing.T) {
	payload := []byte("JASC-PAL\n0100\n1\n1 2 3\n")

	for _, format := range []Format{Gzip, Xz} {
		t.Run(format.String(), func(t *testing.T) {
			rc := io.NopCloser(bytes.NewReader(compress(t, format, payload)))
			r, err := NewReader(rc, format, 0)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			defer r.Close()

			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("decompressed %q, want %q", got, payload)
			}
		})
	}
}

func TestNewReaderLimit(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 1024)
	rc := io.NopCloser(bytes.NewReader(compress(t, Gzip, payload)))

	r, err := NewReader(rc, Gzip, 100)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if _, err := io.ReadAll(r); err == nil {
		t.Error("expected size limit error")
	}
}

func TestNewReaderNone(t *testing.T) {
	rc := io.NopCloser(bytes.NewReader([]byte("plain")))
	r, err := NewReader(rc, None, 0)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	got, _ := io.ReadAll(r)
	if string(got) != "plain" {
		t.Errorf("ReadAll() = %q, want %q", got, "plain")
	}
}

func TestNewReaderInvalidGzip(t *testing.T) {
	rc := io.NopCloser(bytes.NewReader([]byte("not gzip")))
	if _, err := NewReader(rc, Gzip, 0); err == nil {
		t.Error("expected error for invalid gzip header")
	}
}
