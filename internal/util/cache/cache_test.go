package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

type countingFetcher struct {
	calls int
	body  string
	err   error
}

func (f *countingFetcher) Fetch(context.Context, string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

func TestKey(t *testing.T) {
	tests := []struct {
		url     string
		wantExt string
	}{
		{"https://example.com/a/wall.png", ".png"},
		{"https://example.com/colours.pal.gz?token=1", ".pal.gz"},
		{"https://example.com/image", ""},
		{"https://example.com/dir.v2/image", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			key := Key(tt.url)
			if len(key) != 32+len(tt.wantExt) || !strings.HasSuffix(key, tt.wantExt) {
				t.Errorf("Key(%q) = %q, want 32 hex chars + %q", tt.url, key, tt.wantExt)
			}
		})
	}

	if Key("https://a/x.png") == Key("https://b/x.png") {
		t.Error("different URLs share a key")
	}
}

func TestCacheFetch(t *testing.T) {
	next := &countingFetcher{body: "data"}
	c, err := New(next, Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for range 2 {
		data, err := c.Fetch(context.Background(), "https://example.com/x.pal")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if string(data) != "data" {
			t.Errorf("Fetch() = %q, want data", data)
		}
	}
	if next.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", next.calls)
	}

	if _, err := os.Stat(c.Path("https://example.com/x.pal")); err != nil {
		t.Errorf("cached file missing: %v", err)
	}
}

func TestCacheRefreshAndErrors(t *testing.T) {
	dir := t.TempDir()
	next := &countingFetcher{body: "v1"}
	c, _ := New(next, Options{Dir: dir})
	c.Fetch(context.Background(), "https://example.com/x.pal")

	next.body = "v2"
	refreshing, _ := New(next, Options{Dir: dir, Refresh: true})
	data, err := refreshing.Fetch(context.Background(), "https://example.com/x.pal")
	if err != nil || string(data) != "v2" {
		t.Errorf("refresh Fetch() = %q, %v; want v2", data, err)
	}

	boom := errors.New("boom")
	failing, _ := New(&countingFetcher{err: boom}, Options{Dir: dir})
	if _, err := failing.Fetch(context.Background(), "https://example.com/other.pal"); !errors.Is(err, boom) {
		t.Errorf("Fetch() error = %v, want boom", err)
	}
	if _, err := os.Stat(failing.Path("https://example.com/other.pal")); !os.IsNotExist(err) {
		t.Errorf("failed fetch left a cache file: %v", err)
	}
}
