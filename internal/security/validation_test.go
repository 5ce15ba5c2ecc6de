package security

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https", url: "https://example.com/wallpaper.png"},
		{name: "http", url: "http://example.com/a.pal"},
		{name: "empty", url: "", wantErr: true},
		{name: "ftp", url: "ftp://example.com/a.png", wantErr: true},
		{name: "no host", url: "https:///a.png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHTTPURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestIsHTTPURL(t *testing.T) {
	if !IsHTTPURL("https://example.com") || !IsHTTPURL("http://example.com") {
		t.Error("IsHTTPURL() rejected an HTTP URL")
	}
	if IsHTTPURL("/tmp/http.png") {
		t.Error("IsHTTPURL() accepted a path")
	}
}

func TestLimitedReader(t *testing.T) {
	r := NewLimitedReader(strings.NewReader("0123456789"), 4)

	got, err := io.ReadAll(r)
	if err == nil {
		t.Fatal("expected limit error")
	}
	if !bytes.Equal(got, []byte("0123")) {
		t.Errorf("read %q before limit, want %q", got, "0123")
	}

	r = NewLimitedReader(strings.NewReader("abc"), 10)
	got, err = io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("ReadAll() = %q, want %q", got, "abc")
	}
}
