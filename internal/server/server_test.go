package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jmylchreest/palex/internal/colour"
)

const samplePalette = "JASC-PAL\n0100\n3\n255 0 0\n0 255 0\n0 0 255\n"

type upload struct {
	name string
	data string
}

func multipartBody(t *testing.T, files ...upload) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(sourceField, f.name)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		io.WriteString(part, f.data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("multipart Close() error = %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, h http.Handler, query string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, files...)
	req := httptest.NewRequest(http.MethodPost, "/v1/palette?"+query, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func newTestServer() *Server {
	return New(Config{Defaults: colour.DefaultOptions()})
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestPaletteJSON(t *testing.T) {
	rec := post(t, newTestServer().Handler(), "colours=2&sort=none&seed=7", upload{"rgb.pal", samplePalette})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got colour.PaletteJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got.Count != 2 {
		t.Errorf("count = %d, want 2", got.Count)
	}
	if got.Stats.Distinct != 3 || !got.Stats.Clustered {
		t.Errorf("stats = %+v, want 3 distinct and clustered", got.Stats)
	}
}

func TestPaletteJASC(t *testing.T) {
	rec := post(t, newTestServer().Handler(), "format=jasc&sort=none", upload{"rgb.pal", samplePalette})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	// Engine order is ascending packed value: blue, green, red.
	want := "JASC-PAL\r\n0100\r\n3\r\n0 0 255\r\n0 255 0\r\n255 0 0\r\n"
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestPalettePNG(t *testing.T) {
	rec := post(t, newTestServer().Handler(), "format=png&tile=2&per_row=2", upload{"rgb.pal", samplePalette})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 4x4", b)
	}
}

func TestPaletteErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		files  []upload
		status int
	}{
		{"no files", "", nil, http.StatusBadRequest},
		{"colours out of range", "colours=0", []upload{{"a.pal", samplePalette}}, http.StatusBadRequest},
		{"bad iterations", "iterations=lots", []upload{{"a.pal", samplePalette}}, http.StatusBadRequest},
		{"bad sort", "sort=luminosity", []upload{{"a.pal", samplePalette}}, http.StatusBadRequest},
		{"bad format", "format=gif", []upload{{"a.pal", samplePalette}}, http.StatusBadRequest},
		{"oversized tile", "format=png&tile=100000", []upload{{"a.pal", samplePalette}}, http.StatusBadRequest},
		{"oversized row", "format=png&per_row=100000", []upload{{"a.pal", samplePalette}}, http.StatusBadRequest},
		{"zero tile", "format=png&tile=0", []upload{{"a.pal", samplePalette}}, http.StatusBadRequest},
		{"malformed palette", "", []upload{{"a.pal", "MAGIC\n1 2 3\n"}}, http.StatusBadRequest},
		{"undecodable image", "", []upload{{"a.png", "not a png"}}, http.StatusUnprocessableEntity},
	}

	h := newTestServer().Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.query, tt.files...)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %q)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := New(Config{Defaults: colour.DefaultOptions(), RatePerSecond: 0.001, Burst: 1}).Handler()

	if rec := post(t, h, "", upload{"a.pal", samplePalette}); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}
	rec := post(t, h, "", upload{"a.pal", samplePalette})
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}

	health := httptest.NewRecorder()
	h.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if health.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200 while rate limited", health.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", colour.ErrInvalidArgument), http.StatusBadRequest},
		{colour.NewFormatError("a.pal", 1, errors.New("bad")), http.StatusBadRequest},
		{colour.NewIOError("a.png", errors.New("bad")), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: %w", colour.ErrCancelled, context.DeadlineExceeded), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestParseRequestDefaults(t *testing.T) {
	defaults := colour.DefaultOptions()
	defaults.MaxColors = 8

	req, err := parseRequest(url.Values{}, defaults)
	if err != nil {
		t.Fatalf("parseRequest() error = %v", err)
	}
	if req.options.MaxColors != 8 || req.format != formatJSON {
		t.Errorf("parseRequest() = %+v", req)
	}
	if req.tile != colour.DefaultTileSize || req.perRow != colour.DefaultColorsPerRow {
		t.Errorf("swatch defaults = %d/%d", req.tile, req.perRow)
	}

	req, err = parseRequest(url.Values{"channels": {"rgba"}, "seed": {"42"}, "sort": {"none"}}, defaults)
	if err != nil {
		t.Fatalf("parseRequest() error = %v", err)
	}
	if req.options.Channels != colour.ChannelsRGBA || req.options.Seed != 42 || req.options.Comparator != nil {
		t.Errorf("parseRequest() options = %v", req.options)
	}
}
