package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tinyrange/glview/internal/config"
	"github.com/tinyrange/glview/internal/texture"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	if NewLogger(&buf, false).Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("debug enabled without verbose")
	}
	if !NewLogger(&buf, true).Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("debug disabled with verbose")
	}
}

func TestSaveScreenshot(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	path := filepath.Join(t.TempDir(), "shot.png")

	if err := SaveScreenshot(path, img); err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
		t.Fatalf("bounds %v", got.Bounds())
	}
	if r, g, b, _ := got.At(2, 1).RGBA(); r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("pixel = %v", got.At(2, 1))
	}

	if err := SaveScreenshot(filepath.Join(t.TempDir(), "missing", "shot.png"), img); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}

func TestRipple(t *testing.T) {
	v := Ripple(8)
	if len(v) != 64 {
		t.Fatalf("len = %d", len(v))
	}
	// Symmetric about the centre.
	if v[0] != v[63] || v[7] != v[56] {
		t.Fatalf("field not symmetric: %v %v %v %v", v[0], v[63], v[7], v[56])
	}
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImage(t *testing.T) {
	small := writePNG(t, 40, 20)

	cases := []struct {
		name    string
		cfg     config.Texture
		size    image.Point
		repeat  bool
		nrgba   bool
		wantLog string
	}{
		{name: "checker", size: image.Pt(texture.CheckerSize, texture.CheckerSize), repeat: true},
		{name: "field", cfg: config.Texture{Colormap: "magma"}, size: image.Pt(FieldSize, FieldSize), nrgba: true},
		{name: "field_unknown_map", cfg: config.Texture{Colormap: "nope"}, size: image.Pt(FieldSize, FieldSize), nrgba: true, wantLog: "unknown colormap"},
		{name: "file", cfg: config.Texture{Path: small}, size: image.Pt(40, 20)},
		{name: "file_fit", cfg: config.Texture{Path: small, MaxSize: 10}, size: image.Pt(10, 5)},
		{name: "file_colormap", cfg: config.Texture{Path: small, Colormap: "jet"}, size: image.Pt(40, 20), nrgba: true},
		{name: "missing", cfg: config.Texture{Path: filepath.Join(t.TempDir(), "none.png")}, size: image.Pt(texture.CheckerSize, texture.CheckerSize), repeat: true, wantLog: "texture load failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			img, opts := Image(tc.cfg, slog.New(slog.NewTextHandler(&buf, nil)))
			if got := img.Bounds().Size(); got != tc.size {
				t.Fatalf("size = %v, want %v", got, tc.size)
			}
			if opts.Repeat != tc.repeat || !opts.Linear {
				t.Fatalf("options %+v", opts)
			}
			if _, ok := img.(*image.NRGBA); tc.nrgba && !ok {
				t.Fatalf("image type %T, want *image.NRGBA", img)
			}
			if tc.wantLog != "" && !strings.Contains(buf.String(), tc.wantLog) {
				t.Fatalf("log %q missing %q", buf.String(), tc.wantLog)
			}
		})
	}
}
