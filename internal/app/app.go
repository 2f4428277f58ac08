// Package app holds the setup shared by the viewer programs.
package app

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/tinyrange/glview/internal/colormap"
	"github.com/tinyrange/glview/internal/config"
	"github.com/tinyrange/glview/internal/graphics"
	"github.com/tinyrange/glview/internal/texture"
)

// NewLogger returns a text logger on w at info level, or debug when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ScreenshotPath is where -screenshot writes.
const ScreenshotPath = "screenshot.png"

// SaveScreenshot encodes img as PNG at path.
func SaveScreenshot(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create screenshot file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode screenshot: %w", err)
	}
	return file.Close()
}

// FieldSize is the side of the generated scalar field.
const FieldSize = 256

// Ripple returns a size x size radial wave, row-major.
func Ripple(size int) []float64 {
	values := make([]float64, size*size)
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r := math.Hypot(float64(x)-c, float64(y)-c) / float64(size)
			values[y*size+x] = math.Cos(r*6*math.Pi) * math.Exp(-2*r)
		}
	}
	return values
}

// Image picks the startup texture for cfg:
//
//   - path set: the decoded file, downsampled to MaxSize and recoloured
//     when a colormap is named;
//   - colormap only: a ripple field through that colormap;
//   - neither: the checkerboard.
//
// A file that fails to load is logged and replaced by the checkerboard.
func Image(cfg config.Texture, logger *slog.Logger) (image.Image, graphics.TextureOptions) {
	if logger == nil {
		logger = slog.Default()
	}
	checker := func() (image.Image, graphics.TextureOptions) {
		return texture.DefaultChecker(), graphics.TextureOptions{Linear: true, Repeat: true}
	}

	if cfg.Path == "" {
		if cfg.Colormap == "" {
			return checker()
		}
		cm := colormap.Lookup(cfg.Colormap, logger)
		img, err := texture.FromScalars(Ripple(FieldSize), FieldSize, FieldSize, cm)
		if err != nil {
			logger.Warn("scalar field failed, using checkerboard", "err", err)
			return checker()
		}
		return img, graphics.TextureOptions{Linear: true}
	}

	img, err := texture.Load(cfg.Path)
	if err != nil {
		logger.Warn("texture load failed, using checkerboard", "path", cfg.Path, "err", err)
		return checker()
	}
	img = texture.Fit(img, cfg.MaxSize)
	if cfg.Colormap != "" {
		img = texture.Colorize(img, colormap.Lookup(cfg.Colormap, logger))
	}
	logger.Debug("texture loaded", "path", cfg.Path, "size", img.Bounds().Size())
	return img, graphics.TextureOptions{Linear: true}
}
