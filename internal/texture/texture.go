// Package texture builds the images the viewers display: the checkerboard,
// scalar fields rendered through a colormap, and image files from disk.
package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tinyrange/glview/internal/colormap"
)

// ErrSize is returned when dimensions and data disagree.
var ErrSize = errors.New("texture: size mismatch")

// Checker size and shades of the default texture.
const (
	CheckerSize  = 256
	CheckerCell  = 16
	CheckerLight = 255
	CheckerDark  = 60
)

// Checker returns a size x size greyscale checkerboard with cell-pixel
// squares.
func Checker(size, cell int, light, dark uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	if cell <= 0 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if (x/cell)%2 != (y/cell)%2 {
				c = light
			}
			img.Pix[y*img.Stride+x] = c
		}
	}
	return img
}

// DefaultChecker is Checker with the package defaults.
func DefaultChecker() *image.Gray {
	return Checker(CheckerSize, CheckerCell, CheckerLight, CheckerDark)
}

// FromScalars renders a width x height row-major field through cm. Values
// are normalised to the field's own [min, max]; a constant field maps to the
// first colour. Non-finite values are treated as the minimum.
func FromScalars(values []float64, width, height int, cm *colormap.Colormap) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 || len(values) != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrSize, len(values), width, height)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, v := range values {
		t := 0.0
		if span > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			t = (v - lo) / span
		}
		img.SetNRGBA(i%width, i/width, cm.At(t))
	}
	return img, nil
}

// Load decodes an image file. PNG, JPEG, GIF, BMP, TIFF and WebP are
// supported.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Colorize maps a greyscale image through cm, using luminance as the scalar.
func Colorize(src image.Image, cm *colormap.Colormap) *image.NRGBA {
	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)

	out := image.NewNRGBA(gray.Bounds())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetNRGBA(x, y, cm.Index(int(gray.GrayAt(x, y).Y)))
		}
	}
	return out
}

// Fit scales src down so neither side exceeds maxSide, keeping the aspect
// ratio. Images already small enough are returned unchanged.
func Fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}
	scale := float64(maxSide) / float64(max(w, h))
	dst := image.NewNRGBA(image.Rect(0, 0, max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
