package text

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tinyrange/glview/internal/graphics"
)

// Glyphs rasterised into the atlas: printable ASCII without the space.
const firstGlyph, lastGlyph = '!', '~'

// Uploader creates textures. graphics.Pipeline implements it.
type Uploader interface {
	NewTexture(img image.Image, opts graphics.TextureOptions) (graphics.Texture, error)
}

// Font holds per-glyph textures and sizing info to render text.
type Font struct {
	glyphs     map[rune]graphics.Texture
	cellWidth  float32
	cellHeight float32
	lineHeight float32
	scale      float32
}

// Load rasterises face into one white texture per glyph. A nil face uses
// basicfont.Face7x13. On failure, glyphs already uploaded are deleted when up
// is also a Deleter.
func Load(up Uploader, face font.Face) (*Font, error) {
	if face == nil {
		face = basicfont.Face7x13
	}

	metrics := face.Metrics()
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, fmt.Errorf("font has no glyph for %q", 'M')
	}
	cellWidth := advance.Ceil()
	cellHeight := (metrics.Ascent + metrics.Descent).Ceil()
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("invalid cell size from face (%d x %d)", cellWidth, cellHeight)
	}

	glyphs := make(map[rune]graphics.Texture, lastGlyph-firstGlyph+1)
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		cell := image.NewNRGBA(image.Rect(0, 0, cellWidth, cellHeight))
		d := font.Drawer{
			Dst:  cell,
			Src:  image.White,
			Face: face,
			Dot:  fixed.Point26_6{Y: metrics.Ascent},
		}
		d.DrawString(string(r))

		tex, err := up.NewTexture(cell, graphics.TextureOptions{})
		if err != nil {
			if del, ok := up.(Deleter); ok {
				(&Font{glyphs: glyphs}).Release(del)
			}
			return nil, fmt.Errorf("create texture for rune %q: %w", r, err)
		}
		glyphs[r] = tex
	}

	lineHeight := metrics.Height.Ceil()
	if lineHeight < cellHeight {
		lineHeight = cellHeight
	}

	return &Font{
		glyphs:     glyphs,
		cellWidth:  float32(cellWidth),
		cellHeight: float32(cellHeight),
		lineHeight: float32(lineHeight),
		scale:      1,
	}, nil
}

// SetScale multiplies every glyph size, typically by the window's DPI scale.
func (f *Font) SetScale(scale float32) {
	if scale > 0 {
		f.scale = scale
	}
}

// LineHeight is the scaled distance between baselines.
func (f *Font) LineHeight() float32 {
	return f.lineHeight * f.scale
}

// Deleter releases textures. graphics.Pipeline implements it.
type Deleter interface {
	DeleteTexture(tex graphics.Texture)
}

// Release deletes the glyph textures.
func (f *Font) Release(del Deleter) {
	for r, tex := range f.glyphs {
		del.DeleteTexture(tex)
		delete(f.glyphs, r)
	}
}
