// Package text draws monospaced HUD text as one textured quad per glyph.
package text

import "github.com/tinyrange/glview/internal/graphics"

// Renderer draws screen-space quads. graphics.Pipeline implements it.
type Renderer interface {
	RenderQuad(x, y, width, height float32, tex graphics.Texture, tint graphics.Color)
}

const tabWidth = 4

// RenderText draws s with its top-left corner at (x, y) in window pixels.
// Newlines advance to the next line; runes without a glyph still advance
// the cursor. It returns the x position after the last rune.
func (f *Font) RenderText(dst Renderer, s string, x, y float32, tint graphics.Color) float32 {
	if f == nil {
		return x
	}

	cw, ch := f.cellWidth*f.scale, f.cellHeight*f.scale
	cursorX, cursorY := x, y
	for _, r := range s {
		switch r {
		case '\n':
			cursorX = x
			cursorY += f.LineHeight()
			continue
		case '\r':
			continue
		case '\t':
			cursorX += cw * tabWidth
			continue
		}

		if tex, ok := f.glyphs[r]; ok {
			dst.RenderQuad(cursorX, cursorY, cw, ch, tex, tint)
		}
		cursorX += cw
	}
	return cursorX
}

// Measure returns the scaled width of the longest line and the total height.
func (f *Font) Measure(s string) (width, height float32) {
	if f == nil || s == "" {
		return 0, 0
	}
	cw := f.cellWidth * f.scale
	lines, col, widest := 1, 0, 0
	for _, r := range s {
		switch r {
		case '\n':
			lines++
			col = 0
			continue
		case '\r':
			continue
		case '\t':
			col += tabWidth
		default:
			col++
		}
		widest = max(widest, col)
	}
	return float32(widest) * cw, float32(lines-1)*f.LineHeight() + f.cellHeight*f.scale
}
