package graphics

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tinyrange/glview/internal/gl"
)

// Variant selects the rendering path.
type Variant int

const (
	// VariantFixed is the OpenGL 2.1 fixed-function pipeline.
	VariantFixed Variant = iota
	// VariantShader is the OpenGL 3.3 core profile pipeline.
	VariantShader
)

func (v Variant) String() string {
	switch v {
	case VariantFixed:
		return "fixed"
	case VariantShader:
		return "shader"
	}
	return "Variant(" + strconv.Itoa(int(v)) + ")"
}

// Core reports whether the variant needs a core profile context.
func (v Variant) Core() bool { return v == VariantShader }

// ParseVariant accepts "0", "1", "fixed" or "shader". Anything else yields
// VariantFixed and an error describing the input.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "fixed":
		return VariantFixed, nil
	case "1", "shader":
		return VariantShader, nil
	}
	return VariantFixed, fmt.Errorf("unknown render variant %q", s)
}

// Color is a linear RGBA quadruple in [0, 1].
type Color [4]float32

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorYellow = Color{1, 1, 0, 1}
)

// ColorFrom converts any color.Color.
func ColorFrom(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{float32(r) / 0xffff, float32(g) / 0xffff, float32(b) / 0xffff, float32(a) / 0xffff}
}

// Texture is a GPU texture owned by a Pipeline.
type Texture interface {
	Size() (width, height int)
}

// TextureOptions control sampling of an uploaded texture.
type TextureOptions struct {
	Linear bool
	Repeat bool
}

// Pipeline issues the draw calls for one window. It has exactly two
// implementations, chosen by Variant. All methods must be called on the
// thread that has the GL context current.
type Pipeline interface {
	Variant() Variant
	GL() gl.OpenGL

	NewTexture(img image.Image, opts TextureOptions) (Texture, error)
	DeleteTexture(tex Texture)

	// Begin sets the viewport and clears the frame.
	Begin(width, height int, clear Color, depth bool)
	// SetMatrices sets the world projection and view used by the Draw calls.
	SetMatrices(proj, view mgl32.Mat4)

	// DrawTexturedQuad draws tex on the square [-halfSize, halfSize]^2.
	DrawTexturedQuad(tex Texture, halfSize float32)
	// DrawColoredQuad draws a quad with per-corner colours. Corners go
	// counter-clockwise from the bottom left.
	DrawColoredQuad(corners [4]mgl32.Vec2, colors [4]Color)
	// DrawLines draws vertex pairs as segments. colors holds one colour per
	// vertex, or a single colour for all of them.
	DrawLines(vertices []mgl32.Vec3, colors []Color)

	// RenderQuad draws tex tinted by tint in window pixels, origin top left.
	RenderQuad(x, y, width, height float32, tex Texture, tint Color)

	// Screenshot reads back the frame set up by the last Begin.
	Screenshot() (image.Image, error)

	Release()

	sealed()
}

// New builds the pipeline for variant on the current context.
func New(variant Variant, g gl.OpenGL, opts Options) (Pipeline, error) {
	switch variant {
	case VariantFixed:
		return newFixed(g, opts), nil
	case VariantShader:
		return newShader(g, opts), nil
	}
	return nil, fmt.Errorf("unknown render variant %d", int(variant))
}

func colorAt(colors []Color, i int) Color {
	switch {
	case len(colors) == 0:
		return ColorWhite
	case i < len(colors):
		return colors[i]
	}
	return colors[len(colors)-1]
}

// screenProjection maps window pixels (origin top left) to clip space.
func screenProjection(width, height int) mgl32.Mat4 {
	return mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}
