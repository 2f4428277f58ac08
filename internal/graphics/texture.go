package graphics

import (
	"errors"
	"image"
	"unsafe"

	"golang.org/x/image/draw"

	"github.com/tinyrange/glview/internal/gl"
)

// ErrEmptyImage is returned when uploading an image with no pixels.
var ErrEmptyImage = errors.New("graphics: empty image")

type glTexture struct {
	id uint32
	w  int
	h  int
}

func (t *glTexture) Size() (int, int) {
	return t.w, t.h
}

func textureID(tex Texture) (uint32, bool) {
	t, ok := tex.(*glTexture)
	if !ok || t == nil || t.id == 0 {
		return 0, false
	}
	return t.id, true
}

func uploadTexture(g gl.OpenGL, img image.Image, opts TextureOptions) (Texture, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyImage
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*bounds.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	filter, wrap := int32(gl.Nearest), int32(gl.ClampToEdge)
	if opts.Linear {
		filter = gl.Linear
	}
	if opts.Repeat {
		wrap = gl.Repeat
	}

	var id uint32
	g.GenTextures(1, &id)
	g.BindTexture(gl.Texture2D, id)
	g.PixelStorei(gl.UnpackAlignment, 1)
	g.TexParameteri(gl.Texture2D, gl.TextureMinFilter, filter)
	g.TexParameteri(gl.Texture2D, gl.TextureMagFilter, filter)
	g.TexParameteri(gl.Texture2D, gl.TextureWrapS, wrap)
	g.TexParameteri(gl.Texture2D, gl.TextureWrapT, wrap)
	g.TexImage2D(
		gl.Texture2D,
		0,
		int32(gl.RGBA),
		int32(bounds.Dx()),
		int32(bounds.Dy()),
		0,
		gl.RGBA,
		gl.UnsignedByte,
		unsafe.Pointer(&nrgba.Pix[0]),
	)
	g.BindTexture(gl.Texture2D, 0)

	return &glTexture{id: id, w: bounds.Dx(), h: bounds.Dy()}, nil
}

func deleteTexture(g gl.OpenGL, tex Texture) {
	t, ok := tex.(*glTexture)
	if !ok || t == nil || t.id == 0 {
		return
	}
	g.DeleteTextures(1, &t.id)
	t.id = 0
}
