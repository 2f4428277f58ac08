package graphics

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/tinyrange/glview/internal/gl"
)

func readPixels(g gl.OpenGL, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screenshot of %dx%d frame", width, height)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	g.PixelStorei(gl.PackAlignment, 1)
	g.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UnsignedByte, unsafe.Pointer(&rgba.Pix[0]))

	// GL rows start at the bottom.
	row := make([]byte, rgba.Stride)
	for y := 0; y < height/2; y++ {
		top := rgba.Pix[y*rgba.Stride : (y+1)*rgba.Stride]
		bottom := rgba.Pix[(height-1-y)*rgba.Stride : (height-y)*rgba.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
	return rgba, nil
}
