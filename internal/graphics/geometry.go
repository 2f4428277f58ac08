package graphics

import "github.com/go-gl/mathgl/mgl32"

var (
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}
)

// Axes returns unit X, Y and Z segments from the origin coloured red, green
// and blue.
func Axes() ([]mgl32.Vec3, []Color) {
	verts := []mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0},
		{0, 0, 0}, {0, 1, 0},
		{0, 0, 0}, {0, 0, 1},
	}
	colors := []Color{ColorRed, ColorRed, ColorGreen, ColorGreen, ColorBlue, ColorBlue}
	return verts, colors
}

// WireCube returns the 12 edges of an axis-aligned cube centred on the
// origin as vertex pairs.
func WireCube(half float32) []mgl32.Vec3 {
	var corners [8]mgl32.Vec3
	for i := range corners {
		corners[i] = mgl32.Vec3{-half, -half, -half}
		if i&1 != 0 {
			corners[i][0] = half
		}
		if i&2 != 0 {
			corners[i][1] = half
		}
		if i&4 != 0 {
			corners[i][2] = half
		}
	}
	edges := make([]mgl32.Vec3, 0, 24)
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, corners[i], corners[i|bit])
			}
		}
	}
	return edges
}

// UnitQuad is [-half, half]^2 in quad order, counter-clockwise from the
// bottom left.
func UnitQuad(half float32) [4]mgl32.Vec2 {
	return [4]mgl32.Vec2{{-half, -half}, {half, -half}, {half, half}, {-half, half}}
}
