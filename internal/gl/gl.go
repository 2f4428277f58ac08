package gl

import (
	"errors"
	"unsafe"
)

// ErrMissingFunction is returned by Load when a required entry point cannot
// be resolved for the requested profile.
var ErrMissingFunction = errors.New("gl: missing function")

const (
	// ColorBufferBit is a mask used with Clear to clear the color buffer.
	ColorBufferBit = 0x00004000
	// DepthBufferBit is a mask used with Clear to clear the depth buffer.
	DepthBufferBit = 0x00000100

	// Texture2D is the texture target for 2D textures.
	Texture2D = 0x0DE1
	// Texture0 is the first texture unit for ActiveTexture.
	Texture0 = 0x84C0

	// UnpackAlignment specifies the alignment requirements for pixel data
	// when uploading textures (PixelStorei).
	UnpackAlignment = 0x0CF5
	// PackAlignment is the row alignment used by ReadPixels.
	PackAlignment = 0x0D05

	// TextureWrapS selects the wrapping function for texture coordinate S.
	TextureWrapS = 0x2802
	// TextureWrapT selects the wrapping function for texture coordinate T.
	TextureWrapT = 0x2803

	// TextureMinFilter selects the texture minification filter.
	TextureMinFilter = 0x2801
	// TextureMagFilter selects the texture magnification filter.
	TextureMagFilter = 0x2800

	// Nearest selects nearest-neighbor filtering.
	Nearest = 0x2600
	// Linear selects linear filtering.
	Linear = 0x2601

	// ClampToEdge clamps texture coordinates to the edge of the texture.
	ClampToEdge = 0x812F
	// Repeat tiles the texture outside [0,1].
	Repeat = 0x2901

	// RGB is a pixel format representing red/green/blue.
	RGB = 0x1907
	// RGBA is a pixel format representing red/green/blue/alpha.
	RGBA = 0x1908

	// UnsignedByte is a pixel data type indicating 8-bit unsigned values.
	UnsignedByte = 0x1401
	// Float is the 32-bit float attribute type.
	Float = 0x1406

	// Lines draws each pair of vertices as a separate segment.
	Lines = 0x0001
	// TriangleStrip is a primitive type for drawing a connected strip of triangles.
	TriangleStrip = 0x0005
	// Quads is a legacy primitive type for drawing quadrilaterals.
	Quads = 0x0007

	// Projection selects the projection matrix stack for MatrixMode.
	Projection = 0x1701
	// ModelView selects the model-view matrix stack for MatrixMode.
	ModelView = 0x1700

	// Blending capabilities and factors.
	Blend            = 0x0BE2
	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303

	// DepthTest enables depth comparisons.
	DepthTest = 0x0B71

	// Buffer objects.
	ArrayBuffer = 0x8892
	StaticDraw  = 0x88E4
	DynamicDraw = 0x88E8

	// Shader objects.
	FragmentShader = 0x8B30
	VertexShader   = 0x8B31
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	InfoLogLength  = 0x8B84

	// GetString parameters.
	//
	// Vendor returns the company responsible for the GL implementation.
	Vendor = 0x1F00
	// Renderer names the device.
	Renderer = 0x1F01
	// Version returns the GL version string of the current context.
	Version = 0x1F02
	// ShadingLanguageVersion returns the GLSL version string.
	ShadingLanguageVersion = 0x8B8C
)

// OpenGL describes the subset of OpenGL entry points used by glview.
//
// The first group is available on every context. The fixed-function group
// only works on compatibility (2.1) contexts and the buffer/shader group needs
// a 2.0+ context (VAOs need 3.0+). All methods operate on the context that is
// current on the calling thread.
type OpenGL interface {
	// ClearColor sets the clear color used by Clear when clearing the color buffer.
	ClearColor(r, g, b, a float32)

	// Clear clears buffers to preset values (e.g., ColorBufferBit).
	Clear(mask uint32)

	// Viewport sets the affine transformation of x and y from normalized device
	// coordinates to window coordinates.
	Viewport(x, y, width, height int32)

	// Enable enables a server-side GL capability (e.g., Blend).
	Enable(cap uint32)

	// Disable disables a server-side GL capability.
	Disable(cap uint32)

	// GenTextures generates texture object names.
	GenTextures(n int32, textures *uint32)

	// DeleteTextures deletes n texture names.
	DeleteTextures(n int32, textures *uint32)

	// BindTexture binds a named texture to a texturing target (e.g., Texture2D).
	BindTexture(target, texture uint32)

	// ActiveTexture selects the active texture unit.
	ActiveTexture(texture uint32)

	// TexImage2D specifies a two-dimensional texture image.
	//
	// The pixels pointer may be nil to allocate storage without uploading data.
	TexImage2D(
		target uint32,
		level int32,
		internalformat int32,
		width int32,
		height int32,
		border int32,
		format uint32,
		xtype uint32,
		pixels unsafe.Pointer,
	)

	// TexParameteri sets texture parameters for the currently bound texture.
	TexParameteri(target, pname uint32, param int32)

	// PixelStorei sets pixel storage modes (e.g., UnpackAlignment).
	PixelStorei(pname uint32, param int32)

	// BlendFunc specifies the pixel arithmetic for blending (e.g., SrcAlpha and OneMinusSrcAlpha).
	BlendFunc(sfactor, dfactor uint32)

	// LineWidth sets the rasterized width of lines.
	LineWidth(width float32)

	// ReadPixels reads a block of pixels from the framebuffer into client memory.
	ReadPixels(
		x int32,
		y int32,
		width int32,
		height int32,
		format uint32,
		xtype uint32,
		pixels unsafe.Pointer,
	)

	// GetString returns a string describing a GL property for the current context.
	//
	// Common names are Vendor and Version.
	// If the name is not recognized or no context is current, implementations may
	// return the empty string.
	GetString(name uint32) string

	// Begin begins specifying vertices for a primitive or a group of like primitives.
	//
	// This is part of OpenGL's legacy immediate mode API.
	Begin(mode uint32)

	// End marks the end of vertex specification started by Begin.
	End()

	// Color3f sets the current color.
	Color3f(r, g, b float32)

	// Color4fv sets the current color using a pointer to four float32 values.
	Color4fv(v *float32)

	// TexCoord2f sets the current texture coordinates.
	TexCoord2f(s, t float32)

	// Vertex2f specifies a vertex.
	Vertex2f(x, y float32)

	// Vertex3f specifies a vertex.
	Vertex3f(x, y, z float32)

	// MatrixMode sets which matrix stack is the target for subsequent matrix operations
	// (e.g., Projection or ModelView).
	MatrixMode(mode uint32)

	// LoadIdentity replaces the current matrix with the identity matrix.
	LoadIdentity()

	// LoadMatrixf replaces the current matrix with 16 column-major values.
	LoadMatrixf(m *float32)

	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	BufferSubData(target uint32, offset, size int, data unsafe.Pointer)

	GenVertexArrays(n int32, arrays *uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, v0 int32)
	UniformMatrix4fv(location, count int32, transpose bool, value *float32)

	DrawArrays(mode uint32, first, count int32)
}

func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}

func cstring(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}
