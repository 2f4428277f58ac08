//go:build linux

package gl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
)

// The Linux loader binds the fixed-function entry points exported by libGL
// directly and resolves everything newer than GL 1.3 through
// glXGetProcAddressARB.
type openGL struct {
	clearColor     func(float32, float32, float32, float32)
	clear          func(uint32)
	viewport       func(int32, int32, int32, int32)
	enable         func(uint32)
	disable        func(uint32)
	genTextures    func(int32, *uint32)
	deleteTextures func(int32, *uint32)
	bindTexture    func(uint32, uint32)
	activeTexture  func(uint32)
	texImage2D     func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	texParameteri  func(uint32, uint32, int32)
	pixelStorei    func(uint32, int32)
	blendFunc      func(uint32, uint32)
	lineWidth      func(float32)
	readPixels     func(int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	getString      func(uint32) *byte

	// Fixed function
	begin        func(uint32)
	end          func()
	color3f      func(float32, float32, float32)
	color4fv     func(*float32)
	texCoord2f   func(float32, float32)
	vertex2f     func(float32, float32)
	vertex3f     func(float32, float32, float32)
	matrixMode   func(uint32)
	loadIdentity func()
	loadMatrixf  func(*float32)

	// Buffer operations
	genBuffers    func(int32, *uint32)
	deleteBuffers func(int32, *uint32)
	bindBuffer    func(uint32, uint32)
	bufferData    func(uint32, int, unsafe.Pointer, uint32)
	bufferSubData func(uint32, int, int, unsafe.Pointer)

	// VAO operations
	genVertexArrays         func(int32, *uint32)
	deleteVertexArrays      func(int32, *uint32)
	bindVertexArray         func(uint32)
	vertexAttribPointer     func(uint32, int32, uint32, bool, int32, uintptr)
	enableVertexAttribArray func(uint32)

	// Shader operations
	createShader     func(uint32) uint32
	shaderSource     func(uint32, int32, **byte, *int32)
	compileShader    func(uint32)
	getShaderiv      func(uint32, uint32, *int32)
	getShaderInfoLog func(uint32, int32, *int32, *byte)
	deleteShader     func(uint32)

	// Program operations
	createProgram     func() uint32
	attachShader      func(uint32, uint32)
	linkProgram       func(uint32)
	getProgramiv      func(uint32, uint32, *int32)
	getProgramInfoLog func(uint32, int32, *int32, *byte)
	useProgram        func(uint32)
	deleteProgram     func(uint32)

	// Uniform operations
	getUniformLocation func(uint32, *byte) int32
	uniform1i          func(int32, int32)
	uniformMatrix4fv   func(int32, int32, bool, *float32)

	// Drawing
	drawArrays func(uint32, int32, int32)
}

func (gl *openGL) ClearColor(r, g, b, a float32) {
	gl.clearColor(r, g, b, a)
}

func (gl *openGL) Clear(mask uint32) {
	gl.clear(mask)
}

func (gl *openGL) Viewport(x, y, width, height int32) {
	gl.viewport(x, y, width, height)
}

func (gl *openGL) Enable(cap uint32) {
	gl.enable(cap)
}

func (gl *openGL) Disable(cap uint32) {
	gl.disable(cap)
}

func (gl *openGL) GenTextures(n int32, textures *uint32) {
	gl.genTextures(n, textures)
}

func (gl *openGL) DeleteTextures(n int32, textures *uint32) {
	gl.deleteTextures(n, textures)
}

func (gl *openGL) BindTexture(target, texture uint32) {
	gl.bindTexture(target, texture)
}

func (gl *openGL) ActiveTexture(texture uint32) {
	gl.activeTexture(texture)
}

func (gl *openGL) TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.texImage2D(target, level, internalFormat, width, height, border, format, xtype, pixels)
}

func (gl *openGL) TexParameteri(target, pname uint32, param int32) {
	gl.texParameteri(target, pname, param)
}

func (gl *openGL) PixelStorei(pname uint32, param int32) {
	gl.pixelStorei(pname, param)
}

func (gl *openGL) BlendFunc(sfactor, dfactor uint32) {
	gl.blendFunc(sfactor, dfactor)
}

func (gl *openGL) LineWidth(width float32) {
	gl.lineWidth(width)
}

func (gl *openGL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.readPixels(x, y, width, height, format, xtype, pixels)
}

func (gl *openGL) GetString(name uint32) string {
	return gostring(gl.getString(name))
}

func (gl *openGL) Begin(mode uint32) {
	gl.begin(mode)
}

func (gl *openGL) End() {
	gl.end()
}

func (gl *openGL) Color3f(r, g, b float32) {
	gl.color3f(r, g, b)
}

func (gl *openGL) Color4fv(v *float32) {
	gl.color4fv(v)
}

func (gl *openGL) TexCoord2f(s, t float32) {
	gl.texCoord2f(s, t)
}

func (gl *openGL) Vertex2f(x, y float32) {
	gl.vertex2f(x, y)
}

func (gl *openGL) Vertex3f(x, y, z float32) {
	gl.vertex3f(x, y, z)
}

func (gl *openGL) MatrixMode(mode uint32) {
	gl.matrixMode(mode)
}

func (gl *openGL) LoadIdentity() {
	gl.loadIdentity()
}

func (gl *openGL) LoadMatrixf(m *float32) {
	gl.loadMatrixf(m)
}

func (gl *openGL) GenBuffers(n int32, buffers *uint32) {
	gl.genBuffers(n, buffers)
}

func (gl *openGL) DeleteBuffers(n int32, buffers *uint32) {
	gl.deleteBuffers(n, buffers)
}

func (gl *openGL) BindBuffer(target uint32, buffer uint32) {
	gl.bindBuffer(target, buffer)
}

func (gl *openGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.bufferData(target, size, data, usage)
}

func (gl *openGL) BufferSubData(target uint32, offset int, size int, data unsafe.Pointer) {
	gl.bufferSubData(target, offset, size, data)
}

func (gl *openGL) GenVertexArrays(n int32, arrays *uint32) {
	gl.genVertexArrays(n, arrays)
}

func (gl *openGL) DeleteVertexArrays(n int32, arrays *uint32) {
	gl.deleteVertexArrays(n, arrays)
}

func (gl *openGL) BindVertexArray(array uint32) {
	gl.bindVertexArray(array)
}

func (gl *openGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.vertexAttribPointer(index, size, xtype, normalized, stride, offset)
}

func (gl *openGL) EnableVertexAttribArray(index uint32) {
	gl.enableVertexAttribArray(index)
}

func (gl *openGL) CreateShader(xtype uint32) uint32 {
	return gl.createShader(xtype)
}

func (gl *openGL) ShaderSource(shader uint32, source string) {
	srcPtr := cstring(source)
	length := int32(len(source))
	gl.shaderSource(shader, 1, &srcPtr, &length)
}

func (gl *openGL) CompileShader(shader uint32) {
	gl.compileShader(shader)
}

func (gl *openGL) GetShaderiv(shader uint32, pname uint32, params *int32) {
	gl.getShaderiv(shader, pname, params)
}

func (gl *openGL) GetShaderInfoLog(shader uint32) string {
	var length int32
	gl.getShaderiv(shader, InfoLogLength, &length)
	if length == 0 {
		return ""
	}
	log := make([]byte, length)
	gl.getShaderInfoLog(shader, length, &length, &log[0])
	return string(log[:length])
}

func (gl *openGL) DeleteShader(shader uint32) {
	gl.deleteShader(shader)
}

func (gl *openGL) CreateProgram() uint32 {
	return gl.createProgram()
}

func (gl *openGL) AttachShader(program uint32, shader uint32) {
	gl.attachShader(program, shader)
}

func (gl *openGL) LinkProgram(program uint32) {
	gl.linkProgram(program)
}

func (gl *openGL) GetProgramiv(program uint32, pname uint32, params *int32) {
	gl.getProgramiv(program, pname, params)
}

func (gl *openGL) GetProgramInfoLog(program uint32) string {
	var length int32
	gl.getProgramiv(program, InfoLogLength, &length)
	if length == 0 {
		return ""
	}
	log := make([]byte, length)
	gl.getProgramInfoLog(program, length, &length, &log[0])
	return string(log[:length])
}

func (gl *openGL) UseProgram(program uint32) {
	gl.useProgram(program)
}

func (gl *openGL) DeleteProgram(program uint32) {
	gl.deleteProgram(program)
}

func (gl *openGL) GetUniformLocation(program uint32, name string) int32 {
	return gl.getUniformLocation(program, cstring(name))
}

func (gl *openGL) Uniform1i(location int32, v0 int32) {
	gl.uniform1i(location, v0)
}

func (gl *openGL) UniformMatrix4fv(location int32, count int32, transpose bool, value *float32) {
	gl.uniformMatrix4fv(location, count, transpose, value)
}

func (gl *openGL) DrawArrays(mode uint32, first int32, count int32) {
	gl.drawArrays(mode, first, count)
}

// Load binds libGL. With core set, every buffer/VAO/shader entry point must
// resolve or ErrMissingFunction is returned; without it the fixed-function
// set is enough and unresolved newer functions are left unbound.
func Load(core bool) (OpenGL, error) {
	handle, err := purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	register := func(dst interface{}, name string) {
		purego.RegisterLibFunc(dst, handle, name)
	}

	var getProcAddress func(*byte) uintptr
	register(&getProcAddress, "glXGetProcAddressARB")

	var missing []string
	resolve := func(dst interface{}, name string) {
		addr := getProcAddress(cstring(name))
		if addr == 0 {
			missing = append(missing, name)
			return
		}
		purego.RegisterFunc(dst, addr)
	}

	gl := &openGL{}
	register(&gl.clearColor, "glClearColor")
	register(&gl.clear, "glClear")
	register(&gl.viewport, "glViewport")
	register(&gl.enable, "glEnable")
	register(&gl.disable, "glDisable")
	register(&gl.genTextures, "glGenTextures")
	register(&gl.deleteTextures, "glDeleteTextures")
	register(&gl.bindTexture, "glBindTexture")
	register(&gl.activeTexture, "glActiveTexture")
	register(&gl.texImage2D, "glTexImage2D")
	register(&gl.texParameteri, "glTexParameteri")
	register(&gl.pixelStorei, "glPixelStorei")
	register(&gl.blendFunc, "glBlendFunc")
	register(&gl.lineWidth, "glLineWidth")
	register(&gl.readPixels, "glReadPixels")
	register(&gl.getString, "glGetString")

	register(&gl.begin, "glBegin")
	register(&gl.end, "glEnd")
	register(&gl.color3f, "glColor3f")
	register(&gl.color4fv, "glColor4fv")
	register(&gl.texCoord2f, "glTexCoord2f")
	register(&gl.vertex2f, "glVertex2f")
	register(&gl.vertex3f, "glVertex3f")
	register(&gl.matrixMode, "glMatrixMode")
	register(&gl.loadIdentity, "glLoadIdentity")
	register(&gl.loadMatrixf, "glLoadMatrixf")

	// GL2/GL3 functions
	resolve(&gl.genBuffers, "glGenBuffers")
	resolve(&gl.deleteBuffers, "glDeleteBuffers")
	resolve(&gl.bindBuffer, "glBindBuffer")
	resolve(&gl.bufferData, "glBufferData")
	resolve(&gl.bufferSubData, "glBufferSubData")
	resolve(&gl.genVertexArrays, "glGenVertexArrays")
	resolve(&gl.deleteVertexArrays, "glDeleteVertexArrays")
	resolve(&gl.bindVertexArray, "glBindVertexArray")
	resolve(&gl.vertexAttribPointer, "glVertexAttribPointer")
	resolve(&gl.enableVertexAttribArray, "glEnableVertexAttribArray")
	resolve(&gl.createShader, "glCreateShader")
	resolve(&gl.shaderSource, "glShaderSource")
	resolve(&gl.compileShader, "glCompileShader")
	resolve(&gl.getShaderiv, "glGetShaderiv")
	resolve(&gl.getShaderInfoLog, "glGetShaderInfoLog")
	resolve(&gl.deleteShader, "glDeleteShader")
	resolve(&gl.createProgram, "glCreateProgram")
	resolve(&gl.attachShader, "glAttachShader")
	resolve(&gl.linkProgram, "glLinkProgram")
	resolve(&gl.getProgramiv, "glGetProgramiv")
	resolve(&gl.getProgramInfoLog, "glGetProgramInfoLog")
	resolve(&gl.useProgram, "glUseProgram")
	resolve(&gl.deleteProgram, "glDeleteProgram")
	resolve(&gl.getUniformLocation, "glGetUniformLocation")
	resolve(&gl.uniform1i, "glUniform1i")
	resolve(&gl.uniformMatrix4fv, "glUniformMatrix4fv")
	resolve(&gl.drawArrays, "glDrawArrays")

	if core && len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFunction, strings.Join(missing, ", "))
	}
	return gl, nil
}
