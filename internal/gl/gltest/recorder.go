// Package gltest provides a recording gl.OpenGL for tests that exercise
// rendering code without a context.
package gltest

import (
	"sync"
	"unsafe"

	"github.com/tinyrange/glview/internal/gl"
)

// Call is one recorded entry point invocation.
type Call struct {
	Name string
	Args []any
}

// Recorder implements gl.OpenGL by appending every call to Calls. Object
// names are handed out from a single counter starting at 1.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	next  uint32

	// FailCompile makes GetShaderiv report a failed compile.
	FailCompile bool
	// FailLink makes GetProgramiv report a failed link.
	FailLink bool
	// InfoLog is returned by the info log getters.
	InfoLog string

	// BoundTexture tracks the last texture bound to Texture2D.
	BoundTexture uint32
	// Deleted collects deleted texture names.
	Deleted []uint32
}

var _ gl.OpenGL = (*Recorder)(nil)

func (r *Recorder) record(name string, args ...any) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Name: name, Args: args})
	r.mu.Unlock()
}

func (r *Recorder) gen(n int32, out *uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := unsafe.Slice(out, n)
	for i := range ids {
		r.next++
		ids[i] = r.next
	}
}

func (r *Recorder) id() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	return r.next
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Names returns the recorded entry point names in order.
func (r *Recorder) Names() []string {
	calls := r.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times name was called.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Last returns the most recent call to name.
func (r *Recorder) Last(name string) (Call, bool) {
	calls := r.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Name == name {
			return calls[i], true
		}
	}
	return Call{}, false
}

// Reset drops the recorded calls but keeps object state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *Recorder) ClearColor(cr, cg, cb, ca float32) { r.record("ClearColor", cr, cg, cb, ca) }
func (r *Recorder) Clear(mask uint32)                 { r.record("Clear", mask) }
func (r *Recorder) Viewport(x, y, w, h int32)         { r.record("Viewport", x, y, w, h) }
func (r *Recorder) Enable(c uint32)                   { r.record("Enable", c) }
func (r *Recorder) Disable(c uint32)                  { r.record("Disable", c) }

func (r *Recorder) GenTextures(n int32, textures *uint32) {
	r.gen(n, textures)
	r.record("GenTextures", n)
}

func (r *Recorder) DeleteTextures(n int32, textures *uint32) {
	ids := unsafe.Slice(textures, n)
	r.mu.Lock()
	r.Deleted = append(r.Deleted, ids...)
	r.mu.Unlock()
	r.record("DeleteTextures", n)
}

func (r *Recorder) BindTexture(target, texture uint32) {
	r.mu.Lock()
	if target == gl.Texture2D {
		r.BoundTexture = texture
	}
	r.mu.Unlock()
	r.record("BindTexture", target, texture)
}

func (r *Recorder) ActiveTexture(texture uint32) { r.record("ActiveTexture", texture) }

func (r *Recorder) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	r.record("TexImage2D", target, internalformat, width, height, format)
}

func (r *Recorder) TexParameteri(target, pname uint32, param int32) {
	r.record("TexParameteri", pname, param)
}

func (r *Recorder) PixelStorei(pname uint32, param int32) { r.record("PixelStorei", pname, param) }
func (r *Recorder) BlendFunc(s, d uint32)                 { r.record("BlendFunc", s, d) }
func (r *Recorder) LineWidth(width float32)               { r.record("LineWidth", width) }

// ReadPixels fills an RGBA buffer with red = row and green = column, rows
// counted from the bottom as GL does.
func (r *Recorder) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	r.record("ReadPixels", width, height)
	if pixels == nil || format != gl.RGBA {
		return
	}
	buf := unsafe.Slice((*byte)(pixels), int(width)*int(height)*4)
	for row := 0; row < int(height); row++ {
		for col := 0; col < int(width); col++ {
			i := (row*int(width) + col) * 4
			buf[i], buf[i+1], buf[i+2], buf[i+3] = byte(row), byte(col), 0, 255
		}
	}
}

func (r *Recorder) GetString(name uint32) string {
	r.record("GetString", name)
	return "gltest"
}

func (r *Recorder) Begin(mode uint32)           { r.record("Begin", mode) }
func (r *Recorder) End()                        { r.record("End") }
func (r *Recorder) Color3f(cr, cg, cb float32)  { r.record("Color3f", cr, cg, cb) }
func (r *Recorder) Color4fv(v *float32)         { r.record("Color4fv", *(*[4]float32)(unsafe.Pointer(v))) }
func (r *Recorder) TexCoord2f(s, t float32)     { r.record("TexCoord2f", s, t) }
func (r *Recorder) Vertex2f(x, y float32)       { r.record("Vertex2f", x, y) }
func (r *Recorder) Vertex3f(x, y, z float32)    { r.record("Vertex3f", x, y, z) }
func (r *Recorder) MatrixMode(mode uint32)      { r.record("MatrixMode", mode) }
func (r *Recorder) LoadIdentity()               { r.record("LoadIdentity") }
func (r *Recorder) LoadMatrixf(m *float32)      { r.record("LoadMatrixf", *(*[16]float32)(unsafe.Pointer(m))) }
func (r *Recorder) BindBuffer(target, b uint32) { r.record("BindBuffer", target, b) }

func (r *Recorder) GenBuffers(n int32, buffers *uint32) {
	r.gen(n, buffers)
	r.record("GenBuffers", n)
}

func (r *Recorder) DeleteBuffers(n int32, buffers *uint32) { r.record("DeleteBuffers", n) }

func (r *Recorder) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	r.record("BufferData", target, size, usage)
}

func (r *Recorder) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	r.record("BufferSubData", target, offset, size)
}

func (r *Recorder) GenVertexArrays(n int32, arrays *uint32) {
	r.gen(n, arrays)
	r.record("GenVertexArrays", n)
}

func (r *Recorder) DeleteVertexArrays(n int32, arrays *uint32) { r.record("DeleteVertexArrays", n) }
func (r *Recorder) BindVertexArray(array uint32)               { r.record("BindVertexArray", array) }

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	r.record("VertexAttribPointer", index, size, stride, offset)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) { r.record("EnableVertexAttribArray", index) }

func (r *Recorder) CreateShader(xtype uint32) uint32 {
	id := r.id()
	r.record("CreateShader", xtype)
	return id
}

func (r *Recorder) ShaderSource(shader uint32, source string) { r.record("ShaderSource", shader) }
func (r *Recorder) CompileShader(shader uint32)               { r.record("CompileShader", shader) }

func (r *Recorder) GetShaderiv(shader, pname uint32, params *int32) {
	r.record("GetShaderiv", shader, pname)
	*params = r.status(pname, r.FailCompile)
}

func (r *Recorder) GetShaderInfoLog(shader uint32) string { return r.InfoLog }
func (r *Recorder) DeleteShader(shader uint32)            { r.record("DeleteShader", shader) }

func (r *Recorder) CreateProgram() uint32 {
	id := r.id()
	r.record("CreateProgram")
	return id
}

func (r *Recorder) AttachShader(program, shader uint32) { r.record("AttachShader", program, shader) }
func (r *Recorder) LinkProgram(program uint32)          { r.record("LinkProgram", program) }

func (r *Recorder) GetProgramiv(program, pname uint32, params *int32) {
	r.record("GetProgramiv", program, pname)
	*params = r.status(pname, r.FailLink)
}

func (r *Recorder) GetProgramInfoLog(program uint32) string { return r.InfoLog }
func (r *Recorder) UseProgram(program uint32)               { r.record("UseProgram", program) }
func (r *Recorder) DeleteProgram(program uint32)            { r.record("DeleteProgram", program) }

func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	r.record("GetUniformLocation", program, name)
	return int32(len(name))
}

func (r *Recorder) Uniform1i(location, v0 int32) { r.record("Uniform1i", location, v0) }

func (r *Recorder) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	r.record("UniformMatrix4fv", location, *(*[16]float32)(unsafe.Pointer(value)))
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.mu.Lock()
	bound := r.BoundTexture
	r.mu.Unlock()
	r.record("DrawArrays", mode, first, count, bound)
}

func (r *Recorder) status(pname uint32, fail bool) int32 {
	switch pname {
	case gl.CompileStatus, gl.LinkStatus:
		if fail {
			return 0
		}
		return 1
	case gl.InfoLogLength:
		return int32(len(r.InfoLog))
	}
	return 0
}
