package gl

import (
	"log/slog"
	"strings"
)

// CompileProgram compiles and links a vertex/fragment shader pair.
//
// Compile and link failures are logged with the driver's info log; the
// program object is returned either way and the caller keeps running with it.
// The shader objects are deleted once the program is linked.
func CompileProgram(gl OpenGL, logger *slog.Logger, vertexSrc, fragmentSrc string) uint32 {
	if logger == nil {
		logger = slog.Default()
	}

	vs := compileShader(gl, logger, VertexShader, vertexSrc)
	fs := compileShader(gl, logger, FragmentShader, fragmentSrc)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var ok int32
	gl.GetProgramiv(program, LinkStatus, &ok)
	if ok == 0 {
		logger.Error("program link failed", "program", program, "log", strings.TrimSpace(gl.GetProgramInfoLog(program)))
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program
}

func compileShader(gl OpenGL, logger *slog.Logger, kind uint32, src string) uint32 {
	s := gl.CreateShader(kind)
	gl.ShaderSource(s, src)
	gl.CompileShader(s)

	var ok int32
	gl.GetShaderiv(s, CompileStatus, &ok)
	if ok == 0 {
		logger.Error("shader compile failed", "kind", shaderKind(kind), "log", strings.TrimSpace(gl.GetShaderInfoLog(s)))
	}
	return s
}

func shaderKind(kind uint32) string {
	switch kind {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return "unknown"
}
