package graphics

import (
	"image"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tinyrange/glview/internal/gl"
)

const quadVertexShader = `#version 330 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aTex;
layout(location = 2) in vec4 aColor;

uniform mat4 uMVP;

out vec2 vTex;
out vec4 vColor;

void main() {
    vTex = aTex;
    vColor = aColor;
    gl_Position = uMVP * vec4(aPos, 0.0, 1.0);
}
`

const quadFragmentShader = `#version 330 core
in vec2 vTex;
in vec4 vColor;

uniform sampler2D tex;

out vec4 FragColor;

void main() {
    FragColor = texture(tex, vTex) * vColor;
}
`

const lineVertexShader = `#version 330 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec4 aColor;

uniform mat4 uMVP;

out vec4 vColor;

void main() {
    vColor = aColor;
    gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `#version 330 core
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
`

// Vertex layouts: quads are pos2 tex2 rgba4, lines are pos3 rgba4.
var (
	quadLayout = []int32{2, 2, 4}
	lineLayout = []int32{3, 4}
)

const (
	quadFloats = 8
	lineFloats = 7
)

// The unit image quad as a triangle strip, t flipped so images are upright.
var imageQuad = []float32{
	-1, -1, 0, 1, 1, 1, 1, 1,
	1, -1, 1, 1, 1, 1, 1, 1,
	-1, 1, 0, 0, 1, 1, 1, 1,
	1, 1, 1, 0, 1, 1, 1, 1,
}

type vertexArray struct {
	vao, vbo uint32
	capacity int // bytes
}

// shaderPipeline draws with two programs: a textured quad program and a
// coloured line program.
type shaderPipeline struct {
	gl   gl.OpenGL
	opts Options

	quadProgram uint32
	quadMVP     int32
	lineProgram uint32
	lineMVP     int32

	image  vertexArray
	screen vertexArray
	lines  vertexArray

	proj, view    mgl32.Mat4
	width, height int
	scratch       []float32
}

func newShader(g gl.OpenGL, opts Options) *shaderPipeline {
	logger := opts.logger()
	p := &shaderPipeline{
		gl:   g,
		opts: opts,
		proj: mgl32.Ident4(),
		view: mgl32.Ident4(),
	}

	p.quadProgram = gl.CompileProgram(g, logger, quadVertexShader, quadFragmentShader)
	p.quadMVP = g.GetUniformLocation(p.quadProgram, "uMVP")
	g.UseProgram(p.quadProgram)
	if loc := g.GetUniformLocation(p.quadProgram, "tex"); loc >= 0 {
		g.Uniform1i(loc, 0)
	}
	g.UseProgram(0)

	p.lineProgram = gl.CompileProgram(g, logger, lineVertexShader, lineFragmentShader)
	p.lineMVP = g.GetUniformLocation(p.lineProgram, "uMVP")

	p.image = p.newVertexArray(quadLayout, imageQuad, gl.StaticDraw)
	p.screen = p.newVertexArray(quadLayout, make([]float32, 4*quadFloats), gl.DynamicDraw)
	p.lines = p.newVertexArray(lineLayout, nil, gl.DynamicDraw)

	g.Enable(gl.Blend)
	g.BlendFunc(gl.SrcAlpha, gl.OneMinusSrcAlpha)
	if opts.LineWidth > 0 {
		g.LineWidth(opts.LineWidth)
	}
	return p
}

func (p *shaderPipeline) newVertexArray(layout []int32, data []float32, usage uint32) vertexArray {
	var va vertexArray
	p.gl.GenVertexArrays(1, &va.vao)
	p.gl.GenBuffers(1, &va.vbo)
	p.gl.BindVertexArray(va.vao)
	p.gl.BindBuffer(gl.ArrayBuffer, va.vbo)
	if len(data) > 0 {
		va.capacity = len(data) * 4
		p.gl.BufferData(gl.ArrayBuffer, va.capacity, unsafe.Pointer(&data[0]), usage)
	}

	var stride int32
	for _, n := range layout {
		stride += n * 4
	}
	var offset uintptr
	for i, n := range layout {
		p.gl.VertexAttribPointer(uint32(i), n, gl.Float, false, stride, offset)
		p.gl.EnableVertexAttribArray(uint32(i))
		offset += uintptr(n) * 4
	}

	p.gl.BindBuffer(gl.ArrayBuffer, 0)
	p.gl.BindVertexArray(0)
	return va
}

// upload replaces the contents of a dynamic buffer, growing it when needed.
func (p *shaderPipeline) upload(va *vertexArray, data []float32) {
	size := len(data) * 4
	p.gl.BindBuffer(gl.ArrayBuffer, va.vbo)
	if size > va.capacity {
		p.gl.BufferData(gl.ArrayBuffer, size, unsafe.Pointer(&data[0]), gl.DynamicDraw)
		va.capacity = size
	} else {
		p.gl.BufferSubData(gl.ArrayBuffer, 0, size, unsafe.Pointer(&data[0]))
	}
	p.gl.BindBuffer(gl.ArrayBuffer, 0)
}

func (p *shaderPipeline) sealed() {}

func (p *shaderPipeline) Variant() Variant { return VariantShader }
func (p *shaderPipeline) GL() gl.OpenGL    { return p.gl }

func (p *shaderPipeline) NewTexture(img image.Image, opts TextureOptions) (Texture, error) {
	return uploadTexture(p.gl, img, opts)
}

func (p *shaderPipeline) DeleteTexture(tex Texture) {
	deleteTexture(p.gl, tex)
}

func (p *shaderPipeline) Begin(width, height int, clear Color, depth bool) {
	p.width, p.height = width, height
	p.gl.Viewport(0, 0, int32(width), int32(height))
	p.gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	if depth {
		p.gl.Enable(gl.DepthTest)
		p.gl.Clear(gl.ColorBufferBit | gl.DepthBufferBit)
	} else {
		p.gl.Disable(gl.DepthTest)
		p.gl.Clear(gl.ColorBufferBit)
	}
}

func (p *shaderPipeline) SetMatrices(proj, view mgl32.Mat4) {
	p.proj, p.view = proj, view
}

func (p *shaderPipeline) drawQuads(va vertexArray, mvp mgl32.Mat4, id uint32) {
	p.gl.UseProgram(p.quadProgram)
	p.gl.UniformMatrix4fv(p.quadMVP, 1, false, &mvp[0])
	p.gl.ActiveTexture(gl.Texture0)
	p.gl.BindTexture(gl.Texture2D, id)
	p.gl.BindVertexArray(va.vao)
	p.gl.DrawArrays(gl.TriangleStrip, 0, 4)
	p.gl.BindVertexArray(0)
	p.gl.BindTexture(gl.Texture2D, 0)
	p.gl.UseProgram(0)
}

func (p *shaderPipeline) DrawTexturedQuad(tex Texture, halfSize float32) {
	id, ok := textureID(tex)
	if !ok {
		return
	}
	mvp := p.proj.Mul4(p.view).Mul4(mgl32.Scale3D(halfSize, halfSize, 1))
	p.drawQuads(p.image, mvp, id)
}

func (p *shaderPipeline) RenderQuad(x, y, width, height float32, tex Texture, tint Color) {
	id, ok := textureID(tex)
	if !ok {
		return
	}
	r, g, b, a := tint[0], tint[1], tint[2], tint[3]
	verts := append(p.scratch[:0],
		x, y, 0, 0, r, g, b, a,
		x+width, y, 1, 0, r, g, b, a,
		x, y+height, 0, 1, r, g, b, a,
		x+width, y+height, 1, 1, r, g, b, a,
	)
	p.scratch = verts
	p.upload(&p.screen, verts)

	p.gl.Disable(gl.DepthTest)
	p.drawQuads(p.screen, screenProjection(p.width, p.height), id)
}

func (p *shaderPipeline) drawColored(mode uint32, verts []float32) {
	p.upload(&p.lines, verts)
	mvp := p.proj.Mul4(p.view)
	p.gl.UseProgram(p.lineProgram)
	p.gl.UniformMatrix4fv(p.lineMVP, 1, false, &mvp[0])
	p.gl.BindVertexArray(p.lines.vao)
	p.gl.DrawArrays(mode, 0, int32(len(verts)/lineFloats))
	p.gl.BindVertexArray(0)
	p.gl.UseProgram(0)
}

func (p *shaderPipeline) DrawColoredQuad(corners [4]mgl32.Vec2, colors [4]Color) {
	verts := p.scratch[:0]
	// Quad order to strip order.
	for _, i := range [4]int{0, 1, 3, 2} {
		c := colors[i]
		verts = append(verts, corners[i].X(), corners[i].Y(), 0, c[0], c[1], c[2], c[3])
	}
	p.scratch = verts
	p.drawColored(gl.TriangleStrip, verts)
}

func (p *shaderPipeline) DrawLines(vertices []mgl32.Vec3, colors []Color) {
	if len(vertices) < 2 {
		return
	}
	verts := p.scratch[:0]
	for i, v := range vertices {
		c := colorAt(colors, i)
		verts = append(verts, v.X(), v.Y(), v.Z(), c[0], c[1], c[2], c[3])
	}
	p.scratch = verts
	p.drawColored(gl.Lines, verts)
}

func (p *shaderPipeline) Screenshot() (image.Image, error) {
	return readPixels(p.gl, p.width, p.height)
}

func (p *shaderPipeline) Release() {
	for _, va := range []*vertexArray{&p.image, &p.screen, &p.lines} {
		if va.vao != 0 {
			p.gl.DeleteVertexArrays(1, &va.vao)
			p.gl.DeleteBuffers(1, &va.vbo)
			va.vao, va.vbo = 0, 0
		}
	}
	if p.quadProgram != 0 {
		p.gl.DeleteProgram(p.quadProgram)
		p.quadProgram = 0
	}
	if p.lineProgram != 0 {
		p.gl.DeleteProgram(p.lineProgram)
		p.lineProgram = 0
	}
}
