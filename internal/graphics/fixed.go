package graphics

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tinyrange/glview/internal/gl"
)

// fixedPipeline draws with glBegin/glEnd and the matrix stack.
type fixedPipeline struct {
	gl   gl.OpenGL
	opts Options

	width, height int
	// World matrices from SetMatrices, reloaded after screen-space quads.
	proj, view mgl32.Mat4
}

func newFixed(g gl.OpenGL, opts Options) *fixedPipeline {
	g.Enable(gl.Blend)
	g.BlendFunc(gl.SrcAlpha, gl.OneMinusSrcAlpha)
	if opts.LineWidth > 0 {
		g.LineWidth(opts.LineWidth)
	}
	return &fixedPipeline{gl: g, opts: opts, proj: mgl32.Ident4(), view: mgl32.Ident4()}
}

func (p *fixedPipeline) sealed() {}

func (p *fixedPipeline) Variant() Variant { return VariantFixed }
func (p *fixedPipeline) GL() gl.OpenGL    { return p.gl }

func (p *fixedPipeline) NewTexture(img image.Image, opts TextureOptions) (Texture, error) {
	return uploadTexture(p.gl, img, opts)
}

func (p *fixedPipeline) DeleteTexture(tex Texture) {
	deleteTexture(p.gl, tex)
}

func (p *fixedPipeline) Begin(width, height int, clear Color, depth bool) {
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

func (p *fixedPipeline) SetMatrices(proj, view mgl32.Mat4) {
	p.proj, p.view = proj, view
	p.loadMatrices(proj, view)
}

func (p *fixedPipeline) loadMatrices(proj, view mgl32.Mat4) {
	p.gl.MatrixMode(gl.Projection)
	p.gl.LoadMatrixf(&proj[0])
	p.gl.MatrixMode(gl.ModelView)
	p.gl.LoadMatrixf(&view[0])
}

func (p *fixedPipeline) DrawTexturedQuad(tex Texture, halfSize float32) {
	id, ok := textureID(tex)
	if !ok {
		return
	}
	s := halfSize
	p.gl.Enable(gl.Texture2D)
	p.gl.BindTexture(gl.Texture2D, id)
	p.gl.Color3f(1, 1, 1)
	p.gl.Begin(gl.Quads)
	// Image rows run top down, so t is flipped against world y.
	p.gl.TexCoord2f(0, 1)
	p.gl.Vertex2f(-s, -s)
	p.gl.TexCoord2f(1, 1)
	p.gl.Vertex2f(s, -s)
	p.gl.TexCoord2f(1, 0)
	p.gl.Vertex2f(s, s)
	p.gl.TexCoord2f(0, 0)
	p.gl.Vertex2f(-s, s)
	p.gl.End()
	p.gl.BindTexture(gl.Texture2D, 0)
	p.gl.Disable(gl.Texture2D)
}

func (p *fixedPipeline) DrawColoredQuad(corners [4]mgl32.Vec2, colors [4]Color) {
	p.gl.Begin(gl.Quads)
	for i, c := range corners {
		p.gl.Color3f(colors[i][0], colors[i][1], colors[i][2])
		p.gl.Vertex2f(c.X(), c.Y())
	}
	p.gl.End()
}

func (p *fixedPipeline) DrawLines(vertices []mgl32.Vec3, colors []Color) {
	if len(vertices) < 2 {
		return
	}
	p.gl.Begin(gl.Lines)
	for i, v := range vertices {
		c := colorAt(colors, i)
		p.gl.Color3f(c[0], c[1], c[2])
		p.gl.Vertex3f(v.X(), v.Y(), v.Z())
	}
	p.gl.End()
}

func (p *fixedPipeline) RenderQuad(x, y, width, height float32, tex Texture, tint Color) {
	id, ok := textureID(tex)
	if !ok {
		return
	}

	p.gl.Disable(gl.DepthTest)
	p.loadMatrices(screenProjection(p.width, p.height), mgl32.Ident4())

	p.gl.Enable(gl.Texture2D)
	p.gl.BindTexture(gl.Texture2D, id)
	p.gl.Begin(gl.TriangleStrip)
	p.gl.Color4fv(&tint[0])
	p.gl.TexCoord2f(0, 0)
	p.gl.Vertex2f(x, y)
	p.gl.TexCoord2f(1, 0)
	p.gl.Vertex2f(x+width, y)
	p.gl.TexCoord2f(0, 1)
	p.gl.Vertex2f(x, y+height)
	p.gl.TexCoord2f(1, 1)
	p.gl.Vertex2f(x+width, y+height)
	p.gl.End()
	p.gl.BindTexture(gl.Texture2D, 0)
	p.gl.Disable(gl.Texture2D)
	p.loadMatrices(p.proj, p.view)
}

func (p *fixedPipeline) Screenshot() (image.Image, error) {
	return readPixels(p.gl, p.width, p.height)
}

func (p *fixedPipeline) Release() {}
