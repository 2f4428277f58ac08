// Package camera holds the 2D pan/zoom and 3D orbit cameras driven by mouse
// input. Each camera has a single writer (the event thread) and hands value
// snapshots to the render thread.
package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Limits bounds and scales the 2D camera.
type Limits struct {
	ZoomMin     float32
	ZoomMax     float32
	ScrollSpeed float32
	MoveSpeed   float32
}

// DefaultLimits are the image viewer's bounds.
func DefaultLimits() Limits {
	return Limits{ZoomMin: 0.2, ZoomMax: 10, ScrollSpeed: 0.15, MoveSpeed: 2}
}

// View2D is an immutable copy of the 2D camera.
type View2D struct {
	Zoom float32
	Pan  mgl32.Vec2
}

// Projection returns the orthographic projection for a w x h viewport. The
// visible region is [-aspect, aspect] x [-1, 1] scaled by 1/Zoom and offset
// by Pan.
func (v View2D) Projection(w, h int) mgl32.Mat4 {
	aspect := float32(1)
	if h > 0 && w > 0 {
		aspect = float32(w) / float32(h)
	}
	sx, sy := aspect/v.Zoom, 1/v.Zoom
	return mgl32.Ortho(v.Pan.X()-sx, v.Pan.X()+sx, v.Pan.Y()-sy, v.Pan.Y()+sy, -1, 1)
}

// Ortho2D is an orthographic camera with scroll zoom and drag panning.
type Ortho2D struct {
	mu     sync.Mutex
	limits Limits
	home   View2D
	zoom   float32
	pan    mgl32.Vec2

	dragging     bool
	lastX, lastY float64
}

// NewOrtho2D returns a camera at zoom 1 (clamped into limits) and no pan.
func NewOrtho2D(limits Limits) *Ortho2D {
	return NewOrtho2DAt(View2D{Zoom: 1}, limits)
}

// NewOrtho2DAt returns a camera whose home view, restored by Reset, is home.
func NewOrtho2DAt(home View2D, limits Limits) *Ortho2D {
	c := &Ortho2D{limits: limits, home: home}
	c.zoom = c.clamp(home.Zoom)
	c.pan = home.Pan
	return c
}

func (c *Ortho2D) clamp(zoom float32) float32 {
	return mgl32.Clamp(zoom, c.limits.ZoomMin, c.limits.ZoomMax)
}

// SetLimits replaces the limits and re-clamps the current zoom.
func (c *Ortho2D) SetLimits(limits Limits) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limits = limits
	c.zoom = c.clamp(c.zoom)
}

// Limits returns the current limits.
func (c *Ortho2D) Limits() Limits {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limits
}

// Scroll applies zoom *= 1 + ScrollSpeed*dy and clamps the result.
func (c *Ortho2D) Scroll(dy float64) {
	if math.IsNaN(dy) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = c.clamp(c.zoom * (1 + c.limits.ScrollSpeed*float32(dy)))
}

// StepZoom multiplies zoom by 1.1 for dy > 0 and by 0.9 otherwise.
func (c *Ortho2D) StepZoom(dy float64) {
	factor := float32(0.9)
	if dy > 0 {
		factor = 1.1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = c.clamp(c.zoom * factor)
}

// BeginDrag starts panning from the cursor position (x, y).
func (c *Ortho2D) BeginDrag(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// EndDrag stops panning.
func (c *Ortho2D) EndDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = false
}

// Dragging reports whether a drag is in progress.
func (c *Ortho2D) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

// DragTo pans by the cursor movement since the last position. Screen y grows
// downwards, GL y upwards, hence the opposite signs.
func (c *Ortho2D) DragTo(x, y float64, w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	if w <= 0 || h <= 0 {
		return
	}
	zoom, speed := float64(c.zoom), float64(c.limits.MoveSpeed)
	c.pan[0] -= float32(dx / float64(w) / zoom * speed)
	c.pan[1] += float32(dy / float64(h) / zoom * speed)
}

// Reset restores the home view.
func (c *Ortho2D) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = c.clamp(c.home.Zoom)
	c.pan = c.home.Pan
	c.dragging = false
}

// Snapshot returns the current zoom and pan.
func (c *Ortho2D) Snapshot() View2D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View2D{Zoom: c.zoom, Pan: c.pan}
}

// Projection is shorthand for Snapshot().Projection(w, h).
func (c *Ortho2D) Projection(w, h int) mgl32.Mat4 {
	return c.Snapshot().Projection(w, h)
}
