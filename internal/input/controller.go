// Package input turns window events into camera updates and key-bound
// actions.
package input

import (
	"log/slog"
	"sync/atomic"

	"github.com/tinyrange/glview/internal/camera"
	"github.com/tinyrange/glview/internal/window"
)

// Mode selects which camera receives drags and scrolls.
type Mode int32

const (
	Mode2D Mode = iota
	Mode3D
)

func (m Mode) String() string {
	if m == Mode3D {
		return "3D"
	}
	return "2D"
}

// Scheme describes how a viewer maps the mouse.
type Scheme struct {
	// PanButton drags the 2D camera.
	PanButton window.Button
	// RotateButton rotates the orbit camera.
	RotateButton window.Button
	// StepZoom scrolls the 2D camera in fixed 1.1/0.9 steps instead of
	// proportionally to the wheel delta.
	StepZoom bool
	// OrbitScrollKey, when set, routes the wheel to the orbit camera only
	// while it is held, and to the 2D camera otherwise, whatever the mode.
	OrbitScrollKey window.Key
}

// State reads live input state. window.Window implements it.
type State interface {
	Cursor() (x, y float32)
	KeyDown(key window.Key) bool
	ButtonDown(button window.Button) bool
}

// Controller implements window.Handler. All methods except Mode run on the
// event thread.
type Controller struct {
	Ortho *camera.Ortho2D
	Orbit *camera.Orbit
	Scheme

	// Viewport returns the framebuffer size used to scale drags.
	Viewport func() (width, height int)
	// OnClose is called for the close action.
	OnClose func()
	Logger  *slog.Logger
	// State, when set, seeds drags from the pointer position, gates orbit
	// scrolling on the live key state and ends drags whose release was
	// missed.
	State State

	bindings []Binding
	mode     atomic.Int32

	cursorX, cursorY float64
	orbitKeyHeld     bool
}

var _ window.Handler = (*Controller)(nil)

// NewController returns a controller starting in mode.
func NewController(ortho *camera.Ortho2D, orbit *camera.Orbit, scheme Scheme, mode Mode) *Controller {
	c := &Controller{Ortho: ortho, Orbit: orbit, Scheme: scheme}
	c.mode.Store(int32(mode))
	return c
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// SetBindings replaces the key bindings.
func (c *Controller) SetBindings(b []Binding) {
	c.bindings = append([]Binding(nil), b...)
}

// Mode is safe to call from the render thread.
func (c *Controller) Mode() Mode {
	return Mode(c.mode.Load())
}

// ToggleView switches between 2D and 3D when both cameras exist.
func (c *Controller) ToggleView() {
	if c.Ortho == nil || c.Orbit == nil {
		return
	}
	c.endGestures()
	next := Mode2D
	if c.Mode() == Mode2D {
		next = Mode3D
	}
	c.mode.Store(int32(next))
	c.logger().Debug("view toggled", "mode", next)
}

func (c *Controller) endGestures() {
	if c.Ortho != nil {
		c.Ortho.EndDrag()
	}
	if c.Orbit != nil {
		c.Orbit.EndRotate()
	}
}

func (c *Controller) Key(key window.Key, action window.Action, mods window.Mod) {
	if c.OrbitScrollKey != window.KeyUnknown && key == c.OrbitScrollKey {
		c.orbitKeyHeld = action == window.Press
	}
	if action != window.Press {
		return
	}
	for _, b := range c.bindings {
		if b.matches(key, mods) {
			c.run(b)
		}
	}
}

func (c *Controller) run(b Binding) {
	switch b.Action {
	case ActionClose:
		c.logger().Info("close requested", "key", b.Key)
		if c.OnClose != nil {
			c.OnClose()
		}
	case ActionToggleView:
		c.ToggleView()
	case ActionResetCamera:
		if c.Mode() == Mode3D && c.Orbit != nil {
			c.Orbit.Reset()
		} else if c.Ortho != nil {
			c.Ortho.Reset()
		}
	case ActionLog:
		msg := b.Message
		if msg == "" {
			msg = b.Key.String() + " pressed"
		}
		c.logger().Info(msg, "key", b.Key, "mods", b.Mods)
	}
}

func (c *Controller) MouseButton(button window.Button, action window.Action, mods window.Mod) {
	if action == window.Release {
		if button == c.PanButton && c.Ortho != nil {
			c.Ortho.EndDrag()
		}
		if button == c.RotateButton && c.Orbit != nil {
			c.Orbit.EndRotate()
		}
		return
	}

	if c.State != nil {
		x, y := c.State.Cursor()
		c.cursorX, c.cursorY = float64(x), float64(y)
	}

	switch c.Mode() {
	case Mode2D:
		if button == c.PanButton && c.Ortho != nil {
			c.Ortho.BeginDrag(c.cursorX, c.cursorY)
		}
	case Mode3D:
		if button == c.RotateButton && c.Orbit != nil {
			c.Orbit.BeginRotate(c.cursorX, c.cursorY)
		}
	}
}

func (c *Controller) CursorMove(x, y float64) {
	c.cursorX, c.cursorY = x, y
	if c.State != nil {
		if !c.State.ButtonDown(c.PanButton) && c.Ortho != nil {
			c.Ortho.EndDrag()
		}
		if !c.State.ButtonDown(c.RotateButton) && c.Orbit != nil {
			c.Orbit.EndRotate()
		}
	}
	if c.Ortho != nil && c.Ortho.Dragging() {
		w, h := 0, 0
		if c.Viewport != nil {
			w, h = c.Viewport()
		}
		c.Ortho.DragTo(x, y, w, h)
	}
	if c.Orbit != nil {
		c.Orbit.RotateTo(x, y)
	}
}

func (c *Controller) Scroll(dx, dy float64) {
	toOrbit := c.Mode() == Mode3D
	if c.OrbitScrollKey != window.KeyUnknown {
		toOrbit = c.orbitKeyHeld
		if c.State != nil {
			toOrbit = c.State.KeyDown(c.OrbitScrollKey)
		}
	}

	switch {
	case toOrbit && c.Orbit != nil:
		c.Orbit.Scroll(dy)
	case !toOrbit && c.Ortho != nil:
		if dy == 0 {
			return
		}
		if c.StepZoom {
			c.Ortho.StepZoom(dy)
		} else {
			c.Ortho.Scroll(dy)
		}
	}
}
