package input_test

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/tinyrange/glview/internal/camera"
	"github.com/tinyrange/glview/internal/config"
	"github.com/tinyrange/glview/internal/input"
	"github.com/tinyrange/glview/internal/window"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func viewer(mode input.Mode, scheme input.Scheme) *input.Controller {
	c := input.NewController(
		camera.NewOrtho2D(camera.DefaultLimits()),
		camera.NewOrbit(camera.OrbitView{Distance: 3, Yaw: 0.7, Pitch: 0.4}, camera.DefaultOrbitLimits()),
		scheme, mode,
	)
	c.Viewport = func() (int, int) { return 960, 600 }
	return c
}

func TestParseBindings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	got := input.ParseBindings([]config.Binding{
		{Key: "escape", Action: "close"},
		{Key: "d", Mods: []string{"ctrl", "alt"}, Action: "log", Message: "hi"},
		{Key: "f13", Action: "close"},
		{Key: "s", Mods: []string{"super"}, Action: "log"},
		{Key: "space", Action: "jump"},
		{Key: "SPACE", Action: " Toggle_View "},
	}, logger)

	want := []input.Binding{
		{Key: window.KeyEscape, Action: input.ActionClose},
		{Key: window.KeyD, Mods: window.ModControl | window.ModAlt, Action: input.ActionLog, Message: "hi"},
		{Key: window.KeySpace, Action: input.ActionToggleView},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d bindings, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("binding %d: got %+v, want %+v", i, got[i], want[i])
		}
	}

	out := buf.String()
	for _, s := range []string{"unknown key", "unknown modifier", "unknown action"} {
		if !strings.Contains(out, s) {
			t.Fatalf("log %q missing %q", out, s)
		}
	}
}

func TestKeyBindings(t *testing.T) {
	var buf bytes.Buffer
	c := viewer(input.Mode2D, input.Scheme{})
	c.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	closed := 0
	c.OnClose = func() { closed++ }
	c.SetBindings(input.ParseBindings(config.Default().Keys, c.Logger))

	cases := []struct {
		name    string
		key     window.Key
		action  window.Action
		mods    window.Mod
		closes  int
		logged  string
		silence bool
	}{
		{name: "escape", key: window.KeyEscape, action: window.Press, closes: 1},
		{name: "escape_release", key: window.KeyEscape, action: window.Release, silence: true},
		{name: "ctrl_s", key: window.KeyS, action: window.Press, mods: window.ModControl, logged: "Ctrl + S pressed"},
		{name: "ctrl_shift_s", key: window.KeyS, action: window.Press, mods: window.ModControl | window.ModShift, logged: "Ctrl + S pressed"},
		{name: "plain_s", key: window.KeyS, action: window.Press, silence: true},
		{name: "shift_a", key: window.KeyA, action: window.Press, mods: window.ModShift, logged: "Shift + A pressed"},
		{name: "ctrl_d", key: window.KeyD, action: window.Press, mods: window.ModControl, silence: true},
		{name: "ctrl_alt_d", key: window.KeyD, action: window.Press, mods: window.ModControl | window.ModAlt, logged: "Ctrl + Alt + D pressed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			closed = 0
			c.Key(tc.key, tc.action, tc.mods)
			if closed != tc.closes {
				t.Fatalf("close called %d times, want %d", closed, tc.closes)
			}
			out := buf.String()
			if tc.silence && out != "" {
				t.Fatalf("unexpected log: %s", out)
			}
			if tc.logged != "" && !strings.Contains(out, tc.logged) {
				t.Fatalf("log %q missing %q", out, tc.logged)
			}
		})
	}
}

func TestToggleViewOnPressOnly(t *testing.T) {
	c := viewer(input.Mode2D, input.Scheme{})
	c.SetBindings([]input.Binding{{Key: window.KeySpace, Action: input.ActionToggleView}})

	steps := []struct {
		action window.Action
		want   input.Mode
	}{
		{window.Press, input.Mode3D},
		{window.Release, input.Mode3D},
		{window.Press, input.Mode2D},
		{window.Release, input.Mode2D},
	}
	for i, s := range steps {
		c.Key(window.KeySpace, s.action, 0)
		if got := c.Mode(); got != s.want {
			t.Fatalf("step %d: mode %v, want %v", i, got, s.want)
		}
	}
}

func TestToggleViewNeedsBothCameras(t *testing.T) {
	c := input.NewController(nil, camera.NewOrbit(camera.OrbitView{Distance: 3}, camera.DefaultOrbitLimits()), input.Scheme{}, input.Mode3D)
	c.ToggleView()
	if c.Mode() != input.Mode3D {
		t.Fatalf("mode changed without a 2D camera")
	}
}

func TestResetCameraFollowsMode(t *testing.T) {
	c := viewer(input.Mode2D, input.Scheme{})
	c.SetBindings([]input.Binding{
		{Key: window.KeyR, Action: input.ActionResetCamera},
		{Key: window.KeySpace, Action: input.ActionToggleView},
	})

	c.Scroll(0, 2)
	c.Key(window.KeySpace, window.Press, 0)
	c.Scroll(0, 1)
	c.Key(window.KeyR, window.Press, 0)

	if d := c.Orbit.Snapshot().Distance; !near(d, 3) {
		t.Fatalf("orbit not reset: distance %v", d)
	}
	if z := c.Ortho.Snapshot().Zoom; !near(z, 1.3) {
		t.Fatalf("2D camera reset from 3D mode: zoom %v", z)
	}
}

func TestDragPans2D(t *testing.T) {
	c := viewer(input.Mode2D, input.Scheme{PanButton: window.ButtonLeft, RotateButton: window.ButtonRight})

	c.CursorMove(100, 100)
	c.MouseButton(window.ButtonLeft, window.Press, 0)
	c.CursorMove(120, 110)
	c.MouseButton(window.ButtonLeft, window.Release, 0)
	c.CursorMove(500, 500)

	pan := c.Ortho.Snapshot().Pan
	if !near(pan.X(), -20.0/960*2) || !near(pan.Y(), 10.0/600*2) {
		t.Fatalf("pan = %v", pan)
	}
	if v := c.Orbit.Snapshot(); !near(v.Yaw, 0.7) || !near(v.Pitch, 0.4) {
		t.Fatalf("orbit moved in 2D mode: %+v", v)
	}
}

func TestDragRotatesIn3D(t *testing.T) {
	c := viewer(input.Mode3D, input.Scheme{PanButton: window.ButtonLeft, RotateButton: window.ButtonLeft})

	c.CursorMove(0, 0)
	c.MouseButton(window.ButtonLeft, window.Press, 0)
	c.CursorMove(10, 20)
	c.MouseButton(window.ButtonLeft, window.Release, 0)

	v := c.Orbit.Snapshot()
	if !near(v.Yaw, 0.7+10*0.005) || !near(v.Pitch, 0.4+20*0.005) {
		t.Fatalf("orbit = %+v", v)
	}
	if c.Ortho.Dragging() {
		t.Fatalf("2D drag started in 3D mode")
	}
	if pan := c.Ortho.Snapshot().Pan; pan.X() != 0 || pan.Y() != 0 {
		t.Fatalf("pan moved in 3D mode: %v", pan)
	}
}

func TestToggleEndsGestures(t *testing.T) {
	c := viewer(input.Mode2D, input.Scheme{PanButton: window.ButtonLeft, RotateButton: window.ButtonLeft})
	c.MouseButton(window.ButtonLeft, window.Press, 0)
	c.ToggleView()
	if c.Ortho.Dragging() {
		t.Fatalf("drag survived a view toggle")
	}
}

func TestScrollRouting(t *testing.T) {
	cases := []struct {
		name     string
		mode     input.Mode
		scheme   input.Scheme
		holdKey  bool
		dy       float64
		zoom     float32
		distance float32
	}{
		{name: "2d", mode: input.Mode2D, dy: 1, zoom: 1.15, distance: 3},
		{name: "2d_zero", mode: input.Mode2D, dy: 0, zoom: 1, distance: 3},
		{name: "3d", mode: input.Mode3D, dy: 1, zoom: 1, distance: 2.7},
		{name: "step", mode: input.Mode2D, scheme: input.Scheme{StepZoom: true}, dy: 0.25, zoom: 1.1, distance: 3},
		{name: "step_down", mode: input.Mode2D, scheme: input.Scheme{StepZoom: true}, dy: -3, zoom: 0.9, distance: 3},
		{name: "gated_released", mode: input.Mode3D, scheme: input.Scheme{OrbitScrollKey: window.KeyTab}, dy: 1, zoom: 1.15, distance: 3},
		{name: "gated_held", mode: input.Mode2D, scheme: input.Scheme{OrbitScrollKey: window.KeyTab}, holdKey: true, dy: -1, zoom: 1, distance: 3.3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := viewer(tc.mode, tc.scheme)
			if tc.holdKey {
				c.Key(window.KeyTab, window.Press, 0)
			}
			c.Scroll(0, tc.dy)
			if z := c.Ortho.Snapshot().Zoom; !near(z, tc.zoom) {
				t.Fatalf("zoom = %v, want %v", z, tc.zoom)
			}
			if d := c.Orbit.Snapshot().Distance; !near(d, tc.distance) {
				t.Fatalf("distance = %v, want %v", d, tc.distance)
			}
		})
	}
}

func TestOrbitScrollKeyRelease(t *testing.T) {
	c := viewer(input.Mode3D, input.Scheme{OrbitScrollKey: window.KeyTab})
	c.Key(window.KeyTab, window.Press, 0)
	c.Scroll(0, 1)
	c.Key(window.KeyTab, window.Release, 0)
	c.Scroll(0, 1)

	if d := c.Orbit.Snapshot().Distance; !near(d, 2.7) {
		t.Fatalf("distance = %v, want 2.7", d)
	}
	if z := c.Ortho.Snapshot().Zoom; !near(z, 1.15) {
		t.Fatalf("zoom = %v, want 1.15", z)
	}
}

type fakeState struct {
	x, y    float32
	keys    map[window.Key]bool
	buttons map[window.Button]bool
}

func (s *fakeState) Cursor() (float32, float32)      { return s.x, s.y }
func (s *fakeState) KeyDown(k window.Key) bool       { return s.keys[k] }
func (s *fakeState) ButtonDown(b window.Button) bool { return s.buttons[b] }

func TestLiveState(t *testing.T) {
	state := &fakeState{
		x: 100, y: 100,
		keys:    map[window.Key]bool{},
		buttons: map[window.Button]bool{},
	}
	c := viewer(input.Mode2D, input.Scheme{PanButton: window.ButtonLeft, OrbitScrollKey: window.KeyTab})
	c.State = state

	// The press starts from the live pointer, not the last motion event.
	state.buttons[window.ButtonLeft] = true
	c.MouseButton(window.ButtonLeft, window.Press, 0)
	c.CursorMove(120, 110)
	pan := c.Ortho.Snapshot().Pan
	if !near(pan.X(), -20.0/960*2) || !near(pan.Y(), 10.0/600*2) {
		t.Fatalf("pan = %v", pan)
	}

	// A release that never arrived ends the drag on the next motion.
	state.buttons[window.ButtonLeft] = false
	c.CursorMove(300, 300)
	if c.Ortho.Dragging() {
		t.Fatalf("drag survived a missed release")
	}

	state.keys[window.KeyTab] = true
	c.Scroll(0, 1)
	if d := c.Orbit.Snapshot().Distance; !near(d, 2.7) {
		t.Fatalf("distance = %v, want 2.7", d)
	}
}
