package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestOrbit() *Orbit {
	return NewOrbit(OrbitView{Distance: 3, Yaw: 0.7, Pitch: 0.4}, DefaultOrbitLimits())
}

func TestOrbitZoomIn(t *testing.T) {
	o := newTestOrbit()
	for i := 0; i < 3; i++ {
		o.Scroll(1)
	}
	if got := o.Snapshot().Distance; !near(got, 2.187) {
		t.Fatalf("distance = %v, want 2.187", got)
	}

	for i := 0; i < 100; i++ {
		o.Scroll(1)
		if d := o.Snapshot().Distance; d < 0.2 {
			t.Fatalf("distance %v below minimum", d)
		}
	}
	if got := o.Snapshot().Distance; got != 0.2 {
		t.Fatalf("distance = %v, want 0.2", got)
	}
}

func TestOrbitZoomOutAndZero(t *testing.T) {
	o := newTestOrbit()
	o.Scroll(-1)
	if got := o.Snapshot().Distance; !near(got, 3.3) {
		t.Fatalf("distance = %v, want 3.3", got)
	}
	o.Scroll(0)
	o.Scroll(math.NaN())
	if got := o.Snapshot().Distance; !near(got, 3.3) {
		t.Fatalf("zero delta changed distance to %v", got)
	}
}

func TestOrbitPitchClamp(t *testing.T) {
	deltas := []float64{10, 500, 5000, -200, -10000, 300, 1e6, -1e6}
	o := newTestOrbit()
	o.BeginRotate(0, 0)
	y := 0.0
	for _, d := range deltas {
		y += d
		o.RotateTo(0, y)
		if p := o.Snapshot().Pitch; p < -MaxPitch || p > MaxPitch {
			t.Fatalf("pitch %v out of range after dy=%v", p, d)
		}
	}
	if p := o.Snapshot().Pitch; p != -MaxPitch {
		t.Fatalf("pitch = %v, want %v", p, -MaxPitch)
	}
}

func TestOrbitRotate(t *testing.T) {
	o := newTestOrbit()
	o.RotateTo(50, 50) // not rotating yet
	o.BeginRotate(100, 100)
	o.RotateTo(140, 80)
	o.EndRotate()
	o.RotateTo(0, 0)

	v := o.Snapshot()
	if !near(v.Yaw, 0.7+40*0.005) {
		t.Errorf("yaw = %v", v.Yaw)
	}
	if !near(v.Pitch, 0.4-20*0.005) {
		t.Errorf("pitch = %v", v.Pitch)
	}

	o.Reset()
	if got := o.Snapshot(); got != (OrbitView{Distance: 3, Yaw: 0.7, Pitch: 0.4}) {
		t.Errorf("reset view = %+v", got)
	}
}

func TestOrbitEyeAndView(t *testing.T) {
	v := OrbitView{Distance: 2}
	if eye := v.Eye(); !vecNear(eye, mgl32.Vec3{2, 0, 0}) {
		t.Fatalf("eye = %v", eye)
	}
	v.Pitch = math.Pi / 2
	if eye := v.Eye(); !vecNear(eye, mgl32.Vec3{0, 2, 0}) {
		t.Fatalf("eye = %v", eye)
	}

	// The origin is straight ahead of the camera.
	view := OrbitView{Distance: 3, Yaw: 0.7, Pitch: 0.4}.View()
	origin := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !near(origin.X(), 0) || !near(origin.Y(), 0) ||
		!near(origin.Z(), -3) {
		t.Fatalf("origin in view space = %v", origin)
	}
}

func TestNewOrbitClamps(t *testing.T) {
	o := NewOrbit(OrbitView{Distance: 0.01, Pitch: 4}, DefaultOrbitLimits())
	if v := o.Snapshot(); v.Distance != 0.2 || v.Pitch != MaxPitch {
		t.Fatalf("view = %+v", v)
	}
}
