package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch keeps the orbit camera short of the poles, where the look-at up
// vector would flip.
const MaxPitch = 1.5

const (
	fovY  = 60
	zNear = 0.01
	zFar  = 100
)

// OrbitLimits configures the orbit camera.
type OrbitLimits struct {
	MinDistance float32
	Sensitivity float32
	ZoomIn      float32
	ZoomOut     float32
}

// DefaultOrbitLimits match the mesh viewer.
func DefaultOrbitLimits() OrbitLimits {
	return OrbitLimits{MinDistance: 0.2, Sensitivity: 0.005, ZoomIn: 0.9, ZoomOut: 1.1}
}

// OrbitView is an immutable copy of the orbit camera.
type OrbitView struct {
	Distance float32
	Yaw      float32
	Pitch    float32
}

// Eye returns the camera position on the sphere around the origin.
func (v OrbitView) Eye() mgl32.Vec3 {
	sp, cp := math.Sincos(float64(v.Pitch))
	sy, cy := math.Sincos(float64(v.Yaw))
	d := float64(v.Distance)
	return mgl32.Vec3{float32(d * cp * cy), float32(d * sp), float32(d * cp * sy)}
}

// View looks from Eye at the origin with +Y up.
func (v OrbitView) View() mgl32.Mat4 {
	return mgl32.LookAtV(v.Eye(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Projection is a 60 degree perspective for a w x h viewport.
func (v OrbitView) Projection(w, h int) mgl32.Mat4 {
	aspect := float32(1)
	if w > 0 && h > 0 {
		aspect = float32(w) / float32(h)
	}
	return mgl32.Perspective(mgl32.DegToRad(fovY), aspect, zNear, zFar)
}

// Orbit circles the origin at a distance, controlled by yaw and pitch.
type Orbit struct {
	mu     sync.Mutex
	limits OrbitLimits
	home   OrbitView
	view   OrbitView

	rotating     bool
	lastX, lastY float64
}

// NewOrbit returns a camera at home, with pitch and distance clamped.
func NewOrbit(home OrbitView, limits OrbitLimits) *Orbit {
	o := &Orbit{limits: limits}
	o.home = o.clampView(home)
	o.view = o.home
	return o
}

func (o *Orbit) clampView(v OrbitView) OrbitView {
	v.Pitch = mgl32.Clamp(v.Pitch, -MaxPitch, MaxPitch)
	v.Distance = max(v.Distance, o.limits.MinDistance)
	return v
}

// SetLimits replaces the limits and re-clamps the distance.
func (o *Orbit) SetLimits(limits OrbitLimits) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.limits = limits
	o.view = o.clampView(o.view)
}

// Scroll zooms out for dy < 0 and in for dy > 0. The distance never drops
// below MinDistance.
func (o *Orbit) Scroll(dy float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case dy < 0:
		o.view.Distance *= o.limits.ZoomOut
	case dy > 0:
		o.view.Distance *= o.limits.ZoomIn
	default:
		return
	}
	o.view.Distance = max(o.view.Distance, o.limits.MinDistance)
}

// BeginRotate starts rotating from the cursor position (x, y).
func (o *Orbit) BeginRotate(x, y float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rotating = true
	o.lastX, o.lastY = x, y
}

// EndRotate stops rotating.
func (o *Orbit) EndRotate() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rotating = false
}

// Rotating reports whether a rotation drag is in progress.
func (o *Orbit) Rotating() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rotating
}

// RotateTo turns the camera by the cursor movement since the last position.
func (o *Orbit) RotateTo(x, y float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.rotating {
		return
	}
	dx, dy := x-o.lastX, y-o.lastY
	o.lastX, o.lastY = x, y
	o.view.Yaw += float32(dx) * o.limits.Sensitivity
	o.view.Pitch = mgl32.Clamp(o.view.Pitch+float32(dy)*o.limits.Sensitivity, -MaxPitch, MaxPitch)
}

// Reset returns to the home position.
func (o *Orbit) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.view = o.home
	o.rotating = false
}

// Snapshot returns the current distance and angles.
func (o *Orbit) Snapshot() OrbitView {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}
